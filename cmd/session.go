/*
Copyright © 2023 Zak Reynolds <zak.reynolds@zakjr.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kessler/assist/internal/chat"
	"github.com/kessler/assist/internal/config"
	"github.com/kessler/assist/internal/prompt"
	"github.com/rs/zerolog/log"
)

// Models is the closed set of models kes accepts.
var Models = []string{
	"gpt-4",
	"gpt-4-0613",
	"gpt-4-32k",
	"gpt-4-32k-0613",
	"gpt-3.5-turbo",
	"gpt-3.5-turbo-16k",
	"gpt-3.5-turbo-0613",
	"gpt-3.5-turbo-16k-0613",
}

func validModel(model string) bool {
	for _, m := range Models {
		if m == model {
			return true
		}
	}
	return false
}

// newSession resolves model, credential, actor and preprompt, in that
// order, and builds the starting context: the actor's system message first,
// then the preprompt.
func (a *app) newSession() (*session, error) {
	model, err := a.resolveModel()
	if err != nil {
		return nil, err
	}
	if err := a.checkInitialized(); err != nil {
		return nil, err
	}
	temperature, err := parseTemperature(a.flags.temperature)
	if err != nil {
		return nil, err
	}
	actor, err := a.resolveActor()
	if err != nil {
		return nil, err
	}

	s := &session{model: model}
	if actor != nil {
		s.context = append(s.context, chat.System(actor.Prompt))
	}
	if a.flags.preprompt != "" {
		s.context = append(s.context, chat.User(a.flags.preprompt))
	}
	s.client = a.newChat(chat.Options{
		APIKey:      a.apiKey(),
		BaseURL:     a.settings.GetString("openai.base-url"),
		Model:       model,
		Temperature: temperature,
	})
	log.Debug().Str("model", model).Interface("context", s.context).Msg("session ready")
	return s, nil
}

func (a *app) resolveModel() (string, error) {
	model := a.cfg.OpenAI.Model
	switch a.flags.model.State {
	case FlagAbsent:
		if model == "" {
			return chat.DefaultModel, nil
		}
	case FlagNoValue:
		var err error
		if model, err = a.prompter.Select("select model:", Models); err != nil {
			return "", err
		}
	case FlagValue:
		model = a.flags.model.Value
	}
	if !validModel(model) {
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}
	return model, nil
}

// resolveActor returns nil when no actor was asked for.
func (a *app) resolveActor() (*config.Actor, error) {
	name := a.flags.actor.Value
	switch a.flags.actor.State {
	case FlagAbsent:
		return nil, nil
	case FlagNoValue:
		var err error
		if name, err = a.prompter.Input(prompt.Green("actor name:")); err != nil {
			return nil, err
		}
	}
	if name == "" {
		return nil, fmt.Errorf("%w: cannot use empty actor name", ErrInvalidInput)
	}
	actor, ok := a.cfg.Actors[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such actor %q configured", ErrInvalidInput, name)
	}
	fmt.Fprintln(a.errOut, prompt.Gray("acting as "+name))
	return &actor, nil
}

func parseTemperature(s string) (*float32, error) {
	if s == "" {
		return nil, nil
	}
	t, err := strconv.ParseFloat(s, 32)
	if err != nil || t < 0 || t > 2 {
		return nil, fmt.Errorf("%w: temperature must be a number between 0 and 2, got %q", ErrInvalidInput, s)
	}
	f := float32(t)
	return &f, nil
}

// ask makes exactly one chat call with the whole session context.
func (a *app) ask(ctx context.Context, s *session) (string, error) {
	stop := a.spin()
	reply, err := s.client.Chat(ctx, s.context)
	stop()
	if err != nil {
		return "", fmt.Errorf("could not complete request to openai: %w", err)
	}
	return reply.Text(), nil
}
