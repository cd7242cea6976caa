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

// Package chat wraps a single openai chat completion call.
package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT3Dot5Turbo

const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

type Message struct {
	Role    string
	Content string
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Reply holds the text of every returned choice, in order.
type Reply struct {
	Choices []string
}

// Text concatenates the choices.
func (r *Reply) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Choices, "\n")
}

// Completer is anything that can answer a conversation.
type Completer interface {
	Chat(ctx context.Context, messages []Message) (*Reply, error)
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Temperature is sent only when non-nil.
	Temperature *float32
}

type Client struct {
	api         *openai.Client
	model       string
	temperature *float32
}

func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: opts.Temperature,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Chat sends the whole conversation in one request. Errors are returned as
// the api reported them; nothing is retried.
func (c *Client) Chat(ctx context.Context, messages []Message) (*Reply, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	if c.temperature != nil {
		req.Temperature = *c.temperature
	}

	log.Debug().Str("model", c.model).Int("messages", len(messages)).Msg("chat completion request")
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("choices", len(resp.Choices)).Int("tokens", resp.Usage.TotalTokens).Msg("chat completion response")

	reply := &Reply{Choices: make([]string, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		reply.Choices = append(reply.Choices, choice.Message.Content)
	}
	return reply, nil
}
