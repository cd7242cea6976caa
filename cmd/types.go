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
	"io"
	"time"

	"github.com/kessler/assist/internal/chat"
	"github.com/kessler/assist/internal/config"
	"github.com/kessler/assist/internal/embedding"
	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/viper"
)

// globalFlags are the flags every query command shares.
type globalFlags struct {
	actor       OptionalString
	model       OptionalString
	preprompt   string
	temperature string
}

// app carries everything a command needs. Commands get it explicitly
// instead of reading package state.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settings *viper.Viper
	flags    globalFlags

	store *config.Store
	cfg   *config.Config

	prompter prompt.Prompter
	closer   io.Closer

	// stdin is where piped content is read from. It shares the prompter's
	// buffer once setup builds the terminal.
	stdin io.Reader

	// swapped out in tests
	newChat  func(chat.Options) chat.Completer
	newStore func(apiKey, baseURL, dir string) embedding.Store
	isPiped  func() bool
	now      func() time.Time
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{
		in:       in,
		out:      out,
		errOut:   errOut,
		settings: viper.New(),
		stdin:    in,
		now:      time.Now,
	}
	a.newChat = func(opts chat.Options) chat.Completer {
		return chat.New(opts)
	}
	a.newStore = func(apiKey, baseURL, dir string) embedding.Store {
		return embedding.NewFileStore(dir, embedding.NewOpenAIEmbedder(apiKey, baseURL))
	}
	a.isPiped = func() bool {
		return prompt.IsPiped(a.in)
	}
	return a
}

// session is the conversation a query command starts from.
type session struct {
	client  chat.Completer
	model   string
	context []chat.Message
}
