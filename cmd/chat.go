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

	"github.com/kessler/assist/internal/chat"
	"github.com/kessler/assist/internal/prompt"
)

// runInteractive loops until the user sends an empty line. Each turn sends
// the whole conversation so far.
func (a *app) runInteractive(ctx context.Context) error {
	s, err := a.newSession()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "send an empty string (hit enter) to exit")
	for {
		content, err := a.prompter.Input(prompt.Green("[me]:"))
		if err != nil {
			return err
		}
		if content == "" {
			break
		}
		s.context = append(s.context, chat.User(content))

		reply, err := a.ask(ctx, s)
		if err != nil {
			return err
		}
		s.context = append(s.context, chat.Assistant(reply))
		prompt.Tagged(a.out, reply)
	}
	return a.writeTranscript(s)
}
