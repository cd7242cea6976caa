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
	"fmt"

	"github.com/kessler/assist/internal/chat"
	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/cobra"
)

const (
	codeSystemPrompt = "when asked to write code, you will reply with code only in pure textual form"
	codeInstruction  = "do not include any introduction in your response. write only code"
)

// codePrompt repeats the instruction on both sides of the query. The
// repetition is intentional and must stay verbatim.
func codePrompt(query string) string {
	return codeInstruction + ": " + query + ". " + codeInstruction
}

func newCodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "code [prompt]",
		Aliases: []string{"c"},
		Short:   "send a code prompt and get back code only",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession()
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			if query == "" {
				if query, err = a.prompter.Editor("type a code related query"); err != nil {
					return err
				}
				if query == "" {
					fmt.Fprintln(a.out, "nothing to do, exiting...")
					return nil
				}
			}

			s.context = append(s.context, chat.System(codeSystemPrompt), chat.User(codePrompt(query)))
			reply, err := a.ask(cmd.Context(), s)
			if err != nil {
				return err
			}
			s.context = append(s.context, chat.Assistant(reply))
			prompt.Bare(a.out, reply)
			return a.writeTranscript(s)
		},
	}
}
