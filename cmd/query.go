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
	"io"
	"strings"

	"github.com/kessler/assist/internal/chat"
	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/cobra"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "query [prompt]",
		Aliases: []string{"q"},
		Short:   "send a single query and print the reply",
		Long: `Send one query to the chat api and print the bare reply.

Without a prompt argument the content is read from stdin when it is piped,
or typed into an editor otherwise. Combine with --preprompt to put an
instruction in front of piped content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession()
			if err != nil {
				return err
			}

			content := ""
			if len(args) > 0 {
				content = args[0]
			}
			if content == "" {
				if content, err = a.readContent(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("%w: no content provided", ErrInvalidInput)
			}

			s.context = append(s.context, chat.User(content))
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

// readContent drains piped stdin in one read, or opens the editor when
// stdin is a terminal.
func (a *app) readContent() (string, error) {
	if a.isPiped() {
		fmt.Fprintln(a.errOut, "no content provided, waiting for content from stdin...")
		content, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("problem reading stdin: %w", err)
		}
		return string(content), nil
	}
	return a.prompter.Editor("type a query")
}
