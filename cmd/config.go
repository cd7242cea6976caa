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
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [list|get|set|transcript] [key] [value]",
		Short: "view and edit the local configuration",
		Long: `View and edit the local configuration.

  list                 print the config path, model, key and actors
  get <key>            print openai.model or openai.key (masked)
  set <key> <value>    change openai.model or openai.key and save
  transcript           print the path of the latest transcript`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			operation := "list"
			if len(args) > 0 {
				operation = args[0]
			}
			switch operation {
			case "list":
				return a.listConfig()
			case "get":
				if len(args) != 2 {
					return fmt.Errorf("%w: usage: kes config get <key>", ErrInvalidInput)
				}
				return a.getConfig(args[1])
			case "set":
				if len(args) != 3 {
					return fmt.Errorf("%w: usage: kes config set <key> <value>", ErrInvalidInput)
				}
				return a.setConfig(args[1], args[2])
			case "transcript":
				path, err := a.latestTranscript()
				if err != nil {
					return err
				}
				if path == "" {
					return fmt.Errorf("no transcripts found")
				}
				fmt.Fprintln(a.out, path)
				return nil
			}
			return fmt.Errorf("%w %q for command config", ErrUnknownSubcommand, operation)
		},
	}
}

func (a *app) listConfig() error {
	fmt.Fprintf(a.out, "path: %s\n", a.store.Path())
	fmt.Fprintf(a.out, "openai.model: %s\n", a.cfg.OpenAI.Model)
	fmt.Fprintf(a.out, "openai.key: %s\n", maskKey(a.cfg.OpenAI.Key))
	fmt.Fprintf(a.out, "actors: %s\n", strings.Join(a.cfg.ActorNames(), ", "))
	return nil
}

func (a *app) getConfig(key string) error {
	switch key {
	case "openai.model":
		fmt.Fprintln(a.out, a.cfg.OpenAI.Model)
	case "openai.key":
		fmt.Fprintln(a.out, maskKey(a.cfg.OpenAI.Key))
	default:
		return fmt.Errorf("%w: unknown config key %q", ErrInvalidInput, key)
	}
	return nil
}

func (a *app) setConfig(key, value string) error {
	switch key {
	case "openai.model":
		if !validModel(value) {
			return fmt.Errorf("%w: %q", ErrInvalidModel, value)
		}
		a.cfg.OpenAI.Model = value
	case "openai.key":
		a.cfg.OpenAI.Key = value
	default:
		return fmt.Errorf("%w: unknown config key %q", ErrInvalidInput, key)
	}
	return a.store.Save(a.cfg)
}

// maskKey keeps enough of the key to recognize it.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}
