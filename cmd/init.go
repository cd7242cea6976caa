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

	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "run once to store your openai api key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit()
		},
	}
}

func (a *app) runInit() error {
	if a.store.Exists() && a.cfg.Initialized() {
		response, err := a.prompter.InputDefault("already initialized, do you want to override?", "no")
		if err != nil {
			return err
		}
		if response != "yes" {
			if strings.ToLower(response) != "no" {
				prompt.Bare(a.out, `invalid answer, use "yes" or "no", aborting for now.`)
			}
			return nil
		}
	}

	key, err := a.prompter.Input("openAI api key:")
	if err != nil {
		return err
	}
	if key == "" {
		prompt.Bare(a.out, "cancelling...")
		return nil
	}

	a.cfg.OpenAI.Key = key
	if err := a.store.Save(a.cfg); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved config to %q\n", a.store.Path())
	return nil
}
