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

	"github.com/kessler/assist/internal/config"
	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/cobra"
)

const cancelChoice = "- cancel"

func newActorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "actor <list|add|remove>",
		Aliases: []string{"a"},
		Short:   "add, remove or list actors",
		Long: `Actors are named system prompts. Use one with 'kes --actor <name>'.

  list    print the configured actor names
  add     ask for a name and a prompt and save them
  remove  pick an actor and confirm with "yes" to delete it`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "list":
				return a.listActors()
			case "add":
				return a.addActor()
			case "remove":
				return a.removeActor()
			}
			return fmt.Errorf("%w %q for command actor", ErrUnknownSubcommand, args[0])
		},
	}
}

func (a *app) listActors() error {
	for _, name := range a.cfg.ActorNames() {
		fmt.Fprintln(a.out, "- "+name)
	}
	return nil
}

func (a *app) addActor() error {
	name, err := a.prompter.Input(prompt.Green("actor name:"))
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "cancelling...")
		return nil
	}
	actorPrompt, err := a.prompter.Editor(prompt.Green("actor prompt:"))
	if err != nil {
		return err
	}

	a.cfg.Actors[name] = config.Actor{Name: name, Prompt: actorPrompt}
	return a.store.Save(a.cfg)
}

// removeActor deletes only on an exact "yes".
func (a *app) removeActor() error {
	choices := append([]string{cancelChoice}, a.cfg.ActorNames()...)
	name, err := a.prompter.Select(prompt.Green("Select actor to remove:"), choices)
	if err != nil {
		return err
	}
	if name == cancelChoice {
		return nil
	}

	areYouSure, err := a.prompter.InputDefault(prompt.Red(fmt.Sprintf("are you sure you want to remove %q?", name)), "no")
	if err != nil {
		return err
	}
	if areYouSure != "yes" {
		return nil
	}
	delete(a.cfg.Actors, name)
	return a.store.Save(a.cfg)
}
