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
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kessler/assist/internal/config"
	"github.com/kessler/assist/internal/prompt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// newRootCmd builds the command tree around a. Called without a verb it
// starts the interactive loop.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kes",
		Short: "kessler AI assistant",
		Long: `kes sends prompts to the openai chat api and prints the reply.

Run it without a command for an interactive chat, or use one of the
commands below. Run 'kes init' once to store an api key.`,
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd.Context())
		},
	}

	pf := rootCmd.PersistentFlags()
	optionalStringP(pf, &a.flags.actor, "actor", "a", "send a role:system message with a predefined prompt. Without a name you will be asked for one")
	pf.StringVarP(&a.flags.preprompt, "preprompt", "p", "", "prepend some text to the beginning of the conversation, right after the actor prompt")
	pf.StringVarP(&a.flags.temperature, "temperature", "t", "", "trade coherence for creativity, between 0 and 2")
	optionalStringP(pf, &a.flags.model, "model", "m", "the openai model to use. Without a name you will pick from a list")

	pf.String("config", "", "config file (default is $HOME/.config/kessler_assist)")
	pf.Bool("quiet", false, "hide the spinner and other cli ux, only show model output")
	pf.Bool("debug", false, "log debug output to stderr")
	pf.Bool("transcript", false, "write the conversation to a markdown file in the transcript directory")
	for _, name := range []string{"config", "quiet", "debug", "transcript"} {
		a.settings.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(
		newQueryCmd(a),
		newCodeCmd(a),
		newActorCmd(a),
		newEmbeddingCmd(a),
		newInitCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(expandOptionalFlags(os.Args[1:], rootCmd.PersistentFlags()))

	err := rootCmd.ExecuteContext(ctx)
	stop()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, prompt.Red(err.Error()))
	}
	os.Exit(exitCode(err))
}

// setup reads settings and the config file once flags are parsed.
func (a *app) setup() error {
	a.settings.SetEnvPrefix("kes")
	a.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.settings.AutomaticEnv() // read in environment variables that match

	level := zerolog.Disabled
	if a.settings.GetBool("debug") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	path := a.settings.GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	a.store = config.NewStore(path)
	cfg, err := a.store.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	log.Debug().Str("path", path).Bool("exists", a.store.Exists()).Msg("loaded config")

	if a.prompter == nil {
		lines := prompt.NewLineReader(a.in, a.out)
		editor := prompt.NewEditor(prompt.EditorCommand(a.settings.GetString("editor")))
		a.prompter = prompt.NewTerminal(lines, a.out, editor)
		a.closer = lines
		a.stdin = lines
	}
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// apiKey prefers KES_OPENAI_KEY over the stored key. The env value is never saved.
func (a *app) apiKey() string {
	if key := a.settings.GetString("openai.key"); key != "" {
		return key
	}
	return a.cfg.OpenAI.Key
}

func (a *app) checkInitialized() error {
	if a.apiKey() == "" {
		return ErrNotInitialized
	}
	return nil
}

// spin shows a spinner on stderr unless quiet or not a terminal.
func (a *app) spin() func() {
	return prompt.Spin(a.errOut, !a.settings.GetBool("quiet") && prompt.IsTerminal(a.errOut))
}
