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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/kessler/assist/internal/embedding"
	"github.com/kessler/assist/internal/prompt"
	"github.com/spf13/cobra"
)

func newEmbeddingCmd(a *app) *cobra.Command {
	var (
		maxResults int
		threshold  float64
		format     string
	)
	embeddingCmd := &cobra.Command{
		Use:     "embedding <add|query|delete> <collectionName> [text]",
		Aliases: []string{"e"},
		Short:   "add, query or delete text in an embedding collection",
		Long: `Collections live in ~/.kessler-assist/collections, one json file each.

  add     embed the text and store it, printing the new id
  query   print the stored texts most similar to the text
  delete  remove an entry; the text is its id as a json literal`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			subcommand, collection := args[0], args[1]
			switch subcommand {
			case "add", "query", "delete", "remove":
			default:
				return fmt.Errorf("%w %q for command embedding", ErrUnknownSubcommand, subcommand)
			}
			if err := a.checkInitialized(); err != nil {
				return err
			}

			var text string
			if len(args) == 3 {
				text = args[2]
			} else {
				var err error
				if text, err = a.prompter.Input(prompt.Green("text:")); err != nil {
					return err
				}
			}
			if text == "" {
				return nil
			}

			dir := a.settings.GetString("collections-dir")
			if dir == "" {
				var err error
				if dir, err = embedding.DefaultDir(); err != nil {
					return err
				}
			}
			store := a.newStore(a.apiKey(), a.settings.GetString("openai.base-url"), dir)
			ctx := cmd.Context()

			switch subcommand {
			case "add":
				stop := a.spin()
				id, err := store.Add(ctx, collection, text, map[string]any{"created": a.now().UnixMilli()})
				stop()
				if err != nil {
					return err
				}
				prompt.Bare(a.out, id)
				return nil
			case "query":
				stop := a.spin()
				matches, err := store.Query(ctx, collection, text, embedding.QueryOptions{MaxResults: maxResults, Threshold: threshold})
				stop()
				if err != nil {
					return err
				}
				return renderMatches(a, matches, format)
			default:
				id, err := parseEntryID(text)
				if err != nil {
					return err
				}
				return store.Remove(ctx, collection, id)
			}
		},
	}
	embeddingCmd.Flags().IntVar(&maxResults, "max-results", embedding.DefaultMaxResults, "most matches to return from query")
	embeddingCmd.Flags().Float64Var(&threshold, "threshold", 0, "drop query matches scoring below this similarity")
	embeddingCmd.Flags().StringVar(&format, "format", "json", "query output format, json or yaml")
	return embeddingCmd
}

func renderMatches(a *app, matches []embedding.Match, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(matches, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(matches)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return err
	}
	prompt.Bare(a.out, string(out))
	return nil
}

// parseEntryID reads the id as a json string or number literal. A bare
// uuid is accepted too.
func parseEntryID(text string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		if _, uerr := uuid.Parse(text); uerr == nil {
			return text, nil
		}
		return "", fmt.Errorf("%w: %q is not a valid id: %v", ErrInvalidInput, text, err)
	}
	switch id := v.(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %q is not a valid id", ErrInvalidInput, text)
}
