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

// Package config loads and persists the kes user configuration: the openai
// credential, the default model and the actor presets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gconfig "github.com/gookit/config/v2"
	"github.com/gookit/goutil/fsutil"
)

// FileName is the name of the config file under ~/.config.
const FileName = "kessler_assist"

type Config struct {
	OpenAI OpenAI           `json:"openai" mapstructure:"openai"`
	Actors map[string]Actor `json:"actors" mapstructure:"actors"`
}

type OpenAI struct {
	Key   string `json:"key,omitempty" mapstructure:"key"`
	Model string `json:"model,omitempty" mapstructure:"model"`
}

// Actor is a named system prompt preset.
type Actor struct {
	Name   string `json:"name" mapstructure:"name"`
	Prompt string `json:"prompt" mapstructure:"prompt"`
}

// Initialized reports whether a credential is present.
func (c *Config) Initialized() bool {
	return c.OpenAI.Key != ""
}

// ActorNames returns the configured actor names in sorted order.
func (c *Config) ActorNames() []string {
	names := make([]string, 0, len(c.Actors))
	for name := range c.Actors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults is the configuration used when no user file exists.
func Defaults() *Config {
	return &Config{
		Actors: map[string]Actor{
			"prompt": {Name: "prompt", Prompt: promptCreator},
		},
	}
}

// DefaultPath returns $HOME/.config/kessler_assist.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("kes depends on the home directory for configuration: %w", err)
	}
	return filepath.Join(home, ".config", FileName), nil
}

// plainJSON decodes without comment stripping. Actor prompts may hold
// "/*" or "*/" inside strings and must come back unchanged.
var plainJSON = gconfig.NewDriver(gconfig.JSON, func(blob []byte, v any) error {
	return json.Unmarshal(blob, v)
}, gconfig.JSONEncoder)

// Store reads and writes the config file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present on disk.
func (s *Store) Exists() bool {
	return fsutil.FileExists(s.path)
}

// Load returns the defaults when the file is absent. When the file exists it
// owns the actors mapping, so removed default actors stay removed.
func (s *Store) Load() (*Config, error) {
	if !s.Exists() {
		return Defaults(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file '%s': %w", s.path, err)
	}

	// the file has no extension, so the format is given explicitly
	c := gconfig.New(FileName)
	c.AddDriver(plainJSON)
	if err := c.LoadSources(gconfig.JSON, data); err != nil {
		return nil, fmt.Errorf("could not load config file '%s': %w", s.path, err)
	}

	cfg := &Config{}
	if err := c.BindStruct("", cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file '%s': %w", s.path, err)
	}
	if cfg.Actors == nil {
		cfg.Actors = map[string]Actor{}
	}
	return cfg, nil
}

// Save overwrites the whole file. The content goes to a temp file in the
// same directory first and is renamed into place.
func (s *Store) Save(cfg *Config) error {
	if err := fsutil.MkParentDir(s.path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

const promptCreator = `Read all of the instructions below and once you understand them say "Shall we begin:"

I want you to become my Prompt Creator. Your goal is to help me craft the best possible prompt for my needs. The prompt will be used by you, ChatGPT. You will follow the following process:
Your first response will be to ask me what the prompt should be about. I will provide my answer, but we will need to improve it through continual iterations by going through the next steps.

Based on my input, you will generate 3 sections.

Revised Prompt (provide your rewritten prompt. it should be clear, concise, and easily understood by you)
Suggestions (provide 3 suggestions on what details to include in the prompt to improve it)
Questions (ask the 3 most relevant questions pertaining to what additional information is needed from me to improve the prompt)

At the end of these sections give me a reminder of my options which are:

Option 1: Read the output and provide more info or answer one or more of the questions
Option 2: Type "Use this prompt" and I will submit this as a query for you
Option 3: Type "Restart" to restart this process from the beginning
Option 4: Type "Quit" to end this script and go back to a regular ChatGPT session

If I type "Option 2", "2" or "Use this prompt" then we have finished and you should use the Revised Prompt as a prompt to generate my request
If I type "option 3", "3" or "Restart" then forget the latest Revised Prompt and restart this process
If I type "Option 4", "4" or "Quit" then finish this process and revert back to your general mode of operation

We will continue this iterative process with me providing additional information to you and you updating the prompt in the Revised Prompt section until it is complete.`
