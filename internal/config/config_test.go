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
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", FileName))
	if s.Exists() {
		t.Fatalf("store should not exist yet")
	}
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Initialized() {
		t.Fatalf("defaults must not carry a key")
	}
	if got := cfg.ActorNames(); !reflect.DeepEqual(got, []string{"prompt"}) {
		t.Fatalf("default actors: %v", got)
	}
	if cfg.Actors["prompt"].Prompt != promptCreator {
		t.Fatalf("prompt actor has the wrong text")
	}
}

func TestLoadKeepsCommentMarkersInPrompts(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FileName))
	cfg := &Config{
		OpenAI: OpenAI{Key: "sk-test"},
		Actors: map[string]Actor{
			"a":     {Name: "a", Prompt: "globs like src/*"},
			"b":     {Name: "b", Prompt: "and */ closers"},
			"c":     {Name: "c", Prompt: "write C, document /* block */ with comments"},
			"slash": {Name: "slash", Prompt: "// not a comment either"},
		},
	}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.Actors, cfg.Actors) {
		t.Fatalf("actors: got %+v want %+v", got.Actors, cfg.Actors)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".config", FileName)
	s := NewStore(path)

	cfg := &Config{
		OpenAI: OpenAI{Key: "sk-test", Model: "gpt-4"},
		Actors: map[string]Actor{
			"Pirate":    {Name: "Pirate", Prompt: "talk like a pirate"},
			"code.help": {Name: "code.help", Prompt: "you write go"},
		},
	}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists() {
		t.Fatalf("file not written")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.OpenAI != cfg.OpenAI {
		t.Fatalf("openai: got %+v want %+v", got.OpenAI, cfg.OpenAI)
	}
	if !reflect.DeepEqual(got.Actors, cfg.Actors) {
		t.Fatalf("actors: got %+v want %+v", got.Actors, cfg.Actors)
	}
}

func TestSavedFileOwnsActors(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := NewStore(path)

	cfg := Defaults()
	delete(cfg.Actors, "prompt")
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Actors) != 0 {
		t.Fatalf("removed default actor came back: %v", got.ActorNames())
	}
}

func TestSaveIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := NewStore(path).Save(Defaults()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode %v", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}

func TestActorNamesSorted(t *testing.T) {
	cfg := &Config{Actors: map[string]Actor{"b": {}, "a": {}, "c": {}}}
	if got := cfg.ActorNames(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}
}
