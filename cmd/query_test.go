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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kessler/assist/internal/chat"
)

func TestQuerySendsOneUserMessage(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("q", "what is a monad"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(h.chat.calls) != 1 {
		t.Fatalf("calls: %d", len(h.chat.calls))
	}
	call := h.chat.calls[0]
	if len(call) != 1 || call[0] != chat.User("what is a monad") {
		t.Fatalf("messages: %+v", call)
	}
	if h.out.String() != "the reply\n" {
		t.Fatalf("output: %q", h.out.String())
	}
	if h.options[0].Model != chat.DefaultModel || h.options[0].APIKey != "sk-test" || h.options[0].Temperature != nil {
		t.Fatalf("options: %+v", h.options[0])
	}
}

func TestQueryContextOrder(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("-p", "summarize this", "--actor", "poet", "query", "text"); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []chat.Message{chat.System("answer in verse"), chat.User("summarize this"), chat.User("text")}
	call := h.chat.calls[0]
	if len(call) != len(want) {
		t.Fatalf("messages: %+v", call)
	}
	for i := range want {
		if call[i] != want[i] {
			t.Fatalf("message %d: got %+v want %+v", i, call[i], want[i])
		}
	}
}

func TestQueryReadsPipedStdin(t *testing.T) {
	h := newHarness(t).initialized()
	h.piped = true
	h.stdin = "line one\nline two\n"
	if err := h.run("q"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.chat.calls[0][0] != chat.User("line one\nline two\n") {
		t.Fatalf("messages: %+v", h.chat.calls[0])
	}
	if !strings.Contains(h.errOut.String(), "waiting for content from stdin") {
		t.Fatalf("stderr: %q", h.errOut.String())
	}
}

func TestQueryPipedContentAfterActorPrompt(t *testing.T) {
	h := newHarness(t).initialized()
	h.terminal = true
	h.piped = true
	h.stdin = "pirate\nwhat is go\n"
	if err := h.run("query", "-a"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(h.chat.calls) != 1 {
		t.Fatalf("calls: %d", len(h.chat.calls))
	}
	want := []chat.Message{chat.System("talk like a pirate"), chat.User("what is go\n")}
	call := h.chat.calls[0]
	if len(call) != len(want) || call[0] != want[0] || call[1] != want[1] {
		t.Fatalf("messages: %+v", call)
	}
}

func TestQueryOpensEditorOnTerminal(t *testing.T) {
	h := newHarness(t, "typed in the editor").initialized()
	if err := h.run("q"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.chat.calls[0][0] != chat.User("typed in the editor") {
		t.Fatalf("messages: %+v", h.chat.calls[0])
	}
}

func TestQueryEmptyContent(t *testing.T) {
	h := newHarness(t).initialized()
	h.piped = true
	h.stdin = "  \n"
	err := h.run("q")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v", err)
	}
	h.noCalls()
}

func TestNotInitialized(t *testing.T) {
	h := newHarness(t)
	err := h.run("q", "hi")
	if !errors.Is(err, ErrNotInitialized) || exitCode(err) != exitNotInitialized {
		t.Fatalf("got %v", err)
	}
	h.noCalls()
	if len(h.options) != 0 {
		t.Fatalf("client built before the credential check")
	}
}

func TestKeyFromEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv("KES_OPENAI_KEY", "sk-env")
	if err := h.run("q", "hi"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.options[0].APIKey != "sk-env" {
		t.Fatalf("options: %+v", h.options[0])
	}
	if h.loadConfig().OpenAI.Key != "" {
		t.Fatalf("env key must not be saved")
	}
}

func TestInvalidModel(t *testing.T) {
	h := newHarness(t).initialized()
	err := h.run("-m", "gpt-5-ultra", "q", "hi")
	if !errors.Is(err, ErrInvalidModel) || exitCode(err) != exitInvalidModel {
		t.Fatalf("got %v", err)
	}
	h.noCalls()
}

func TestInvalidModelBeforeInitCheck(t *testing.T) {
	h := newHarness(t)
	if err := h.run("--model=davinci", "q", "hi"); !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("got %v", err)
	}
}

func TestModelSelectedFromList(t *testing.T) {
	h := newHarness(t, "gpt-4").initialized()
	if err := h.run("q", "hi", "-m"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.options[0].Model != "gpt-4" {
		t.Fatalf("options: %+v", h.options[0])
	}
	if len(h.prompter.choices) != 1 || len(h.prompter.choices[0]) != len(Models) {
		t.Fatalf("choices: %v", h.prompter.choices)
	}
}

func TestModelFromConfig(t *testing.T) {
	h := newHarness(t).initialized()
	cfg := h.loadConfig()
	cfg.OpenAI.Model = "gpt-4-32k"
	saveTestConfig(t, h, cfg)
	if err := h.run("q", "hi"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.options[0].Model != "gpt-4-32k" {
		t.Fatalf("options: %+v", h.options[0])
	}
}

func TestUnknownActor(t *testing.T) {
	h := newHarness(t).initialized()
	err := h.run("--actor=nobody", "q", "hi")
	if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), `no such actor "nobody" configured`) {
		t.Fatalf("got %v", err)
	}
	h.noCalls()
}

func TestActorPromptedWhenNoValue(t *testing.T) {
	h := newHarness(t, "pirate").initialized()
	if err := h.run("q", "hi", "-a"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.chat.calls[0][0] != chat.System("talk like a pirate") {
		t.Fatalf("messages: %+v", h.chat.calls[0])
	}
}

func TestEmptyActorName(t *testing.T) {
	h := newHarness(t, "").initialized()
	err := h.run("q", "hi", "--actor")
	if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), "empty actor name") {
		t.Fatalf("got %v", err)
	}
	h.noCalls()
}

func TestTemperature(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("-t", "0.7", "q", "hi"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.options[0].Temperature == nil || *h.options[0].Temperature != float32(0.7) {
		t.Fatalf("options: %+v", h.options[0])
	}

	for _, bad := range []string{"warm", "-1", "2.5"} {
		h := newHarness(t).initialized()
		if err := h.run("--temperature="+bad, "q", "hi"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q: got %v", bad, err)
		}
		h.noCalls()
	}
}

func TestCodeQueryWrapsPrompt(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("c", "reverse a list"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(h.chat.calls) != 1 {
		t.Fatalf("calls: %d", len(h.chat.calls))
	}
	call := h.chat.calls[0]
	if len(call) != 2 || call[0] != chat.System(codeSystemPrompt) {
		t.Fatalf("messages: %+v", call)
	}
	last := call[len(call)-1]
	want := "do not include any introduction in your response. write only code: reverse a list. do not include any introduction in your response. write only code"
	if last.Role != chat.RoleUser || last.Content != want {
		t.Fatalf("last message: %+v", last)
	}
}

func TestCodeQueryKeepsSessionContext(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("--actor=pirate", "code", "fizzbuzz"); err != nil {
		t.Fatalf("run: %v", err)
	}
	call := h.chat.calls[0]
	if len(call) != 3 || call[0] != chat.System("talk like a pirate") {
		t.Fatalf("messages: %+v", call)
	}
}

func TestCodeQueryFromEditor(t *testing.T) {
	h := newHarness(t, "sort a map by value").initialized()
	if err := h.run("c"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(h.chat.calls[0][1].Content, "write only code: sort a map by value. ") {
		t.Fatalf("messages: %+v", h.chat.calls[0])
	}
}

func TestCodeQueryNothingToDo(t *testing.T) {
	h := newHarness(t, "").initialized()
	if err := h.run("c"); err != nil {
		t.Fatalf("run: %v", err)
	}
	h.noCalls()
	if !strings.Contains(h.out.String(), "nothing to do, exiting...") {
		t.Fatalf("output: %q", h.out.String())
	}
}

func TestTranscript(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("--transcript", "q", "hi"); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := filepath.Glob(filepath.Join(h.dir, "transcripts", "*.md"))
	if err != nil || len(files) != 1 {
		t.Fatalf("transcripts: %v %v", files, err)
	}
	content, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"## user\n\nhi", "## assistant\n\nthe reply"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("transcript missing %q:\n%s", want, content)
		}
	}

	if err := h.run("config", "transcript"); err != nil {
		t.Fatalf("config transcript: %v", err)
	}
	if strings.TrimSpace(h.out.String()) != files[0] {
		t.Fatalf("latest transcript: %q", h.out.String())
	}
}

func TestNoTranscriptByDefault(t *testing.T) {
	h := newHarness(t).initialized()
	if err := h.run("q", "hi"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "transcripts")); !os.IsNotExist(err) {
		t.Fatalf("transcript dir created: %v", err)
	}
}
