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
package prompt

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

// Editor opens a temp file in an external editor and returns what was saved.
type Editor struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// EditorCommand picks the first of explicit, $VISUAL, $EDITOR, vi.
func EditorCommand(explicit string) string {
	for _, c := range []string{explicit, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if c != "" {
			return c
		}
	}
	return "vi"
}

func NewEditor(command string) *Editor {
	return &Editor{Command: command, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit blocks until the editor exits.
func (e *Editor) Edit(initial string) (string, error) {
	args, err := shlex.Split(e.Command)
	if err != nil {
		return "", fmt.Errorf("could not parse editor command %q: %w", e.Command, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("empty editor command")
	}

	f, err := os.CreateTemp("", "kes-*.md")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	cmd := exec.Command(args[0], append(args[1:], f.Name())...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	log.Debug().Strs("args", cmd.Args).Msg("opening editor")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", args[0], err)
	}

	content, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return string(content), nil
}
