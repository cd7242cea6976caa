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

// Package prompt reads answers from the user and renders replies.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter is how commands ask the user for things.
type Prompter interface {
	// Input returns the trimmed line. End of input reads as an empty line.
	Input(message string) (string, error)
	// InputDefault returns def when the answer is empty.
	InputDefault(message, def string) (string, error)
	// Select returns one of choices.
	Select(message string, choices []string) (string, error)
	// Editor asks for a line and opens the external editor when it is empty.
	Editor(message string) (string, error)
}

// LineReader reads one line after showing a prompt. Reading it directly
// returns whatever input the line reads have not consumed yet.
type LineReader interface {
	io.Reader
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader uses readline when both ends are terminals and a plain
// scanner otherwise, so piped input keeps working.
func NewLineReader(in io.Reader, out io.Writer) LineReader {
	fi, inOK := in.(*os.File)
	fo, outOK := out.(*os.File)
	if inOK && outOK && isatty(fi) && isatty(fo) {
		rl, err := readline.NewEx(&readline.Config{
			Stdin:           fi,
			Stdout:          fo,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err == nil {
			return &readlineReader{rl: rl, in: fi}
		}
	}
	return &scannerReader{r: bufio.NewReader(in), out: out}
}

type readlineReader struct {
	rl *readline.Instance
	in io.Reader
}

func (r *readlineReader) Read(p []byte) (int, error) {
	return r.in.Read(p)
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type scannerReader struct {
	r   *bufio.Reader
	out io.Writer
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	line, err := s.r.ReadString('\n')
	// a last line without a newline still counts
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Read drains the same buffer ReadLine uses, so nothing read ahead is lost.
func (s *scannerReader) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *scannerReader) Close() error {
	return nil
}

// Terminal is the Prompter used by the cli.
type Terminal struct {
	lines  LineReader
	out    io.Writer
	editor *Editor
}

func NewTerminal(lines LineReader, out io.Writer, editor *Editor) *Terminal {
	return &Terminal{lines: lines, out: out, editor: editor}
}

func (t *Terminal) Input(message string) (string, error) {
	line, err := t.lines.ReadLine(message + " ")
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) InputDefault(message, def string) (string, error) {
	answer, err := t.Input(fmt.Sprintf("%s (%s)", message, def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Select prints numbered choices and accepts a number or an exact name,
// asking again until it gets one.
func (t *Terminal) Select(message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("nothing to select from")
	}
	fmt.Fprintln(t.out, message)
	for i, c := range choices {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, c)
	}
	for {
		line, err := t.lines.ReadLine("≫ ")
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		for _, c := range choices {
			if c == line {
				return c, nil
			}
		}
		fmt.Fprintf(t.out, "please enter a number between 1 and %d\n", len(choices))
	}
}

func (t *Terminal) Editor(message string) (string, error) {
	answer, err := t.Input(message + " (hit enter to open the editor):")
	if err != nil || answer != "" {
		return answer, err
	}
	if t.editor == nil {
		return "", errors.New("no editor configured")
	}
	text, err := t.editor.Edit("")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (t *Terminal) Close() error {
	return t.lines.Close()
}
