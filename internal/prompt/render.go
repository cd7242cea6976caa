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
	"time"

	termutil "github.com/andrew-d/go-termutil"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	Green = color.New(color.FgGreen).SprintFunc()
	Red   = color.New(color.FgRed).SprintFunc()
	Gray  = color.New(color.FgHiBlack).SprintFunc()
	label = color.New(color.FgBlue, color.Bold).SprintFunc()
)

func Tagged(w io.Writer, text string) {
	fmt.Fprintf(w, "%s:\n%s\n", label("[chatgpt]"), text)
}

func Bare(w io.Writer, text string) {
	fmt.Fprintln(w, text)
}

// Spin shows a spinner on w while a remote call is running. The returned
// func stops it and is safe to call when the spinner never started.
func Spin(w io.Writer, enabled bool) func() {
	if !enabled {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[19], 100*time.Millisecond, spinner.WithWriter(w))
	s.Prefix = "╰─ "
	s.Color("cyan")
	s.Start()
	return func() {
		if s.Active() {
			s.Stop()
		}
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty(f)
}

// IsPiped reports whether r is a file that is not a terminal, such as a pipe
// or a redirect.
func IsPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && !isatty(f)
}

func isatty(f *os.File) bool {
	return termutil.Isatty(f.Fd())
}
