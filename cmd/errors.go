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

	"github.com/kessler/assist/internal/embedding"
)

var (
	ErrNotInitialized    = errors.New("not initialized, run 'kes init' command first")
	ErrInvalidModel      = errors.New("invalid or unknown model")
	ErrUnknownSubcommand = errors.New("no such sub command")
	ErrInvalidInput      = errors.New("invalid input")
)

const (
	exitOK = iota
	exitFailure
	exitNotInitialized
	exitInvalidModel
	exitUnknownSubcommand
	exitInvalidInput
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrNotInitialized):
		return exitNotInitialized
	case errors.Is(err, ErrInvalidModel):
		return exitInvalidModel
	case errors.Is(err, ErrUnknownSubcommand):
		return exitUnknownSubcommand
	case errors.Is(err, ErrInvalidInput), errors.Is(err, embedding.ErrInvalidCollection):
		return exitInvalidInput
	}
	return exitFailure
}
