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
	"strings"

	"github.com/spf13/pflag"
)

type FlagState int

const (
	FlagAbsent FlagState = iota
	FlagNoValue
	FlagValue
)

// askValue is what pflag stores when a flag is given without a value. A NUL
// byte cannot appear in a command line argument, so no typed value collides.
const askValue = "\x00"

// OptionalString is a flag that may be absent, given bare, or given a value.
type OptionalString struct {
	State FlagState
	Value string
}

func (o *OptionalString) String() string {
	return o.Value
}

func (o *OptionalString) Set(s string) error {
	if s == askValue {
		o.State, o.Value = FlagNoValue, ""
		return nil
	}
	o.State, o.Value = FlagValue, s
	return nil
}

func (o *OptionalString) Type() string {
	return "name"
}

func optionalStringP(fs *pflag.FlagSet, o *OptionalString, name, shorthand, usage string) {
	fs.VarP(o, name, shorthand, usage)
	fs.Lookup(name).NoOptDefVal = askValue
}

// expandOptionalFlags rewrites "--actor pirate" and "-a pirate" into
// "--actor=pirate". pflag never takes the next argument as the value of a
// flag that has a no-value default, so without this the name would become a
// positional argument. Like commander, the next argument is taken unless it
// starts with a dash.
func expandOptionalFlags(args []string, fs *pflag.FlagSet) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		f := lookupFlagArg(fs, arg)
		if f == nil || f.NoOptDefVal == "" || i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
			out = append(out, arg)
			continue
		}
		out = append(out, "--"+f.Name+"="+args[i+1])
		i++
	}
	return out
}

func lookupFlagArg(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.Contains(arg, "="):
		return nil
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		return fs.Lookup(arg[2:])
	case strings.HasPrefix(arg, "-") && len(arg) == 2:
		return fs.ShorthandLookup(arg[1:])
	}
	return nil
}
