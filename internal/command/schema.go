// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// ArgType is the coercion type of a declared argument.
type ArgType int

// Supported argument types.
const (
	TypeString ArgType = iota
	TypeBool
	TypeInt
	TypeStrings
)

// Arg declares one argument of a command, either an optional flag
// (--name/-n) or a positional word. Declarations mirror conventional
// CLI-flag syntax: typed coercion, defaults, boolean store-flags, and
// variadic positionals.
type Arg struct {
	Name       string
	Short      string // one-letter shorthand, flags only
	Type       ArgType
	Default    any
	Help       string
	Positional bool
	Optional   bool // positional may be absent
	Variadic   bool // positional consumes all remaining words
}

// Schema is the compiled, immutable argument schema of one registration.
type Schema struct {
	name        string
	usage       string
	args        []Arg
	flags       []Arg
	positionals []Arg
}

// NewSchema compiles an ordered argument declaration list. Declaration
// mistakes (duplicate names, mistyped defaults, boolean positionals,
// non-final variadics) are caught here, at registration time.
func NewSchema(name, usage string, args []Arg) (*Schema, error) {
	s := &Schema{
		name:  name,
		usage: usage,
		args:  append([]Arg(nil), args...),
	}

	seen := make(map[string]bool, len(args))
	for _, a := range args {
		if a.Name == "" || strings.HasPrefix(a.Name, "-") || strings.ContainsAny(a.Name, " \t") {
			return nil, schemaErr(name, "invalid argument name %q", a.Name)
		}
		if seen[a.Name] {
			return nil, schemaErr(name, "duplicate argument %q", a.Name)
		}
		seen[a.Name] = true

		if err := checkDefault(a); err != nil {
			return nil, err
		}

		if !a.Positional {
			if a.Variadic {
				return nil, schemaErr(name, "flag %q cannot be variadic, use TypeStrings", a.Name)
			}
			if len(a.Short) > 1 {
				return nil, schemaErr(name, "shorthand for %q must be one letter", a.Name)
			}
			s.flags = append(s.flags, a)
			continue
		}

		if a.Type == TypeBool {
			return nil, schemaErr(name, "positional %q cannot be boolean", a.Name)
		}
		if a.Short != "" {
			return nil, schemaErr(name, "positional %q cannot have a shorthand", a.Name)
		}
		if a.Type == TypeStrings && !a.Variadic {
			return nil, schemaErr(name, "positional %q of type strings must be variadic", a.Name)
		}
		if a.Variadic && a.Type != TypeString && a.Type != TypeStrings {
			return nil, schemaErr(name, "variadic positional %q must collect strings", a.Name)
		}
		if len(s.positionals) > 0 && s.positionals[len(s.positionals)-1].Variadic {
			return nil, schemaErr(name, "variadic positional must be last, %q follows one", a.Name)
		}
		s.positionals = append(s.positionals, a)
	}

	return s, nil
}

func schemaErr(name, format string, args ...any) error {
	return oops.Code(CodeInvalidName).
		With("command", name).
		Errorf("schema: "+format, args...)
}

func checkDefault(a Arg) error {
	if a.Default == nil {
		return nil
	}
	ok := false
	switch a.Type {
	case TypeString:
		_, ok = a.Default.(string)
	case TypeBool:
		_, ok = a.Default.(bool)
	case TypeInt:
		_, ok = a.Default.(int)
	case TypeStrings:
		_, ok = a.Default.([]string)
	}
	if !ok {
		return schemaErr(a.Name, "default %v does not match declared type", a.Default)
	}
	return nil
}

// Args returns the argument declarations in declaration order, for help
// views and introspection.
func (s *Schema) Args() []Arg {
	return append([]Arg(nil), s.args...)
}

// Usage returns the registration's usage override, or one generated from
// the declarations.
func (s *Schema) Usage() string {
	if s.usage != "" {
		return s.usage
	}
	var b strings.Builder
	b.WriteString(s.name)
	for _, a := range s.flags {
		if a.Type == TypeBool {
			fmt.Fprintf(&b, " [--%s]", a.Name)
		} else {
			fmt.Fprintf(&b, " [--%s <%s>]", a.Name, a.Name)
		}
	}
	for _, a := range s.positionals {
		part := "<" + a.Name + ">"
		if a.Variadic {
			part += "..."
		}
		if a.Optional {
			part = "[" + part + "]"
		}
		b.WriteString(" " + part)
	}
	return b.String()
}

// Parse converts tokens into a parameter mapping. Every failure, including
// pflag's help-triggered early exit, comes back as a parse error rather
// than a process exit.
func (s *Schema) Parse(tokens []string) (Params, error) {
	fs := pflag.NewFlagSet(s.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	getters := make(map[string]func() any, len(s.flags))
	for _, a := range s.flags {
		switch a.Type {
		case TypeBool:
			p := fs.BoolP(a.Name, a.Short, defBool(a.Default), a.Help)
			getters[a.Name] = func() any { return *p }
		case TypeInt:
			p := fs.IntP(a.Name, a.Short, defInt(a.Default), a.Help)
			getters[a.Name] = func() any { return *p }
		case TypeStrings:
			p := fs.StringSliceP(a.Name, a.Short, defStrings(a.Default), a.Help)
			getters[a.Name] = func() any { return *p }
		default:
			p := fs.StringP(a.Name, a.Short, defString(a.Default), a.Help)
			getters[a.Name] = func() any { return *p }
		}
	}

	if err := fs.Parse(tokens); err != nil {
		return nil, ErrBadArguments(s.name, s.Usage(), err)
	}

	params := make(Params, len(s.flags)+len(s.positionals))
	for name, get := range getters {
		params[name] = get()
	}

	rest := fs.Args()
	for _, a := range s.positionals {
		if a.Variadic {
			if len(rest) == 0 {
				if !a.Optional {
					return nil, ErrBadArguments(s.name, s.Usage(),
						oops.Errorf("missing argument: %s", a.Name))
				}
				params[a.Name] = defStrings(a.Default)
			} else {
				params[a.Name] = append([]string(nil), rest...)
			}
			rest = nil
			continue
		}
		if len(rest) == 0 {
			if !a.Optional {
				return nil, ErrBadArguments(s.name, s.Usage(),
					oops.Errorf("missing argument: %s", a.Name))
			}
			params[a.Name] = a.Default
			continue
		}
		v, err := coerce(a, rest[0])
		if err != nil {
			return nil, ErrBadArguments(s.name, s.Usage(), err)
		}
		params[a.Name] = v
		rest = rest[1:]
	}

	if len(rest) > 0 {
		return nil, ErrBadArguments(s.name, s.Usage(),
			oops.Errorf("unexpected argument: %s", rest[0]))
	}

	return params, nil
}

func coerce(a Arg, word string) (any, error) {
	switch a.Type {
	case TypeInt:
		n, err := strconv.Atoi(word)
		if err != nil {
			return nil, oops.Errorf("argument %s: %q is not an integer", a.Name, word)
		}
		return n, nil
	default:
		return word, nil
	}
}

func defBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func defInt(v any) int {
	n, _ := v.(int)
	return n
}

func defString(v any) string {
	s, _ := v.(string)
	return s
}

func defStrings(v any) []string {
	s, _ := v.([]string)
	return s
}
