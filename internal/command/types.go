// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package command provides the command registry, argument parser, and
// command-line factory for the interactive interface.
package command

import (
	"context"
	"io"
)

// Mode identifies the operating context that determines which command table
// is consulted first. The set of modes is fixed at startup.
type Mode string

// Known modes. ModeGlobal is the reserved fallback table.
const (
	ModeGlobal     Mode = "global"
	ModeSearch     Mode = "search"
	ModeCompose    Mode = "compose"
	ModeBufferList Mode = "bufferlist"
	ModeTagList    Mode = "taglist"
	ModeThread     Mode = "thread"
)

// Modes returns all known modes, global first.
func Modes() []Mode {
	return []Mode{
		ModeGlobal,
		ModeSearch,
		ModeCompose,
		ModeBufferList,
		ModeTagList,
		ModeThread,
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeGlobal, ModeSearch, ModeCompose, ModeBufferList, ModeTagList, ModeThread:
		return true
	}
	return false
}

// Environment is the surface a command acts on when applied. The interactive
// UI owns the real implementation; tests use stubs.
type Environment interface {
	// Notify shows a transient message to the user.
	Notify(msg string)
	// Output is the destination for command-produced text.
	Output() io.Writer
	// Exit requests shutdown of the interactive interface.
	Exit()
}

// Command is a runtime unit of work constructed from parsed input.
// Instances are created by the Factory, one per invocation, and handed to
// the UI loop for execution.
type Command interface {
	// Apply runs the command against the environment.
	Apply(ctx context.Context, env Environment) error
	// Repeatable reports whether the command may be re-applied verbatim.
	Repeatable() bool
	// Undoable reports whether the command's effect can be undone.
	Undoable() bool
}

// Builder constructs a concrete command from parsed parameters. Each command
// implementation registers exactly one builder; the registry maps
// (name, mode) to it, preserving dynamic dispatch without reflection over
// field names.
type Builder func(p Params) (Command, error)

// Spec is the immutable registration record for one (mode, name) pair:
// the typed constructor, the compiled argument schema, and parameters that
// always override user-supplied values.
type Spec struct {
	Build  Builder
	Schema *Schema
	Forced Params
	Help   string
	Usage  string
}

// Registration is the reverse-registry identity of an implementation.
type Registration struct {
	Name string
	Mode Mode
}
