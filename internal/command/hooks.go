// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"
)

// Hook is a pre- or post-execution callback resolved from the hook provider.
type Hook func(ctx context.Context, env Environment) error

// HookProvider resolves hooks by name. The configuration subsystem owns the
// implementation; a nil Hook means the name is undefined.
type HookProvider interface {
	GetHook(name string) Hook
}

// Hooks are the resolved pre/post slots of one command invocation.
type Hooks struct {
	Pre  Hook
	Post Hook
}

// resolveHooks fills the hook slots for a command identity in priority
// order: pre_<mode>_<name>, else pre_global_<name>; same for post.
func resolveHooks(p HookProvider, name string, mode Mode) Hooks {
	if p == nil {
		return Hooks{}
	}
	var h Hooks
	h.Pre = p.GetHook(fmt.Sprintf("pre_%s_%s", mode, name))
	if h.Pre == nil {
		h.Pre = p.GetHook("pre_global_" + name)
	}
	h.Post = p.GetHook(fmt.Sprintf("post_%s_%s", mode, name))
	if h.Post == nil {
		h.Post = p.GetHook("post_global_" + name)
	}
	return h
}

// Meta is the per-invocation identity the factory binds to a freshly built
// command: its registered name and mode, an invocation ID for log
// correlation, the registration's help text, and the resolved hooks.
type Meta struct {
	Name         string
	Mode         Mode
	InvocationID ulid.ULID
	Help         string
	Hooks        Hooks
}

// Binder is implemented by commands that accept invocation metadata after
// construction. Embedding Base provides it.
type Binder interface {
	Bind(meta Meta)
}

// Base carries the per-invocation state shared by all commands: help text
// and resolved hooks. Concrete commands embed it and override Repeatable or
// Undoable where they differ from the defaults.
type Base struct {
	meta Meta
}

// Bind stores the invocation metadata. Called once by the factory.
func (b *Base) Bind(meta Meta) {
	b.meta = meta
	slog.Debug("command constructed",
		"command", meta.Name,
		"mode", string(meta.Mode),
		"invocation_id", meta.InvocationID.String(),
		"prehook", meta.Hooks.Pre != nil,
		"posthook", meta.Hooks.Post != nil)
}

// Meta returns the bound invocation metadata.
func (b *Base) Meta() Meta { return b.meta }

// Help returns the registered help text for this command.
func (b *Base) Help() string { return b.meta.Help }

// PreHook returns the resolved pre-execution hook, or nil.
func (b *Base) PreHook() Hook { return b.meta.Hooks.Pre }

// PostHook returns the resolved post-execution hook, or nil.
func (b *Base) PostHook() Hook { return b.meta.Hooks.Post }

// Repeatable reports the type-level default; commands that can be re-applied
// verbatim override it.
func (b *Base) Repeatable() bool { return false }

// Undoable reports the instance default; undo-capable commands override it.
func (b *Base) Undoable() bool { return false }
