// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package commands provides the built-in command implementations and their
// registration routine.
package commands

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/quillmail/quill/internal/command"
)

// ExitCommand shuts down the interactive interface.
type ExitCommand struct {
	command.Base
}

// NewExitCommand builds an ExitCommand.
func NewExitCommand(_ command.Params) (command.Command, error) {
	return &ExitCommand{}, nil
}

// Apply requests interface shutdown.
func (c *ExitCommand) Apply(_ context.Context, env command.Environment) error {
	env.Exit()
	return nil
}

// RefreshCommand redraws the current buffer.
type RefreshCommand struct {
	command.Base
}

// NewRefreshCommand builds a RefreshCommand.
func NewRefreshCommand(_ command.Params) (command.Command, error) {
	return &RefreshCommand{}, nil
}

// Apply redraws the current buffer.
func (c *RefreshCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("refreshed")
	return nil
}

// Repeatable reports that refresh may be re-applied verbatim.
func (c *RefreshCommand) Repeatable() bool { return true }

// ShellEscapeCommand runs an external shell command-line. It is the target
// of the "!" shorthand.
type ShellEscapeCommand struct {
	command.Base
	Cmd string
}

// NewShellEscapeCommand builds a ShellEscapeCommand from its single
// positional argument.
func NewShellEscapeCommand(p command.Params) (command.Command, error) {
	return &ShellEscapeCommand{Cmd: p.String("cmd")}, nil
}

// Apply spawns the command-line through the shell, writing its combined
// output to the environment.
func (c *ShellEscapeCommand) Apply(ctx context.Context, env command.Environment) error {
	if strings.TrimSpace(c.Cmd) == "" {
		return nil
	}
	run := exec.CommandContext(ctx, "sh", "-c", c.Cmd)
	run.Stdout = env.Output()
	run.Stderr = env.Output()
	if err := run.Run(); err != nil {
		if ctx.Err() != nil {
			return command.Canceled()
		}
		env.Notify(fmt.Sprintf("shellescape failed: %v", err))
	}
	return nil
}

// SearchCommand opens a search buffer for a query.
type SearchCommand struct {
	command.Base
	Query []string
	Sort  string
}

// NewSearchCommand builds a SearchCommand.
func NewSearchCommand(p command.Params) (command.Command, error) {
	return &SearchCommand{
		Query: p.Strings("query"),
		Sort:  p.String("sort"),
	}, nil
}

// Apply opens the search buffer.
func (c *SearchCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("search: " + strings.Join(c.Query, " "))
	return nil
}

// RefineCommand rewrites the query of the current search buffer.
type RefineCommand struct {
	command.Base
	Query []string
}

// NewRefineCommand builds a RefineCommand.
func NewRefineCommand(p command.Params) (command.Command, error) {
	return &RefineCommand{Query: p.Strings("query")}, nil
}

// Apply replaces the buffer's query.
func (c *RefineCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("refine: " + strings.Join(c.Query, " "))
	return nil
}

// BufferCloseCommand closes the current buffer.
type BufferCloseCommand struct {
	command.Base
	Force bool
}

// NewBufferCloseCommand builds a BufferCloseCommand.
func NewBufferCloseCommand(p command.Params) (command.Command, error) {
	return &BufferCloseCommand{Force: p.Bool("force")}, nil
}

// Apply closes the buffer.
func (c *BufferCloseCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("buffer closed")
	return nil
}

// ComposeCommand opens a composition buffer.
type ComposeCommand struct {
	command.Base
	To      string
	Subject string
}

// NewComposeCommand builds a ComposeCommand.
func NewComposeCommand(p command.Params) (command.Command, error) {
	return &ComposeCommand{
		To:      p.String("to"),
		Subject: p.String("subject"),
	}, nil
}

// Apply opens the composer.
func (c *ComposeCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("composing")
	return nil
}

// MoveCommand moves the cursor inside the current buffer.
type MoveCommand struct {
	command.Base
	Movement []string
}

// NewMoveCommand builds a MoveCommand.
func NewMoveCommand(p command.Params) (command.Command, error) {
	m := p.Strings("movement")
	if len(m) == 0 {
		return nil, command.ErrParse("move: missing movement")
	}
	return &MoveCommand{Movement: m}, nil
}

// Apply performs the movement.
func (c *MoveCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("move " + strings.Join(c.Movement, " "))
	return nil
}

// Repeatable reports that movement may be re-applied verbatim.
func (c *MoveCommand) Repeatable() bool { return true }

// SaveAttachmentCommand saves attachments of the selected message.
type SaveAttachmentCommand struct {
	command.Base
	All  bool
	Path string
}

// NewSaveAttachmentCommand builds a SaveAttachmentCommand.
func NewSaveAttachmentCommand(p command.Params) (command.Command, error) {
	return &SaveAttachmentCommand{
		All:  p.Bool("all"),
		Path: p.String("path"),
	}, nil
}

// Apply saves the selected attachment(s).
func (c *SaveAttachmentCommand) Apply(_ context.Context, env command.Environment) error {
	if c.All {
		env.Notify("saving all attachments")
	} else {
		env.Notify("saving attachment")
	}
	return nil
}

// TagCommand adds, removes, or toggles tags on the selected thread. One
// builder serves the tag, untag, and toggletags registrations through
// forced "action" parameters.
type TagCommand struct {
	command.Base
	Action  string
	Tags    []string
	NoFlush bool
}

// Tag actions baked into registrations as forced parameters.
const (
	TagActionAdd    = "add"
	TagActionRemove = "remove"
	TagActionToggle = "toggle"
)

// NewTagCommand builds a TagCommand.
func NewTagCommand(p command.Params) (command.Command, error) {
	action := p.String("action")
	switch action {
	case TagActionAdd, TagActionRemove, TagActionToggle:
	default:
		return nil, command.ErrParse("tag: unknown action %q", action)
	}
	return &TagCommand{
		Action:  action,
		Tags:    p.Strings("tags"),
		NoFlush: p.Bool("no-flush"),
	}, nil
}

// Apply mutates the thread's tags.
func (c *TagCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify(fmt.Sprintf("%s tags: %s", c.Action, strings.Join(c.Tags, ",")))
	return nil
}

// Undoable reports that tag changes can be undone.
func (c *TagCommand) Undoable() bool { return true }

// OpenBufferCommand jumps to the buffer selected in the buffer list.
type OpenBufferCommand struct {
	command.Base
}

// NewOpenBufferCommand builds an OpenBufferCommand.
func NewOpenBufferCommand(_ command.Params) (command.Command, error) {
	return &OpenBufferCommand{}, nil
}

// Apply focuses the selected buffer.
func (c *OpenBufferCommand) Apply(_ context.Context, env command.Environment) error {
	env.Notify("buffer opened")
	return nil
}
