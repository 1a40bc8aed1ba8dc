// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package commands

import (
	"github.com/quillmail/quill/internal/command"
)

// RegisterAll registers every built-in command with the registry. It runs
// once at startup, sequentially. Panics on failure (indicates a programming
// error in a declaration).
func RegisterAll(reg *command.Registry) {
	mustRegister := func(mode command.Mode, name string, build command.Builder, help, usage string, forced command.Params, args []command.Arg) {
		schema, err := command.NewSchema(name, usage, args)
		if err != nil {
			panic("failed to compile schema for " + name + ": " + err.Error())
		}
		err = reg.Register(mode, name, command.Spec{
			Build:  build,
			Schema: schema,
			Forced: forced,
			Help:   help,
			Usage:  usage,
		})
		if err != nil {
			panic("failed to register command " + name + ": " + err.Error())
		}
	}

	// Global commands, reachable from every mode.
	mustRegister(command.ModeGlobal, "exit", NewExitCommand,
		"shut down the interface", "exit", nil, nil)

	mustRegister(command.ModeGlobal, "refresh", NewRefreshCommand,
		"redraw the current buffer", "refresh", nil, nil)

	mustRegister(command.ModeGlobal, command.ShellEscapeName, NewShellEscapeCommand,
		"run an external shell command", "shellescape <cmd>", nil,
		[]command.Arg{
			{Name: "cmd", Positional: true, Help: "command-line to run"},
		})

	mustRegister(command.ModeGlobal, "search", NewSearchCommand,
		"open a search buffer", "", nil,
		[]command.Arg{
			{Name: "sort", Type: command.TypeString, Default: "newest_first",
				Help: "sort order"},
			{Name: "query", Positional: true, Variadic: true,
				Help: "search query"},
		})

	mustRegister(command.ModeGlobal, "bclose", NewBufferCloseCommand,
		"close the current buffer", "", nil,
		[]command.Arg{
			{Name: "force", Type: command.TypeBool,
				Help: "close even if unsaved"},
		})

	mustRegister(command.ModeGlobal, "compose", NewComposeCommand,
		"compose a new message", "", nil,
		[]command.Arg{
			{Name: "to", Type: command.TypeString, Help: "recipient"},
			{Name: "subject", Type: command.TypeString, Help: "subject line"},
		})

	mustRegister(command.ModeGlobal, "move", NewMoveCommand,
		"move the cursor", "move <movement>...", nil,
		[]command.Arg{
			{Name: "movement", Positional: true, Variadic: true,
				Help: "movement words, e.g. up, down, last"},
		})

	// Search mode.
	mustRegister(command.ModeSearch, "refine", NewRefineCommand,
		"refine the current query", "refine <query>...", nil,
		[]command.Arg{
			{Name: "query", Positional: true, Variadic: true,
				Help: "replacement query"},
		})

	// Thread mode.
	mustRegister(command.ModeThread, "save", NewSaveAttachmentCommand,
		"save attachment(s)", "", nil,
		[]command.Arg{
			{Name: "all", Type: command.TypeBool, Help: "save all attachments"},
			{Name: "path", Positional: true, Optional: true,
				Help: "path to save to"},
		})

	// One tag builder, three registrations: the action is a forced
	// parameter baked into each spec.
	tagArgs := []command.Arg{
		{Name: "no-flush", Type: command.TypeBool, Help: "skip index flush"},
		{Name: "tags", Positional: true, Variadic: true, Help: "tags to apply"},
	}
	mustRegister(command.ModeThread, "tag", NewTagCommand,
		"add tags to the thread", "",
		command.Params{"action": TagActionAdd}, tagArgs)
	mustRegister(command.ModeThread, "untag", NewTagCommand,
		"remove tags from the thread", "",
		command.Params{"action": TagActionRemove}, tagArgs)
	mustRegister(command.ModeThread, "toggletags", NewTagCommand,
		"toggle tags on the thread", "",
		command.Params{"action": TagActionToggle}, tagArgs)

	// Buffer list mode.
	mustRegister(command.ModeBufferList, "open", NewOpenBufferCommand,
		"open the selected buffer", "open", nil, nil)

	// Tag list mode: selecting a tag opens a search for it.
	mustRegister(command.ModeTagList, "select", NewSearchCommand,
		"search for the selected tag", "select", nil,
		[]command.Arg{
			{Name: "sort", Type: command.TypeString, Default: "newest_first",
				Help: "sort order"},
			{Name: "query", Positional: true, Variadic: true, Optional: true,
				Help: "query override"},
		})
}
