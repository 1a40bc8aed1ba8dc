// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/quillmail/quill/internal/command"
	"github.com/quillmail/quill/internal/command/commands"
)

// NewCommandsCmd creates the commands subcommand, which lists the registered
// command table per mode.
func NewCommandsCmd() *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List registered commands per mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := command.NewRegistry()
			commands.RegisterAll(reg)

			modes := command.Modes()
			if modeFlag != "" {
				m := command.Mode(modeFlag)
				if !m.Valid() {
					return command.ErrParse("unknown mode: %s", modeFlag)
				}
				modes = []command.Mode{m}
			}

			for _, m := range modes {
				names := reg.Names(m)
				if len(names) == 0 {
					continue
				}
				cmd.Printf("[%s]\n", m)
				for _, name := range names {
					spec, ok := reg.Lookup(name, m)
					if !ok {
						continue
					}
					cmd.Printf("  %-40s %s\n", spec.Schema.Usage(), spec.Help)
				}
				cmd.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "limit output to one mode")
	return cmd
}
