// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

//go:build integration

package command_test

import (
	"bytes"
	"context"
	"io"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/quillmail/quill/internal/command"
	"github.com/quillmail/quill/internal/command/commands"
	"github.com/quillmail/quill/internal/hooks"
)

// recordingEnv captures notifications and output for assertions.
type recordingEnv struct {
	notices []string
	out     bytes.Buffer
	exited  bool
}

func (e *recordingEnv) Notify(msg string) { e.notices = append(e.notices, msg) }
func (e *recordingEnv) Output() io.Writer { return &e.out }
func (e *recordingEnv) Exit()             { e.exited = true }

var _ = Describe("Command pipeline", func() {
	var (
		reg     *command.Registry
		factory *command.Factory
		env     *recordingEnv
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = &recordingEnv{}
		reg = command.NewRegistry()
		commands.RegisterAll(reg)

		aliases := command.NewAliasTable()
		Expect(aliases.Set("todo", "search tag:todo")).To(Succeed())

		provider, err := hooks.LoadString(`
			hook_log = {}
			function pre_thread_save()
				table.insert(hook_log, "pre_save")
			end
			function post_global_move()
				table.insert(hook_log, "post_move")
			end
		`)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(provider.Close)

		factory, err = command.NewFactory(reg,
			command.WithHookProvider(provider),
			command.WithAliases(aliases),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	It("builds and applies a global command from any mode", func() {
		cmd, err := factory.Build(ctx, "exit", command.ModeThread)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Apply(ctx, env)).To(Succeed())
		Expect(env.exited).To(BeTrue())
	})

	It("parses a quoted query into a single argument", func() {
		cmd, err := factory.Build(ctx, `search "hello world"`, command.ModeGlobal)
		Expect(err).NotTo(HaveOccurred())

		sc, ok := cmd.(*commands.SearchCommand)
		Expect(ok).To(BeTrue())
		Expect(sc.Query).To(Equal([]string{"hello world"}))
		Expect(sc.Sort).To(Equal("newest_first"))
	})

	It("expands aliases before lookup", func() {
		cmd, err := factory.Build(ctx, "todo from:alice", command.ModeGlobal)
		Expect(err).NotTo(HaveOccurred())

		sc := cmd.(*commands.SearchCommand)
		Expect(sc.Query).To(Equal([]string{"tag:todo", "from:alice"}))
	})

	It("runs the shell shorthand end to end", func() {
		cmd, err := factory.Build(ctx, "!echo hi", command.ModeGlobal)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Apply(ctx, env)).To(Succeed())
		Expect(env.out.String()).To(Equal("hi\n"))
	})

	It("passes shell quoting through the shorthand", func() {
		// Unquoted, the shell would collapse the double space.
		cmd, err := factory.Build(ctx, `!echo "a  b"`, command.ModeGlobal)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Apply(ctx, env)).To(Succeed())
		Expect(env.out.String()).To(Equal("a  b\n"))
	})

	It("resolves Lua hooks for mode-local commands", func() {
		cmd, err := factory.Build(ctx, "save --all", command.ModeThread)
		Expect(err).NotTo(HaveOccurred())

		sc := cmd.(*commands.SaveAttachmentCommand)
		Expect(sc.PreHook()).NotTo(BeNil())
		Expect(sc.PostHook()).To(BeNil())
		Expect(sc.PreHook()(ctx, env)).To(Succeed())
	})

	It("resolves global hooks as a fallback", func() {
		cmd, err := factory.Build(ctx, "move up", command.ModeSearch)
		Expect(err).NotTo(HaveOccurred())

		mc := cmd.(*commands.MoveCommand)
		Expect(mc.PreHook()).To(BeNil())
		Expect(mc.PostHook()).NotTo(BeNil())
		Expect(mc.PostHook()(ctx, env)).To(Succeed())
	})

	It("bakes forced actions into the tag family", func() {
		for line, action := range map[string]string{
			"tag read":        commands.TagActionAdd,
			"untag read":      commands.TagActionRemove,
			"toggletags read": commands.TagActionToggle,
		} {
			cmd, err := factory.Build(ctx, line, command.ModeThread)
			Expect(err).NotTo(HaveOccurred(), line)
			Expect(cmd.(*commands.TagCommand).Action).To(Equal(action), line)
		}
	})

	It("rejects unknown commands with a parse error", func() {
		_, err := factory.Build(ctx, "frobnicate", command.ModeGlobal)
		Expect(err).To(HaveOccurred())
		Expect(command.IsParseError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("unknown command"))
	})

	It("rejects mode-local commands outside their mode", func() {
		_, err := factory.Build(ctx, "refine tag:inbox", command.ModeThread)
		Expect(command.IsParseError(err)).To(BeTrue())
	})

	It("yields nothing for blank input", func() {
		cmd, err := factory.Build(ctx, "   ", command.ModeGlobal)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(BeNil())
	})
})
