// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"strings"
	"unicode/utf8"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("quill/command")

// ShellEscapeName is the command a leading "!" expands to, with the rest of
// the line as its single argument.
const ShellEscapeName = "shellescape"

// ErrNilRegistry is returned when constructing a factory without a registry.
var ErrNilRegistry = oops.Errorf("command: registry cannot be nil")

// Factory turns raw command-lines into constructed commands. It never
// executes one.
type Factory struct {
	registry *Registry
	hooks    HookProvider
	aliases  *AliasTable
}

// FactoryOption configures a Factory during construction.
type FactoryOption func(*Factory)

// WithHookProvider configures the factory to resolve pre/post hooks from p.
// Without it, every hook slot resolves to nil.
func WithHookProvider(p HookProvider) FactoryOption {
	return func(f *Factory) {
		f.hooks = p
	}
}

// WithAliases configures the factory to unfold command-word aliases before
// registry lookup. Without it, alias expansion is disabled.
func WithAliases(t *AliasTable) FactoryOption {
	return func(f *Factory) {
		f.aliases = t
	}
}

// NewFactory creates a command factory over the given registry.
func NewFactory(registry *Registry, opts ...FactoryOption) (*Factory, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	f := &Factory{registry: registry}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Build parses cmdline and constructs the command it names, consulting the
// mode-local table first and the global table second. An empty line yields
// (nil, nil). Every failure surfaces as a parse error; no other error kind
// escapes the pipeline.
func (f *Factory) Build(ctx context.Context, cmdline string, mode Mode) (cmd Command, err error) {
	if cmdline == "" {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "command.build",
		trace.WithAttributes(
			attribute.String("command.mode", string(mode)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// A leading "!" is shorthand for shellescape with the remainder of the
	// line as its single opaque argument. The remainder never passes through
	// the tokenizer, so its own quoting reaches the shell untouched.
	var tokens []string
	if rest, ok := strings.CutPrefix(cmdline, "!"); ok {
		tokens = []string{ShellEscapeName, rest}
	} else {
		line, quoted := shieldQuoted(cmdline)
		parsed, terr := shellwords.Parse(line)
		if terr != nil {
			RecordBuild(mode, StatusParseError)
			return nil, ErrBadInput(terr)
		}
		tokens = unshield(parsed, quoted)
	}

	for _, tok := range tokens {
		if !utf8.ValidString(tok) {
			RecordBuild(mode, StatusParseError)
			return nil, ErrParse("command line is not valid UTF-8")
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	if tokens, err = f.unfoldAliases(mode, tokens); err != nil {
		return nil, err
	}

	name, args := tokens[0], tokens[1:]
	span.SetAttributes(attribute.String("command.name", name))

	spec, ok := f.registry.Lookup(name, mode)
	if !ok {
		RecordBuild(mode, StatusUnknownCommand)
		return nil, ErrUnknownCommand(name)
	}

	params, perr := spec.Schema.Parse(args)
	if perr != nil {
		RecordBuild(mode, StatusParseError)
		return nil, perr
	}

	// Forced values always win on key collision.
	maps.Copy(params, spec.Forced)

	cmd, err = spec.Build(params)
	if err != nil {
		RecordBuild(mode, StatusParseError)
		if !IsParseError(err) {
			err = ErrBadArguments(name, spec.Schema.Usage(), err)
		}
		return nil, err
	}

	f.bind(cmd, spec, name, mode)

	RecordBuild(mode, StatusSuccess)
	slog.DebugContext(ctx, "command built",
		"command", name,
		"mode", string(mode))
	return cmd, nil
}

// unfoldAliases rewrites the command word through the alias table until it
// no longer matches an entry, bounded by MaxExpansionDepth.
func (f *Factory) unfoldAliases(mode Mode, tokens []string) ([]string, error) {
	for depth := 0; f.aliases != nil; depth++ {
		alias := tokens[0]
		expansion, ok := f.aliases.Resolve(alias)
		if !ok {
			return tokens, nil
		}
		if depth >= MaxExpansionDepth {
			RecordBuild(mode, StatusParseError)
			return nil, ErrParse("alias loop detected at %q", alias)
		}
		expTokens, err := shellwords.Parse(expansion)
		if err != nil {
			RecordBuild(mode, StatusParseError)
			return nil, ErrBadInput(err)
		}
		if len(expTokens) == 0 {
			RecordBuild(mode, StatusParseError)
			return nil, ErrParse("alias %q has an empty expansion", alias)
		}
		RecordAliasExpansion(alias)
		tokens = append(expTokens, tokens[1:]...)
	}
	return tokens, nil
}

// bind resolves hooks through the implementation's reverse-registry entry
// and attaches invocation metadata to the fresh command.
func (f *Factory) bind(cmd Command, spec Spec, name string, mode Mode) {
	// Hook names derive from the reverse entry, not the invoked identity;
	// a builder registered under several (mode, name) pairs resolves hooks
	// for the most recent one.
	hookName, hookMode := name, mode
	if reg, ok := f.registry.ReverseLookup(spec.Build); ok {
		hookName, hookMode = reg.Name, reg.Mode
	}

	if b, ok := cmd.(Binder); ok {
		b.Bind(Meta{
			Name:         name,
			Mode:         mode,
			InvocationID: ulid.Make(),
			Help:         spec.Help,
			Hooks:        resolveHooks(f.hooks, hookName, hookMode),
		})
	}
}

// quotedField matches one balanced double-quoted substring.
var quotedField = regexp.MustCompile(`"([^"]*)"`)

// shieldQuoted replaces each balanced double-quoted substring with an opaque
// placeholder so the tokenizer's quoting rules cannot rewrite its content.
// A double-quoted run inside a single-quoted region is left alone; the
// tokenizer keeps it literal. The captured text is restored verbatim by
// unshield after tokenizing.
func shieldQuoted(line string) (string, []string) {
	var fields []string
	var b strings.Builder
	last := 0
	for _, loc := range quotedField.FindAllStringIndex(line, -1) {
		if strings.Count(line[:loc[0]], "'")%2 == 1 {
			continue
		}
		b.WriteString(line[last:loc[0]])
		fields = append(fields, line[loc[0]+1:loc[1]-1])
		fmt.Fprintf(&b, "\x00%d\x00", len(fields)-1)
		last = loc[1]
	}
	b.WriteString(line[last:])
	return b.String(), fields
}

func unshield(tokens, fields []string) []string {
	if len(fields) == 0 {
		return tokens
	}
	for i, tok := range tokens {
		for j, field := range fields {
			tok = strings.ReplaceAll(tok, fmt.Sprintf("\x00%d\x00", j), field)
		}
		tokens[i] = tok
	}
	return tokens
}
