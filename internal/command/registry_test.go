// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopCmd is a minimal command for registry tests.
type noopCmd struct {
	Base
}

func (c *noopCmd) Apply(_ context.Context, _ Environment) error { return nil }

func buildNoop(_ Params) (Command, error) { return &noopCmd{}, nil }

// A second builder with a distinct identity.
func buildNoopAlt(_ Params) (Command, error) { return &noopCmd{}, nil }

func mustSchema(t *testing.T, name string, args []Arg) *Schema {
	t.Helper()
	s, err := NewSchema(name, "", args)
	require.NoError(t, err)
	return s
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(ModeThread, "save", Spec{
		Build:  buildNoop,
		Schema: mustSchema(t, "save", nil),
		Help:   "save attachment(s)",
		Usage:  "save [--all] [path]",
	})
	require.NoError(t, err)

	got, ok := reg.Lookup("save", ModeThread)
	assert.True(t, ok)
	assert.Equal(t, "save attachment(s)", got.Help)
	assert.Equal(t, "save [--all] [path]", got.Usage)
	assert.NotNil(t, got.Build)
	assert.NotNil(t, got.Schema)
}

func TestRegistry_LookupNotFound(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Lookup("nonexistent", ModeThread)
	assert.False(t, ok)
}

func TestRegistry_GlobalFallback(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeGlobal, "search", Spec{Build: buildNoop, Help: "global"}))

	// Thread mode has no local entry; the global one applies.
	got, ok := reg.Lookup("search", ModeThread)
	require.True(t, ok)
	assert.Equal(t, "global", got.Help)
}

func TestRegistry_LocalShadowsGlobal(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeGlobal, "search", Spec{Build: buildNoop, Help: "global"}))
	require.NoError(t, reg.Register(ModeSearch, "search", Spec{Build: buildNoopAlt, Help: "local"}))

	got, ok := reg.Lookup("search", ModeSearch)
	require.True(t, ok)
	assert.Equal(t, "local", got.Help)

	// Other modes still see the global entry.
	got, ok = reg.Lookup("search", ModeThread)
	require.True(t, ok)
	assert.Equal(t, "global", got.Help)
}

func TestRegistry_LastWriteWins(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeGlobal, "exit", Spec{Build: buildNoop, Help: "first"}))
	require.NoError(t, reg.Register(ModeGlobal, "exit", Spec{Build: buildNoopAlt, Help: "second"}))

	got, ok := reg.Lookup("exit", ModeGlobal)
	require.True(t, ok)
	assert.Equal(t, "second", got.Help)
}

func TestRegistry_OverwriteLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, nil)
	oldLogger := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(oldLogger)

	reg := NewRegistry()
	_ = reg.Register(ModeGlobal, "exit", Spec{Build: buildNoop})
	_ = reg.Register(ModeGlobal, "exit", Spec{Build: buildNoopAlt})

	assert.Contains(t, buf.String(), "command conflict: overwriting existing command")
	assert.Contains(t, buf.String(), "exit")
}

func TestRegistry_ReverseLookup(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeThread, "save", Spec{Build: buildNoop}))

	got, ok := reg.ReverseLookup(buildNoop)
	require.True(t, ok)
	assert.Equal(t, "save", got.Name)
	assert.Equal(t, ModeThread, got.Mode)

	_, ok = reg.ReverseLookup(buildNoopAlt)
	assert.False(t, ok)
}

func TestRegistry_ReverseLookupLastWins(t *testing.T) {
	reg := NewRegistry()

	// Registering one builder under two identities keeps only the most
	// recent reverse entry; the historical last-wins policy.
	require.NoError(t, reg.Register(ModeThread, "tag", Spec{Build: buildNoop}))
	require.NoError(t, reg.Register(ModeThread, "untag", Spec{Build: buildNoop}))

	got, ok := reg.ReverseLookup(buildNoop)
	require.True(t, ok)
	assert.Equal(t, "untag", got.Name)
	assert.Equal(t, ModeThread, got.Mode)

	// Both forward entries remain.
	_, ok = reg.Lookup("tag", ModeThread)
	assert.True(t, ok)
	_, ok = reg.Lookup("untag", ModeThread)
	assert.True(t, ok)
}

func TestRegistry_RegisterValidation(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register(Mode("bogus"), "x", Spec{Build: buildNoop}))
	assert.Error(t, reg.Register(ModeGlobal, "", Spec{Build: buildNoop}))
	assert.Error(t, reg.Register(ModeGlobal, "1bad", Spec{Build: buildNoop}))
	assert.Error(t, reg.Register(ModeGlobal, "ok", Spec{}))
}

func TestRegistry_RegisterFillsEmptySchema(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeGlobal, "exit", Spec{Build: buildNoop}))

	schema, ok := reg.LookupSchema("exit", ModeGlobal)
	require.True(t, ok)
	require.NotNil(t, schema)

	// The implicit schema rejects stray input.
	_, err := schema.Parse([]string{"stray"})
	assert.True(t, IsParseError(err))
}

func TestRegistry_LookupSchema(t *testing.T) {
	reg := NewRegistry()

	args := []Arg{{Name: "all", Type: TypeBool}}
	require.NoError(t, reg.Register(ModeThread, "save", Spec{
		Build:  buildNoop,
		Schema: mustSchema(t, "save", args),
	}))

	schema, ok := reg.LookupSchema("save", ModeThread)
	require.True(t, ok)
	require.Len(t, schema.Args(), 1)
	assert.Equal(t, "all", schema.Args()[0].Name)

	_, ok = reg.LookupSchema("missing", ModeThread)
	assert.False(t, ok)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(ModeGlobal, "search", Spec{Build: buildNoop}))
	require.NoError(t, reg.Register(ModeGlobal, "exit", Spec{Build: buildNoopAlt}))

	assert.Equal(t, []string{"exit", "search"}, reg.Names(ModeGlobal))
	assert.Empty(t, reg.Names(ModeThread))
}
