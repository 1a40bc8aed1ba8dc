// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/samber/oops"
)

// Registry holds the per-mode command tables plus the reverse table mapping
// an implementation back to its (name, mode) identity. Registration happens
// once, sequentially, at startup; the registry is effectively read-only
// afterwards. The RWMutex keeps multi-threaded hosts safe without further
// ceremony.
type Registry struct {
	modes   map[Mode]map[string]Spec
	reverse map[uintptr]Registration
	mu      sync.RWMutex
}

// NewRegistry creates a registry with one empty table per known mode.
func NewRegistry() *Registry {
	modes := make(map[Mode]map[string]Spec, len(Modes()))
	for _, m := range Modes() {
		modes[m] = make(map[string]Spec)
	}
	return &Registry{
		modes:   modes,
		reverse: make(map[uintptr]Registration),
	}
}

// Register stores spec under (mode, name) and records the reverse entry for
// its builder. Within one mode, last write wins; an overwrite is logged but
// not an error. Re-registering the same builder under a different
// (mode, name) silently replaces its reverse entry, matching the historical
// last-wins policy.
func (r *Registry) Register(mode Mode, name string, spec Spec) error {
	if !mode.Valid() {
		return oops.Code(CodeInvalidName).
			With("mode", string(mode)).
			Errorf("unknown mode: %s", mode)
	}
	if err := ValidateCommandName(name); err != nil {
		return err
	}
	if spec.Build == nil {
		return schemaErr(name, "registration has no builder")
	}
	if spec.Schema == nil {
		// Commands without declared arguments still get a schema so the
		// factory can reject stray input.
		empty, err := NewSchema(name, spec.Usage, nil)
		if err != nil {
			return err
		}
		spec.Schema = empty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modes[mode][name]; ok {
		slog.Warn("command conflict: overwriting existing command",
			"command", name,
			"mode", string(mode))
	}

	r.modes[mode][name] = spec
	r.reverse[builderKey(spec.Build)] = Registration{Name: name, Mode: mode}
	return nil
}

// Lookup returns the spec for name in mode, consulting the mode-local table
// first and falling back to the global table. The boolean is false when
// neither table has an entry; Lookup never panics.
func (r *Registry) Lookup(name string, mode Mode) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if table, ok := r.modes[mode]; ok {
		if spec, ok := table[name]; ok {
			return spec, true
		}
	}
	spec, ok := r.modes[ModeGlobal][name]
	return spec, ok
}

// LookupSchema returns just the argument schema for (name, mode), for help
// views and completion.
func (r *Registry) LookupSchema(name string, mode Mode) (*Schema, bool) {
	spec, ok := r.Lookup(name, mode)
	if !ok {
		return nil, false
	}
	return spec.Schema, true
}

// ReverseLookup returns the (name, mode) the builder was most recently
// registered under.
func (r *Registry) ReverseLookup(b Builder) (Registration, bool) {
	if b == nil {
		return Registration{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.reverse[builderKey(b)]
	return reg, ok
}

// Names returns the sorted command names registered directly in mode.
func (r *Registry) Names(mode Mode) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.modes[mode]
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builderKey identifies an implementation by its code pointer. Func values
// are not comparable in Go; two registrations of the same builder share a
// pointer, which is exactly the identity the reverse table needs.
func builderKey(b Builder) uintptr {
	return reflect.ValueOf(b).Pointer()
}
