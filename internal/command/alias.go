// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/oops"
)

// MaxExpansionDepth bounds chained alias expansion in the factory.
const MaxExpansionDepth = 10

// AliasTable maps alias names to replacement command-line prefixes, loaded
// from configuration at startup. Expanding "s" with entry
// {"s": "search --sort newest_first"} rewrites `s tag:todo` into
// `search --sort newest_first tag:todo`.
type AliasTable struct {
	aliases map[string]string
	mu      sync.RWMutex
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: make(map[string]string)}
}

// Load bulk-loads aliases at startup. Invalid names and empty expansions are
// skipped with a warning rather than failing startup.
func (t *AliasTable) Load(aliases map[string]string) {
	for alias, expansion := range aliases {
		if err := t.Set(alias, expansion); err != nil {
			slog.Warn("skipping invalid alias",
				"alias", alias,
				"error", err)
		}
	}
}

// Set adds or replaces a single alias. The expansion must be non-empty and
// must not form a reference cycle through the table.
func (t *AliasTable) Set(alias, expansion string) error {
	if err := ValidateAliasName(alias); err != nil {
		return err
	}
	if strings.TrimSpace(expansion) == "" {
		return oops.Code(CodeInvalidName).
			With("alias", alias).
			Errorf("alias expansion cannot be empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	old, existed := t.aliases[alias]
	t.aliases[alias] = expansion
	if t.cyclicLocked(alias) {
		if existed {
			t.aliases[alias] = old
		} else {
			delete(t.aliases, alias)
		}
		return oops.Code(CodeInvalidName).
			With("alias", alias).
			Errorf("alias rejected: circular reference detected")
	}
	return nil
}

// Resolve returns the expansion for name, if any.
func (t *AliasTable) Resolve(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	expansion, ok := t.aliases[name]
	return expansion, ok
}

// cyclicLocked follows the chain of first words starting at alias and
// reports whether it exceeds the expansion depth bound.
func (t *AliasTable) cyclicLocked(alias string) bool {
	current := alias
	for i := 0; i < MaxExpansionDepth; i++ {
		expansion, ok := t.aliases[current]
		if !ok {
			return false
		}
		word, _, _ := strings.Cut(strings.TrimSpace(expansion), " ")
		current = word
	}
	return true
}
