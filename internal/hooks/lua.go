// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package hooks resolves command hooks from a user-supplied Lua file.
//
// A hook is a global Lua function whose name follows the
// pre_<mode>_<name> / post_<mode>_<name> convention, e.g.
//
//	function post_thread_save()
//	  -- runs after `save` in thread mode
//	end
//
// A missing hooks file is not an error; every lookup then resolves to nil.
package hooks

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/quillmail/quill/internal/command"
)

// Compile-time interface check.
var _ command.HookProvider = (*Provider)(nil)

// safeLibrary is a Lua library safe to load into the hooks state.
type safeLibrary struct {
	name string
	fn   lua.LGFunction
}

// Safe: base, table, string, math. Blocked: os, io, debug, package.
func safeLibraries() []safeLibrary {
	return []safeLibrary{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
}

// unsafeBaseFunctions are base-library functions blocked for filesystem
// access.
var unsafeBaseFunctions = []string{"dofile", "loadfile", "loadstring", "load"}

// Provider resolves hooks from one loaded Lua state. The state is not
// goroutine-safe; calls are serialized through the mutex.
type Provider struct {
	state *lua.LState
	mu    sync.Mutex
}

// Load reads and evaluates the hooks file at path. An empty path or a
// missing file yields a provider that resolves every hook to nil.
func Load(path string) (*Provider, error) {
	if path == "" {
		return &Provider{}, nil
	}
	source, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &Provider{}, nil
		}
		return nil, oops.In("hooks").With("path", path).Wrap(err)
	}
	p, err := LoadString(string(source))
	if err != nil {
		return nil, oops.In("hooks").With("path", path).Wrap(err)
	}
	return p, nil
}

// LoadString evaluates Lua source into a fresh sandboxed state.
func LoadString(source string) (*Provider, error) {
	state, err := newState()
	if err != nil {
		return nil, err
	}
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, oops.In("hooks").Hint("hooks file failed to evaluate").Wrap(err)
	}
	return &Provider{state: state}, nil
}

// newState creates a Lua state with only the safe libraries loaded.
func newState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	for _, lib := range safeLibraries() {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, oops.In("hooks").With("library", lib.name).Wrap(err)
		}
	}
	for _, fn := range unsafeBaseFunctions {
		L.SetGlobal(fn, lua.LNil)
	}
	return L, nil
}

// GetHook returns a callable for the named global Lua function, or nil when
// the hooks file does not define one.
func (p *Provider) GetHook(name string) command.Hook {
	if p.state == nil {
		return nil
	}
	p.mu.Lock()
	fn := p.state.GetGlobal(name)
	p.mu.Unlock()

	if fn.Type() != lua.LTFunction {
		return nil
	}
	return func(_ context.Context, _ command.Environment) error {
		p.mu.Lock()
		defer p.mu.Unlock()
		err := p.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		})
		if err != nil {
			return oops.In("hooks").With("hook", name).Wrap(err)
		}
		return nil
	}
}

// Close releases the Lua state. The provider resolves nothing afterwards.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != nil {
		p.state.Close()
		p.state = nil
	}
}
