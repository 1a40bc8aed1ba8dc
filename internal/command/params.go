// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

// Params is the parameter mapping produced by schema parsing, after forced
// values have been merged in. Every declared argument has a key; absent
// optional positionals map to nil.
type Params map[string]any

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the string value for key, or "" when absent or untyped.
func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns the boolean value for key, or false when absent or untyped.
func (p Params) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Int returns the integer value for key, or 0 when absent or untyped.
func (p Params) Int(key string) int {
	n, _ := p[key].(int)
	return n
}

// Strings returns the string-slice value for key, or nil when absent.
func (p Params) Strings(key string) []string {
	s, _ := p[key].([]string)
	return s
}
