// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// MaxNameLength bounds command and alias names.
const MaxNameLength = 20

// namePattern accepts a leading letter followed by letters, digits, or the
// punctuation that vi-style command names carry (w!, go-to, b#).
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_!?@#$%^+\-]{0,19}$`)

// ValidateCommandName rejects unusable command names at registration time.
func ValidateCommandName(name string) error {
	return validateName(name, "command")
}

// ValidateAliasName rejects unusable alias names.
func ValidateAliasName(name string) error {
	return validateName(name, "alias")
}

func validateName(name, kind string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			Errorf("%s name is empty", kind)
	case len(name) > MaxNameLength:
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			With("length", len(name)).
			Errorf("%s name longer than %d characters", kind, MaxNameLength)
	case !namePattern.MatchString(name):
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			With("name", name).
			Errorf("%s name must begin with a letter; letters, digits, and _!?@#$%%^+- may follow", kind)
	}
	return nil
}
