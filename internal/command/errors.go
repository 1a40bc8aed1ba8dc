// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"github.com/samber/oops"
)

// Error codes crossing the registry/factory boundary.
const (
	// CodeParse marks every failure converting a command-line into a
	// Command: bad quoting, unknown command, schema violation, or a
	// parser-triggered early exit. Recovered at the UI boundary.
	CodeParse = "PARSE_ERROR"
	// CodeCanceled marks a user abort inside an interactive command's own
	// execution. Never produced by the factory.
	CodeCanceled = "CANCELED"
	// CodeInvalidName marks a rejected command or alias name at
	// registration time.
	CodeInvalidName = "INVALID_NAME"
)

// ErrUnknownCommand creates a parse error for an unresolvable command name.
func ErrUnknownCommand(name string) error {
	return oops.Code(CodeParse).
		With("command", name).
		Errorf("unknown command: %s", name)
}

// ErrBadInput wraps a tokenizer failure (unterminated quote, stray escape)
// into the parse-error kind.
func ErrBadInput(cause error) error {
	return oops.Code(CodeParse).
		Hint("check quoting and escaping").
		Wrap(cause)
}

// ErrBadArguments wraps a schema violation into the parse-error kind,
// attaching the command's usage line for the UI to display.
func ErrBadArguments(name, usage string, cause error) error {
	return oops.Code(CodeParse).
		With("command", name).
		With("usage", usage).
		Wrap(cause)
}

// ErrParse creates a parse error with a formatted message.
func ErrParse(format string, args ...any) error {
	return oops.Code(CodeParse).Errorf(format, args...)
}

// Canceled creates the error an interactive command returns when the user
// aborts it mid-flight.
func Canceled() error {
	return oops.Code(CodeCanceled).Errorf("command canceled")
}

// IsParseError reports whether err carries the parse-error code.
func IsParseError(err error) bool {
	return hasCode(err, CodeParse)
}

// IsCanceled reports whether err carries the cancellation code.
func IsCanceled(err error) bool {
	return hasCode(err, CodeCanceled)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	c, _ := oopsErr.Code().(string)
	return c == code
}

// UserMessage extracts a message suitable for the status bar from err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return err.Error()
	}
	switch oopsErr.Code() {
	case CodeParse:
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return oopsErr.Error() + " (usage: " + usage + ")"
		}
		return oopsErr.Error()
	case CodeCanceled:
		return "canceled"
	default:
		return oopsErr.Error()
	}
}
