// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package logging

import (
	"log/slog"

	"github.com/samber/oops"
)

// Error logs an error with structured context if it's an oops error.
// For oops errors it extracts and logs the message, code, and context map;
// for standard errors it logs the error string.
func Error(logger *slog.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, "error", err)
		return
	}

	attrs := []any{
		"error", oopsErr.Error(),
	}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	logger.Error(msg, attrs...)
}
