// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Quill is a terminal mail client.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
