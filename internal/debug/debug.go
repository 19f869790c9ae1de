// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package debug holds assertion helpers for internal invariants.
//
// A failing assertion indicates a bug in the engine itself, never bad caller
// input; it panics rather than returning an error.
package debug

import "fmt"

// Assert panics if cond is false.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("internal invariant violated: "+format, args...))
	}
}
