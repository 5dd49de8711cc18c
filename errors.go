// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"errors"
	"fmt"
)

// PackError represents an error that occurred during a Pack invocation.
// It carries the failing operation and whether the condition was fatal
// to the invocation (propagates) or recoverable (handled internally).
type PackError struct {
	Op    string // operation that failed (e.g. "repair wall", "validate catalog")
	Fatal bool
	Err   error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("wallbuild: %s: %v", e.Op, e.Err)
}

func (e *PackError) Unwrap() error {
	return e.Err
}

// Sentinel errors, per the taxonomy in spec §7.
var (
	// ErrInvalidWall indicates the wall polygon could not be repaired into
	// a valid simple polygon via buffer-zero. Fatal.
	ErrInvalidWall = errors.New("wall polygon is invalid and could not be repaired")

	// ErrInvalidCatalog indicates the catalog violates its constraints:
	// widths not strictly decreasing and positive, or height not positive.
	// Fatal.
	ErrInvalidCatalog = errors.New("catalog configuration is invalid")

	// ErrMoralettiConfigRequired indicates algorithm=small was selected
	// without a MoralettiConfig, which §6 requires.
	ErrMoralettiConfigRequired = errors.New("moraletti configuration is required for the small algorithm")
)

// wrapFatal wraps err as a fatal PackError for the given operation.
func wrapFatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PackError{Op: op, Fatal: true, Err: err}
}

// wrapRecoverable wraps err as a non-fatal PackError, used only for
// conditions surfaced through Metrics/logging, never returned to the caller.
func wrapRecoverable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PackError{Op: op, Fatal: false, Err: err}
}
