// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is reported by Parse when the input contains no value.
	ErrEmptyInput = errors.New("no value in input")

	// ErrRegionBusy is reported when a region is already in use by a live
	// document.
	ErrRegionBusy = errors.New("region is in use")

	// ErrRegionFull is reported by Write when the output does not fit in
	// the region provided.
	ErrRegionFull = errors.New("region is full")
)

// Error codes reported in a [ParseError] or [WriteError].
const (
	CodeUnexpectedEnd     = "unexpected-end"
	CodeUnexpectedContent = "unexpected-content"
	CodeInvalidSyntax     = "invalid-syntax"
	CodeInvalidNumber     = "invalid-number"
	CodeInvalidString     = "invalid-string"
	CodeMemoryAllocation  = "memory-allocation"
	CodeNoRoot            = "no-root"
	CodeNaNOrInf          = "nan-or-inf"
)

// ParseError is the concrete type of errors reported by [Parse] when the
// input is not valid under the active flags.
type ParseError struct {
	Message string // description of the problem
	Offset  int    // byte offset in the input where the problem was found
	Code    string // one of the Code constants
	Line    int    // line number, 1-based
	Column  int    // byte offset in the line, 0-based
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at %d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Message)
}

// WriteError is the concrete type of errors reported by [Write] when a
// document cannot be serialized under the active flags.
type WriteError struct {
	Code    string // one of the Code constants
	Message string
}

func (e *WriteError) Error() string { return e.Message }
