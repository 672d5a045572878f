// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

// ReadFlags control the behaviour of [Parse]. The zero value accepts only
// standard JSON containing exactly one value.
type ReadFlags uint32

const (
	// ReadInSitu decodes strings in place, overwriting the input buffer.
	// The resulting document refers to the input, which must not be modified
	// or reused while the document is alive.
	ReadInSitu ReadFlags = 1 << iota

	// ReadStopWhenDone stops parsing after the first complete value and
	// ignores any remaining input.
	ReadStopWhenDone

	// ReadAllowTrailingCommas accepts a single trailing comma at the end of
	// an object or array.
	ReadAllowTrailingCommas

	// ReadAllowComments accepts C-style line and block comments.
	ReadAllowComments

	// ReadAllowInfAndNaN accepts the literals NaN, Infinity, and -Infinity,
	// and numbers too large to represent as a float64.
	ReadAllowInfAndNaN

	// ReadAllowInvalidUnicode accepts strings that are not valid UTF-8.
	ReadAllowInvalidUnicode
)

// WriteFlags control the behaviour of [Write]. The zero value writes compact
// standard JSON.
type WriteFlags uint32

const (
	// WritePretty indents nested values by four spaces.
	WritePretty WriteFlags = 1 << iota

	// WritePrettyTwoSpaces indents nested values by two spaces.
	// It takes precedence over WritePretty.
	WritePrettyTwoSpaces

	// WriteEscapeUnicode escapes all non-ASCII characters as \uXXXX.
	WriteEscapeUnicode

	// WriteEscapeSlashes escapes forward slashes as \/.
	WriteEscapeSlashes

	// WriteAllowInfAndNaN writes non-finite numbers as NaN, Infinity, and
	// -Infinity rather than reporting an error.
	WriteAllowInfAndNaN

	// WriteInfAndNaNAsNull writes non-finite numbers as null.
	// It takes precedence over WriteAllowInfAndNaN.
	WriteInfAndNaNAsNull

	// WriteAllowInvalidUnicode copies strings that are not valid UTF-8
	// verbatim rather than reporting an error.
	WriteAllowInvalidUnicode
)
