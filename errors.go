// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jcodec/tree"
)

var (
	// ErrNotFound is reported when a keyed lookup finds no member with the
	// requested key.
	ErrNotFound = errors.New("key not found")

	// ErrContentOverflow is reported when an array is read past its last
	// element.
	ErrContentOverflow = errors.New("no more elements in array")

	// ErrDocumentRoot is reported when the input contains no root value.
	ErrDocumentRoot = errors.New("document has no root value")

	// ErrAssignment is reported when a value cannot be constructed or
	// attached to its parent while encoding.
	ErrAssignment = errors.New("value cannot be assigned")

	// ErrMemoryAllocation is reported when the storage for an encoded
	// document cannot be allocated.
	ErrMemoryAllocation = errors.New("memory allocation failed")
)

// ParseError is the concrete type of error reported when the input to a
// decode is not valid JSON under the active read flags.
type ParseError = tree.ParseError

// TypeMismatchError is reported when a value of one kind was requested from
// a node of another kind.
type TypeMismatchError struct {
	Expected tree.Kind // the kind requested
	Found    tree.Kind // the kind of the node
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %v, found %v", e.Expected, e.Found)
}

// Error is the concrete type of errors reported by this package. Use
// [errors.Is] and [errors.As] to recover the underlying kind of failure,
// which is one of the Err* values, a [*TypeMismatchError], or a
// [*ParseError].
//
// Errors reported by the UnmarshalTree or MarshalTree method of a caller's
// type are returned unchanged, and are not wrapped in an Error.
type Error struct {
	// Path is a JSON Pointer (RFC 6901) to the location in the document
	// where the failure occurred. It is empty for the root.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "jcodec: " + e.Err.Error()
	}
	return fmt.Sprintf("jcodec: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// A crumb records one step of the path from the document root to the value
// being decoded or encoded. The root is represented by a nil *crumb.
type crumb struct {
	up    *crumb
	key   string
	index int // or -1 for an object key
}

func (c *crumb) member(key string) *crumb { return &crumb{up: c, key: key, index: -1} }

func (c *crumb) elem(i int) *crumb { return &crumb{up: c, index: i} }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer renders the path to c as a JSON Pointer.
func (c *crumb) pointer() string {
	var parts []string
	for p := c; p != nil; p = p.up {
		if p.index < 0 {
			parts = append(parts, pointerEscaper.Replace(p.key))
		} else {
			parts = append(parts, strconv.Itoa(p.index))
		}
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// fail constructs an *Error for err at c, and logs it to log.
func fail(log Logger, c *crumb, err error) error {
	e := &Error{Path: c.pointer(), Err: err}
	log.Debug("jcodec failure", Fields{"path": e.Path, "error": err.Error()})
	return e
}

func mismatch(want, got tree.Kind) error { return &TypeMismatchError{Expected: want, Found: got} }
