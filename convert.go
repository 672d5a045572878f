// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"github.com/creachadair/jcodec/tree"

	"golang.org/x/exp/constraints"
)

// A converter extracts a value of type T from a node, or reports a
// *TypeMismatchError if the node has the wrong kind.
type converter[T any] func(tree.Node) (T, error)

func toNil(n tree.Node) (bool, error) { return n.Kind() == tree.Null, nil }

func toBool(n tree.Node) (bool, error) {
	if k := n.Kind(); k != tree.Bool {
		return false, mismatch(tree.Bool, k)
	}
	return n.Bool(), nil
}

func toString(n tree.Node) (string, error) {
	if k := n.Kind(); k != tree.Str {
		return "", mismatch(tree.Str, k)
	}
	return n.String(), nil
}

func toNumber(n tree.Node) (tree.Number, error) {
	if k := n.Kind(); k != tree.Num {
		return tree.Number{}, mismatch(tree.Num, k)
	}
	return n.Number(), nil
}

// Integer conversions are not range checked: a value that does not fit in
// the requested type is truncated as by a Go conversion.

func toSigned[T constraints.Signed](n tree.Node) (T, error) {
	v, err := toNumber(n)
	return T(v.Int64()), err
}

func toUnsigned[T constraints.Unsigned](n tree.Node) (T, error) {
	v, err := toNumber(n)
	return T(v.Uint64()), err
}

func toFloat[T constraints.Float](n tree.Node) (T, error) {
	v, err := toNumber(n)
	return T(v.Float64()), err
}
