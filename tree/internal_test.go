// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"testing"
	"unsafe"
)

func TestNodeSize(t *testing.T) {
	if got := unsafe.Sizeof(node{}); got != nodeBytes {
		t.Errorf("Size of node: got %d, want %d", got, nodeBytes)
	}
}

func TestParseLinks(t *testing.T) {
	doc, err := Parse([]byte(`[1, [2, 3], {"a": [], "b": 4}, 5]`), 0, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer doc.Release()

	type want struct {
		kind  Kind
		count int32
		size  int32
		last  bool
	}
	wants := []want{
		{Arr, 4, 9, true},  // [...]
		{Num, 0, 1, false}, // 1
		{Arr, 2, 3, false}, // [2, 3]
		{Num, 0, 1, false}, // 2
		{Num, 0, 1, true},  // 3
		{Obj, 2, 3, false}, // {...}
		{Arr, 0, 1, false}, // []
		{Num, 0, 1, true},  // 4
		{Num, 0, 1, true},  // 5
	}
	if len(doc.nodes) != len(wants) {
		t.Fatalf("Got %d nodes, want %d", len(doc.nodes), len(wants))
	}
	for i, w := range wants {
		n := doc.nodes[i]
		got := want{n.kind, n.count, n.size, n.last}
		if got != w {
			t.Errorf("Node %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestParseInputLimit(t *testing.T) {
	defer func(old int) { maxInputSize = old }(maxInputSize)
	maxInputSize = 8

	if doc, err := Parse([]byte(`[1, 2]`), 0, nil); err != nil {
		t.Errorf("Parse within limit: unexpected error: %v", err)
	} else {
		doc.Release()
	}

	doc, err := Parse([]byte(`[1, 2, 3]`), 0, nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse over limit: got (%v, %v), want *ParseError", doc, err)
	}
	if pe.Code != CodeMemoryAllocation {
		t.Errorf("Parse over limit: code %q, want %q", pe.Code, CodeMemoryAllocation)
	}
	if pe.Offset != 0 || pe.Line != 1 {
		t.Errorf("Parse over limit: position %d:%d, want offset 0 line 1", pe.Offset, pe.Line)
	}
}
