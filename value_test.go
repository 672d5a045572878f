// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec_test

import (
	"testing"

	"github.com/creachadair/jcodec"
	"github.com/creachadair/jcodec/tree"
	"github.com/google/go-cmp/cmp"
)

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`null`, `null`},
		{`false`, `false`},
		{` -17 `, `-17`},
		{`1e3`, `1000.0`},
		{`"a\u00e9\n"`, `"a` + "\u00e9" + `\n"`},
		{`[]`, `[]`},
		{`{}`, `{}`},
		{`{"z": 1, "a": [true, {"q": null}], "z": 2}`, `{"z":1,"a":[true,{"q":null}]}`},
		{`[[[]], [{}], 18446744073709551615, -9223372036854775808]`,
			`[[[]],[{}],18446744073709551615,-9223372036854775808]`},
	}
	for _, test := range tests {
		var v jcodec.Value
		if err := jcodec.Decode([]byte(test.input), &v, nil); err != nil {
			t.Errorf("Decode %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got := mustEncode(t, &v, nil); got != test.want {
			t.Errorf("Encode %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestValueShape(t *testing.T) {
	var v jcodec.Value
	if err := jcodec.Decode([]byte(`{"s": "x", "n": [1, 2.5], "b": true}`), &v, nil); err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if v.Kind != tree.Obj || len(v.Members) != 3 {
		t.Fatalf("Root: got %v with %d members, want obj with 3", v.Kind, len(v.Members))
	}
	if s := v.Find("s"); s == nil || s.Kind != tree.Str || s.Str != "x" {
		t.Errorf(`Find("s"): got %+v, want string "x"`, s)
	}
	if b := v.Find("b"); b == nil || !b.Bool {
		t.Errorf(`Find("b"): got %+v, want true`, b)
	}
	if v.Find("missing") != nil {
		t.Error(`Find("missing"): got non-nil, want nil`)
	}
	n := v.Find("n")
	if n == nil || n.Kind != tree.Arr {
		t.Fatalf(`Find("n"): got %+v, want array`, n)
	}
	var got []string
	for _, e := range n.Elems {
		got = append(got, e.Num.String())
	}
	if diff := cmp.Diff([]string{"1", "2.5"}, got); diff != "" {
		t.Errorf("Elements (-want, +got):\n%s", diff)
	}
}

func TestValueFlags(t *testing.T) {
	const input = `{
  // comment
  "path": "a/b",
  "text": "` + "\u00fc" + `",
  "nums": [Infinity, -Infinity, NaN,],
}`
	var v jcodec.Value
	err := jcodec.Decode([]byte(input), &v, nil)
	if err == nil {
		t.Fatal("Decode without flags: got nil error, want error")
	}

	ropts := &jcodec.Options{
		ReadFlags: tree.ReadAllowComments | tree.ReadAllowTrailingCommas | tree.ReadAllowInfAndNaN,
	}
	if err := jcodec.Decode([]byte(input), &v, ropts); err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}

	tests := []struct {
		flags tree.WriteFlags
		want  string
	}{
		{tree.WriteAllowInfAndNaN,
			`{"path":"a/b","text":"` + "\u00fc" + `","nums":[Infinity,-Infinity,NaN]}`},
		{tree.WriteInfAndNaNAsNull | tree.WriteEscapeSlashes | tree.WriteEscapeUnicode,
			`{"path":"a\/b","text":"\u00fc","nums":[null,null,null]}`},
		{tree.WritePretty | tree.WriteInfAndNaNAsNull,
			"{\n    \"path\": \"a/b\",\n    \"text\": \"\u00fc\",\n    \"nums\": [\n        null,\n        null,\n        null\n    ]\n}"},
	}
	for _, test := range tests {
		got := mustEncode(t, &v, &jcodec.Options{WriteFlags: test.flags})
		if got != test.want {
			t.Errorf("Encode %v:\n got %#q\nwant %#q", test.flags, got, test.want)
		}
	}
}

func TestValueNone(t *testing.T) {
	_, err := jcodec.Encode(new(jcodec.Value), nil)
	checkError(t, err, "", jcodec.ErrAssignment)
}
