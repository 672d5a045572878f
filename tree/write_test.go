// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/creachadair/jcodec/tree"
)

type builder func(*tree.MutDoc) tree.MutNode

func arr(vs ...builder) builder {
	return func(d *tree.MutDoc) tree.MutNode {
		a := d.Array()
		for _, v := range vs {
			a.Append(v(d))
		}
		return a
	}
}

type field struct {
	key string
	val builder
}

func obj(fs ...field) builder {
	return func(d *tree.MutDoc) tree.MutNode {
		o := d.Object()
		for _, f := range fs {
			o.Put(f.key, f.val(d))
		}
		return o
	}
}

func null(d *tree.MutDoc) tree.MutNode { return d.Null() }
func bval(ok bool) builder             { return func(d *tree.MutDoc) tree.MutNode { return d.Bool(ok) } }
func ival(z int64) builder             { return func(d *tree.MutDoc) tree.MutNode { return d.Int(z) } }
func uval(u uint64) builder            { return func(d *tree.MutDoc) tree.MutNode { return d.Uint(u) } }
func fval(f float64) builder           { return func(d *tree.MutDoc) tree.MutNode { return d.Float(f) } }
func sval(s string) builder            { return func(d *tree.MutDoc) tree.MutNode { return d.String(s) } }

func mustWrite(t *testing.T, b builder, flags tree.WriteFlags) string {
	t.Helper()
	d := tree.NewMutDoc()
	if !d.SetRoot(b(d)) {
		t.Fatal("SetRoot failed")
	}
	out, err := tree.Write(d, flags, nil)
	if err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	return string(out)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		input builder
		want  string
	}{
		{null, "null"},

		{bval(false), "false"},
		{bval(true), "true"},

		{sval(""), `""`},
		{sval("a \t b"), `"a \t b"`},
		{sval("a/b"), `"a/b"`},

		{fval(-0.00239), `-0.00239`},
		{fval(2), `2.0`},
		{fval(1e21), `1e+21`},

		{ival(0), `0`},
		{ival(15), `15`},
		{ival(-25), `-25`},
		{uval(math.MaxUint64), `18446744073709551615`},

		{arr(), `[]`},
		{arr(bval(false)), `[false]`},
		{arr(bval(true), ival(199)), `[true,199]`},
		{arr(sval("free"), sval("your"), sval("mind")), `["free","your","mind"]`},

		{obj(), `{}`},
		{obj(field{"xs", null}), `{"xs":null}`},
		{obj(
			field{"name", sval("Dennis")},
			field{"age", ival(37)},
			field{"isOld", bval(false)},
		), `{"name":"Dennis","age":37,"isOld":false}`},

		{obj(
			field{"values", arr(ival(5), ival(10), bval(true))},
			field{"page", obj(
				field{"token", sval("xyz-pdq-zvm")},
				field{"count", ival(100)},
			)},
		), `{"values":[5,10,true],"page":{"token":"xyz-pdq-zvm","count":100}}`},
	}
	for _, test := range tests {
		if got := mustWrite(t, test.input, 0); got != test.want {
			t.Errorf("Write:\nGot:  %s\nWant: %s", got, test.want)
		}
	}
}

func TestWriteFlags(t *testing.T) {
	nested := obj(
		field{"a", arr(ival(1), ival(2))},
		field{"b", obj()},
		field{"c", arr()},
	)
	tests := []struct {
		name  string
		input builder
		flags tree.WriteFlags
		want  string
	}{
		{"Pretty", nested, tree.WritePretty, `{
    "a": [
        1,
        2
    ],
    "b": {},
    "c": []
}`},
		{"PrettyTwo", nested, tree.WritePrettyTwoSpaces, `{
  "a": [
    1,
    2
  ],
  "b": {},
  "c": []
}`},
		{"PrettyBoth", arr(ival(1)), tree.WritePretty | tree.WritePrettyTwoSpaces, "[\n  1\n]"},
		{"PrettyScalar", sval("x"), tree.WritePretty, `"x"`},

		{"Unicode", sval("café"), 0, "\"café\""},
		{"EscapeUnicode", sval("café \U0001F600"), tree.WriteEscapeUnicode, `"caf\u00e9 \ud83d\ude00"`},
		{"EscapeSlashes", sval("a/b"), tree.WriteEscapeSlashes, `"a\/b"`},

		{"NaN", fval(math.NaN()), tree.WriteAllowInfAndNaN, `NaN`},
		{"Inf", arr(fval(math.Inf(1)), fval(math.Inf(-1))), tree.WriteAllowInfAndNaN, `[Infinity,-Infinity]`},
		{"NaNAsNull", arr(fval(math.NaN()), fval(math.Inf(1))), tree.WriteInfAndNaNAsNull, `[null,null]`},
		{"NaNAsNullWins", fval(math.Inf(-1)), tree.WriteInfAndNaNAsNull | tree.WriteAllowInfAndNaN, `null`},

		{"InvalidUnicode", sval("a\xffb"), tree.WriteAllowInvalidUnicode, "\"a\xffb\""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := mustWrite(t, test.input, test.flags); got != test.want {
				t.Errorf("Write:\nGot:  %s\nWant: %s", got, test.want)
			}
		})
	}
}

func TestWriteErrors(t *testing.T) {
	tests := []struct {
		name  string
		input builder
		code  string
	}{
		{"NaN", fval(math.NaN()), tree.CodeNaNOrInf},
		{"Inf", arr(ival(1), fval(math.Inf(1))), tree.CodeNaNOrInf},
		{"InvalidString", sval("a\xffb"), tree.CodeInvalidString},
		{"InvalidKey", obj(field{"\xff", null}), tree.CodeInvalidString},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := tree.NewMutDoc()
			d.SetRoot(test.input(d))
			_, err := tree.Write(d, 0, nil)
			var werr *tree.WriteError
			if !errors.As(err, &werr) || werr.Code != test.code {
				t.Errorf("Write: got %v, want code %q", err, test.code)
			}
		})
	}

	t.Run("NoRoot", func(t *testing.T) {
		d := tree.NewMutDoc()
		d.Array() // constructed but never attached
		_, err := tree.Write(d, 0, nil)
		var werr *tree.WriteError
		if !errors.As(err, &werr) || werr.Code != tree.CodeNoRoot {
			t.Errorf("Write: got %v, want code %q", err, tree.CodeNoRoot)
		}
	})
}

func TestWriteRegion(t *testing.T) {
	r, err := tree.NewRegion(64)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}

	small := arr(ival(1), sval("two"))
	d := tree.NewMutDoc()
	d.SetRoot(small(d))
	out, err := tree.Write(d, 0, r)
	if err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	if got := string(out); got != `[1,"two"]` {
		t.Errorf("Write: got %#q", got)
	}

	var items []builder
	for i := range 20 {
		items = append(items, sval(fmt.Sprintf("item-%d", i)))
	}
	d = tree.NewMutDoc()
	d.SetRoot(arr(items...)(d))
	if _, err := tree.Write(d, 0, r); !errors.Is(err, tree.ErrRegionFull) {
		t.Errorf("Write large: got %v, want %v", err, tree.ErrRegionFull)
	}

	// The earlier output is not affected by reuse of the region.
	if got := string(out); got != `[1,"two"]` {
		t.Errorf("Write: output changed to %#q", got)
	}

	doc, err := tree.Parse([]byte(`[]`), 0, r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer doc.Release()
	d = tree.NewMutDoc()
	d.SetRoot(small(d))
	if _, err := tree.Write(d, 0, r); !errors.Is(err, tree.ErrRegionBusy) {
		t.Errorf("Write to busy region: got %v, want %v", err, tree.ErrRegionBusy)
	}
}

func TestMutDoc(t *testing.T) {
	t.Run("Root", func(t *testing.T) {
		d := tree.NewMutDoc()
		if _, ok := d.Root(); ok {
			t.Error("Root: new document has a root")
		}
		a, b := d.Null(), d.Null()
		if !d.SetRoot(a) {
			t.Fatal("SetRoot: failed on empty document")
		}
		if d.SetRoot(b) {
			t.Error("SetRoot: replaced an existing root")
		}
		if root, ok := d.Root(); !ok || root != a {
			t.Errorf("Root: got %v, %v; want the first root", root, ok)
		}
	})

	t.Run("AttachOnce", func(t *testing.T) {
		d := tree.NewMutDoc()
		arr, obj := d.Array(), d.Object()
		v := d.String("x")
		if !arr.Append(v) {
			t.Fatal("Append: failed for unattached value")
		}
		if arr.Append(v) {
			t.Error("Append: attached a value twice")
		}
		if obj.Put("k", v) {
			t.Error("Put: attached a value already in an array")
		}
		if d.SetRoot(v) {
			t.Error("SetRoot: attached a value already in an array")
		}
		if arr.Append(arr) {
			t.Error("Append: attached an array to itself")
		}
		if !v.Attached() {
			t.Error("Attached: got false after Append")
		}
	})

	t.Run("WrongKind", func(t *testing.T) {
		d := tree.NewMutDoc()
		s := d.String("x")
		if s.Append(d.Null()) {
			t.Error("Append: succeeded on a string")
		}
		if s.Put("k", d.Null()) {
			t.Error("Put: succeeded on a string")
		}
		if d.Array().Put("k", d.Null()) {
			t.Error("Put: succeeded on an array")
		}
		if d.Object().Append(d.Null()) {
			t.Error("Append: succeeded on an object")
		}
	})

	t.Run("ForeignNode", func(t *testing.T) {
		d1, d2 := tree.NewMutDoc(), tree.NewMutDoc()
		v := d2.Null()
		if d1.Array().Append(v) {
			t.Error("Append: attached a node from another document")
		}
		if d1.SetRoot(v) {
			t.Error("SetRoot: attached a node from another document")
		}
	})

	for _, n := range []int{3, 20} {
		t.Run(fmt.Sprintf("DuplicateKeys-%d", n), func(t *testing.T) {
			d := tree.NewMutDoc()
			o := d.Object()
			for i := range n {
				if !o.Put(fmt.Sprintf("k%d", i), d.Int(int64(i))) {
					t.Fatalf("Put k%d failed", i)
				}
			}
			for i := range n {
				key := fmt.Sprintf("k%d", i)
				if o.Put(key, d.Null()) {
					t.Errorf("Put %q: accepted a duplicate key", key)
				}
				if !o.Has(key) {
					t.Errorf("Has %q: got false", key)
				}
			}
			if o.Has("nonesuch") {
				t.Error(`Has("nonesuch"): got true`)
			}
			if got := o.Len(); got != n {
				t.Errorf("Len: got %d, want %d", got, n)
			}
		})
	}
}

func TestCopyNode(t *testing.T) {
	doc := mustParse(t, `{"a": 1, "b": [true, null, "s", 2.5], "a": 2}`, 0)
	if got, want := toJSON(t, doc.Root()), `{"a":1,"b":[true,null,"s",2.5]}`; got != want {
		t.Errorf("CopyNode: got %#q, want %#q", got, want)
	}
}
