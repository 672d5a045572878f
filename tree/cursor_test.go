// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jcodec/tree"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v := mustParse(t, testJSON, 0).Root()
	find := func(path ...any) tree.Node {
		t.Helper()
		n, err := tree.Path(v, path...)
		if err != nil {
			t.Fatalf("Path %v: %v", path, err)
		}
		return n
	}

	tests := []struct {
		name string
		path []any
		want string
		fail bool
	}{
		{"NilInput", nil, "", false},
		{"NoMatch", []any{"nonesuch"}, "", true},
		{"WrongType", []any{"o", "x"}, `["hi","yourself"]`, true},

		{"ArrayPos", []any{"list", 1}, `{"x":2}`, false},
		{"ArrayNeg", []any{"list", -1}, `{"x":2}`, false},
		{"ArrayRange", []any{"o", 25}, `["hi","yourself"]`, true},
		{"ObjPath", []any{"xyz", "d"}, `true`, false},
		{"ObjIndex", []any{"y", 0}, `"there"`, false},

		{"FuncArray", []any{"o", testPathFunc}, `"yourself"`, false},
		{"FuncObj", []any{"xyz", testPathFunc}, `false`, false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, `true`, true},
		{"BadElement", []any{1.5}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := tree.NewCursor(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got nil, want error", tc.path)
			}
			want := tc.want
			if want == "" {
				want = toJSON(t, v)
			}
			if got := toJSON(t, c.Value()); got != want {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got, want)
			}
		})
	}

	t.Run("Navigation", func(t *testing.T) {
		c := tree.NewCursor(v)
		if !c.AtOrigin() {
			t.Error("AtOrigin: got false for a new cursor")
		}
		c.Down("list", 0, "x")
		if got, want := c.Value(), find("list", 0, "x"); got != want {
			t.Errorf("Down: got %v, want %v", got, want)
		}
		if got := len(c.Path()); got != 4 {
			t.Errorf("Path: got %d values, want 4", got)
		}
		if got, want := c.Up().Value(), find("list", 0); got != want {
			t.Errorf("Up: got %v, want %v", got, want)
		}
		c.Reset()
		if !c.AtOrigin() || c.Value() != c.Origin() {
			t.Error("Reset: cursor is not at its origin")
		}
	})
}

// testPathFunc selects the last child of a container.
func testPathFunc(v tree.Node) (tree.Node, error) {
	switch v.Kind() {
	case tree.Arr, tree.Obj:
		n, _ := v.Index(v.Len() - 1)
		return n, nil
	default:
		return tree.Node{}, errors.New("not a thing with length")
	}
}
