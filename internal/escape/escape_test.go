// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jcodec/internal/escape"

	"go4.org/mem"
)

func TestAppendQuote(t *testing.T) {
	tests := []struct {
		input string
		mode  escape.Mode
		want  string
	}{
		{"", 0, `""`},
		{" ", 0, `" "`},
		{"a\t\nb", 0, `"a\t\nb"`},
		{"\x00\x01\x02", 0, `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, 0, `"a \"b c\\\" d\""`},
		{`\ufffd`, 0, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", 0, `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", 0, `"This is the end\u000b"`},
		{"<\x1e>", 0, `"<\u001e>"`},
		{"a/b", 0, `"a/b"`},
		{"a/b", escape.Slash, `"a\/b"`},
		{"caf\u00e9 \U0001F600", escape.ASCII, `"caf\u00e9 \ud83d\ude00"`},
		{"x\xffy", 0, `"x\ufffdy"`},
		{"x\xffy", escape.Raw, "\"x\xffy\""},
	}
	for _, test := range tests {
		got := string(escape.AppendQuote(nil, mem.S(test.input), test.mode))
		if got != test.want {
			t.Errorf("Input: %#q (mode %v)\nGot:  %#q\nWant: %#q", test.input, test.mode, got, test.want)
		}
	}
}

func TestAppendUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, false},                     // ok
		{`ok go`, "ok go", false},           // ok
		{`abc\ndef`, "abc\ndef", false},     // C escapes
		{`\tabc\n`, "\tabc\n", false},       // C escapes
		{`\b\f\n\r\t`, "\b\f\n\r\t", false}, // C escapes
		{`a \u0026 b`, "a & b", false},      // short Unicode escape
		{`\u`, ``, true},                    // incomplete Unicode escape
		{`\u00`, ``, true},                  // incomplete Unicode escape
		{`\u00x9`, "\ufffd", false},         // invalid Unicode escape
		{`\u019 `, "\ufffd", false},         // invalid Unicode escape
		{`a\"b`, `a"b`, false},              // ok
		{`a\\b\\cd`, `a\b\cd`, false},       // ok
		{`abc\`, ``, true},                  // incomplete escape

		// Surrogate pairs combine; unpaired halves are replaced.
		{`\ud83d\ude00`, "\U0001F600", false},
		{`x\ud83dy`, "x\ufffdy", false},
		{`\ude00`, "\ufffd", false},
		{`\u00e9t\u00e9`, "\u00e9t\u00e9", false},
	}

	for _, test := range tests {
		got, err := escape.AppendUnquote(nil, mem.S(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("AppendUnquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("AppendUnquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("AppendUnquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("AppendUnquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestAppendUnquoteInPlace(t *testing.T) {
	buf := []byte(`"a\tb\u0041"`)
	src := buf[1 : len(buf)-1]
	got, err := escape.AppendUnquote(src[:0], mem.B(src))
	if err != nil {
		t.Fatalf("AppendUnquote: unexpected error: %v", err)
	}
	if string(got) != "a\tbA" {
		t.Errorf("AppendUnquote: got %#q, want %#q", got, "a\tbA")
	}
}

func TestValidUTF8(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"plain", true},
		{"caf\u00e9", true},
		{"x\xffy", false},
		{"\xed\xa0\x80", false}, // encoded surrogate
	}
	for _, test := range tests {
		if got := escape.ValidUTF8(mem.S(test.input)); got != test.want {
			t.Errorf("ValidUTF8(%q): got %v, want %v", test.input, got, test.want)
		}
	}
}
