// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Mode is a set of flags that modify how strings are quoted.
type Mode uint8

const (
	ASCII Mode = 1 << iota // escape all non-ASCII runes as \uXXXX
	Slash                  // escape "/" as "\/"
	Raw                    // copy invalid UTF-8 verbatim rather than replacing it
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src, including the
// enclosing quotation marks, to dst and returns the extended slice.
func AppendQuote(dst []byte, src mem.RO, m Mode) []byte {
	dst = append(dst, '"')
	dst = appendEscaped(dst, src, m)
	return append(dst, '"')
}

func appendEscaped(buf []byte, src mem.RO, m Mode) []byte {
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putU := func(r rune) {
		putByte('\\', 'u', hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
	}

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putU(r)
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else if r == '/' && m&Slash != 0 {
				putByte('\\', '/')
			} else {
				putByte(byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch {
		case r == utf8.RuneError && n == 1 && m&Raw != 0:
			putByte(src.At(0))
		case r == utf8.RuneError, r == '\u2028', r == '\u2029':
			putU(r)
		case m&ASCII != 0:
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				putU(r1)
				putU(r2)
			} else {
				putU(r)
			}
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

// ValidUTF8 reports whether src consists entirely of valid UTF-8 sequences.
func ValidUTF8(src mem.RO) bool {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r == utf8.RuneError && n <= 1 {
			return false
		}
		src = src.SliceFrom(n)
	}
	return true
}
