// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bytes"
	"strings"

	"github.com/creachadair/jcodec/internal/escape"

	"go4.org/mem"
)

// Write serializes the tree rooted at the root of doc as JSON text.
//
// If r != nil, the output is constructed in r, and Write reports
// [ErrRegionFull] if it does not fit. The returned slice is a copy and
// does not refer to r. Other failures are reported as [*WriteError].
func Write(doc *MutDoc, flags WriteFlags, r *Region) ([]byte, error) {
	root, ok := doc.Root()
	if !ok {
		return nil, &WriteError{Code: CodeNoRoot, Message: "document has no root value"}
	}
	w := &writer{flags: flags}
	if flags&WritePrettyTwoSpaces != 0 {
		w.indent = "  "
	} else if flags&WritePretty != 0 {
		w.indent = "    "
	}
	if flags&WriteEscapeUnicode != 0 {
		w.mode |= escape.ASCII
	}
	if flags&WriteEscapeSlashes != 0 {
		w.mode |= escape.Slash
	}
	if flags&WriteAllowInvalidUnicode != 0 {
		w.mode |= escape.Raw
	}
	if r != nil {
		if r.busy {
			return nil, ErrRegionBusy
		}
		w.buf, w.limit = r.output(), r.size
	}

	if err := w.value(root, 0); err != nil {
		return nil, err
	}
	if r != nil {
		return bytes.Clone(w.buf), nil
	}
	return w.buf, nil
}

type writer struct {
	flags  WriteFlags
	mode   escape.Mode
	indent string
	buf    []byte
	limit  int // if positive, the maximum output size
}

func (w *writer) check() error {
	if w.limit > 0 && len(w.buf) > w.limit {
		return ErrRegionFull
	}
	return nil
}

func (w *writer) newline(depth int) {
	if w.indent != "" {
		w.buf = append(w.buf, '\n')
		w.buf = append(w.buf, strings.Repeat(w.indent, depth)...)
	}
}

func (w *writer) value(n MutNode, depth int) error {
	p := n.get()
	switch p.kind {
	case Null:
		w.buf = append(w.buf, "null"...)
	case Bool:
		if p.on {
			w.buf = append(w.buf, "true"...)
		} else {
			w.buf = append(w.buf, "false"...)
		}
	case Num:
		if p.num.IsFinite() || w.flags&WriteAllowInfAndNaN != 0 && w.flags&WriteInfAndNaNAsNull == 0 {
			w.buf = p.num.append(w.buf)
		} else if w.flags&WriteInfAndNaNAsNull != 0 {
			w.buf = append(w.buf, "null"...)
		} else {
			return &WriteError{Code: CodeNaNOrInf, Message: "cannot write non-finite number " + p.num.String()}
		}
	case Str:
		if err := w.string(p.str); err != nil {
			return err
		}
	case Arr:
		w.buf = append(w.buf, '[')
		for i, id := range p.kids {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			w.newline(depth + 1)
			if err := w.value(MutNode{doc: n.doc, id: id}, depth+1); err != nil {
				return err
			}
		}
		if len(p.kids) != 0 {
			w.newline(depth)
		}
		w.buf = append(w.buf, ']')
	case Obj:
		w.buf = append(w.buf, '{')
		for i, id := range p.kids {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			w.newline(depth + 1)
			if err := w.string(p.keys[i]); err != nil {
				return err
			}
			w.buf = append(w.buf, ':')
			if w.indent != "" {
				w.buf = append(w.buf, ' ')
			}
			if err := w.value(MutNode{doc: n.doc, id: id}, depth+1); err != nil {
				return err
			}
		}
		if len(p.kids) != 0 {
			w.newline(depth)
		}
		w.buf = append(w.buf, '}')
	default:
		return &WriteError{Code: CodeNoRoot, Message: "invalid node in document"}
	}
	return w.check()
}

func (w *writer) string(s string) error {
	if w.mode&escape.Raw == 0 && !escape.ValidUTF8(mem.S(s)) {
		return &WriteError{Code: CodeInvalidString, Message: "string is not valid UTF-8"}
	}
	w.buf = escape.AppendQuote(w.buf, mem.S(s), w.mode)
	return w.check()
}
