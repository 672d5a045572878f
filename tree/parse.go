// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/creachadair/jcodec/internal/escape"
	"github.com/creachadair/jcodec/scan"

	"go4.org/mem"
)

// maxInputSize is the largest input Parse will accept, since node offsets
// and lengths are stored as int32.
var maxInputSize = math.MaxInt32

// Parse parses data as a single JSON value and returns the resulting
// document. If r != nil, the nodes and text of the document are stored in
// r, which remains busy until the document is released.
//
// If the input is not valid, Parse reports a [*ParseError]. If the input
// contains no value at all, Parse reports [ErrEmptyInput].
func Parse(data []byte, flags ReadFlags, r *Region) (*Document, error) {
	if len(data) > maxInputSize {
		return nil, &ParseError{
			Message: fmt.Sprintf("input of %d bytes exceeds the limit of %d", len(data), maxInputSize),
			Code:    CodeMemoryAllocation,
			Line:    1,
		}
	}
	h := &parseHandler{data: data, flags: flags}
	if r != nil {
		if r.busy {
			return nil, ErrRegionBusy
		}
		h.nodes, h.text = r.partition(flags&ReadInSitu != 0)
		h.fixed = true
	}
	if flags&ReadInSitu != 0 {
		h.text = data
	}

	st := scan.NewStream(bytes.NewReader(data))
	st.AllowComments(flags&ReadAllowComments != 0)
	st.AllowTrailingCommas(flags&ReadAllowTrailingCommas != 0)
	st.AllowNonFinite(flags&ReadAllowInfAndNaN != 0)
	st.AllowInvalidUTF8(flags&ReadAllowInvalidUnicode != 0)

	if err := st.ParseOne(h); err == io.EOF {
		return nil, ErrEmptyInput
	} else if err != nil {
		return nil, parseError(err, CodeInvalidSyntax)
	}
	if flags&ReadStopWhenDone == 0 {
		if err := st.CheckEnd(h); err != nil {
			return nil, parseError(err, CodeUnexpectedContent)
		}
	}
	if len(h.nodes) == 0 || len(h.stk) != 0 {
		return nil, errors.New("tree: incomplete value") // should not be possible
	}
	h.nodes[0].last = true

	doc := &Document{nodes: h.nodes, text: h.text}
	if r != nil {
		r.busy = true
		doc.region = r
	}
	return doc, nil
}

// parseError converts an error from the stream parser into a *ParseError.
// The code is used for syntax errors that are not more specific.
func parseError(err error, code string) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr
	}
	var serr *scan.SyntaxError
	if !errors.As(err, &serr) {
		return err
	}
	if code == CodeInvalidSyntax && errors.Is(serr, io.EOF) {
		code = CodeUnexpectedEnd
	}
	return &ParseError{
		Message: serr.Message,
		Offset:  serr.Offset,
		Code:    code,
		Line:    serr.Location.Line,
		Column:  serr.Location.Column,
	}
}

// A parseHandler implements the scan.Handler interface to construct the
// node slab of a document.
type parseHandler struct {
	data  []byte
	flags ReadFlags
	fixed bool // nodes and text have fixed capacity
	nodes []node
	text  []byte
	stk   []frame
	key   span // key of the pending object member
}

// A frame records an open container and its most recent child.
type frame struct{ id, last int32 }

func (h *parseHandler) failf(loc scan.Anchor, code, msg string, args ...any) error {
	pos := loc.Location()
	return &ParseError{
		Message: fmt.Sprintf(msg, args...),
		Offset:  pos.Pos,
		Code:    code,
		Line:    pos.First.Line,
		Column:  pos.First.Column,
	}
}

// add appends n to the slab and attaches it to the innermost open container.
func (h *parseHandler) add(loc scan.Anchor, n node) (int32, error) {
	if h.fixed && len(h.nodes) == cap(h.nodes) {
		return 0, h.failf(loc, CodeMemoryAllocation, "region exhausted after %d nodes", len(h.nodes))
	}
	id := int32(len(h.nodes))
	n.size = 1
	if len(h.stk) != 0 {
		top := &h.stk[len(h.stk)-1]
		parent := &h.nodes[top.id]
		if parent.kind == Obj {
			n.key = h.key
		}
		parent.count++
		top.last = id
	}
	h.nodes = append(h.nodes, n)
	return id, nil
}

// intern decodes the quoted string token at loc into the document text and
// returns its location.
func (h *parseHandler) intern(loc scan.Anchor) (span, error) {
	if h.flags&ReadInSitu != 0 {
		// Decode in place: the result is never longer than the input, and
		// begins at the opening quotation mark.
		pos := loc.Location().Span
		dst := h.data[pos.Pos:pos.Pos:pos.End]
		dec, err := escape.AppendUnquote(dst, mem.B(h.data[pos.Pos+1:pos.End-1]))
		if err != nil {
			return span{}, h.failf(loc, CodeInvalidString, "%v", err)
		}
		return span{off: int32(pos.Pos), n: int32(len(dec))}, nil
	}

	raw := loc.Text()
	raw = raw[1 : len(raw)-1]
	if h.fixed && len(h.text)+len(raw) > cap(h.text) {
		return span{}, h.failf(loc, CodeMemoryAllocation, "region exhausted after %d bytes of text", len(h.text))
	}
	off := len(h.text)
	text, err := escape.AppendUnquote(h.text, mem.B(raw))
	if err != nil {
		return span{}, h.failf(loc, CodeInvalidString, "%v", err)
	}
	h.text = text
	return span{off: int32(off), n: int32(len(text) - off)}, nil
}

func (h *parseHandler) open(loc scan.Anchor, kind Kind) error {
	id, err := h.add(loc, node{kind: kind})
	if err != nil {
		return err
	}
	h.stk = append(h.stk, frame{id: id, last: -1})
	return nil
}

func (h *parseHandler) close() error {
	top := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	h.nodes[top.id].size = int32(len(h.nodes)) - top.id
	if top.last >= 0 {
		h.nodes[top.last].last = true
	}
	return nil
}

func (h *parseHandler) BeginObject(loc scan.Anchor) error { return h.open(loc, Obj) }
func (h *parseHandler) EndObject(loc scan.Anchor) error   { return h.close() }
func (h *parseHandler) BeginArray(loc scan.Anchor) error  { return h.open(loc, Arr) }
func (h *parseHandler) EndArray(loc scan.Anchor) error    { return h.close() }
func (h *parseHandler) EndMember(loc scan.Anchor) error   { return nil }
func (h *parseHandler) EndOfInput(loc scan.Anchor)        {}

func (h *parseHandler) BeginMember(loc scan.Anchor) error {
	key, err := h.intern(loc)
	if err != nil {
		return err
	}
	h.key = key
	return nil
}

func (h *parseHandler) Value(loc scan.Anchor) error {
	var n node
	switch tok := loc.Token(); tok {
	case scan.String:
		s, err := h.intern(loc)
		if err != nil {
			return err
		}
		n = node{kind: Str, str: s}
	case scan.Integer, scan.Number:
		num, err := parseNumber(string(loc.Text()), tok == scan.Integer)
		if err != nil {
			return h.failf(loc, CodeInvalidNumber, "invalid number %q", loc.Text())
		} else if !num.IsFinite() && h.flags&ReadAllowInfAndNaN == 0 {
			return h.failf(loc, CodeInvalidNumber, "number %s is out of range", loc.Text())
		}
		n = node{kind: Num, numKind: num.kind, bits: num.bits}
	case scan.True:
		n = node{kind: Bool, bits: 1}
	case scan.False:
		n = node{kind: Bool}
	case scan.Null:
		n = node{kind: Null}
	default:
		return fmt.Errorf("unknown value %v", tok)
	}
	_, err := h.add(loc, n)
	return err
}
