package tree_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jcodec/internal/escape"
	"github.com/creachadair/jcodec/scan"
	"github.com/creachadair/jcodec/tree"
	"go4.org/mem"
)

// benchInput constructs a JSON array of n records.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range n {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"Test Name %d","score":%d.5,"tags":["a","b\tc"],"ok":true,"next":null}`, i, i, i)
	}
	sb.WriteString("]")
	return []byte(sb.String())
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for b.Loop() {
			s := scan.NewScanner(bytes.NewReader(input))
			for s.Next() {
				// The standard library Decoder converts tokens to values.
				// For a fair comparison, do the same for strings.
				if s.Token() == scan.String {
					text := s.Text()
					escape.AppendUnquote(nil, mem.B(text[1:len(text)-1]))
				}
			}
			if err := s.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Tree", func(b *testing.B) {
		for b.Loop() {
			doc, err := tree.Parse(input, 0, nil)
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			doc.Release()
		}
	})

	b.Run("Region", func(b *testing.B) {
		r, err := tree.NewRegion(tree.RecommendedBufferSize(len(input), 0))
		if err != nil {
			b.Fatalf("NewRegion: %v", err)
		}
		for b.Loop() {
			doc, err := tree.Parse(input, 0, r)
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			doc.Release()
		}
	})
}
