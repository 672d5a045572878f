// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jcodec reformats and queries JSON text.
//
// Usage:
//
//	jcodec fmt [flags]         # reformat the input
//	jcodec get [flags] path... # print the value at a path in the input
//	jcodec size [flags] n      # print the region size for n bytes of input
//
// Input is read from standard input unless --input is set.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jcodec"
	jzap "github.com/creachadair/jcodec/log/zap"
	"github.com/creachadair/jcodec/tree"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

type cli struct {
	Debug bool   `help:"Enable debug logging." short:"d"`
	Input string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`

	Fmt  fmtCmd  `cmd:"" help:"Reformat JSON text."`
	Get  getCmd  `cmd:"" help:"Print the value at a path in JSON text."`
	Size sizeCmd `cmd:"" help:"Print the region size recommended for an input size."`
}

// env carries the runtime context shared by the subcommands.
type env struct {
	input  string
	stdin  io.Reader
	stdout io.Writer
	log    jcodec.Logger
}

func (e *env) read() ([]byte, error) {
	if e.input != "" {
		return os.ReadFile(e.input)
	}
	return io.ReadAll(e.stdin)
}

type readOpts struct {
	Comments       bool `help:"Allow comments in the input."`
	TrailingCommas bool `help:"Allow trailing commas in arrays and objects."`
	NaN            bool `name:"nan" help:"Allow NaN and Infinity literals."`
	StopWhenDone   bool `help:"Ignore input following the first value."`
	InvalidUnicode bool `help:"Allow strings that are not valid UTF-8."`
}

func (r readOpts) flags() tree.ReadFlags {
	var f tree.ReadFlags
	if r.Comments {
		f |= tree.ReadAllowComments
	}
	if r.TrailingCommas {
		f |= tree.ReadAllowTrailingCommas
	}
	if r.NaN {
		f |= tree.ReadAllowInfAndNaN
	}
	if r.StopWhenDone {
		f |= tree.ReadStopWhenDone
	}
	if r.InvalidUnicode {
		f |= tree.ReadAllowInvalidUnicode
	}
	return f
}

type writeOpts struct {
	Pretty        bool `help:"Indent the output." short:"p"`
	Indent        int  `help:"Spaces per indentation level (2 or 4)." default:"4"`
	EscapeUnicode bool `help:"Escape non-ASCII characters in strings."`
	EscapeSlashes bool `help:"Escape forward slashes in strings."`
	NaNAsNull     bool `name:"nan-as-null" help:"Write NaN and Infinity as null."`
}

func (w writeOpts) flags(r readOpts) tree.WriteFlags {
	var f tree.WriteFlags
	if w.Pretty {
		f |= tree.WritePretty
		if w.Indent == 2 {
			f |= tree.WritePrettyTwoSpaces
		}
	}
	if w.EscapeUnicode {
		f |= tree.WriteEscapeUnicode
	}
	if w.EscapeSlashes {
		f |= tree.WriteEscapeSlashes
	}
	if w.NaNAsNull {
		f |= tree.WriteInfAndNaNAsNull
	} else if r.NaN {
		f |= tree.WriteAllowInfAndNaN
	}
	if r.InvalidUnicode {
		f |= tree.WriteAllowInvalidUnicode
	}
	return f
}

type fmtCmd struct {
	Read  readOpts  `embed:""`
	Write writeOpts `embed:""`

	KeepComments bool `help:"Preserve comments and trailing commas in the output."`
}

func (c *fmtCmd) Run(e *env) error {
	data, err := e.read()
	if err != nil {
		return err
	}
	if c.KeepComments {
		out, err := hujson.Format(data)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)
		return err
	}

	var v jcodec.Value
	if err := jcodec.Decode(data, &v, &jcodec.Options{
		ReadFlags: c.Read.flags(),
		Logger:    e.log,
	}); err != nil {
		return err
	}
	out, err := jcodec.Encode(&v, &jcodec.Options{
		WriteFlags: c.Write.flags(c.Read),
		Logger:     e.log,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n", out)
	return err
}

type getCmd struct {
	Read  readOpts  `embed:""`
	Write writeOpts `embed:""`

	Path []string `arg:"" optional:"" help:"Object keys and array offsets to follow from the root."`
}

func (c *getCmd) Run(e *env) error {
	data, err := e.read()
	if err != nil {
		return err
	}
	doc, err := tree.Parse(data, c.Read.flags(), nil)
	if err != nil {
		return err
	}
	defer doc.Release()

	path := make([]any, len(c.Path))
	for i, elt := range c.Path {
		if z, err := strconv.Atoi(elt); err == nil {
			path[i] = z
		} else {
			path[i] = elt
		}
	}
	n, err := tree.Path(doc.Root(), path...)
	if err != nil {
		return err
	}
	e.log.Debug("found value", jcodec.Fields{"kind": n.Kind().String(), "path": c.Path})

	md := tree.NewMutDoc()
	md.SetRoot(tree.CopyNode(md, n))
	out, err := tree.Write(md, c.Write.flags(c.Read), nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n", out)
	return err
}

type sizeCmd struct {
	InSitu bool `help:"Size the region for in-situ parsing."`
	N      int  `arg:"" help:"Input size in bytes."`
}

func (c *sizeCmd) Run(e *env) error {
	if c.N < 0 {
		return fmt.Errorf("invalid input size %d", c.N)
	}
	var f tree.ReadFlags
	if c.InSitu {
		f |= tree.ReadInSitu
	}
	_, err := fmt.Fprintln(e.stdout, tree.RecommendedBufferSize(c.N, f))
	return err
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("jcodec"),
		kong.Description("Reformat and query JSON text."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	e := &env{input: c.Input, stdin: stdin, stdout: stdout, log: jcodec.NopLogger{}}
	if c.Debug {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer zl.Sync()
		e.log = jzap.ZapLogger{L: zl}
	}
	return ctx.Run(e)
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "jcodec: %v\n", err)
		os.Exit(1)
	}
}
