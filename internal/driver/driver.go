// Package driver runs the translation pipeline: tokenize, parse, emit and
// write, one stage after the other, stopping at the first error.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/you-not-fish/looc/internal/codegen"
	"github.com/you-not-fish/looc/internal/syntax"
)

// Stage names, in pipeline order.
const (
	StageTokenize = "tokenize"
	StageParse    = "parse"
	StageEmit     = "emit"
)

// Options controls a pipeline run.
type Options struct {
	Codegen codegen.Config

	Trace     io.Writer // per-stage timings; nil disables tracing
	DumpAfter string    // dump the result of this stage ("*" for all)
	Dump      io.Writer // destination for dumps, os.Stderr if nil
}

// Result holds the output of every stage of a successful run.
type Result struct {
	Tokens []syntax.Token
	File   *syntax.File
	Code   string
}

type stage struct {
	name string
	fn   func(u *unit) error
}

// unit is the state threaded through the stages.
type unit struct {
	filename string
	src      []byte
	opts     Options
	res      Result
}

var pipeline = []stage{
	{StageTokenize, func(u *unit) error {
		toks, err := syntax.Tokenize(u.filename, bytes.NewReader(u.src))
		u.res.Tokens = toks
		return err
	}},
	{StageParse, func(u *unit) error {
		f, err := syntax.NewParser(u.res.Tokens).Parse()
		u.res.File = f
		return err
	}},
	{StageEmit, func(u *unit) error {
		u.res.Code = codegen.Emit(u.res.File, u.opts.Codegen)
		return nil
	}},
}

// Translate runs src through the pipeline. On error the result is nil and
// err is a *syntax.LexError or *syntax.SyntaxError.
func Translate(filename string, src []byte, opts Options) (*Result, error) {
	u := &unit{filename: filename, src: src, opts: opts}
	for _, st := range pipeline {
		start := time.Now()
		err := st.fn(u)
		traceStage(opts.Trace, st.name, start)
		if err != nil {
			return nil, err
		}
		if shouldDump(opts.DumpAfter, st.name) {
			if err := dump(u, st.name); err != nil {
				return nil, fmt.Errorf("dump after %s: %w", st.name, err)
			}
		}
	}
	return &u.res, nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

func dump(u *unit, name string) error {
	w := u.opts.Dump
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "--- after %s (%s) ---\n", name, u.filename)
	var err error
	switch name {
	case StageTokenize:
		err = WriteTokens(w, u.res.Tokens)
	case StageParse:
		err = syntax.Fprint(w, u.res.File)
	case StageEmit:
		_, err = io.WriteString(w, u.res.Code)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func traceStage(w io.Writer, name string, start time.Time) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "trace: %-9s %v\n", name, time.Since(start))
}

// ErrOverwriteInput is returned when the output path names the input file.
var ErrOverwriteInput = errors.New("output would overwrite the input")

// CheckOutput reports ErrOverwriteInput if writing output would replace
// input, either by path or because both name the same existing file.
func CheckOutput(input, output string) error {
	if filepath.Clean(input) == filepath.Clean(output) {
		return fmt.Errorf("%s: %w", output, ErrOverwriteInput)
	}
	in, err := os.Stat(input)
	if err != nil {
		return nil
	}
	if out, err := os.Stat(output); err == nil && os.SameFile(in, out) {
		return fmt.Errorf("%s: %w", output, ErrOverwriteInput)
	}
	return nil
}

// Run translates the file at input and writes the C++ to output.
// Nothing is written unless every stage succeeds.
func Run(input, output string, opts Options) error {
	if err := CheckOutput(input, output); err != nil {
		return err
	}
	src, err := ReadSource(input)
	if err != nil {
		return err
	}
	res, err := Translate(input, src, opts)
	if err != nil {
		return err
	}
	return Write(output, res, opts)
}

// Write stores the generated code of res at path with WriteOutput,
// tracing the time spent as the "write" stage.
func Write(path string, res *Result, opts Options) error {
	start := time.Now()
	err := WriteOutput(path, []byte(res.Code))
	traceStage(opts.Trace, "write", start)
	return err
}

// ReadSource reads the program text at path.
func ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return src, nil
}

// OutputPath returns the default output path for input: the same path
// with its extension replaced by .cpp. An input that is already a .cpp
// file gets .out.cpp instead.
func OutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if filepath.Ext(input) == ".cpp" {
		return base + ".out.cpp"
	}
	return base + ".cpp"
}

// WriteOutput replaces the file at path with data. The data is written to
// a temporary file in the same directory and renamed into place, so path
// either keeps its old contents or holds all of data.
func WriteOutput(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// WriteTokens writes a table of tokens: position, kind and literal.
func WriteTokens(w io.Writer, toks []syntax.Token) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-16s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(&b, "%-20s %-16s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 16), strings.Repeat("-", 20))
	for _, tok := range toks {
		fmt.Fprintf(&b, "%-20s %-16s %q\n", tok.Pos, tok.Describe(), tok.Lit)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
