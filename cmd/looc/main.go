// Package main implements the loo-to-C++ translator entry point.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/you-not-fish/looc/internal/codegen"
	"github.com/you-not-fish/looc/internal/driver"
	"github.com/you-not-fish/looc/internal/syntax"
)

// Translator flags
var (
	output     = flag.String("o", "", "Output file (default: input with .cpp extension, \"-\" for stdout)")
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	noGroup    = flag.Bool("no-group", false, "Emit expressions without grouping parentheses")
	indent     = flag.Int("indent", codegen.DefaultIndent, "Spaces per indentation level")
	trace      = flag.Bool("trace", false, "Output timing trace")
	dumpAfter  = flag.String("dump-after", "", "Dump the result of a stage: tokenize, parse, emit or \"*\"")
	repl       = flag.Bool("repl", false, "Start an interactive session")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "looc %s: translates loo programs to C++\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: looc [options] <file.loo>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("looc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *repl {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: looc [options] <file.loo>")
		os.Exit(1)
	}

	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	os.Exit(runTranslate(filename))
}

// options collects the pipeline options from the flags.
func options() driver.Options {
	opts := driver.Options{
		Codegen: codegen.Config{
			Verbatim: *noGroup,
			Indent:   *indent,
		},
		DumpAfter: *dumpAfter,
		Dump:      os.Stderr,
	}
	if *trace {
		opts.Trace = os.Stderr
	}
	return opts
}

// runTranslate translates filename and writes the C++ program.
func runTranslate(filename string) int {
	src, err := driver.ReadSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	opts := options()
	res, err := driver.Translate(filename, src, opts)
	if err != nil {
		report(err, src)
		return 1
	}

	out := *output
	if out == "" {
		out = driver.OutputPath(filename)
	}
	if out == "-" {
		if _, err := io.WriteString(os.Stdout, res.Code); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := driver.CheckOutput(filename, out); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := driver.Write(out, res, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	src, err := driver.ReadSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	s, err := syntax.NewScanner(filename, bytes.NewReader(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Tokens scanned before an error are still listed.
	var toks []syntax.Token
	var scanErr error
	for {
		tok, err := s.Next()
		if err != nil {
			scanErr = err
			break
		}
		toks = append(toks, tok)
		if tok.IsEOF() {
			break
		}
	}

	if err := driver.WriteTokens(os.Stdout, toks); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if scanErr != nil {
		report(scanErr, src)
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	src, err := driver.ReadSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ast, err := syntax.Parse(filename, bytes.NewReader(src))
	if err != nil {
		report(err, src)
		return 1
	}

	switch *astFormat {
	case "json":
		err = syntax.FprintJSON(os.Stdout, ast)
	case "text":
		err = syntax.Fprint(os.Stdout, ast)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q (want text or json)\n", *astFormat)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// report prints a translation error with a snippet of the offending line.
func report(err error, src []byte) {
	var lexErr *syntax.LexError
	var synErr *syntax.SyntaxError
	if errors.As(err, &lexErr) || errors.As(err, &synErr) {
		fmt.Fprintln(os.Stderr, syntax.FormatError(err, string(src)))
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
