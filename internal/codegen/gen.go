// Package codegen translates a loo AST into a C++ program.
//
// The output is a single translation unit: the <iostream> include, one
// declaration for every assigned variable, and a main function holding the
// statements in source order.
package codegen

import (
	"bytes"
	"io"
	"strings"

	"github.com/you-not-fish/looc/internal/syntax"
)

// DefaultIndent is the indent width used when Config.Indent is not set.
const DefaultIndent = 4

// Config controls the shape of the generated code. The zero value gives
// grouped expressions and four-space indentation.
type Config struct {
	// Verbatim emits expressions by plain concatenation, leaving grouping
	// to C++ precedence. By default every nested operation is
	// parenthesised so the program evaluates the way it was parsed.
	Verbatim bool

	// Indent is the number of spaces per nesting level.
	Indent int
}

// Generate writes the C++ translation of f to w.
// The only errors are write errors from w.
func Generate(w io.Writer, f *syntax.File, cfg Config) error {
	g := &generator{
		e:       newEmitter(w, cfg.Indent),
		cfg:     cfg,
		counter: LoopVar(f),
	}
	g.file(f)
	return g.e.err
}

// Emit returns the C++ translation of f.
func Emit(f *syntax.File, cfg Config) string {
	var buf bytes.Buffer
	Generate(&buf, f, cfg) // bytes.Buffer writes do not fail
	return buf.String()
}

// EmitStmts returns the C++ for stmts alone, without the surrounding
// program, as it would appear at the top of main. The loop counter name
// is chosen against the whole of f, so fragments agree with Emit(f).
func EmitStmts(f *syntax.File, stmts []syntax.Stmt, cfg Config) string {
	var buf bytes.Buffer
	g := &generator{
		e:       newEmitter(&buf, cfg.Indent),
		cfg:     cfg,
		counter: LoopVar(f),
	}
	g.stmts(stmts)
	return buf.String()
}

// LoopVar returns the counter name used for loop statements in f: "i",
// with underscores appended while the name is an assigned variable.
// A name that is only read keeps referring to the counter.
func LoopVar(f *syntax.File) string {
	name := "i"
	for f.HasVar(name) {
		name += "_"
	}
	return name
}

type generator struct {
	e       *emitter
	cfg     Config
	counter string // loop counter variable
}

func (g *generator) file(f *syntax.File) {
	g.e.emit("#include <iostream>")
	g.e.emitLine()

	if len(f.Vars) > 0 {
		g.e.emit("int %s;", strings.Join(f.Vars, ", "))
		g.e.emitLine()
	}

	g.e.open("int main()")
	g.stmts(f.Stmts)
	g.e.emitStmt("return 0;")
	g.e.close("")
}

func (g *generator) stmts(list []syntax.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.AssignStmt:
		g.e.emitStmt("%s = %s;", s.Name, g.expr(s.Value))

	case *syntax.PrintStmt:
		g.e.emitStmt("std::cout << %s << std::endl;", s.Text)

	case *syntax.IfStmt:
		g.e.open("if (%s)", g.expr(s.Cond))
		g.stmts(s.Then.Stmts)
		g.e.close("")

	case *syntax.IfElseStmt:
		g.e.open("if (%s)", g.expr(s.Cond))
		g.stmts(s.Then.Stmts)
		g.e.close("else")
		g.stmts(s.Else.Stmts)
		g.e.close("")

	case *syntax.WhileStmt:
		g.e.open("while (%s)", g.expr(s.Cond))
		g.stmts(s.Body.Stmts)
		g.e.close("")

	case *syntax.LoopStmt:
		g.e.open("for (int %[1]s = 0; %[1]s < %[2]d; %[1]s++)", g.counter, s.Count)
		g.stmts(s.Body.Stmts)
		g.e.close("")
	}
}

func (g *generator) expr(x syntax.Expr) string {
	return ExprString(x, g.cfg.Verbatim)
}

// ExprString renders x as C++ with no whitespace. Unless verbatim is set,
// an operation appearing as an operand is wrapped in parentheses:
// a + b + c gives "a+(b+c)".
func ExprString(x syntax.Expr, verbatim bool) string {
	var b strings.Builder
	writeExpr(&b, x, verbatim, false)
	return b.String()
}

func writeExpr(b *strings.Builder, x syntax.Expr, verbatim, nested bool) {
	switch x := x.(type) {
	case *syntax.Value:
		b.WriteString(x.Lit)

	case *syntax.Operation:
		group := nested && !verbatim
		if group {
			b.WriteByte('(')
		}
		writeExpr(b, x.X, verbatim, true)
		b.WriteString(x.Op)
		writeExpr(b, x.Y, verbatim, true)
		if group {
			b.WriteByte(')')
		}
	}
}
