package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error // first write error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) block(label string, b *Block) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(b)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		if len(n.Vars) > 0 {
			p.printf("Vars: %s\n", strings.Join(n.Vars, ", "))
		}
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond: %s\n", ExprString(n.Cond))
		p.block("Then", n.Then)
		p.indent--

	case *IfElseStmt:
		p.printf("IfElseStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond: %s\n", ExprString(n.Cond))
		p.block("Then", n.Then)
		p.block("Else", n.Else)
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond: %s\n", ExprString(n.Cond))
		p.block("Body", n.Body)
		p.indent--

	case *LoopStmt:
		p.printf("LoopStmt %s %d\n", n.pos, n.Count)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.pos, n.Name)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s %q\n", n.pos, n.Text)

	case *Value:
		p.printf("Value %s %q\n", n.pos, n.Lit)

	case *Operation:
		p.printf("Operation %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	default:
		p.printf("%T\n", n)
	}
}

// ExprString returns a one-line rendering of x that spells out its
// grouping: a + b + c gives "(a + (b + c))".
func ExprString(x Expr) string {
	switch x := x.(type) {
	case *Value:
		return x.Lit
	case *Operation:
		return "(" + ExprString(x.X) + " " + x.Op + " " + ExprString(x.Y) + ")"
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%T", x)
}
