package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. All nodes
// implement the Node interface. Nodes are built bottom-up by the parser and
// never modified afterwards.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the first token belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// File

// File is the result of a successful parse.
type File struct {
	node
	Stmts []Stmt // top-level statements in source order

	// Vars lists every assigned identifier once, in order of first
	// assignment anywhere in the program.
	Vars []string
}

// HasVar reports whether name is assigned somewhere in the program.
func (f *File) HasVar(name string) bool {
	for _, v := range f.Vars {
		if v == name {
			return true
		}
	}
	return false
}

// Block is a braced statement list. It is not a statement itself:
// blocks only appear as the body of if, while and loop.
type Block struct {
	node
	Stmts  []Stmt
	Rbrace Pos // position of closing brace
}

// ----------------------------------------------------------------------------
// Expressions

// Value is an operand: the raw text of an identifier or a number literal.
type Value struct {
	expr
	Lit string
}

// IsName reports whether the value is an identifier rather than a number.
func (v *Value) IsName() bool {
	return isIdent(v.Lit)
}

func isIdent(lit string) bool {
	return lit != "" && isLetter(rune(lit[0]))
}

// Operation is a binary operation X Op Y.
//
// Chains nest to the right: a - b - c is
//
//	Operation{X: a, Op: "-", Y: Operation{X: b, Op: "-", Y: c}}
//
// so X is always a *Value when built by the parser.
type Operation struct {
	expr
	Op string // raw operator text
	X  Expr
	Y  Expr
}

// ----------------------------------------------------------------------------
// Statements

// IfStmt represents: if Cond { Then }
type IfStmt struct {
	stmt
	Cond Expr
	Then *Block
}

// IfElseStmt represents: if Cond { Then } else { Else }
// For "else if", Else holds the nested if statement as its only statement.
type IfElseStmt struct {
	stmt
	Cond Expr
	Then *Block
	Else *Block
}

// WhileStmt represents: while Cond { Body }
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// LoopStmt represents: loop Count { Body }
// Count comes from a number literal, never from an expression.
type LoopStmt struct {
	stmt
	Count uint64
	Body  *Block
}

// AssignStmt represents: Name = Value;
// Whether it declares Name is not recorded here; see File.Vars.
type AssignStmt struct {
	stmt
	Name  string
	Value Expr
}

// PrintStmt represents: print Text;
// Text is the raw text of the single token after print.
type PrintStmt struct {
	stmt
	Text string
}
