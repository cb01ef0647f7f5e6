package syntax

import (
	"fmt"
	"io"
	"strconv"
)

// Parser builds an AST from a complete token sequence.
//
// Grammar:
//
//	file   = { stmt } EOF .
//	stmt   = ifStmt | "while" expr block | "loop" NUMBER block
//	       | "print" operand ";" | NAME "=" expr ";" .
//	ifStmt = "if" expr block [ "else" ( block | ifStmt ) ] .
//	block  = "{" { stmt } "}" .
//	expr   = operand [ OP expr ] .
//	operand = NAME | NUMBER .
//
// There is no precedence: every operator takes everything to its right.
// The parser never backtracks and stops at the first error.
type Parser struct {
	toks []Token
	cur  int // index of the next token to consume

	vars []string        // assigned names, first assignment order
	seen map[string]bool // membership for vars
}

// NewParser creates a Parser over tokens, normally the output of Tokenize.
// A missing trailing EOF token is tolerated.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		toks: tokens,
		seen: make(map[string]bool),
	}
}

// Parse tokenizes and parses src.
func Parse(filename string, src io.Reader) (*File, error) {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).Parse()
}

// Parse parses the whole token sequence. On error no AST is returned.
func (p *Parser) Parse() (*File, error) {
	f := &File{}
	f.pos = p.peek().Pos

	for !p.peek().IsEOF() {
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		f.Stmts = append(f.Stmts, s)
	}

	f.Vars = p.vars
	return f, nil
}

// ----------------------------------------------------------------------------
// Token navigation

// peek returns the next token without consuming it.
func (p *Parser) peek() Token {
	if p.cur < len(p.toks) {
		return p.toks[p.cur]
	}
	eof := Token{Kind: _EOF}
	if n := len(p.toks); n > 0 {
		eof.Pos = p.toks[n-1].Pos
	}
	return eof
}

// next consumes and returns the next token. At the end it keeps
// returning EOF.
func (p *Parser) next() Token {
	tok := p.peek()
	if p.cur < len(p.toks) {
		p.cur++
	}
	return tok
}

// declare records name as an assigned variable.
func (p *Parser) declare(name string) {
	if !p.seen[name] {
		p.seen[name] = true
		p.vars = append(p.vars, name)
	}
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) errorAt(tok Token, kind SyntaxErrorKind, format string, args ...interface{}) error {
	return &SyntaxError{
		Pos:  tok.Pos,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		EOF:  tok.IsEOF(),
	}
}

// found describes tok for "found ..." messages.
func found(tok Token) string {
	if tok.IsEOF() {
		return "end of input"
	}
	return strconv.Quote(tok.Lit)
}

// isOperand reports whether tok can be used as a value.
func isOperand(tok Token) bool {
	return tok.IsNumber() || tok.IsName() && !IsKeyword(tok.Lit)
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement. Only names can start one.
func (p *Parser) stmt() (Stmt, error) {
	tok := p.next()
	if !tok.IsName() {
		return nil, p.errorAt(tok, MalformedStatement, "expected statement, found %s", found(tok))
	}

	if !IsKeyword(tok.Lit) {
		return p.assignStmt(tok)
	}

	switch tok.Lit {
	case "if":
		return p.ifStmt(tok)
	case "while":
		return p.whileStmt(tok)
	case "loop":
		return p.loopStmt(tok)
	case "print":
		return p.printStmt(tok)
	}
	return nil, p.errorAt(tok, MalformedStatement, "unexpected %s", tok.Lit)
}

// assignStmt parses the rest of: name = expr ;
func (p *Parser) assignStmt(name Token) (Stmt, error) {
	p.declare(name.Lit)

	if eq := p.next(); !eq.IsOperator() || eq.Lit != "=" {
		return nil, p.errorAt(eq, MalformedStatement, "expected '=' after %s, found %s", name.Lit, found(eq))
	}

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(";"); err != nil {
		return nil, err
	}

	s := &AssignStmt{Name: name.Lit, Value: x}
	s.pos = name.Pos
	return s, nil
}

// ifStmt parses the rest of: if expr block [else (block | ifStmt)]
func (p *Parser) ifStmt(kw Token) (Stmt, error) {
	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}

	if !p.peek().isKeyword("else") {
		s := &IfStmt{Cond: cond, Then: then}
		s.pos = kw.Pos
		return s, nil
	}
	p.next() // else

	var els *Block
	switch next := p.peek(); {
	case next.is("{"):
		els, err = p.block()
		if err != nil {
			return nil, err
		}

	case next.isKeyword("if"):
		p.next()
		nested, err := p.ifStmt(next)
		if err != nil {
			return nil, err
		}
		els = &Block{Stmts: []Stmt{nested}}
		els.pos = next.Pos
		els.Rbrace = lastRbrace(nested)

	default:
		return nil, p.errorAt(next, MalformedIf, "expected '{' or if after else, found %s", found(next))
	}

	s := &IfElseStmt{Cond: cond, Then: then, Else: els}
	s.pos = kw.Pos
	return s, nil
}

// lastRbrace returns the closing brace that ends an if statement.
func lastRbrace(s Stmt) Pos {
	switch s := s.(type) {
	case *IfStmt:
		return s.Then.Rbrace
	case *IfElseStmt:
		return s.Else.Rbrace
	}
	return s.Pos()
}

// whileStmt parses the rest of: while expr block
func (p *Parser) whileStmt(kw Token) (Stmt, error) {
	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	s := &WhileStmt{Cond: cond, Body: body}
	s.pos = kw.Pos
	return s, nil
}

// loopStmt parses the rest of: loop NUMBER block
func (p *Parser) loopStmt(kw Token) (Stmt, error) {
	tok := p.peek()
	if !tok.IsNumber() {
		return nil, p.errorAt(tok, MalformedLoopCount, "expected number after loop, found %s", found(tok))
	}
	p.next()

	count, err := strconv.ParseUint(tok.Lit, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok, MalformedLoopCount, "loop count %s out of range", tok.Lit)
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	s := &LoopStmt{Count: count, Body: body}
	s.pos = kw.Pos
	return s, nil
}

// printStmt parses the rest of: print operand ;
// The operand is kept as raw text and never evaluated here.
func (p *Parser) printStmt(kw Token) (Stmt, error) {
	tok := p.next()
	if !isOperand(tok) {
		return nil, p.errorAt(tok, MalformedPrint, "expected name or number after print, found %s", found(tok))
	}
	if semi := p.next(); !semi.is(";") {
		return nil, p.errorAt(semi, MalformedPrint, "expected ';' after print %s, found %s", tok.Lit, found(semi))
	}

	s := &PrintStmt{Text: tok.Lit}
	s.pos = kw.Pos
	return s, nil
}

// block parses { stmts... }
func (p *Parser) block() (*Block, error) {
	open := p.next()
	if !open.is("{") {
		return nil, p.errorAt(open, MalformedBody, "expected '{', found %s", found(open))
	}

	b := &Block{}
	b.pos = open.Pos

	for {
		tok := p.peek()
		if tok.IsEOF() {
			return nil, p.errorAt(tok, UnterminatedBlock, "block opened at %s is never closed", open.Pos)
		}
		if tok.is("}") {
			break
		}
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}

	closing := p.next()
	if closing.Depth != open.Depth {
		return nil, p.errorAt(closing, MalformedBody, "'}' at depth %d does not close '{' at depth %d", closing.Depth, open.Depth)
	}
	b.Rbrace = closing.Pos
	return b, nil
}

// ----------------------------------------------------------------------------
// Expressions

// cond parses a condition, which must be followed by a block.
func (p *Parser) cond() (Expr, error) {
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if next := p.peek(); !next.is("{") {
		return nil, p.errorAt(next, MalformedExpression, "expected '{' after condition, found %s", found(next))
	}
	return x, nil
}

// terminator consumes the punctuation lit that must end an expression.
func (p *Parser) terminator(lit string) error {
	if tok := p.next(); !tok.is(lit) {
		return p.errorAt(tok, MalformedExpression, "expected '%s' after expression, found %s", lit, found(tok))
	}
	return nil
}

// expr parses operand [OP expr]. It stops in front of ';' or '{' and leaves
// it for the caller.
//
// The operand is always the left child and the rest of the chain the right
// child, so a + b + c parses as a + (b + c).
func (p *Parser) expr() (Expr, error) {
	tok := p.next()
	if !isOperand(tok) {
		return nil, p.errorAt(tok, MalformedExpression, "expected name or number, found %s", found(tok))
	}
	x := &Value{Lit: tok.Lit}
	x.pos = tok.Pos

	next := p.peek()
	if next.is(";") || next.is("{") {
		return x, nil
	}
	if !next.IsOperator() {
		return nil, p.errorAt(next, MalformedExpression, "expected operator, ';' or '{' after %s, found %s", tok.Lit, found(next))
	}
	p.next()

	y, err := p.expr()
	if err != nil {
		return nil, err
	}

	op := &Operation{Op: next.Lit, X: x, Y: y}
	op.pos = x.pos
	return op, nil
}
