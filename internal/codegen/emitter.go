package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting C++ source text.
type emitter struct {
	w      io.Writer
	err    error  // first write error
	unit   string // one level of indentation
	indent int    // current indentation depth
}

func newEmitter(w io.Writer, unit int) *emitter {
	if unit <= 0 {
		unit = DefaultIndent
	}
	return &emitter{w: w, unit: strings.Repeat(" ", unit)}
}

// emit writes a formatted line to the output (no indentation).
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// emitStmt writes a line at the current indentation.
func (e *emitter) emitStmt(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, strings.Repeat(e.unit, e.indent)+format+"\n", args...)
}

// open writes a line ending in '{' and indents what follows.
func (e *emitter) open(format string, args ...interface{}) {
	e.emitStmt(format+" {", args...)
	e.indent++
}

// close dedents and writes the closing brace, followed by suffix if any.
func (e *emitter) close(suffix string) {
	e.indent--
	if suffix == "" {
		e.emitStmt("}")
		return
	}
	e.emitStmt("} %s {", suffix)
	e.indent++
}
