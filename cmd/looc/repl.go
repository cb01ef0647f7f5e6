package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/you-not-fish/looc/internal/codegen"
	"github.com/you-not-fish/looc/internal/syntax"
)

const (
	historyFile = ".looc_history"
	promptMain  = "looc> "
	promptCont  = "....> "
	replName    = "<repl>"
)

var (
	banner   = fmt.Sprintf("looc %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", Version)
	helpText = `REPL commands:
  :cpp     Print the C++ for the whole session
  :ast     Print the AST of the whole session
  :vars    List the variables assigned so far and names never assigned
  :reset   Forget every statement entered so far
  :help    Show this text
  :quit    Exit the REPL`
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func runREPL() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := newSession(options().Codegen, os.Stdout, os.Stderr)
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if s.handle(code) {
			break
		}
	}
	return 0
}

// readByParseProbe reads lines until they form input that is complete:
// either it parses, or it fails for a reason more input cannot fix.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether src is cut off and should be continued on the
// next line. Commands are always complete.
func needsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	_, err := syntax.Parse(replName, strings.NewReader(src))
	return err != nil && syntax.IsIncomplete(err)
}

// session accumulates the statements entered in the REPL. Every input is
// parsed together with everything accepted before it, so variables and the
// loop counter are those of the whole program.
type session struct {
	cfg  codegen.Config
	out  io.Writer
	errw io.Writer

	src  string       // accepted source so far
	file *syntax.File // AST of src
}

func newSession(cfg codegen.Config, out, errw io.Writer) *session {
	s := &session{cfg: cfg, out: out, errw: errw}
	s.reset()
	return s
}

func (s *session) reset() {
	s.src = ""
	s.file, _ = syntax.Parse(replName, strings.NewReader(""))
}

// handle runs one complete input and reports whether the session is over.
func (s *session) handle(code string) bool {
	if cmd := strings.TrimSpace(code); strings.HasPrefix(cmd, ":") {
		return s.command(strings.ToLower(cmd))
	}
	s.eval(code)
	return false
}

func (s *session) command(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":reset":
		s.reset()
		fmt.Fprintln(s.out, "session cleared")
	case ":cpp":
		fmt.Fprint(s.out, codegen.Emit(s.file, s.cfg))
	case ":ast":
		if err := syntax.Fprint(s.out, s.file); err != nil {
			fmt.Fprintln(s.errw, red(err.Error()))
		}
	case ":vars":
		if len(s.file.Vars) == 0 {
			fmt.Fprintln(s.out, "no variables")
		} else {
			fmt.Fprintln(s.out, strings.Join(s.file.Vars, ", "))
		}
		var unassigned []string
		for _, name := range syntax.Names(s.file) {
			if !s.file.HasVar(name) {
				unassigned = append(unassigned, name)
			}
		}
		if len(unassigned) > 0 {
			fmt.Fprintf(s.out, "read but never assigned: %s\n", strings.Join(unassigned, ", "))
		}
	case ":help":
		fmt.Fprintln(s.out, helpText)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

// eval appends code to the session and prints the C++ for its statements.
// When the input also changes statements printed earlier, such as an else
// completing the last if, those are printed again from the first one changed.
// Input that fails to parse is dropped and leaves the session unchanged.
func (s *session) eval(code string) {
	src := s.src
	if src != "" {
		src += "\n"
	}
	src += code

	f, err := syntax.Parse(replName, strings.NewReader(src))
	if err != nil {
		fmt.Fprintln(s.errw, red(syntax.FormatError(err, src)))
		return
	}

	from := firstChanged(s.file, f, s.cfg)
	if from < len(s.file.Stmts) {
		fmt.Fprintf(s.errw, "note: input changes statement %d, printing again from there\n", from+1)
	}
	s.src, s.file = src, f
	fmt.Fprint(s.out, codegen.EmitStmts(f, f.Stmts[from:], s.cfg))
}

// firstChanged returns the index of the first statement of prev whose C++
// differs in cur, or len(prev.Stmts) if cur only appends to prev.
func firstChanged(prev, cur *syntax.File, cfg codegen.Config) int {
	for i, old := range prev.Stmts {
		if i >= len(cur.Stmts) {
			return i
		}
		before := codegen.EmitStmts(prev, []syntax.Stmt{old}, cfg)
		after := codegen.EmitStmts(cur, cur.Stmts[i:i+1], cfg)
		if before != after {
			return i
		}
	}
	return len(prev.Stmts)
}
