// Copyright © 2026 The iota authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/diagnostic"
	"github.com/iotalang/iota/parser"
	"github.com/iotalang/iota/types"
	"github.com/sirupsen/logrus"
)

const inputName = "<repl>"

// Session checks input incrementally.  Every accepted entry is appended to
// the session source, and each new entry is analyzed together with
// everything accepted before it.
type Session struct {
	log      *logrus.Entry
	renderer *diagnostic.Renderer

	accepted string
	pending  string
	count    int // items in accepted
	globals  *analysis.Scope
}

// NewSession returns an empty session.  A nil log discards log output.
func NewSession(log *logrus.Entry, color diagnostic.ColorMode) *Session {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	s := &Session{log: log}
	s.renderer = &diagnostic.Renderer{
		Color: color,
		SourceReader: func(string) ([]byte, error) {
			return []byte(s.accepted + s.pending), nil
		},
	}
	return s
}

// Pending reports whether the session is waiting for the rest of an entry.
func (s *Session) Pending() bool {
	return s.pending != ""
}

// Source returns the accepted source text.
func (s *Session) Source() string {
	return s.accepted
}

// Reset forgets all accepted and pending input.
func (s *Session) Reset() {
	s.accepted = ""
	s.pending = ""
	s.count = 0
	s.globals = nil
}

// Cancel drops pending input.
func (s *Session) Cancel() {
	s.pending = ""
}

// Globals returns the global symbols declared so far, sorted by name.
func (s *Session) Globals() []*analysis.Symbol {
	if s.globals == nil {
		return nil
	}
	syms := make([]*analysis.Symbol, 0, len(s.globals.Symbols))
	for _, sym := range s.globals.Symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}

// Eval handles one line of input and writes any output to w.  Lines are
// buffered until they form complete items.  Lines starting with ':' are
// session commands.  Eval returns io.EOF after :quit.
func (s *Session) Eval(w io.Writer, line string) error {
	if !s.Pending() && strings.HasPrefix(strings.TrimSpace(line), ":") {
		return s.command(w, strings.TrimSpace(line))
	}
	s.pending += line + "\n"
	if strings.TrimSpace(s.pending) == "" {
		s.pending = ""
		return nil
	}

	text := s.accepted + s.pending
	items, err := parser.ParseItems(inputName, []byte(text))
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) && perr.Incomplete() {
			s.log.Debug("entry incomplete")
			return nil
		}
		return s.reject(w, err)
	}
	result, err := analysis.AnalyzeItems(items, &analysis.Config{Logger: s.log})
	if err != nil {
		return s.reject(w, err)
	}

	from := s.count
	s.accepted = text
	s.pending = ""
	s.count = len(items)
	s.globals = result.Globals
	s.log.WithField("items", len(items)).Debug("entry accepted")
	return s.report(w, items[from:])
}

func (s *Session) reject(w io.Writer, err error) error {
	d := diagnostic.FromError(inputName, err)
	rerr := s.renderer.Render(w, d)
	s.pending = ""
	return rerr
}

// report describes new items: declarations by their signature and
// expression statements by their type.
func (s *Session) report(w io.Writer, items []ast.Item) error {
	for _, it := range items {
		var line string
		switch n := it.(type) {
		case *ast.FuncDecl:
			line = s.globals.LookupLocal(n.Name).Describe()
		case *ast.VarDecl:
			line = s.globals.LookupLocal(n.Name).Describe()
		case *ast.ExprStmt:
			if n.X.DataType() == types.Untyped {
				continue
			}
			line = n.X.DataType().String()
		default:
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) command(w io.Writer, cmd string) error {
	var err error
	switch cmd {
	case ":quit", ":q":
		return io.EOF
	case ":reset":
		s.Reset()
		_, err = fmt.Fprintln(w, "session cleared")
	case ":symbols":
		for _, sym := range s.Globals() {
			if _, err = fmt.Fprintln(w, sym.Describe()); err != nil {
				break
			}
		}
	case ":source":
		_, err = io.WriteString(w, s.accepted)
	case ":help":
		_, err = io.WriteString(w, helpText)
	default:
		_, err = fmt.Fprintf(w, "unknown command %s (try :help)\n", cmd)
	}
	return err
}

const helpText = `Enter declarations and statements; each entry is checked together with
everything accepted before it.  Entries that fail are discarded.

  :symbols  list global declarations
  :source   print the accepted source
  :reset    forget everything
  :quit     leave
`
