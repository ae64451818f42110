// Copyright © 2026 The iota authors

/*
Package parser reads iota source text into a syntax tree.

	program  := decl*
	decl     := funcDecl | varDecl
	funcDecl := 'func' IDENT '(' [param (',' param)*] ')' [':' type] block
	param    := IDENT ':' type
	varDecl  := ('var' | 'const') IDENT ':' type ['=' expr] ';'
	block    := '{' item* '}'
	item     := decl | 'print' '(' expr ')' ';'
	          | 'if' '(' expr ')' block ['else' (block | if)]
	          | 'while' '(' expr ')' block
	          | 'return' [expr] ';' | IDENT '=' expr ';' | expr ';' | block
	expr     := rel (('==' | '!=') rel)*
	rel      := add (('<' | '>' | '<=' | '>=') add)*
	add      := mul (('+' | '-') mul)*
	mul      := unary (('*' | '/') unary)*
	unary    := '-' unary | primary
	primary  := FLOAT | INT | 'true' | 'false' | IDENT '(' [expr (',' expr)*] ')'
	          | IDENT | '(' expr ')'

Line comments start with // and run to the end of the line.  Every node in
the resulting tree records the line and column where it begins.
*/
package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iotalang/iota/ast"
	parsec "github.com/prataprc/goparsec"
)

// Error is a syntax error.
type Error struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

// Incomplete reports whether the input ended before the parse could
// finish, so that appending more text might make it valid.
func (e *Error) Incomplete() bool {
	return strings.HasSuffix(e.Msg, "found "+endOfInput)
}

// Position returns the location of the error.
func (e *Error) Position() ast.Pos {
	return ast.Pos{Line: e.Line, Col: e.Col}
}

// Parse parses a complete program.  The name is used only in errors.
func Parse(name string, text []byte) (*ast.Program, error) {
	nodes, err := parse(name, text, func(g *grammar) parsec.Parser { return g.program })
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	for _, n := range children(nodes) {
		prog.Decls = append(prog.Decls, n.(ast.Decl))
	}
	return prog, nil
}

// ParseItems parses a sequence of items, the form accepted at the
// interactive prompt: declarations and statements may be mixed freely.
func ParseItems(name string, text []byte) ([]ast.Item, error) {
	nodes, err := parse(name, text, func(g *grammar) parsec.Parser { return g.items })
	if err != nil {
		return nil, err
	}
	return itemList(nodes), nil
}

// ParseReader reads all of r and parses it as a program.
func ParseReader(name string, r io.Reader) (*ast.Program, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(name, text)
}

func parse(name string, text []byte, start func(*grammar) parsec.Parser) (parsec.ParsecNode, error) {
	src := newSource(text)
	g := newGrammar(src)
	s := parsec.NewScanner(stripComments(text))
	root, s := start(g)(s)
	if g.err != nil {
		g.err.File = name
		return nil, g.err
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		at := g.far
		if at < s.GetCursor() {
			at = s.GetCursor()
		}
		p := src.pos(at)
		return nil, &Error{
			File: name,
			Line: p.Line,
			Col:  p.Col,
			Msg:  fmt.Sprintf("expected %s, found %s", g.expected(), src.near(at)),
		}
	}
	return root, nil
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
