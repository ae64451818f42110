// Copyright © 2026 The iota authors

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
	parsec "github.com/prataprc/goparsec"
)

var keywords = map[string]bool{
	"func":   true,
	"var":    true,
	"const":  true,
	"if":     true,
	"else":   true,
	"while":  true,
	"return": true,
	"print":  true,
	"true":   true,
	"false":  true,
}

// grammar holds the combinators for one parse along with the bookkeeping
// used to report the furthest point the parse reached.
type grammar struct {
	src *source

	far  int
	want []string
	err  *Error // first error raised while building nodes

	program parsec.Parser
	items   parsec.Parser
}

// missing is the node produced by optional when its parser does not match.
type missing struct{}

func newGrammar(src *source) *grammar {
	g := &grammar{src: src, far: -1}

	identTok := parsec.Token(`[A-Za-z_][A-Za-z0-9_]*`, "IDENT")
	ident := g.expect("identifier", func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
		n, news := identTok(s)
		if t, ok := n.(*parsec.Terminal); ok && !keywords[t.Value] {
			return t, news
		}
		return nil, s
	})
	kw := func(word string) parsec.Parser {
		return g.expect("'"+word+"'", func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
			n, news := identTok(s)
			if t, ok := n.(*parsec.Terminal); ok && t.Value == word {
				return t, news
			}
			return nil, s
		})
	}
	typeName := g.expect("type", func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
		n, news := identTok(s)
		if t, ok := n.(*parsec.Terminal); ok {
			if _, ok := types.Parse(t.Value); ok {
				return t, news
			}
		}
		return nil, s
	})
	atom := func(text string) parsec.Parser {
		return g.expect("'"+text+"'", parsec.Atom(text, text))
	}

	lparen, rparen := atom("("), atom(")")
	lbrace, rbrace := atom("{"), atom("}")
	comma, colon, semi := atom(","), atom(":"), atom(";")
	assignOp := atom("=")

	floatLit := g.expect("number", parsec.Token(`[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?`, "FLOAT"))
	intLit := g.expect("number", parsec.Token(`[0-9]+`, "INT"))
	eqOp := g.expect("operator", parsec.Token(`(?:==|!=)`, "EQOP"))
	relOp := g.expect("operator", parsec.Token(`(?:<=|>=|<|>)`, "RELOP"))
	addOp := g.expect("operator", parsec.Token(`[+-]`, "ADDOP"))
	mulOp := g.expect("operator", parsec.Token(`[*/]`, "MULOP"))
	minus := atom("-")

	// Expressions, lowest precedence last.
	var expr, unary parsec.Parser
	argList := parsec.And(g.list, &expr, parsec.Kleene(seq, parsec.And(seq, comma, &expr)))
	call := parsec.And(g.callNode, ident, lparen, g.optional(argList), rparen)
	paren := parsec.And(g.parenNode, lparen, &expr, rparen)
	primary := parsec.OrdChoice(first,
		parsec.And(g.floatNode, floatLit),
		parsec.And(g.intNode, intLit),
		parsec.And(g.boolNode, kw("true")),
		parsec.And(g.boolNode, kw("false")),
		call,
		parsec.And(g.identNode, ident),
		paren,
	)
	unary = parsec.OrdChoice(first,
		parsec.And(g.unaryNode, minus, &unary),
		primary,
	)
	binaryLevel := func(op, operand interface{}) parsec.Parser {
		return parsec.And(g.binaryNode, operand, parsec.Kleene(seq, parsec.And(seq, op, operand)))
	}
	mul := binaryLevel(mulOp, &unary)
	add := binaryLevel(addOp, mul)
	rel := binaryLevel(relOp, add)
	expr = binaryLevel(eqOp, rel)

	// Items.
	var item, ifStmt parsec.Parser
	block := parsec.And(g.blockNode, lbrace, parsec.Kleene(seq, &item), rbrace)
	param := parsec.And(g.paramNode, ident, colon, typeName)
	paramList := parsec.And(g.list, param, parsec.Kleene(seq, parsec.And(seq, comma, param)))
	funcDecl := parsec.And(g.funcNode,
		kw("func"), ident, lparen, g.optional(paramList), rparen,
		g.optional(parsec.And(seq, colon, typeName)),
		block,
	)
	varDecl := parsec.And(g.varNode,
		parsec.OrdChoice(first, kw("var"), kw("const")),
		ident, colon, typeName,
		g.optional(parsec.And(seq, assignOp, &expr)),
		semi,
	)
	printStmt := parsec.And(g.printNode, kw("print"), lparen, &expr, rparen, semi)
	elseBranch := parsec.OrdChoice(first, block, &ifStmt)
	ifStmt = parsec.And(g.ifNode,
		kw("if"), lparen, &expr, rparen, block,
		g.optional(parsec.And(seq, kw("else"), elseBranch)),
	)
	whileStmt := parsec.And(g.whileNode, kw("while"), lparen, &expr, rparen, block)
	returnStmt := parsec.And(g.returnNode, kw("return"), g.optional(&expr), semi)
	assignStmt := parsec.And(g.assignNode, ident, assignOp, &expr, semi)
	exprStmt := parsec.And(g.exprStmtNode, &expr, semi)

	decl := parsec.OrdChoice(first, funcDecl, varDecl)
	item = parsec.OrdChoice(first,
		funcDecl,
		varDecl,
		printStmt,
		&ifStmt,
		whileStmt,
		returnStmt,
		assignStmt,
		exprStmt,
		block,
	)

	g.program = parsec.Kleene(seq, decl)
	g.items = parsec.Kleene(seq, &item)
	return g
}

// expect wraps a terminal parser so that a failed match is recorded as the
// furthest expectation when it happens at or beyond the current furthest
// offset.
func (g *grammar) expect(what string, p parsec.Parser) parsec.Parser {
	return func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
		n, news := p(s)
		if n != nil {
			return n, news
		}
		_, probe := s.Clone().SkipWS()
		switch at := probe.GetCursor(); {
		case at > g.far:
			g.far = at
			g.want = []string{what}
		case at == g.far:
			for _, w := range g.want {
				if w == what {
					return nil, s
				}
			}
			g.want = append(g.want, what)
		}
		return nil, s
	}
}

// optional matches p or nothing.  When p fails the result is a missing
// node and the scanner is left where it was.
func (g *grammar) optional(p interface{}) parsec.Parser {
	var parser parsec.Parser
	switch p := p.(type) {
	case parsec.Parser:
		parser = p
	case *parsec.Parser:
		parser = func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) { return (*p)(s) }
	default:
		panic(fmt.Sprintf("parser: optional of %T", p))
	}
	return func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
		if n, news := parser(s); n != nil {
			return n, news
		}
		return missing{}, s
	}
}

// expected renders the expectations recorded at the furthest offset.
func (g *grammar) expected() string {
	switch len(g.want) {
	case 0:
		return "declaration"
	case 1:
		return g.want[0]
	}
	return strings.Join(g.want[:len(g.want)-1], ", ") + " or " + g.want[len(g.want)-1]
}

func (g *grammar) fail(offset int, format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	p := g.src.pos(offset)
	g.err = &Error{Line: p.Line, Col: p.Col, Msg: fmt.Sprintf(format, args...)}
}

func (g *grammar) pos(n parsec.ParsecNode) ast.Pos {
	return g.src.pos(terminal(n).Position)
}

// Node builders.  Each receives the nodes matched by the sequence it is
// attached to.

func seq(nodes []parsec.ParsecNode) parsec.ParsecNode { return nodes }

func first(nodes []parsec.ParsecNode) parsec.ParsecNode { return nodes[0] }

func terminal(n parsec.ParsecNode) *parsec.Terminal {
	return n.(*parsec.Terminal)
}

func children(n parsec.ParsecNode) []parsec.ParsecNode {
	if n == nil {
		return nil
	}
	return n.([]parsec.ParsecNode)
}

// list flattens "x (, x)*" into a slice of x.
func (g *grammar) list(nodes []parsec.ParsecNode) parsec.ParsecNode {
	out := []parsec.ParsecNode{nodes[0]}
	for _, pair := range children(nodes[1]) {
		out = append(out, children(pair)[1])
	}
	return out
}

func (g *grammar) intNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	t := terminal(nodes[0])
	v, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		g.fail(t.Position, "integer literal %s out of range", t.Value)
	}
	return &ast.IntLit{Pos: g.pos(t), Value: v}
}

func (g *grammar) floatNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	t := terminal(nodes[0])
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		g.fail(t.Position, "float literal %s out of range", t.Value)
	}
	return &ast.FloatLit{Pos: g.pos(t), Value: v}
}

func (g *grammar) boolNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	t := terminal(nodes[0])
	return &ast.BoolLit{Pos: g.pos(t), Value: t.Value == "true"}
}

func (g *grammar) identNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	t := terminal(nodes[0])
	return &ast.Ident{Pos: g.pos(t), Name: t.Value}
}

func (g *grammar) callNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	name := terminal(nodes[0])
	call := &ast.Call{Pos: g.pos(name), Name: name.Value}
	if _, ok := nodes[2].(missing); !ok {
		for _, arg := range children(nodes[2]) {
			call.Args = append(call.Args, arg.(ast.Expr))
		}
	}
	return call
}

func (g *grammar) parenNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[1]
}

func (g *grammar) unaryNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.Unary{Pos: g.pos(nodes[0]), Op: ast.OpNeg, Operand: nodes[1].(ast.Expr)}
}

// binaryNode folds "operand (op operand)*" into a left-associative tree.
func (g *grammar) binaryNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	left := nodes[0].(ast.Expr)
	for _, pair := range children(nodes[1]) {
		pair := children(pair)
		op := terminal(pair[0])
		left = &ast.Binary{
			Pos:   g.pos(op),
			Op:    ast.Op(op.Value),
			Left:  left,
			Right: pair[1].(ast.Expr),
		}
	}
	return left
}

func (g *grammar) blockNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.BlockStmt{Pos: g.pos(nodes[0]), Items: itemList(nodes[1])}
}

func itemList(n parsec.ParsecNode) []ast.Item {
	var items []ast.Item
	for _, it := range children(n) {
		items = append(items, it.(ast.Item))
	}
	return items
}

func (g *grammar) paramNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	name := terminal(nodes[0])
	typ, _ := types.Parse(terminal(nodes[2]).Value)
	return ast.Param{Pos: g.pos(name), Name: name.Value, Type: typ}
}

func (g *grammar) funcNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	name := terminal(nodes[1])
	fn := &ast.FuncDecl{Pos: g.pos(nodes[0]), Name: name.Value}
	if _, ok := nodes[3].(missing); !ok {
		for _, p := range children(nodes[3]) {
			fn.Params = append(fn.Params, p.(ast.Param))
		}
	}
	if _, ok := nodes[5].(missing); !ok {
		fn.Result, _ = types.Parse(terminal(children(nodes[5])[1]).Value)
	}
	fn.Body = nodes[6].(*ast.BlockStmt).Items
	return fn
}

func (g *grammar) varNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	kw := terminal(nodes[0])
	typ, _ := types.Parse(terminal(nodes[3]).Value)
	d := &ast.VarDecl{
		Pos:   g.pos(kw),
		Const: kw.Value == "const",
		Name:  terminal(nodes[1]).Value,
		Type:  typ,
	}
	if _, ok := nodes[4].(missing); !ok {
		d.Init = children(nodes[4])[1].(ast.Expr)
	}
	return d
}

func (g *grammar) printNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.PrintStmt{Pos: g.pos(nodes[0]), Value: nodes[2].(ast.Expr)}
}

func (g *grammar) ifNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	stmt := &ast.IfStmt{
		Pos:  g.pos(nodes[0]),
		Cond: nodes[2].(ast.Expr),
		Then: nodes[4].(*ast.BlockStmt).Items,
	}
	if _, ok := nodes[5].(missing); !ok {
		switch branch := children(nodes[5])[1].(type) {
		case *ast.BlockStmt:
			stmt.Else = branch.Items
		case *ast.IfStmt:
			stmt.Else = []ast.Item{branch}
		}
	}
	return stmt
}

func (g *grammar) whileNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.WhileStmt{
		Pos:  g.pos(nodes[0]),
		Cond: nodes[2].(ast.Expr),
		Body: nodes[4].(*ast.BlockStmt).Items,
	}
}

func (g *grammar) returnNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	stmt := &ast.ReturnStmt{Pos: g.pos(nodes[0])}
	if e, ok := nodes[1].(ast.Expr); ok {
		stmt.Value = e
	}
	return stmt
}

func (g *grammar) assignNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	name := terminal(nodes[0])
	return &ast.AssignStmt{Pos: g.pos(name), Name: name.Value, Value: nodes[2].(ast.Expr)}
}

func (g *grammar) exprStmtNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	x := nodes[0].(ast.Expr)
	return &ast.ExprStmt{Pos: x.Position(), X: x}
}
