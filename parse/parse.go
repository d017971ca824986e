package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smasher164/dtt/syntax"
)

// bailout carries a syntax error up to Parse.
type bailout struct{ err *Error }

type parser struct {
	toks []token
	i    int
}

// Parse parses src as a single term.
func Parse(src string) (t syntax.Term, err error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			t, err = nil, b.err
		}
	}()
	t = p.term()
	p.expect(tEOF, "")
	return t, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tEOF {
		p.i++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) {
	panic(bailout{&Error{fmt.Sprintf(format, args...), tok.pos}})
}

func (p *parser) is(k kind, text string) bool {
	tok := p.peek()
	return tok.kind == k && (text == "" || tok.text == text)
}

func (p *parser) accept(k kind, text string) bool {
	if p.is(k, text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(k kind, text string) token {
	if !p.is(k, text) {
		want := text
		switch {
		case k == tEOF:
			want = "EOF"
		case k == tIdent:
			want = "identifier"
		}
		p.errorf(p.peek(), "expected %q, got %q", want, p.peek())
	}
	return p.next()
}

func (p *parser) term() syntax.Term {
	switch {
	case p.accept(tSymbol, "\\"), p.accept(tSymbol, "λ"):
		x := syntax.Name(p.expect(tIdent, "").text)
		p.expect(tSymbol, ":")
		ty := p.term()
		p.expect(tSymbol, ".")
		return syntax.Lam{Bind: x, Type: ty, Body: p.term()}
	case p.accept(tKeyword, "forall"), p.accept(tSymbol, "∀"):
		x, ty, body := p.quantifier()
		return syntax.Forall{Bind: x, Type: ty, Body: body}
	case p.accept(tKeyword, "exists"), p.accept(tSymbol, "∃"):
		x, ty, body := p.quantifier()
		return syntax.Exists{Bind: x, Type: ty, Body: body}
	case p.accept(tKeyword, "if"):
		cond := p.term()
		p.expect(tKeyword, "then")
		body := p.term()
		p.expect(tKeyword, "else")
		return syntax.If{Cond: cond, Body: body, Else: p.term()}
	}
	from := p.binary(0)
	if p.accept(tSymbol, "->") {
		return syntax.Forall{Bind: syntax.Wildcard, Type: from, Body: p.term()}
	}
	return from
}

func (p *parser) quantifier() (syntax.Name, syntax.Term, syntax.Term) {
	p.expect(tSymbol, "(")
	x := syntax.Name(p.expect(tIdent, "").text)
	p.expect(tSymbol, ":")
	ty := p.term()
	p.expect(tSymbol, ")")
	p.expect(tSymbol, ".")
	return x, ty, p.term()
}

// Binary operators grouped by binding strength, loosest first.
var levels = [][]syntax.Op{
	{syntax.Or},
	{syntax.And},
	{syntax.Equal, syntax.Lt},
	{syntax.Add, syntax.Sub},
	{syntax.Mul, syntax.Div},
}

const cmpLevel = 2

func (p *parser) binaryOp(level int) (syntax.Op, bool) {
	tok := p.peek()
	if tok.kind != tSymbol {
		return 0, false
	}
	for _, op := range levels[level] {
		if op.String() == tok.text {
			return op, true
		}
	}
	return 0, false
}

func (p *parser) binary(level int) syntax.Term {
	if level == len(levels) {
		return p.unary()
	}
	l := p.binary(level + 1)
	for {
		op, ok := p.binaryOp(level)
		if !ok {
			return l
		}
		p.next()
		l = syntax.BinOp{Op: op, L: l, R: p.binary(level + 1)}
		if level == cmpLevel {
			if _, ok := p.binaryOp(level); ok {
				p.errorf(p.peek(), "comparison operators do not associate")
			}
			return l
		}
	}
}

func (p *parser) unary() syntax.Term {
	switch {
	case p.accept(tSymbol, "!"):
		return syntax.Not{T: p.unary()}
	case p.is(tSymbol, "-") && p.toks[p.i+1].kind == tInt:
		p.next()
		return syntax.IntLit(-p.intLit(p.next()))
	}
	t := p.atom()
	for p.atomStart() {
		t = syntax.App{Fn: t, Arg: p.atom()}
	}
	return t
}

func (p *parser) atomStart() bool {
	switch tok := p.peek(); tok.kind {
	case tIdent, tInt:
		return true
	case tKeyword:
		switch tok.text {
		case "True", "False", "Int", "Bool", "Type":
			return true
		}
	case tSymbol:
		return tok.text == "("
	}
	return false
}

func (p *parser) intLit(tok token) int {
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		p.errorf(tok, "invalid integer %s", tok.text)
	}
	return n
}

func (p *parser) atom() syntax.Term {
	tok := p.next()
	switch tok.kind {
	case tInt:
		return syntax.IntLit(p.intLit(tok))
	case tIdent:
		if digits, ok := universeLevel(tok.text); ok {
			return syntax.Universe(p.level(tok, digits))
		}
		return syntax.Var{Name: syntax.Name(tok.text)}
	case tKeyword:
		switch tok.text {
		case "True":
			return syntax.BoolLit(true)
		case "False":
			return syntax.BoolLit(false)
		case "Int":
			return syntax.IntType{}
		case "Bool":
			return syntax.BoolType{}
		case "Type":
			return syntax.Universe(0)
		}
	case tSymbol:
		if tok.text == "(" {
			t := p.term()
			if p.accept(tSymbol, ":") {
				t = syntax.The{X: t, Type: p.term()}
			}
			p.expect(tSymbol, ")")
			return t
		}
	}
	p.errorf(tok, "unexpected %q", tok)
	panic("unreachable")
}

// universeLevel recognizes U followed by ASCII digits as a universe literal
// and returns the digits.
func universeLevel(s string) (string, bool) {
	digits, ok := strings.CutPrefix(s, "U")
	if !ok || digits == "" {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return digits, true
}

func (p *parser) level(tok token, digits string) int {
	if len(digits) > 1 && digits[0] == '0' {
		p.errorf(tok, "invalid universe level %s", tok.text)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		p.errorf(tok, "invalid universe level %s", tok.text)
	}
	return n
}
