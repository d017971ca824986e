// Package parse turns source text into named terms.
package parse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Pos is a location in the source. Line and Column count from 1, Index is
// the 0-based character offset.
type Pos struct {
	Line   int
	Column int
	Index  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Error is a syntax error.
type Error struct {
	Msg string
	Pos Pos
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Msg }

type kind uint8

const (
	tEOF kind = iota
	tIdent
	tInt
	tKeyword
	tSymbol
)

type token struct {
	kind kind
	text string
	pos  Pos
}

func (t token) String() string {
	if t.kind == tEOF {
		return "EOF"
	}
	return t.text
}

var keywords = []string{"if", "then", "else", "forall", "exists", "True", "False", "Int", "Bool", "Type"}

// Longest symbols first so that "->" wins over "-".
var symbols = []string{"->", "==", "&&", "||", "(", ")", ":", ".", "\\", "λ", "∀", "∃", "+", "-", "*", "/", "<", "!"}

func isIdentStart(r rune) bool {
	return r == '_' || (unicode.IsLetter(r) && r != 'λ')
}

func isIdentRest(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\''
}

func scan(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	pos := Pos{Line: 1, Column: 1}
	advance := func(n int) {
		for _, r := range rs[pos.Index : pos.Index+n] {
			if r == '\n' {
				pos.Line++
				pos.Column = 1
			} else {
				pos.Column++
			}
		}
		pos.Index += n
	}
	for pos.Index < len(rs) {
		r := rs[pos.Index]
		rest := string(rs[pos.Index:])
		switch {
		case unicode.IsSpace(r):
			advance(1)
		case strings.HasPrefix(rest, "--"):
			n := strings.IndexRune(rest, '\n')
			if n < 0 {
				n = len(rest)
			}
			advance(len([]rune(rest[:n])))
		case unicode.IsDigit(r):
			n := 1
			for pos.Index+n < len(rs) && unicode.IsDigit(rs[pos.Index+n]) {
				n++
			}
			toks = append(toks, token{tInt, string(rs[pos.Index : pos.Index+n]), pos})
			advance(n)
		case isIdentStart(r):
			n := 1
			for pos.Index+n < len(rs) && isIdentRest(rs[pos.Index+n]) {
				n++
			}
			text := string(rs[pos.Index : pos.Index+n])
			toks = append(toks, token{lo.Ternary(lo.Contains(keywords, text), tKeyword, tIdent), text, pos})
			advance(n)
		default:
			sym, ok := lo.Find(symbols, func(s string) bool { return strings.HasPrefix(rest, s) })
			if !ok {
				return nil, &Error{fmt.Sprintf("unexpected character %q", r), pos}
			}
			toks = append(toks, token{tSymbol, sym, pos})
			advance(len([]rune(sym)))
		}
	}
	return append(toks, token{tEOF, "", pos}), nil
}
