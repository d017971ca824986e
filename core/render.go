package core

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/smasher164/dtt/syntax"
)

// Binding strength of a printed position, loosest first.
type prec int

const (
	precTerm prec = iota
	precArrow
	precOr
	precAnd
	precCmp
	precAdd
	precMul
	precUnary
	precApp
	precAtom
)

var opPrec = map[syntax.Op]prec{
	syntax.Or:    precOr,
	syntax.And:   precAnd,
	syntax.Equal: precCmp,
	syntax.Lt:    precCmp,
	syntax.Add:   precAdd,
	syntax.Sub:   precAdd,
	syntax.Mul:   precMul,
	syntax.Div:   precMul,
}

func paren(outer, inner prec, s string) string {
	return lo.Ternary(outer > inner, "("+s+")", s)
}

// pickFreshName extends ctx with s, priming it until it no longer shadows
// a name already in scope. The wildcard is never renamed.
func pickFreshName(ctx []string, s string) ([]string, string) {
	if s != string(syntax.Wildcard) && lo.Contains(ctx, s) {
		return pickFreshName(ctx, s+"'")
	}
	return prepend(s, ctx), s
}

func prepend[T any](v T, from []T) []T {
	return append([]T{v}, from...)
}

func render(ctx []string, t Term, p prec) string {
	switch t := t.(type) {
	case Var:
		if int(t.Ix) < len(ctx) {
			return ctx[t.Ix]
		}
		return string(t.Name)
	case IntLit:
		return paren(p, lo.Ternary(t < 0, precUnary, precAtom), strconv.Itoa(int(t)))
	case BoolLit, IntType, BoolType, Universe:
		return t.DeBruijnString()
	case BinOp:
		q := opPrec[t.Op]
		// Comparisons do not associate.
		lp := lo.Ternary(q == precCmp, q+1, q)
		return paren(p, q, render(ctx, t.L, lp)+" "+t.Op.String()+" "+render(ctx, t.R, q+1))
	case Not:
		return paren(p, precUnary, "!"+render(ctx, t.T, precAtom))
	case App:
		return paren(p, precApp, render(ctx, t.Fn, precApp)+" "+render(ctx, t.Arg, precAtom))
	case Lam:
		ctx1, x := pickFreshName(ctx, string(t.Bind))
		return paren(p, precTerm, "λ"+x+":"+render(ctx, t.Type, precTerm)+". "+render(ctx1, t.Body, precTerm))
	case If:
		return paren(p, precTerm, "if "+render(ctx, t.Cond, precTerm)+" then "+render(ctx, t.Body, precTerm)+" else "+render(ctx, t.Else, precTerm))
	case The:
		return "(" + render(ctx, t.X, precTerm) + " : " + render(ctx, t.Type, precTerm) + ")"
	case Forall:
		ctx1, x := pickFreshName(ctx, string(t.Bind))
		if t.Bind == syntax.Wildcard {
			return paren(p, precArrow, render(ctx, t.Type, precOr)+" -> "+render(ctx1, t.Body, precArrow))
		}
		return paren(p, precTerm, "∀("+x+":"+render(ctx, t.Type, precTerm)+"). "+render(ctx1, t.Body, precTerm))
	case Exists:
		ctx1, x := pickFreshName(ctx, string(t.Bind))
		return paren(p, precTerm, "∃("+x+":"+render(ctx, t.Type, precTerm)+"). "+render(ctx1, t.Body, precTerm))
	}
	panic("unreachable")
}

func (v Var) ContextString(ctx []string) string      { return render(ctx, v, precTerm) }
func (i IntLit) ContextString(ctx []string) string   { return render(ctx, i, precTerm) }
func (b BoolLit) ContextString(ctx []string) string  { return render(ctx, b, precTerm) }
func (b BinOp) ContextString(ctx []string) string    { return render(ctx, b, precTerm) }
func (n Not) ContextString(ctx []string) string      { return render(ctx, n, precTerm) }
func (a App) ContextString(ctx []string) string      { return render(ctx, a, precTerm) }
func (l Lam) ContextString(ctx []string) string      { return render(ctx, l, precTerm) }
func (i If) ContextString(ctx []string) string       { return render(ctx, i, precTerm) }
func (t The) ContextString(ctx []string) string      { return render(ctx, t, precTerm) }
func (f Forall) ContextString(ctx []string) string   { return render(ctx, f, precTerm) }
func (e Exists) ContextString(ctx []string) string   { return render(ctx, e, precTerm) }
func (IntType) ContextString([]string) string        { return "Int" }
func (BoolType) ContextString([]string) string       { return "Bool" }
func (u Universe) ContextString(ctx []string) string { return render(ctx, u, precTerm) }
