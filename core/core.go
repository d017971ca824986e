// Package core is the indexed representation of terms. Variables refer to
// their binder by de Bruijn index; the name they were written with is kept
// only for display.
package core

import (
	"errors"
	"strconv"

	"github.com/smasher164/dtt/syntax"
)

// ErrInternal marks a violated invariant: the input should have been
// rejected before reaching the failing stage.
var ErrInternal = errors.New("internal error")

// Ix is a de Bruijn index: the number of binders between an occurrence and
// the binder it refers to.
type Ix int

// IxName is a variable occurrence. Name is for display only.
type IxName struct {
	Name syntax.Name
	Ix   Ix
}

// Term is an indexed term. The set of implementations is closed.
type Term interface {
	isTerm()
	DeBruijnString() string
	ContextString(ctx []string) string
}

type Var struct {
	IxName
}

type IntLit int

type BoolLit bool

type BinOp struct {
	Op   syntax.Op
	L, R Term
}

type Not struct {
	T Term
}

type App struct {
	Fn  Term
	Arg Term
}

// Lam, Forall and Exists scope their binder over Body only. Type lives in
// the enclosing scope.
type Lam struct {
	Bind syntax.Name
	Type Term
	Body Term
}

type If struct {
	Cond Term
	Body Term
	Else Term
}

type The struct {
	X    Term
	Type Term
}

type Forall struct {
	Bind syntax.Name
	Type Term
	Body Term
}

type Exists struct {
	Bind syntax.Name
	Type Term
	Body Term
}

type IntType struct{}

type BoolType struct{}

type Universe int

func (Var) isTerm()      {}
func (IntLit) isTerm()   {}
func (BoolLit) isTerm()  {}
func (BinOp) isTerm()    {}
func (Not) isTerm()      {}
func (App) isTerm()      {}
func (Lam) isTerm()      {}
func (If) isTerm()       {}
func (The) isTerm()      {}
func (Forall) isTerm()   {}
func (Exists) isTerm()   {}
func (IntType) isTerm()  {}
func (BoolType) isTerm() {}
func (Universe) isTerm() {}

// Equal reports whether a and b have the same structure and indices.
// Variable and binder names are ignored.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Var:
		b, ok := b.(Var)
		return ok && a.Ix == b.Ix
	case IntLit:
		b, ok := b.(IntLit)
		return ok && a == b
	case BoolLit:
		b, ok := b.(BoolLit)
		return ok && a == b
	case BinOp:
		b, ok := b.(BinOp)
		return ok && a.Op == b.Op && Equal(a.L, b.L) && Equal(a.R, b.R)
	case Not:
		b, ok := b.(Not)
		return ok && Equal(a.T, b.T)
	case App:
		b, ok := b.(App)
		return ok && Equal(a.Fn, b.Fn) && Equal(a.Arg, b.Arg)
	case Lam:
		b, ok := b.(Lam)
		return ok && Equal(a.Type, b.Type) && Equal(a.Body, b.Body)
	case If:
		b, ok := b.(If)
		return ok && Equal(a.Cond, b.Cond) && Equal(a.Body, b.Body) && Equal(a.Else, b.Else)
	case The:
		b, ok := b.(The)
		return ok && Equal(a.X, b.X) && Equal(a.Type, b.Type)
	case Forall:
		b, ok := b.(Forall)
		return ok && Equal(a.Type, b.Type) && Equal(a.Body, b.Body)
	case Exists:
		b, ok := b.(Exists)
		return ok && Equal(a.Type, b.Type) && Equal(a.Body, b.Body)
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case Universe:
		b, ok := b.(Universe)
		return ok && a == b
	}
	panic("unreachable")
}

// Shift adds d to every index in t that is at least c.
func Shift(d, c int, t Term) Term {
	switch t := t.(type) {
	case Var:
		if int(t.Ix) < c {
			return t
		}
		return Var{IxName{t.Name, t.Ix + Ix(d)}}
	case IntLit, BoolLit, IntType, BoolType, Universe:
		return t
	case BinOp:
		return BinOp{t.Op, Shift(d, c, t.L), Shift(d, c, t.R)}
	case Not:
		return Not{Shift(d, c, t.T)}
	case App:
		return App{Shift(d, c, t.Fn), Shift(d, c, t.Arg)}
	case Lam:
		return Lam{t.Bind, Shift(d, c, t.Type), Shift(d, c+1, t.Body)}
	case If:
		return If{Shift(d, c, t.Cond), Shift(d, c, t.Body), Shift(d, c, t.Else)}
	case The:
		return The{Shift(d, c, t.X), Shift(d, c, t.Type)}
	case Forall:
		return Forall{t.Bind, Shift(d, c, t.Type), Shift(d, c+1, t.Body)}
	case Exists:
		return Exists{t.Bind, Shift(d, c, t.Type), Shift(d, c+1, t.Body)}
	}
	panic("unreachable")
}

// Subst replaces index j in t with s.
func Subst(j int, s, t Term) Term {
	switch t := t.(type) {
	case Var:
		if int(t.Ix) == j {
			return s
		}
		return t
	case IntLit, BoolLit, IntType, BoolType, Universe:
		return t
	case BinOp:
		return BinOp{t.Op, Subst(j, s, t.L), Subst(j, s, t.R)}
	case Not:
		return Not{Subst(j, s, t.T)}
	case App:
		return App{Subst(j, s, t.Fn), Subst(j, s, t.Arg)}
	case Lam:
		s1 := Shift(1, 0, s)
		return Lam{t.Bind, Subst(j, s, t.Type), Subst(j+1, s1, t.Body)}
	case If:
		return If{Subst(j, s, t.Cond), Subst(j, s, t.Body), Subst(j, s, t.Else)}
	case The:
		return The{Subst(j, s, t.X), Subst(j, s, t.Type)}
	case Forall:
		s1 := Shift(1, 0, s)
		return Forall{t.Bind, Subst(j, s, t.Type), Subst(j+1, s1, t.Body)}
	case Exists:
		s1 := Shift(1, 0, s)
		return Exists{t.Bind, Subst(j, s, t.Type), Subst(j+1, s1, t.Body)}
	}
	panic("unreachable")
}

// SubstTop substitutes s for the innermost binder of t, where t is the body
// of that binder.
func SubstTop(s, t Term) Term {
	return Shift(-1, 0, Subst(0, Shift(1, 0, s), t))
}

func (v Var) DeBruijnString() string { return strconv.Itoa(int(v.Ix)) }
func (i IntLit) DeBruijnString() string {
	return strconv.Itoa(int(i))
}
func (b BoolLit) DeBruijnString() string { return syntax.BoolLit(b).String() }

func (b BinOp) DeBruijnString() string {
	return "(" + b.L.DeBruijnString() + " " + b.Op.String() + " " + b.R.DeBruijnString() + ")"
}

func (n Not) DeBruijnString() string { return "!" + n.T.DeBruijnString() }

func (a App) DeBruijnString() string {
	return "(" + a.Fn.DeBruijnString() + " " + a.Arg.DeBruijnString() + ")"
}

func (l Lam) DeBruijnString() string {
	return "(λ:" + l.Type.DeBruijnString() + "." + l.Body.DeBruijnString() + ")"
}

func (i If) DeBruijnString() string {
	return "if " + i.Cond.DeBruijnString() + " then " + i.Body.DeBruijnString() + " else " + i.Else.DeBruijnString()
}

func (t The) DeBruijnString() string {
	return "(" + t.X.DeBruijnString() + " : " + t.Type.DeBruijnString() + ")"
}

func (f Forall) DeBruijnString() string {
	return "(∀:" + f.Type.DeBruijnString() + "." + f.Body.DeBruijnString() + ")"
}

func (e Exists) DeBruijnString() string {
	return "(∃:" + e.Type.DeBruijnString() + "." + e.Body.DeBruijnString() + ")"
}

func (IntType) DeBruijnString() string    { return "Int" }
func (BoolType) DeBruijnString() string   { return "Bool" }
func (u Universe) DeBruijnString() string { return syntax.Universe(u).String() }
