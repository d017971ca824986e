// Package syntax is the surface representation of terms, where every variable
// occurrence carries the name it was written with.
package syntax

import (
	"strconv"
)

// Name is a variable name as written in the source.
type Name string

// Wildcard is the binder name of a non-dependent function type A -> B.
const Wildcard Name = "_"

// Op is one of the eight binary operators.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
	Equal
	Lt
	And
	Or
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Equal:
		return "=="
	case Lt:
		return "<"
	case And:
		return "&&"
	case Or:
		return "||"
	}
	panic("unreachable")
}

// Term is a named-variable term. The set of implementations is closed.
type Term interface {
	isTerm()
	String() string
}

type Var struct {
	Name Name
}

type IntLit int

type BoolLit bool

type BinOp struct {
	Op   Op
	L, R Term
}

type Not struct {
	T Term
}

type App struct {
	Fn  Term
	Arg Term
}

type Lam struct {
	Bind Name
	Type Term
	Body Term
}

type If struct {
	Cond Term
	Body Term
	Else Term
}

// The ascribes Type to X.
type The struct {
	X    Term
	Type Term
}

type Forall struct {
	Bind Name
	Type Term
	Body Term
}

type Exists struct {
	Bind Name
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

func (v Var) String() string    { return string(v.Name) }
func (i IntLit) String() string { return strconv.Itoa(int(i)) }

func (b BoolLit) String() string {
	if b {
		return "True"
	}
	return "False"
}

func (b BinOp) String() string {
	return "(" + b.L.String() + " " + b.Op.String() + " " + b.R.String() + ")"
}

func (n Not) String() string { return "!" + n.T.String() }

func (a App) String() string {
	return "(" + a.Fn.String() + " " + a.Arg.String() + ")"
}

func (l Lam) String() string {
	return "(λ" + string(l.Bind) + ":" + l.Type.String() + "." + l.Body.String() + ")"
}

func (i If) String() string {
	return "if " + i.Cond.String() + " then " + i.Body.String() + " else " + i.Else.String()
}

func (t The) String() string { return "(" + t.X.String() + " : " + t.Type.String() + ")" }

func (f Forall) String() string {
	if f.Bind == Wildcard {
		return "(" + f.Type.String() + " -> " + f.Body.String() + ")"
	}
	return "(∀(" + string(f.Bind) + ":" + f.Type.String() + ")." + f.Body.String() + ")"
}

func (e Exists) String() string {
	return "(∃(" + string(e.Bind) + ":" + e.Type.String() + ")." + e.Body.String() + ")"
}

func (IntType) String() string  { return "Int" }
func (BoolType) String() string { return "Bool" }

func (u Universe) String() string {
	if u == 0 {
		return "Type"
	}
	return "U" + strconv.Itoa(int(u))
}
