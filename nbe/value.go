// Package nbe normalizes indexed terms by evaluating them into a semantic
// domain and reading the result back.
package nbe

import (
	"fmt"

	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/syntax"
)

// Lvl is a de Bruijn level: binders counted from the outside in, starting
// at 1 for the outermost binder.
type Lvl int

// Value is a term in normal form. The set of implementations is closed.
type Value interface {
	isValue()
}

type VIntLit int

type VBoolLit bool

type VLam struct {
	Type Value
	Closure
}

type VForall struct {
	Type Value
	Closure
}

type VExists struct {
	Type Value
	Closure
}

type VIntType struct{}

type VBoolType struct{}

type VUniverse int

// VNeutral is a computation stuck on a variable.
type VNeutral struct {
	Neutral
}

func (VIntLit) isValue()   {}
func (VBoolLit) isValue()  {}
func (VLam) isValue()      {}
func (VForall) isValue()   {}
func (VExists) isValue()   {}
func (VIntType) isValue()  {}
func (VBoolType) isValue() {}
func (VUniverse) isValue() {}
func (VNeutral) isValue()  {}

// Neutral is headed by a variable. The set of implementations is closed.
type Neutral interface {
	isNeutral()
}

type NVar struct {
	Name syntax.Name
	Lvl  Lvl
}

// NBinOp keeps both operands in order; at least one of them is a VNeutral.
type NBinOp struct {
	Op   syntax.Op
	L, R Value
}

type NNot struct {
	N Neutral
}

type NApp struct {
	Fn  Neutral
	Arg Value
}

type NIf struct {
	Cond Neutral
	Body Value
	Else Value
}

func (NVar) isNeutral()   {}
func (NBinOp) isNeutral() {}
func (NNot) isNeutral()   {}
func (NApp) isNeutral()   {}
func (NIf) isNeutral()    {}

// Env maps indices to values, innermost binder first.
type Env []Value

// Extend returns env with v bound at index 0. env itself is unchanged.
func (env Env) Extend(v Value) Env {
	return append(Env{v}, env...)
}

// Lookup returns the value bound at index i.
func (env Env) Lookup(i core.Ix) (Value, error) {
	if i < 0 || int(i) >= len(env) {
		return nil, internalf("variable index %d out of range (%d in scope)", i, len(env))
	}
	return env[i], nil
}

// Closure is a binder body together with the environment it was defined in.
type Closure struct {
	Name syntax.Name
	Env  Env
	Body core.Term
}

// Apply evaluates the body with v bound to the closure's variable.
func (c Closure) Apply(v Value) (Value, error) {
	return Eval(c.Env.Extend(v), c.Body)
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{core.ErrInternal}, args...)...)
}
