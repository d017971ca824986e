// Package names resolves named terms into indexed terms.
package names

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/syntax"
	"golang.org/x/exp/slices"
)

// Entry binds a name to the index it resolves to.
type Entry struct {
	Name syntax.Name
	Ix   core.Ix
}

// Ctx is a naming context, innermost binder first. Index 0 always denotes
// the innermost binder.
type Ctx []Entry

// Lift returns ctx extended by a binder named x. ctx itself is unchanged.
func (ctx Ctx) Lift(x syntax.Name) Ctx {
	lifted := lo.Map(ctx, func(e Entry, _ int) Entry {
		return Entry{e.Name, e.Ix + 1}
	})
	return append(Ctx{{x, 0}}, lifted...)
}

// Names lists the names in scope, innermost first, for rendering.
func (ctx Ctx) Names() []string {
	return lo.Map(ctx, func(e Entry, _ int) string { return string(e.Name) })
}

// Eq decides whether an occurrence name refers to a binder name.
type Eq func(occurrence, binder syntax.Name) bool

// Vacuous matches every binder, so an occurrence always resolves to the
// innermost binder in scope.
func Vacuous(syntax.Name, syntax.Name) bool { return true }

// Textual matches binders with the same name.
func Textual(a, b syntax.Name) bool { return a == b }

// ErrUnbound is returned for a variable with no matching binder.
var ErrUnbound = fmt.Errorf("%w: unbound variable", core.ErrInternal)

// Lookup returns the index of the first entry matching x under eq.
func (ctx Ctx) Lookup(eq Eq, x syntax.Name) (core.Ix, error) {
	i := slices.IndexFunc(ctx, func(e Entry) bool { return eq(x, e.Name) })
	if i < 0 {
		return 0, fmt.Errorf("%w %q", ErrUnbound, x)
	}
	return ctx[i].Ix, nil
}

// Resolver converts named terms to indexed terms.
type Resolver struct {
	Eq Eq
}

// Resolve converts a closed named term using vacuous name matching.
func Resolve(t syntax.Term) (core.Term, error) {
	return Resolver{Vacuous}.Resolve(nil, t)
}

// Resolve converts t, whose free variables must be bound in ctx.
func (r Resolver) Resolve(ctx Ctx, t syntax.Term) (core.Term, error) {
	switch t := t.(type) {
	case syntax.Var:
		i, err := ctx.Lookup(r.Eq, t.Name)
		if err != nil {
			return nil, err
		}
		return core.Var{IxName: core.IxName{Name: t.Name, Ix: i}}, nil
	case syntax.IntLit:
		return core.IntLit(t), nil
	case syntax.BoolLit:
		return core.BoolLit(t), nil
	case syntax.IntType:
		return core.IntType{}, nil
	case syntax.BoolType:
		return core.BoolType{}, nil
	case syntax.Universe:
		return core.Universe(t), nil
	case syntax.BinOp:
		l, err := r.Resolve(ctx, t.L)
		if err != nil {
			return nil, err
		}
		rr, err := r.Resolve(ctx, t.R)
		if err != nil {
			return nil, err
		}
		return core.BinOp{Op: t.Op, L: l, R: rr}, nil
	case syntax.Not:
		x, err := r.Resolve(ctx, t.T)
		if err != nil {
			return nil, err
		}
		return core.Not{T: x}, nil
	case syntax.App:
		fn, err := r.Resolve(ctx, t.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := r.Resolve(ctx, t.Arg)
		if err != nil {
			return nil, err
		}
		return core.App{Fn: fn, Arg: arg}, nil
	case syntax.If:
		cond, err := r.Resolve(ctx, t.Cond)
		if err != nil {
			return nil, err
		}
		body, err := r.Resolve(ctx, t.Body)
		if err != nil {
			return nil, err
		}
		els, err := r.Resolve(ctx, t.Else)
		if err != nil {
			return nil, err
		}
		return core.If{Cond: cond, Body: body, Else: els}, nil
	case syntax.The:
		x, err := r.Resolve(ctx, t.X)
		if err != nil {
			return nil, err
		}
		ty, err := r.Resolve(ctx, t.Type)
		if err != nil {
			return nil, err
		}
		return core.The{X: x, Type: ty}, nil
	case syntax.Lam:
		ty, body, err := r.binder(ctx, t.Bind, t.Type, t.Body)
		if err != nil {
			return nil, err
		}
		return core.Lam{Bind: t.Bind, Type: ty, Body: body}, nil
	case syntax.Forall:
		ty, body, err := r.binder(ctx, t.Bind, t.Type, t.Body)
		if err != nil {
			return nil, err
		}
		return core.Forall{Bind: t.Bind, Type: ty, Body: body}, nil
	case syntax.Exists:
		ty, body, err := r.binder(ctx, t.Bind, t.Type, t.Body)
		if err != nil {
			return nil, err
		}
		return core.Exists{Bind: t.Bind, Type: ty, Body: body}, nil
	}
	panic(fmt.Sprintf("unreachable: %T", t))
}

// binder resolves the domain of a binder in ctx and its body in ctx
// extended by x.
func (r Resolver) binder(ctx Ctx, x syntax.Name, ty, body syntax.Term) (core.Term, core.Term, error) {
	rty, err := r.Resolve(ctx, ty)
	if err != nil {
		return nil, nil, err
	}
	rbody, err := r.Resolve(ctx.Lift(x), body)
	if err != nil {
		return nil, nil, err
	}
	return rty, rbody, nil
}
