// Package typecheck infers and checks the types of indexed terms, deciding
// type equality by normalization.
package typecheck

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/nbe"
	"github.com/smasher164/dtt/syntax"
)

// Binding is the type of a variable in scope.
type Binding struct {
	Name syntax.Name
	Type core.Term
}

// Ctx is a typing context, innermost binder first.
type Ctx []Binding

// Extend returns ctx with x : ty bound at index 0. ctx itself is unchanged.
func (ctx Ctx) Extend(x syntax.Name, ty core.Term) Ctx {
	return append(Ctx{{x, ty}}, ctx...)
}

// Lookup returns the type bound at index i, shifted to be valid under all
// of ctx. Each stored type is relative to the bindings outside it.
func (ctx Ctx) Lookup(i core.Ix) (core.Term, bool) {
	if i < 0 || int(i) >= len(ctx) {
		return nil, false
	}
	return core.Shift(int(i)+1, 0, ctx[i].Type), true
}

func (ctx Ctx) names() []syntax.Name {
	return lo.Map(ctx, func(b Binding, _ int) syntax.Name { return b.Name })
}

func (ctx Ctx) strings() []string {
	return lo.Map(ctx, func(b Binding, _ int) string { return string(b.Name) })
}

func (ctx Ctx) show(t core.Term) string {
	return t.ContextString(ctx.strings())
}

// TypeError is a term that does not type check.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func errorf(format string, args ...any) error {
	return &TypeError{fmt.Sprintf(format, args...)}
}

type signature struct {
	operand, result core.Term
}

var signatures = map[syntax.Op]signature{
	syntax.Add:   {core.IntType{}, core.IntType{}},
	syntax.Sub:   {core.IntType{}, core.IntType{}},
	syntax.Mul:   {core.IntType{}, core.IntType{}},
	syntax.Div:   {core.IntType{}, core.IntType{}},
	syntax.Equal: {core.IntType{}, core.BoolType{}},
	syntax.Lt:    {core.IntType{}, core.BoolType{}},
	syntax.And:   {core.BoolType{}, core.BoolType{}},
	syntax.Or:    {core.BoolType{}, core.BoolType{}},
}

// Infer returns the type of t. The first error found is returned.
func Infer(ctx Ctx, t core.Term) (core.Term, error) {
	switch t := t.(type) {
	case core.Var:
		ty, ok := ctx.Lookup(t.Ix)
		if !ok {
			return nil, errorf("cannot find variable %s", t.Name)
		}
		return ty, nil
	case core.IntLit:
		return core.IntType{}, nil
	case core.BoolLit:
		return core.BoolType{}, nil
	case core.IntType, core.BoolType:
		return core.Universe(0), nil
	case core.Universe:
		return t + 1, nil
	case core.BinOp:
		sig := signatures[t.Op]
		if err := Check(ctx, t.L, sig.operand); err != nil {
			return nil, err
		}
		if err := Check(ctx, t.R, sig.operand); err != nil {
			return nil, err
		}
		return sig.result, nil
	case core.Not:
		if err := Check(ctx, t.T, core.BoolType{}); err != nil {
			return nil, err
		}
		return core.BoolType{}, nil
	case core.App:
		fnTy, err := Infer(ctx, t.Fn)
		if err != nil {
			return nil, err
		}
		nf, err := nbe.NormalizeIn(ctx.names(), fnTy)
		if err != nil {
			return nil, err
		}
		pi, ok := nf.(core.Forall)
		if !ok {
			return nil, errorf("%s is not a function; it has type %s", ctx.show(t.Fn), ctx.show(nf))
		}
		if err := Check(ctx, t.Arg, pi.Type); err != nil {
			return nil, err
		}
		return core.SubstTop(t.Arg, pi.Body), nil
	case core.Lam:
		if _, err := InferUniverse(ctx, t.Type); err != nil {
			return nil, err
		}
		bodyTy, err := Infer(ctx.Extend(t.Bind, t.Type), t.Body)
		if err != nil {
			return nil, err
		}
		return core.Forall{Bind: t.Bind, Type: t.Type, Body: bodyTy}, nil
	case core.Forall:
		return inferBinderType(ctx, t.Bind, t.Type, t.Body)
	case core.Exists:
		return inferBinderType(ctx, t.Bind, t.Type, t.Body)
	case core.If:
		if err := Check(ctx, t.Cond, core.BoolType{}); err != nil {
			return nil, err
		}
		bodyTy, err := Infer(ctx, t.Body)
		if err != nil {
			return nil, err
		}
		elseTy, err := Infer(ctx, t.Else)
		if err != nil {
			return nil, err
		}
		eq, err := nbe.AlphaEquivIn(ctx.names(), bodyTy, elseTy)
		if err != nil {
			return nil, err
		}
		if !eq {
			return nil, errorf("branches of conditional have different types %s and %s", ctx.show(bodyTy), ctx.show(elseTy))
		}
		return bodyTy, nil
	case core.The:
		if err := Check(ctx, t.X, t.Type); err != nil {
			return nil, err
		}
		return t.Type, nil
	}
	panic(fmt.Sprintf("unreachable: %T", t))
}

func inferBinderType(ctx Ctx, x syntax.Name, dom, cod core.Term) (core.Term, error) {
	k1, err := InferUniverse(ctx, dom)
	if err != nil {
		return nil, err
	}
	k2, err := InferUniverse(ctx.Extend(x, dom), cod)
	if err != nil {
		return nil, err
	}
	return core.Universe(lo.Ternary(k1 > k2, k1, k2)), nil
}

// Check reports an error unless t has a type equivalent to expected.
func Check(ctx Ctx, t, expected core.Term) error {
	ty, err := Infer(ctx, t)
	if err != nil {
		return err
	}
	eq, err := nbe.AlphaEquivIn(ctx.names(), ty, expected)
	if err != nil {
		return err
	}
	if !eq {
		return errorf("%s has type %s but expected %s", ctx.show(t), ctx.show(ty), ctx.show(expected))
	}
	return nil
}

// InferUniverse returns the level k of the universe that ty inhabits.
func InferUniverse(ctx Ctx, ty core.Term) (int, error) {
	tyTy, err := Infer(ctx, ty)
	if err != nil {
		return 0, err
	}
	nf, err := nbe.NormalizeIn(ctx.names(), tyTy)
	if err != nil {
		return 0, err
	}
	u, ok := nf.(core.Universe)
	if !ok {
		return 0, errorf("%s is not a type; it has type %s", ctx.show(ty), ctx.show(nf))
	}
	return int(u), nil
}
