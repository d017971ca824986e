package nbe

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/syntax"
)

// Quote reads v back into a normal-form term under level enclosing binders.
func Quote(level Lvl, v Value) (core.Term, error) {
	switch v := v.(type) {
	case VIntLit:
		return core.IntLit(v), nil
	case VBoolLit:
		return core.BoolLit(v), nil
	case VIntType:
		return core.IntType{}, nil
	case VBoolType:
		return core.BoolType{}, nil
	case VUniverse:
		return core.Universe(v), nil
	case VNeutral:
		return quoteNeutral(level, v.Neutral)
	case VLam:
		ty, body, err := quoteBinder(level, v.Type, v.Closure)
		if err != nil {
			return nil, err
		}
		return core.Lam{Bind: v.Name, Type: ty, Body: body}, nil
	case VForall:
		ty, body, err := quoteBinder(level, v.Type, v.Closure)
		if err != nil {
			return nil, err
		}
		return core.Forall{Bind: v.Name, Type: ty, Body: body}, nil
	case VExists:
		ty, body, err := quoteBinder(level, v.Type, v.Closure)
		if err != nil {
			return nil, err
		}
		return core.Exists{Bind: v.Name, Type: ty, Body: body}, nil
	}
	panic(fmt.Sprintf("unreachable: %T", v))
}

// quoteBinder applies c to a fresh variable at the next level and quotes the
// result there. The domain was evaluated outside the binder, so it is quoted
// at the current level.
func quoteBinder(level Lvl, ty Value, c Closure) (core.Term, core.Term, error) {
	qty, err := Quote(level, ty)
	if err != nil {
		return nil, nil, err
	}
	v, err := c.Apply(VNeutral{NVar{c.Name, level + 1}})
	if err != nil {
		return nil, nil, err
	}
	body, err := Quote(level+1, v)
	if err != nil {
		return nil, nil, err
	}
	return qty, body, nil
}

func quoteNeutral(level Lvl, n Neutral) (core.Term, error) {
	switch n := n.(type) {
	case NVar:
		ix := core.Ix(level - n.Lvl)
		if ix < 0 {
			return nil, internalf("variable %s at level %d quoted at level %d", n.Name, n.Lvl, level)
		}
		return core.Var{IxName: core.IxName{Name: n.Name, Ix: ix}}, nil
	case NBinOp:
		l, err := Quote(level, n.L)
		if err != nil {
			return nil, err
		}
		r, err := Quote(level, n.R)
		if err != nil {
			return nil, err
		}
		return core.BinOp{Op: n.Op, L: l, R: r}, nil
	case NNot:
		t, err := quoteNeutral(level, n.N)
		if err != nil {
			return nil, err
		}
		return core.Not{T: t}, nil
	case NApp:
		fn, err := quoteNeutral(level, n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := Quote(level, n.Arg)
		if err != nil {
			return nil, err
		}
		return core.App{Fn: fn, Arg: arg}, nil
	case NIf:
		cond, err := quoteNeutral(level, n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := Quote(level, n.Body)
		if err != nil {
			return nil, err
		}
		els, err := Quote(level, n.Else)
		if err != nil {
			return nil, err
		}
		return core.If{Cond: cond, Body: body, Else: els}, nil
	}
	panic(fmt.Sprintf("unreachable: %T", n))
}

// Normalize evaluates the closed term t and reads it back.
func Normalize(t core.Term) (core.Term, error) {
	return NormalizeIn(nil, t)
}

// NormalizeIn normalizes t whose free indices are bound by a context with
// the given names, innermost first. Each name is bound to a fresh variable.
func NormalizeIn(ctx []syntax.Name, t core.Term) (core.Term, error) {
	n := len(ctx)
	env := Env(lo.Map(ctx, func(x syntax.Name, i int) Value {
		return VNeutral{NVar{x, Lvl(n - i)}}
	}))
	v, err := Eval(env, t)
	if err != nil {
		return nil, err
	}
	return Quote(Lvl(n), v)
}

// NF returns the normal form of the closed term t. It panics if t violates
// an invariant that resolution or type checking should have caught.
func NF(t core.Term) core.Term {
	nf, err := Normalize(t)
	if err != nil {
		panic(err)
	}
	return nf
}

// AlphaEquiv reports whether t and u have the same normal form.
func AlphaEquiv(t, u core.Term) bool {
	return core.Equal(NF(t), NF(u))
}

// AlphaEquivIn is AlphaEquiv for open terms under ctx.
func AlphaEquivIn(ctx []syntax.Name, t, u core.Term) (bool, error) {
	nt, err := NormalizeIn(ctx, t)
	if err != nil {
		return false, err
	}
	nu, err := NormalizeIn(ctx, u)
	if err != nil {
		return false, err
	}
	return core.Equal(nt, nu), nil
}
