package nbe

import (
	"fmt"

	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/syntax"
)

// Eval evaluates t in env. Binder bodies are not evaluated until applied.
func Eval(env Env, t core.Term) (Value, error) {
	switch t := t.(type) {
	case core.Var:
		return env.Lookup(t.Ix)
	case core.IntLit:
		return VIntLit(t), nil
	case core.BoolLit:
		return VBoolLit(t), nil
	case core.IntType:
		return VIntType{}, nil
	case core.BoolType:
		return VBoolType{}, nil
	case core.Universe:
		return VUniverse(t), nil
	case core.BinOp:
		l, err := Eval(env, t.L)
		if err != nil {
			return nil, err
		}
		r, err := Eval(env, t.R)
		if err != nil {
			return nil, err
		}
		return binOp(t.Op, l, r)
	case core.Not:
		v, err := Eval(env, t.T)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case VBoolLit:
			return !v, nil
		case VNeutral:
			return VNeutral{NNot{v.Neutral}}, nil
		}
		return nil, internalf("cannot negate %T", v)
	case core.App:
		fn, err := Eval(env, t.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := Eval(env, t.Arg)
		if err != nil {
			return nil, err
		}
		switch fn := fn.(type) {
		case VLam:
			return fn.Apply(arg)
		case VNeutral:
			return VNeutral{NApp{fn.Neutral, arg}}, nil
		}
		return nil, internalf("cannot apply %T", fn)
	case core.Lam:
		ty, err := Eval(env, t.Type)
		if err != nil {
			return nil, err
		}
		return VLam{ty, Closure{t.Bind, env, t.Body}}, nil
	case core.Forall:
		ty, err := Eval(env, t.Type)
		if err != nil {
			return nil, err
		}
		return VForall{ty, Closure{t.Bind, env, t.Body}}, nil
	case core.Exists:
		ty, err := Eval(env, t.Type)
		if err != nil {
			return nil, err
		}
		return VExists{ty, Closure{t.Bind, env, t.Body}}, nil
	case core.If:
		cond, err := Eval(env, t.Cond)
		if err != nil {
			return nil, err
		}
		switch cond := cond.(type) {
		case VBoolLit:
			if cond {
				return Eval(env, t.Body)
			}
			return Eval(env, t.Else)
		case VNeutral:
			body, err := Eval(env, t.Body)
			if err != nil {
				return nil, err
			}
			els, err := Eval(env, t.Else)
			if err != nil {
				return nil, err
			}
			return VNeutral{NIf{cond.Neutral, body, els}}, nil
		}
		return nil, internalf("cannot branch on %T", cond)
	case core.The:
		return Eval(env, t.X)
	}
	panic(fmt.Sprintf("unreachable: %T", t))
}

func binOp(op syntax.Op, l, r Value) (Value, error) {
	switch op {
	case syntax.Add, syntax.Sub, syntax.Mul, syntax.Div, syntax.Equal, syntax.Lt:
		x, ok1 := l.(VIntLit)
		y, ok2 := r.(VIntLit)
		if ok1 && ok2 {
			return intOp(op, int(x), int(y)), nil
		}
	case syntax.And, syntax.Or:
		x, ok1 := l.(VBoolLit)
		y, ok2 := r.(VBoolLit)
		if ok1 && ok2 {
			if op == syntax.And {
				return x && y, nil
			}
			return x || y, nil
		}
	}
	_, lstuck := l.(VNeutral)
	_, rstuck := r.(VNeutral)
	if lstuck || rstuck {
		return VNeutral{NBinOp{op, l, r}}, nil
	}
	return nil, internalf("operands %T %s %T", l, op, r)
}

func intOp(op syntax.Op, x, y int) Value {
	switch op {
	case syntax.Add:
		return VIntLit(x + y)
	case syntax.Sub:
		return VIntLit(x - y)
	case syntax.Mul:
		return VIntLit(x * y)
	case syntax.Div:
		return VIntLit(div(x, y))
	case syntax.Equal:
		return VBoolLit(x == y)
	case syntax.Lt:
		return VBoolLit(x < y)
	}
	panic("unreachable")
}

// div is Euclidean division: the remainder is never negative, and division
// by zero yields zero.
func div(x, y int) int {
	switch {
	case y == 0:
		return 0
	case y > 0:
		return floorDiv(x, y)
	default:
		return -floorDiv(x, -y)
	}
}

func floorDiv(x, y int) int {
	q := x / y
	if x%y < 0 {
		q--
	}
	return q
}
