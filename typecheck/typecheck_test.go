package typecheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/nbe"
	"github.com/smasher164/dtt/syntax"
)

func v(name string, i int) core.Var {
	return core.Var{IxName: core.IxName{Name: syntax.Name(name), Ix: core.Ix(i)}}
}

func lam(x string, ty, body core.Term) core.Lam {
	return core.Lam{Bind: syntax.Name(x), Type: ty, Body: body}
}

func arrow(from, to core.Term) core.Forall {
	return core.Forall{Bind: syntax.Wildcard, Type: from, Body: to}
}

func op(o syntax.Op, l, r core.Term) core.BinOp { return core.BinOp{Op: o, L: l, R: r} }

var (
	intTy  = core.IntType{}
	boolTy = core.BoolType{}
	// (λT:Type. T) Int normalizes to Int.
	idInt = core.App{Fn: lam("T", core.Universe(0), v("T", 0)), Arg: intTy}
	// λA:Type. λx:A. x
	polyID = lam("A", core.Universe(0), lam("x", v("A", 0), v("x", 0)))
	// λA:Type. λf:A -> A. λx:A. f (f x)
	polyTwice = lam("A", core.Universe(0), lam("f", arrow(v("A", 0), v("A", 1)),
		lam("x", v("A", 1), core.App{Fn: v("f", 1), Arg: core.App{Fn: v("f", 1), Arg: v("x", 0)}})))
)

func app(fn core.Term, args ...core.Term) core.Term {
	for _, arg := range args {
		fn = core.App{Fn: fn, Arg: arg}
	}
	return fn
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		t    core.Term
		want core.Term
	}{
		{"IntLit", core.IntLit(1), intTy},
		{"BoolLit", core.BoolLit(false), boolTy},
		{"IntType", intTy, core.Universe(0)},
		{"BoolType", boolTy, core.Universe(0)},
		{"Universe", core.Universe(2), core.Universe(3)},
		{"Add", op(syntax.Add, core.IntLit(1), core.IntLit(2)), intTy},
		{"Div", op(syntax.Div, core.IntLit(1), core.IntLit(0)), intTy},
		{"Equal", op(syntax.Equal, core.IntLit(1), core.IntLit(2)), boolTy},
		{"Lt", op(syntax.Lt, core.IntLit(1), core.IntLit(2)), boolTy},
		{"Or", op(syntax.Or, core.BoolLit(true), core.BoolLit(false)), boolTy},
		{"Not", core.Not{T: core.BoolLit(true)}, boolTy},
		{"Lam", lam("x", intTy, v("x", 0)), core.Forall{Bind: "x", Type: intTy, Body: intTy}},
		{"App", core.App{Fn: lam("x", intTy, op(syntax.Add, v("x", 0), core.IntLit(1))), Arg: core.IntLit(41)}, intTy},
		{"If", core.If{Cond: core.BoolLit(true), Body: core.IntLit(1), Else: core.IntLit(2)}, intTy},
		{"The", core.The{X: core.IntLit(1), Type: intTy}, intTy},
		{"Arrow", arrow(intTy, boolTy), core.Universe(0)},
		{"Forall", core.Forall{Bind: "A", Type: core.Universe(0), Body: intTy}, core.Universe(1)},
		{"Exists", core.Exists{Bind: "n", Type: intTy, Body: core.Universe(1)}, core.Universe(2)},
		// Types are compared after evaluation.
		{"EvaluatedDomain", core.App{Fn: lam("x", idInt, v("x", 0)), Arg: core.IntLit(5)}, intTy},
		{"EvaluatedAscription", core.The{X: core.IntLit(1), Type: idInt}, idInt},
		{
			"BranchesUpToRenaming",
			core.If{Cond: core.BoolLit(true), Body: lam("x", intTy, v("x", 0)), Else: lam("y", intTy, v("y", 0))},
			core.Forall{Bind: "x", Type: intTy, Body: intTy},
		},
		{
			"HigherOrder",
			core.App{
				Fn:  lam("f", arrow(intTy, intTy), core.App{Fn: v("f", 0), Arg: core.IntLit(2)}),
				Arg: lam("y", intTy, op(syntax.Mul, v("y", 0), core.IntLit(10))),
			},
			intTy,
		},
		{
			"PolyID",
			polyID,
			core.Forall{Bind: "A", Type: core.Universe(0), Body: core.Forall{Bind: "x", Type: v("A", 0), Body: v("A", 1)}},
		},
		{"PolyApp", app(polyID, intTy, core.IntLit(5)), intTy},
		{"PolyPartial", app(polyID, boolTy), arrow(boolTy, boolTy)},
		{
			"PolyTwice",
			app(polyTwice, intTy, lam("n", intTy, op(syntax.Mul, v("n", 0), core.IntLit(2))), core.IntLit(5)),
			intTy,
		},
		{"PolyArrow", core.Forall{Bind: "A", Type: core.Universe(0), Body: arrow(v("A", 0), v("A", 1))}, core.Universe(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(nil, tt.t)
			if err != nil {
				t.Fatalf("Infer(%s) failed: %v", tt.t.ContextString(nil), err)
			}
			if !nbe.AlphaEquiv(got, tt.want) {
				t.Errorf("Infer(%s) = %s, want %s", tt.t.ContextString(nil), got.ContextString(nil), tt.want.ContextString(nil))
			}
		})
	}
}

func TestInferExact(t *testing.T) {
	got, err := Infer(nil, op(syntax.Add, core.IntLit(1), core.IntLit(2)))
	if err != nil {
		t.Fatal(err)
	}
	if got != intTy {
		t.Errorf("Infer(1 + 2) = %s, want Int", got.ContextString(nil))
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		t    core.Term
		msg  string
	}{
		{"UnboundVar", v("x", 0), "cannot find variable x"},
		{"AddBool", op(syntax.Add, core.IntLit(1), core.BoolLit(true)), "True has type Bool but expected Int"},
		{"AndInt", op(syntax.And, core.IntLit(1), core.BoolLit(true)), "1 has type Int but expected Bool"},
		{"NotInt", core.Not{T: core.IntLit(1)}, "1 has type Int but expected Bool"},
		{"ApplyInt", core.App{Fn: core.IntLit(5), Arg: core.IntLit(6)}, "5 is not a function; it has type Int"},
		{"BadArg", core.App{Fn: lam("x", intTy, v("x", 0)), Arg: core.BoolLit(true)}, "True has type Bool but expected Int"},
		{"BadCond", core.If{Cond: core.IntLit(1), Body: core.IntLit(2), Else: core.IntLit(3)}, "1 has type Int but expected Bool"},
		{"BadBranches", core.If{Cond: core.BoolLit(true), Body: core.IntLit(1), Else: core.BoolLit(false)}, "different types Int and Bool"},
		{"BadDomain", lam("x", core.IntLit(5), v("x", 0)), "5 is not a type; it has type Int"},
		{"BadCodomain", arrow(intTy, core.IntLit(5)), "5 is not a type"},
		{"BadAscription", core.The{X: core.IntLit(1), Type: boolTy}, "1 has type Int but expected Bool"},
		{"BadPolyArg", app(polyID, intTy, core.BoolLit(true)), "True has type Bool but expected Int"},
		{"ValueAsType", app(polyID, core.IntLit(1)), "1 has type Int but expected Type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Infer(nil, tt.t)
			var terr *TypeError
			if !errors.As(err, &terr) {
				t.Fatalf("Infer(%s) = %v, want a type error", tt.t.DeBruijnString(), err)
			}
			if !strings.Contains(terr.Msg, tt.msg) {
				t.Errorf("Infer(%s) error %q does not contain %q", tt.t.DeBruijnString(), terr.Msg, tt.msg)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := Check(nil, op(syntax.Add, core.IntLit(1), core.BoolLit(true)), intTy); err == nil {
		t.Error("Check(1 + True, Int) succeeded")
	}
	if err := Check(nil, core.IntLit(1), idInt); err != nil {
		t.Errorf("Check(1, (λT:Type. T) Int) = %v", err)
	}
	if err := Check(nil, core.IntLit(1), boolTy); err == nil {
		t.Error("Check(1, Bool) succeeded")
	}
}

func TestInferUniverse(t *testing.T) {
	tests := []struct {
		t    core.Term
		want int
	}{
		{intTy, 0},
		{core.Universe(0), 1},
		{arrow(core.Universe(1), intTy), 2},
		{idInt, 0},
	}
	for _, tt := range tests {
		got, err := InferUniverse(nil, tt.t)
		if err != nil {
			t.Errorf("InferUniverse(%s) failed: %v", tt.t.ContextString(nil), err)
		} else if got != tt.want {
			t.Errorf("InferUniverse(%s) = %d, want %d", tt.t.ContextString(nil), got, tt.want)
		}
	}
	if _, err := InferUniverse(nil, core.IntLit(1)); err == nil {
		t.Error("InferUniverse(1) succeeded")
	}
}

func TestContext(t *testing.T) {
	ctx := Ctx(nil).Extend("x", intTy)
	ctx1 := ctx.Extend("b", boolTy)
	if len(ctx) != 1 {
		t.Errorf("Extend modified its receiver")
	}
	for i, want := range []core.Term{boolTy, intTy} {
		got, err := Infer(ctx1, v("", i))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("type of index %d = %s, want %s", i, got.ContextString(nil), want.ContextString(nil))
		}
	}
	if _, ok := ctx1.Lookup(2); ok {
		t.Error("Lookup(2) found a binding in a context of size 2")
	}
	// Open terms are normalized against the context when comparing types.
	if err := Check(ctx1, op(syntax.Add, v("x", 1), core.IntLit(1)), intTy); err != nil {
		t.Error(err)
	}

	// A stored type refers to the bindings outside it and is shifted on
	// lookup.
	dep := Ctx(nil).Extend("A", core.Universe(0)).Extend("x", v("A", 0)).Extend("y", intTy)
	got, err := Infer(dep, v("x", 1))
	if err != nil {
		t.Fatal(err)
	}
	if want := v("A", 2); got != want {
		t.Errorf("type of x = %s, want %s", got.DeBruijnString(), want.DeBruijnString())
	}
}

func TestTypePreservation(t *testing.T) {
	terms := []core.Term{
		core.App{Fn: lam("x", intTy, op(syntax.Add, v("x", 0), core.IntLit(1))), Arg: core.IntLit(41)},
		lam("x", intTy, lam("y", intTy, v("x", 1))),
		lam("b", boolTy, core.If{Cond: v("b", 0), Body: core.IntLit(1), Else: core.IntLit(2)}),
		core.The{X: core.IntLit(1), Type: idInt},
		lam("f", arrow(intTy, intTy), lam("x", intTy, core.App{Fn: v("f", 1), Arg: core.App{Fn: v("f", 1), Arg: v("x", 0)}})),
		core.Forall{Bind: "A", Type: core.Universe(0), Body: intTy},
		polyID,
		polyTwice,
		app(polyID, intTy, core.IntLit(5)),
		app(polyID, boolTy),
		app(polyTwice, intTy, lam("n", intTy, op(syntax.Add, v("n", 0), core.IntLit(1)))),
		core.Forall{Bind: "A", Type: core.Universe(0), Body: arrow(v("A", 0), v("A", 1))},
	}
	for _, tm := range terms {
		ty, err := Infer(nil, tm)
		if err != nil {
			t.Fatalf("Infer(%s) failed: %v", tm.ContextString(nil), err)
		}
		nf := nbe.NF(tm)
		nfTy, err := Infer(nil, nf)
		if err != nil {
			t.Fatalf("Infer(%s) failed: %v", nf.ContextString(nil), err)
		}
		if !nbe.AlphaEquiv(ty, nfTy) {
			t.Errorf("type of %s changed from %s to %s", tm.ContextString(nil), ty.ContextString(nil), nfTy.ContextString(nil))
		}
	}
}
