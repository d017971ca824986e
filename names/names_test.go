package names

import (
	"errors"
	"reflect"
	"testing"

	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/syntax"
)

func TestLift(t *testing.T) {
	ctx := Ctx{{"a", 0}, {"b", 1}}
	got := ctx.Lift("c")
	want := Ctx{{"c", 0}, {"a", 1}, {"b", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lift = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(ctx, Ctx{{"a", 0}, {"b", 1}}) {
		t.Errorf("Lift modified its receiver: %v", ctx)
	}
}

func TestLookup(t *testing.T) {
	ctx := Ctx(nil).Lift("x").Lift("y").Lift("x")
	tests := []struct {
		eq   Eq
		name syntax.Name
		want core.Ix
	}{
		{Textual, "x", 0},
		{Textual, "y", 1},
		{Vacuous, "x", 0},
		{Vacuous, "y", 0},
		{Vacuous, "z", 0},
	}
	for _, tt := range tests {
		got, err := ctx.Lookup(tt.eq, tt.name)
		if err != nil {
			t.Errorf("Lookup(%s) failed: %v", tt.name, err)
		} else if got != tt.want {
			t.Errorf("Lookup(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLookupUnbound(t *testing.T) {
	for _, eq := range []Eq{Textual, Vacuous} {
		_, err := Ctx(nil).Lookup(eq, "x")
		if !errors.Is(err, ErrUnbound) || !errors.Is(err, core.ErrInternal) {
			t.Errorf("Lookup in empty context = %v, want unbound internal error", err)
		}
	}
	if _, err := Ctx(nil).Lift("y").Lookup(Textual, "x"); !errors.Is(err, ErrUnbound) {
		t.Errorf("Lookup(x) in [y] = %v, want unbound", err)
	}
}

func v(name string, i int) core.Var {
	return core.Var{IxName: core.IxName{Name: syntax.Name(name), Ix: core.Ix(i)}}
}

func TestResolve(t *testing.T) {
	k := syntax.Lam{Bind: "x", Type: syntax.IntType{}, Body: syntax.Lam{Bind: "y", Type: syntax.IntType{}, Body: syntax.Var{Name: "x"}}}
	poly := syntax.Lam{Bind: "A", Type: syntax.Universe(0), Body: syntax.Lam{Bind: "x", Type: syntax.Var{Name: "A"}, Body: syntax.Var{Name: "A"}}}
	tests := []struct {
		name string
		eq   Eq
		in   syntax.Term
		want core.Term
	}{
		{
			"Textual",
			Textual,
			k,
			core.Lam{Bind: "x", Type: core.IntType{}, Body: core.Lam{Bind: "y", Type: core.IntType{}, Body: v("x", 1)}},
		},
		{
			"Vacuous",
			Vacuous,
			k,
			core.Lam{Bind: "x", Type: core.IntType{}, Body: core.Lam{Bind: "y", Type: core.IntType{}, Body: v("x", 0)}},
		},
		{
			// The domain is resolved outside its own binder.
			"DependentDomain",
			Textual,
			poly,
			core.Lam{Bind: "A", Type: core.Universe(0), Body: core.Lam{Bind: "x", Type: v("A", 0), Body: v("A", 1)}},
		},
		{
			"VacuousDependentDomain",
			Vacuous,
			poly,
			core.Lam{Bind: "A", Type: core.Universe(0), Body: core.Lam{Bind: "x", Type: v("A", 0), Body: v("A", 0)}},
		},
		{
			"Structure",
			Textual,
			syntax.Lam{Bind: "b", Type: syntax.BoolType{}, Body: syntax.If{
				Cond: syntax.Not{T: syntax.Var{Name: "b"}},
				Body: syntax.BinOp{Op: syntax.Add, L: syntax.IntLit(1), R: syntax.IntLit(2)},
				Else: syntax.The{X: syntax.IntLit(3), Type: syntax.IntType{}},
			}},
			core.Lam{Bind: "b", Type: core.BoolType{}, Body: core.If{
				Cond: core.Not{T: v("b", 0)},
				Body: core.BinOp{Op: syntax.Add, L: core.IntLit(1), R: core.IntLit(2)},
				Else: core.The{X: core.IntLit(3), Type: core.IntType{}},
			}},
		},
		{
			"Exists",
			Textual,
			syntax.Exists{Bind: "n", Type: syntax.IntType{}, Body: syntax.App{Fn: syntax.Universe(1), Arg: syntax.BoolLit(true)}},
			core.Exists{Bind: "n", Type: core.IntType{}, Body: core.App{Fn: core.Universe(1), Arg: core.BoolLit(true)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolver{tt.eq}.Resolve(nil, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%s) = %s, want %s", tt.in, got.DeBruijnString(), tt.want.DeBruijnString())
			}
		})
	}
}

func TestResolveUnbound(t *testing.T) {
	in := syntax.Lam{Bind: "x", Type: syntax.IntType{}, Body: syntax.Var{Name: "y"}}
	if _, err := (Resolver{Textual}).Resolve(nil, in); !errors.Is(err, ErrUnbound) {
		t.Errorf("Resolve(%s) = %v, want unbound", in, err)
	}
	self := syntax.Forall{Bind: "A", Type: syntax.Var{Name: "A"}, Body: syntax.Var{Name: "A"}}
	if _, err := (Resolver{Textual}).Resolve(nil, self); !errors.Is(err, ErrUnbound) {
		t.Errorf("Resolve(%s) = %v, want unbound", self, err)
	}
	if _, err := Resolve(syntax.Var{Name: "y"}); !errors.Is(err, core.ErrInternal) {
		t.Errorf("Resolve(y) = %v, want internal error", err)
	}
}
