package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIneqCanonicalization(t *testing.T) {
	cases := []struct {
		name  string
		terms []Term
		b     float64
		want  []Term
	}{
		{
			name:  "sorts by variable name",
			terms: []Term{{Var: "y", Coeff: 2}, {Var: "x", Coeff: 1}},
			b:     5,
			want:  []Term{{Var: "x", Coeff: 1}, {Var: "y", Coeff: 2}},
		},
		{
			name:  "merges duplicate variables",
			terms: []Term{{Var: "x", Coeff: 1}, {Var: "x", Coeff: 2}},
			b:     0,
			want:  []Term{{Var: "x", Coeff: 3}},
		},
		{
			name:  "drops zero coefficients after merge",
			terms: []Term{{Var: "x", Coeff: 1}, {Var: "x", Coeff: -1}, {Var: "y", Coeff: 4}},
			b:     0,
			want:  []Term{{Var: "y", Coeff: 4}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ineq(tc.terms, tc.b)
			if diff := cmp.Diff(tc.want, got.Terms, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("Terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIneqStructuralEquality(t *testing.T) {
	a := Ineq([]Term{{Var: "x", Coeff: 1}, {Var: "y", Coeff: 2}}, 5)
	b := Ineq([]Term{{Var: "y", Coeff: 2}, {Var: "x", Coeff: 1}}, 5)
	if !a.Equal(b) {
		t.Errorf("expected reordered inequality terms to compare equal, got a=%v b=%v", a, b)
	}
}

func TestFormulaEqual(t *testing.T) {
	f1 := And(Var("p"), Or(Var("q"), Not(Var("r"))))
	f2 := And(Var("p"), Or(Var("q"), Not(Var("r"))))
	f3 := And(Var("p"), Or(Var("q"), Var("r")))

	if !f1.Equal(f2) {
		t.Error("expected structurally identical formulas to be equal")
	}
	if f1.Equal(f3) {
		t.Error("expected structurally different formulas to be unequal")
	}
}

func TestAndOrFolding(t *testing.T) {
	if got := And().Kind; got != KindTrue {
		t.Errorf("And() with no args: got Kind %v, want KindTrue", got)
	}
	if got := Or().Kind; got != KindFalse {
		t.Errorf("Or() with no args: got Kind %v, want KindFalse", got)
	}
	f := And(Var("a"), Var("b"), Var("c"))
	if f.Kind != KindAnd {
		t.Fatalf("expected folded And node, got Kind %v", f.Kind)
	}
	if len(f.Children) != 2 {
		t.Fatalf("expected binary fold with 2 children, got %d", len(f.Children))
	}
}

func TestIsTheoryAtom(t *testing.T) {
	if !KindIneq.IsTheoryAtom() {
		t.Error("KindIneq should be a theory atom")
	}
	if !KindRelu.IsTheoryAtom() {
		t.Error("KindRelu should be a theory atom")
	}
	if KindAnd.IsTheoryAtom() {
		t.Error("KindAnd should not be a theory atom")
	}
}
