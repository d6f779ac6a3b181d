package cnf_test

import (
	"testing"

	"github.com/xDarkicex/reluplex-smt/ast"
	"github.com/xDarkicex/reluplex-smt/cnf"
	"github.com/xDarkicex/reluplex-smt/sat"
)

func solveEncoding(t *testing.T, f *ast.Formula) *sat.Result {
	t.Helper()
	c, _, err := cnf.Encode(f)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	return sat.NewSolver().Solve(c)
}

func TestEncodeConjunctionIsEquisatisfiable(t *testing.T) {
	f := ast.And(ast.Var("p"), ast.Var("q"))
	res := solveEncoding(t, f)
	if !res.Satisfiable {
		t.Fatal("expected p AND q to be satisfiable")
	}
	if !res.Assignment["p"] || !res.Assignment["q"] {
		t.Errorf("expected p=true,q=true, got p=%v q=%v", res.Assignment["p"], res.Assignment["q"])
	}
}

func TestEncodeContradictionIsUnsatisfiable(t *testing.T) {
	atom := ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 5)
	f := ast.And(atom, ast.Not(atom))
	res := solveEncoding(t, f)
	if res.Satisfiable {
		t.Fatal("expected p AND NOT p to be unsatisfiable")
	}
}

func TestEncodeDisjunctionIsSatisfiable(t *testing.T) {
	f := ast.Or(ast.Var("a"), ast.Var("b"))
	res := solveEncoding(t, f)
	if !res.Satisfiable {
		t.Fatal("expected a OR b to be satisfiable")
	}
	if !res.Assignment["a"] && !res.Assignment["b"] {
		t.Error("expected at least one of a,b to be true")
	}
}

func TestEncodeInternsTheoryAtomsByStructure(t *testing.T) {
	atom1 := ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 5)
	atom2 := ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 5)
	f := ast.And(atom1, atom2)

	_, atoms, err := cnf.Encode(f)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	names := atoms.Names()
	if len(names) != 1 {
		t.Fatalf("expected exactly one interned theory atom, got %d: %v", len(names), names)
	}
}

func TestEncodeDistinctTheoryAtomsGetDistinctNames(t *testing.T) {
	atom1 := ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 5)
	atom2 := ast.Ineq([]ast.Term{{Var: "y", Coeff: 1}}, 5)
	f := ast.And(atom1, atom2)

	_, atoms, err := cnf.Encode(f)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	if len(atoms.Names()) != 2 {
		t.Fatalf("expected two distinct theory atoms, got %d", len(atoms.Names()))
	}
}

func TestEncodeNegatedTheoryAtomReusesName(t *testing.T) {
	atom := ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 5)
	f := ast.And(atom, ast.Not(ast.Not(atom)))

	_, atoms, err := cnf.Encode(f)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if len(atoms.Names()) != 1 {
		t.Fatalf("expected one interned atom shared across occurrences, got %d", len(atoms.Names()))
	}
}

func TestEncodeImpliesIsHandledDirectly(t *testing.T) {
	f := ast.Implies(ast.Var("p"), ast.Var("q"))
	res := solveEncoding(t, f)
	if !res.Satisfiable {
		t.Fatal("expected p -> q to be satisfiable")
	}
}
