package cnf

import "testing"

func TestLiteralNegate(t *testing.T) {
	l := Literal{Variable: "p", Negated: false}
	neg := l.Negate()
	if neg.Variable != "p" || !neg.Negated {
		t.Errorf("Negate() = %v, want {p true}", neg)
	}
	if back := neg.Negate(); back != l {
		t.Errorf("double Negate() = %v, want %v", back, l)
	}
}

func TestClauseIsUnitIsEmpty(t *testing.T) {
	empty := NewClause()
	if !empty.IsEmpty() {
		t.Error("expected empty clause to report IsEmpty")
	}
	unit := NewClause(Literal{Variable: "p"})
	if !unit.IsUnit() {
		t.Error("expected single-literal clause to report IsUnit")
	}
}

func TestCNFAddClauseTracksVariablesInFirstOccurrenceOrder(t *testing.T) {
	c := NewCNF()
	c.AddClause(NewClause(Literal{Variable: "b"}, Literal{Variable: "a"}))
	c.AddClause(NewClause(Literal{Variable: "a"}, Literal{Variable: "c"}))

	want := []string{"b", "a", "c"}
	if len(c.Variables) != len(want) {
		t.Fatalf("Variables = %v, want %v", c.Variables, want)
	}
	for i, v := range want {
		if c.Variables[i] != v {
			t.Errorf("Variables[%d] = %s, want %s", i, c.Variables[i], v)
		}
	}
}

func TestAssignmentCloneIsIndependent(t *testing.T) {
	a := Assignment{"p": true}
	b := a.Clone()
	b["p"] = false
	if a["p"] != true {
		t.Error("mutating clone affected original assignment")
	}
}

func TestAssignmentSatisfies(t *testing.T) {
	clause := NewClause(Literal{Variable: "p", Negated: true}, Literal{Variable: "q"})
	if (Assignment{"p": true, "q": false}).Satisfies(clause) {
		t.Error("expected {~p, q} unsatisfied by p=true,q=false")
	}
	if !(Assignment{"p": false}).Satisfies(clause) {
		t.Error("expected {~p, q} satisfied by p=false")
	}
	if (Assignment{}).Satisfies(clause) {
		t.Error("expected unassigned variables to not satisfy a clause")
	}
}

func TestAssignmentIsAssigned(t *testing.T) {
	a := Assignment{"p": true}
	if !a.IsAssigned("p") {
		t.Error("expected p to be assigned")
	}
	if a.IsAssigned("q") {
		t.Error("expected q to be unassigned")
	}
}
