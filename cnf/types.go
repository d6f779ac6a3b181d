// Package cnf holds the clause/literal representation the DPLL core
// consumes, and the Tseitin encoder that builds it from a normalized
// ast.Formula.
package cnf

import "strings"

// Literal is a signed propositional-atom name.
type Literal struct {
	Variable string
	Negated  bool
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return Literal{Variable: l.Variable, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Variable
	}
	return l.Variable
}

// Clause is a disjunction of literals.
type Clause struct {
	Literals []Literal
}

// NewClause builds a clause from the given literals.
func NewClause(lits ...Literal) *Clause {
	return &Clause{Literals: lits}
}

// IsUnit reports whether this clause has exactly one literal.
func (c *Clause) IsUnit() bool { return len(c.Literals) == 1 }

// IsEmpty reports whether this clause has no literals (a falsified clause).
func (c *Clause) IsEmpty() bool { return len(c.Literals) == 0 }

func (c *Clause) String() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// CNF is a conjunction of clauses over a set of named variables.
type CNF struct {
	Clauses []*Clause
	// Variables preserves first-occurrence order; the DPLL core's
	// decision heuristic walks this order (spec §4.3: "first unassigned
	// variable encountered in clause order is a valid policy").
	Variables []string

	seen map[string]bool
}

// NewCNF creates an empty CNF.
func NewCNF() *CNF {
	return &CNF{seen: make(map[string]bool)}
}

// AddClause appends a clause, registering any newly-seen variables.
func (c *CNF) AddClause(cl *Clause) {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.Clauses = append(c.Clauses, cl)
	for _, l := range cl.Literals {
		if !c.seen[l.Variable] {
			c.seen[l.Variable] = true
			c.Variables = append(c.Variables, l.Variable)
		}
	}
}

// Snapshot returns a shallow copy of the CNF's clause list and variable
// order, sharing the underlying Clause pointers (clauses are immutable
// once built). This is what the DPLL core is handed "per round"
// (spec §3's ownership note: "the DPLL core consumes a snapshot per round").
func (c *CNF) Snapshot() *CNF {
	clauses := make([]*Clause, len(c.Clauses))
	copy(clauses, c.Clauses)
	vars := make([]string, len(c.Variables))
	copy(vars, c.Variables)
	seen := make(map[string]bool, len(c.seen))
	for k, v := range c.seen {
		seen[k] = v
	}
	return &CNF{Clauses: clauses, Variables: vars, seen: seen}
}

// Assignment maps variable name to truth value.
type Assignment map[string]bool

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// IsAssigned reports whether v has a value in the assignment.
func (a Assignment) IsAssigned(v string) bool {
	_, ok := a[v]
	return ok
}

// Satisfies reports whether the assignment satisfies the given clause
// (at least one literal evaluates true); unassigned variables count as
// not satisfying their literal.
func (a Assignment) Satisfies(c *Clause) bool {
	for _, l := range c.Literals {
		if v, ok := a[l.Variable]; ok && v != l.Negated {
			return true
		}
	}
	return false
}
