// Package sat implements the plain DPLL propositional core of spec §4.3:
// unit propagation, pure-literal elimination, first-unassigned-variable
// branching, and backtracking. It deliberately carries no clause
// learning — the DPLL(T) orchestrator performs its own learning
// externally via blocking clauses (spec §4.6), so this core stays the
// simple textbook DPLL procedure.
package sat

import (
	"github.com/xDarkicex/reluplex-smt/cnf"
)

// Statistics records counters useful for diagnostics and benchmarking;
// trimmed down from a much larger CDCL-oriented SolverStatistics (which
// also tracked LBD/restarts/learned clauses that have no meaning for a
// plain DPLL core).
type Statistics struct {
	Decisions    int
	Propagations int
}

// Result is the outcome of a Solve call.
type Result struct {
	Satisfiable bool
	Assignment  cnf.Assignment
	Statistics  Statistics
}

// Solver runs DPLL over a single CNF instance. A Solver is not safe for
// concurrent reuse across Solve calls that overlap in time, but each
// Solve call resets all mutable state, matching spec §5's "no shared
// state between solve calls".
type Solver struct {
	statistics Statistics
	assignment cnf.Assignment
	cnf        *cnf.CNF
}

// NewSolver creates a DPLL solver.
func NewSolver() *Solver {
	return &Solver{assignment: make(cnf.Assignment)}
}

// Solve decides satisfiability of c, starting from an empty assignment.
func (s *Solver) Solve(c *cnf.CNF) *Result {
	return s.SolveFrom(c, nil)
}

// SolveFrom decides satisfiability of c, starting from the given
// partial assignment (nil means empty). The orchestrator uses this to
// seed nothing extra today, but the entry point exists because spec
// §4.3 explicitly allows "a CNF and an optional partial assignment" as
// input.
func (s *Solver) SolveFrom(c *cnf.CNF, seed cnf.Assignment) *Result {
	s.cnf = c
	s.statistics = Statistics{}
	if seed != nil {
		s.assignment = seed.Clone()
	} else {
		s.assignment = make(cnf.Assignment)
	}

	sat := s.dpll()
	result := &Result{Satisfiable: sat, Statistics: s.statistics}
	if sat {
		result.Assignment = s.assignment.Clone()
	}
	return result
}

// dpll is the recursive core described by spec §4.3's five-step loop.
func (s *Solver) dpll() bool {
	conflict := s.unitPropagation()
	if conflict {
		return false
	}

	s.pureLiteralElimination()

	if s.allClausesSatisfied() {
		return true
	}

	decisionVar := s.chooseDecisionVariable()
	if decisionVar == "" {
		// No unassigned variable left, yet some clause remains
		// unsatisfied: this branch is a dead end.
		return false
	}

	s.statistics.Decisions++

	for _, value := range []bool{true, false} {
		saved := s.assignment.Clone()
		s.assignment[decisionVar] = value

		if s.dpll() {
			return true
		}

		s.assignment = saved
	}

	return false
}

// unitPropagation runs unit propagation to a fixed point, re-simplifying
// after each round, and reports whether a conflict (a clause whose
// literals are all assigned and false) was detected.
func (s *Solver) unitPropagation() bool {
	changed := true
	for changed {
		changed = false
		for _, clause := range s.cnf.Clauses {
			if s.assignment.Satisfies(clause) {
				continue
			}
			if s.clauseIsFalsified(clause) {
				return true
			}
			unassigned := s.unassignedLiterals(clause)
			if len(unassigned) == 1 {
				lit := unassigned[0]
				s.assignment[lit.Variable] = !lit.Negated
				s.statistics.Propagations++
				changed = true
			}
		}
	}
	return false
}

// clauseIsFalsified reports whether every literal in clause is assigned
// and false under the current assignment — the "empty clause" condition
// of spec §4.3 step 1.
func (s *Solver) clauseIsFalsified(clause *cnf.Clause) bool {
	for _, lit := range clause.Literals {
		v, ok := s.assignment[lit.Variable]
		if !ok {
			return false
		}
		if v != lit.Negated {
			return false
		}
	}
	return true
}

// pureLiteralElimination assigns every variable that occurs with only
// one polarity across unresolved clauses.
func (s *Solver) pureLiteralElimination() {
	positive := make(map[string]bool)
	negative := make(map[string]bool)
	seen := make(map[string]bool)

	for _, clause := range s.cnf.Clauses {
		if s.assignment.Satisfies(clause) {
			continue
		}
		for _, lit := range clause.Literals {
			if s.assignment.IsAssigned(lit.Variable) {
				continue
			}
			seen[lit.Variable] = true
			if lit.Negated {
				negative[lit.Variable] = true
			} else {
				positive[lit.Variable] = true
			}
		}
	}

	for v := range seen {
		if s.assignment.IsAssigned(v) {
			continue
		}
		switch {
		case positive[v] && !negative[v]:
			s.assignment[v] = true
		case negative[v] && !positive[v]:
			s.assignment[v] = false
		}
	}
}

func (s *Solver) allClausesSatisfied() bool {
	for _, clause := range s.cnf.Clauses {
		if !s.assignment.Satisfies(clause) {
			return false
		}
	}
	return true
}

// chooseDecisionVariable picks the first unassigned variable in
// first-occurrence clause order (spec §4.3's stated valid policy).
func (s *Solver) chooseDecisionVariable() string {
	for _, v := range s.cnf.Variables {
		if !s.assignment.IsAssigned(v) {
			return v
		}
	}
	return ""
}

func (s *Solver) unassignedLiterals(clause *cnf.Clause) []cnf.Literal {
	var out []cnf.Literal
	for _, lit := range clause.Literals {
		if !s.assignment.IsAssigned(lit.Variable) {
			out = append(out, lit)
		}
	}
	return out
}
