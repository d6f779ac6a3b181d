// Package orchestrator implements the DPLL(T) loop of spec §4.6: it
// Boolean-abstracts a formula via cnf.Encode, drives sat.Solver, and on
// every model translates active theory atoms into a reluplex.Solve
// call, adding a blocking clause and looping on theory conflict.
// Grounded directly on original_source/DPLL(T).py's dpll_t, extended
// per spec §4.6.b to also translate False-assigned inequalities via
// their strict-negation encoding (the original never does this; see
// DESIGN.md for the divergence).
package orchestrator

import (
	"fmt"
	"math"

	"github.com/xDarkicex/reluplex-smt/ast"
	"github.com/xDarkicex/reluplex-smt/cnf"
	"github.com/xDarkicex/reluplex-smt/core"
	"github.com/xDarkicex/reluplex-smt/reluplex"
	"github.com/xDarkicex/reluplex-smt/sat"
	"github.com/xDarkicex/reluplex-smt/simplex"
)

// StrictEpsilon is the small positive margin used to encode a strict
// negation of an inequality as a non-strict one, per spec §4.6.b and
// §9's documented-approximation caveat: this is sound only up to ϵ.
const StrictEpsilon = 1e-6

// Options configures a Solve call. MaxRounds matches spec §4.6's
// default of 1000.
type Options struct {
	MaxRounds      int
	SimplexMaxIter int
	ReluplexOpts   reluplex.Options
}

// DefaultOptions is the package-level default configuration.
var DefaultOptions = Options{
	MaxRounds:      1000,
	SimplexMaxIter: 10000,
	ReluplexOpts:   reluplex.DefaultOptions,
}

// Result is the outcome of a Solve call.
type Result struct {
	Satisfiable bool
	Assignment  map[string]float64
	Rounds      int
}

// Solve decides SAT/UNSAT for an arbitrary ast.Formula, with default options.
func Solve(f *ast.Formula) (*Result, error) {
	return SolveWithOptions(f, DefaultOptions)
}

// SolveWithOptions runs the DPLL(T) loop of spec §4.6.
func SolveWithOptions(f *ast.Formula, opts Options) (*Result, error) {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultOptions.MaxRounds
	}
	if opts.SimplexMaxIter <= 0 {
		opts.SimplexMaxIter = DefaultOptions.SimplexMaxIter
	}

	normalized := ast.Normalize(f)
	c, atoms, err := cnf.Encode(normalized)
	if err != nil {
		return nil, err
	}

	solver := sat.NewSolver()

	for round := 0; round < opts.MaxRounds; round++ {
		res := solver.Solve(c.Snapshot())
		if !res.Satisfiable {
			return &Result{Satisfiable: false, Rounds: round + 1}, nil
		}

		activeIneqs, activeRelus, activeAtomNames, err := collectActiveTheoryAtoms(res.Assignment, atoms)
		if err != nil {
			return nil, err
		}

		if len(activeAtomNames) == 0 {
			return &Result{Satisfiable: true, Assignment: map[string]float64{}, Rounds: round + 1}, nil
		}

		rowDefs, bounds := translateInequalities(activeIneqs)
		ensureReluBounds(bounds, activeRelus)

		rr := reluplex.SolveWithOptions(rowDefs, bounds, activeRelus, opts.ReluplexOpts)
		if rr.Satisfiable {
			return &Result{Satisfiable: true, Assignment: rr.Assignment, Rounds: round + 1}, nil
		}

		blocking := blockingClause(activeAtomNames)
		c.AddClause(blocking)
	}

	return nil, core.NewSolverError(core.ErrOrchestratorCapExceeded, "orchestrator", "SolveWithOptions",
		fmt.Sprintf("exceeded max_rounds=%d without a conclusive result", opts.MaxRounds))
}

// translatedIneq is an admitted inequality, possibly strict-negated.
type translatedIneq struct {
	terms []ast.Term
	b     float64
}

// collectActiveTheoryAtoms walks every theory atom the encoder
// produced and, per spec §4.6.b:
//   - a True-assigned inequality is admitted as-is.
//   - a True-assigned ReLU atom is admitted as a relu.Pair.
//   - a False-assigned inequality is admitted via its strict negation
//     Σ(−cᵢ)xᵢ ≥ −b + ϵ.
//   - a False-assigned ReLU atom is an unsupported negation: it is
//     still recorded as an active atom (so a blocking clause can force
//     the Boolean search away from it) but contributes no theory
//     constraint, per the Open Question decision in DESIGN.md.
func collectActiveTheoryAtoms(model cnf.Assignment, atoms *cnf.AtomMap) ([]translatedIneq, []reluplex.Pair, []string, error) {
	var ineqs []translatedIneq
	var relus []reluplex.Pair
	var activeNames []string

	for _, name := range atoms.Names() {
		val, assigned := model[name]
		if !assigned {
			continue
		}
		atom, _ := atoms.Lookup(name)

		switch atom.Kind {
		case ast.KindIneq:
			if val {
				ineqs = append(ineqs, translatedIneq{terms: atom.Terms, b: atom.B})
			} else {
				negTerms := make([]ast.Term, len(atom.Terms))
				for i, t := range atom.Terms {
					negTerms[i] = ast.Term{Var: t.Var, Coeff: -t.Coeff}
				}
				ineqs = append(ineqs, translatedIneq{terms: negTerms, b: -atom.B + StrictEpsilon})
			}
			activeNames = append(activeNames, nameForActive(name, val))

		case ast.KindRelu:
			if val {
				relus = append(relus, reluplex.Pair{X: atom.X, Y: atom.Y})
			}
			// A False-assigned ReLU atom is an unsupported negation: it
			// contributes no theory constraint of its own, but it must
			// still be recorded as active so the blocking clause forces
			// the Boolean search to retry with this atom True instead of
			// silently treating the round as theory-satisfied.
			activeNames = append(activeNames, nameForActive(name, val))
		}
	}

	return ineqs, relus, activeNames, nil
}

// nameForActive returns the literal name that must appear (negated) in
// a blocking clause for this atom's current Boolean value: spec §4.6.f
// blocks "every theory-atom literal that was True in the Boolean
// model" — for an atom assigned False whose strict negation was
// admitted, the literal that was True in the model is the negation
// itself, so this returns "~name" for a False-assigned atom and the bare
// name otherwise; blockingClause reads the "~" prefix to pick the
// polarity of each blocking literal.
func nameForActive(name string, val bool) string {
	if val {
		return name
	}
	return "~" + name
}

// blockingClause builds the clause forbidding the exact combination of
// active-atom truth values that led to theory conflict: the disjunction
// of the negation of each literal that was true in the model.
func blockingClause(activeAtomNames []string) *cnf.Clause {
	lits := make([]cnf.Literal, len(activeAtomNames))
	for i, n := range activeAtomNames {
		if len(n) > 0 && n[0] == '~' {
			lits[i] = cnf.Literal{Variable: n[1:], Negated: false}
		} else {
			lits[i] = cnf.Literal{Variable: n, Negated: true}
		}
	}
	return cnf.NewClause(lits...)
}

// translateInequalities builds Simplex row definitions from admitted
// inequalities: for each Σcᵢxᵢ ≥ b, introduce a fresh slack
// s = Σcᵢxᵢ bounded [b, +∞), per spec §4.6.d.
func translateInequalities(ineqs []translatedIneq) ([]simplex.RowDef, map[string]simplex.Bound) {
	rowDefs := make([]simplex.RowDef, 0, len(ineqs))
	bounds := make(map[string]simplex.Bound)

	for i, ineq := range ineqs {
		slack := fmt.Sprintf("ineq_slack_%d", i)
		coeffs := make(map[string]float64, len(ineq.terms))
		for _, t := range ineq.terms {
			coeffs[t.Var] += t.Coeff
			if _, ok := bounds[t.Var]; !ok {
				bounds[t.Var] = simplex.Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
			}
		}
		rowDefs = append(rowDefs, simplex.RowDef{BasicVar: slack, Coeffs: coeffs})
		bounds[slack] = simplex.Bound{Lower: ineq.b, Upper: math.Inf(1)}
	}

	return rowDefs, bounds
}

// ensureReluBounds gives every ReLU input/output variable free (-∞,+∞)
// bounds if it was not already constrained by an inequality.
func ensureReluBounds(bounds map[string]simplex.Bound, relus []reluplex.Pair) {
	for _, p := range relus {
		if _, ok := bounds[p.X]; !ok {
			bounds[p.X] = simplex.Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
		}
		if _, ok := bounds[p.Y]; !ok {
			bounds[p.Y] = simplex.Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
		}
	}
}
