package simplex

import (
	"math"
	"sort"
)

// Eps is the numerical tolerance governing bound checks and
// pivot-eligibility, per spec §4.4.
const Eps = 1e-9

// Options configures a Solve call. DefaultOptions matches spec §4.4's
// stated default max_iter of 10000.
type Options struct {
	MaxIter int
}

// DefaultOptions is the package-level default configuration.
var DefaultOptions = Options{MaxIter: 10000}

// Result is the outcome of Solve.
type Result struct {
	Satisfiable bool
	Assignment  map[string]float64
	// CapExceeded is true only when the result is UNSAT because max_iter
	// was exhausted rather than because no pivot candidate existed;
	// spec §9's open question about distinguishing "unknown" from true
	// UNSAT is addressed by exposing this flag to callers that care.
	CapExceeded bool
	Iterations  int
}

// Solve runs the Simplex main loop of spec §4.4 with default options.
func Solve(t *Tableau) *Result {
	return SolveWithOptions(t, DefaultOptions)
}

// SolveWithOptions runs Simplex with explicit options.
//
// Loop invariant: non-basic variables are always within bounds; only
// basic variables may violate. Each iteration:
//  1. scan rows in order for the first basic variable out of bounds;
//     none found means SAT.
//  2. determine whether it must increase (below lower) or decrease
//     (above upper).
//  3. scan that row's non-basic variables in ascending name order
//     (Bland's rule) for the first one eligible to move in the needed
//     direction without itself leaving its own bounds.
//  4. compute the exact step that drives the violated basic variable to
//     the bound it crossed, pivot, and fix the newly non-basic variable
//     to that bound exactly.
func SolveWithOptions(t *Tableau, opts Options) *Result {
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultOptions.MaxIter
	}

	if !boundsConsistent(t) {
		return &Result{Satisfiable: false}
	}

	for iter := 0; iter < maxIter; iter++ {
		violated := firstViolatedRow(t)
		if violated == nil {
			return &Result{Satisfiable: true, Assignment: cloneAssign(t.Assign), Iterations: iter}
		}

		xj := violated.BasicVar
		val := t.Assign[xj]
		bound := t.Bounds[xj]
		goingUp := val < bound.Lower

		pivotXi, found := selectPivot(t, violated, goingUp)
		if !found {
			return &Result{Satisfiable: false, Iterations: iter}
		}

		a := violated.Coeffs[pivotXi]
		target := bound.Upper
		if goingUp {
			target = bound.Lower
		}
		delta := (target - val) / a

		UpdateAssign(t, pivotXi, t.Assign[pivotXi]+delta)
		Pivot(t, pivotXi, xj)
		t.Assign[xj] = target
		t.RecomputeBasics()
	}

	return &Result{Satisfiable: false, CapExceeded: true, Iterations: maxIter}
}

// boundsConsistent reports whether every variable's own bounds satisfy
// lower <= upper. Spec §7 treats a variable with lower > upper as
// theory-UNSAT at setup, not as a propagated error, so this is checked
// once up front rather than surfacing a SolverError.
func boundsConsistent(t *Tableau) bool {
	for _, b := range t.Bounds {
		if b.Lower > b.Upper+Eps {
			return false
		}
	}
	return true
}

func firstViolatedRow(t *Tableau) *Row {
	for _, row := range t.Rows {
		val := t.Assign[row.BasicVar]
		b := t.Bounds[row.BasicVar]
		if val < b.Lower-Eps || val > b.Upper+Eps {
			return row
		}
	}
	return nil
}

// selectPivot implements Bland's rule: iterate the violated row's
// non-basic variables in ascending name order, returning the first one
// eligible to move in the required direction.
func selectPivot(t *Tableau, violated *Row, goingUp bool) (string, bool) {
	names := make([]string, 0, len(violated.Coeffs))
	for v := range violated.Coeffs {
		names = append(names, v)
	}
	sort.Strings(names)

	for _, xi := range names {
		a := violated.Coeffs[xi]
		b := t.Bounds[xi]
		val := t.Assign[xi]

		if goingUp {
			if a > Eps && val < b.Upper-Eps {
				return xi, true
			}
			if a < -Eps && val > b.Lower+Eps {
				return xi, true
			}
		} else {
			if a < -Eps && val < b.Upper-Eps {
				return xi, true
			}
			if a > Eps && val > b.Lower+Eps {
				return xi, true
			}
		}
	}
	return "", false
}

func cloneAssign(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Satisfies reports whether assignment a satisfies every row equation
// and every bound within Eps — the universal property of spec §8.
func Satisfies(t *Tableau, a map[string]float64) bool {
	for _, row := range t.Rows {
		sum := 0.0
		for v, c := range row.Coeffs {
			sum += c * a[v]
		}
		if math.Abs(a[row.BasicVar]-sum) > Eps {
			return false
		}
	}
	for v, b := range t.Bounds {
		val := a[v]
		if val < b.Lower-Eps || val > b.Upper+Eps {
			return false
		}
	}
	return true
}
