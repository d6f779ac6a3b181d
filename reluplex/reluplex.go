// Package reluplex implements the Reluplex search layer of spec §4.5:
// local repair plus case-splitting atop simplex, following the Katz et
// al. style algorithm as translated (faithfully, including details the
// spec prose leaves terse) from original_source/Reluplex.py.
package reluplex

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/xDarkicex/reluplex-smt/simplex"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Pair is a ReLU constraint y = max(0, x), named (X, Y) to match the
// rest of the package's field naming.
type Pair struct {
	X, Y string
}

// Options configures a Solve call; defaults match spec §4.5.
type Options struct {
	MaxRecursion    int
	SimplexMaxIter  int
	LocalRepairIter int
	BranchTau       int
	Rand            *rand.Rand // nil uses a fresh source seeded with 1
}

// DefaultOptions is the package-level default configuration.
var DefaultOptions = Options{
	MaxRecursion:    50,
	SimplexMaxIter:  10000,
	LocalRepairIter: 10,
	BranchTau:       5,
}

// Result is the outcome of Solve.
type Result struct {
	Satisfiable bool
	Assignment  map[string]float64
	// CapExceeded distinguishes a conservative UNSAT from exhausting
	// max_recursion, per spec §9's unknown-vs-UNSAT open question.
	CapExceeded bool
}

func relu(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0.0
}

func violation(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// violations returns every (x,y) pair in relus whose current
// assignment disagrees with y = max(0, x) by more than Eps, or is
// missing an assignment entirely.
func violations(assign map[string]float64, relus []Pair) []Pair {
	var out []Pair
	for _, p := range relus {
		xv, xok := assign[p.X]
		yv, yok := assign[p.Y]
		if !xok || !yok {
			out = append(out, p)
			continue
		}
		if violation(yv, relu(xv)) > simplex.Eps {
			out = append(out, p)
		}
	}
	return out
}

// Solve decides SAT/UNSAT for a set of linear rows, bounds, and ReLU
// pairs, with default options.
func Solve(rowDefs []simplex.RowDef, bounds map[string]simplex.Bound, relus []Pair) *Result {
	return SolveWithOptions(rowDefs, bounds, relus, DefaultOptions)
}

// SolveWithOptions runs the full Reluplex search.
func SolveWithOptions(rowDefs []simplex.RowDef, bounds map[string]simplex.Bound, relus []Pair, opts Options) *Result {
	if opts.MaxRecursion <= 0 {
		opts.MaxRecursion = DefaultOptions.MaxRecursion
	}
	if opts.SimplexMaxIter <= 0 {
		opts.SimplexMaxIter = DefaultOptions.SimplexMaxIter
	}
	if opts.LocalRepairIter <= 0 {
		opts.LocalRepairIter = DefaultOptions.LocalRepairIter
	}
	if opts.BranchTau <= 0 {
		opts.BranchTau = DefaultOptions.BranchTau
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	s := &search{
		relus:       relus,
		opts:        opts,
		rng:         rng,
		repairCount: make(map[Pair]int),
	}
	return s.rec(bounds, 0, rowDefs)
}

// search carries the state that original_source/Reluplex.py closes
// over in nested functions: repairCount is a SINGLE map shared across
// the entire recursive search, not reset per recursion level — this is
// load-bearing for the violation-selection and branch-variable-choice
// policies and is preserved exactly from the original.
type search struct {
	relus       []Pair
	opts        Options
	rng         *rand.Rand
	repairCount map[Pair]int
}

func cloneBounds(b map[string]simplex.Bound) map[string]simplex.Bound {
	out := make(map[string]simplex.Bound, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func cloneRowDefs(rd []simplex.RowDef) []simplex.RowDef {
	out := make([]simplex.RowDef, len(rd))
	copy(out, rd)
	return out
}

// rec is the recursive search procedure of spec §4.5.
func (s *search) rec(boundsNow map[string]simplex.Bound, depth int, rowDefs []simplex.RowDef) *Result {
	if depth > s.opts.MaxRecursion {
		return &Result{Satisfiable: false, CapExceeded: true}
	}

	boundsNow = cloneBounds(boundsNow)
	// Every ReLU output variable y is non-negative; re-intersect this on
	// EVERY recursive call (not just once at setup), matching
	// original_source/Reluplex.py exactly — bounds narrowed by a parent
	// branch can make this intersection newly infeasible at any depth.
	for _, p := range s.relus {
		b, ok := boundsNow[p.Y]
		if !ok {
			b = simplex.Bound{Lower: negInf, Upper: posInf}
		}
		newLo := max0(b.Lower)
		if newLo > b.Upper+simplex.Eps {
			return &Result{Satisfiable: false}
		}
		boundsNow[p.Y] = simplex.Bound{Lower: newLo, Upper: b.Upper}
	}

	tableau := simplex.Build(rowDefs, boundsNow)
	simResult := simplex.SolveWithOptions(tableau, simplex.Options{MaxIter: s.opts.SimplexMaxIter})
	if !simResult.Satisfiable {
		return &Result{Satisfiable: false, CapExceeded: simResult.CapExceeded}
	}

	assign := simResult.Assignment
	viol := violations(assign, s.relus)
	if len(viol) == 0 {
		return &Result{Satisfiable: true, Assignment: assign}
	}

	for i := 0; i < s.opts.LocalRepairIter; i++ {
		pair := s.selectViolation(viol)
		s.repairCount[pair]++

		var best map[string]float64
		bestViolCount := -1

		directions := []int{0, 1}
		if s.rng.Intn(2) == 1 {
			directions[0], directions[1] = directions[1], directions[0]
		}

		for _, dir := range directions {
			sol2, ok := s.tryRepair(tableau, pair.X, pair.Y, dir)
			if !ok {
				continue
			}
			v2 := violations(sol2, s.relus)
			if len(v2) == 0 {
				return &Result{Satisfiable: true, Assignment: sol2}
			}
			if best == nil || len(v2) < bestViolCount {
				best = sol2
				bestViolCount = len(v2)
			}
		}

		if best == nil {
			break
		}
		assign = best
		viol = violations(assign, s.relus)
		if len(viol) == 0 {
			return &Result{Satisfiable: true, Assignment: assign}
		}
		if s.repairCount[s.selectViolation(viol)] >= s.opts.BranchTau {
			break
		}
	}

	branchX, relatedY, ok := s.selectBranchVar(boundsNow)
	if !ok {
		return &Result{Satisfiable: false}
	}
	if depth >= s.opts.MaxRecursion {
		return &Result{Satisfiable: false, CapExceeded: true}
	}

	lo, hi := boundOrFree(boundsNow, branchX)

	// Active branch: x >= 0, y = x (encoded via a fixed-[0,0] slack row).
	bounds1 := cloneBounds(boundsNow)
	bounds1[branchX] = simplex.Bound{Lower: max0AgainstLower(lo), Upper: hi}
	rowDefs1 := cloneRowDefs(rowDefs)
	if relatedY != "" {
		slackName := fmt.Sprintf("relu_slack_%s_pos_%d", branchX, depth)
		rowDefs1 = append(rowDefs1, simplex.RowDef{
			BasicVar: slackName,
			Coeffs:   map[string]float64{relatedY: 1.0, branchX: -1.0},
		})
		bounds1[slackName] = simplex.Bound{Lower: 0.0, Upper: 0.0}
	}
	r1 := s.rec(bounds1, depth+1, rowDefs1)
	if r1.Satisfiable {
		return r1
	}

	// Inactive branch: x <= 0, y = 0.
	bounds2 := cloneBounds(boundsNow)
	bounds2[branchX] = simplex.Bound{Lower: lo, Upper: min0AgainstUpper(hi)}
	if relatedY != "" {
		bounds2[relatedY] = simplex.Bound{Lower: 0.0, Upper: 0.0}
	}
	r2 := s.rec(bounds2, depth+1, rowDefs)
	if r2.Satisfiable {
		return r2
	}

	return &Result{Satisfiable: false, CapExceeded: r1.CapExceeded || r2.CapExceeded}
}

// tryRepair attempts one repair direction on a FORKED copy of tableau,
// per spec §4.5 step 3.b: direction 0 pushes y toward relu(x);
// direction 1 pushes x toward y.
func (s *search) tryRepair(tableau *simplex.Tableau, x, y string, direction int) (map[string]float64, bool) {
	t := tableau.Clone()

	xVal := t.Assign[x]
	yVal := t.Assign[y]

	var targetVar string
	var targetVal float64
	if direction == 0 {
		targetVar, targetVal = y, relu(xVal)
	} else {
		targetVar, targetVal = x, yVal
	}

	b := t.Bounds[targetVar]
	if targetVal < b.Lower-simplex.Eps || targetVal > b.Upper+simplex.Eps {
		return nil, false
	}

	if t.IsBasic(targetVar) {
		pivotCol, found := firstNonzeroCol(t, targetVar)
		if !found {
			return nil, false
		}
		simplex.Pivot(t, pivotCol, targetVar)
	}

	t.Assign[targetVar] = targetVal
	t.RecomputeBasics()

	res := simplex.SolveWithOptions(t, simplex.Options{MaxIter: s.opts.SimplexMaxIter})
	if !res.Satisfiable {
		return nil, false
	}
	return res.Assignment, true
}

func firstNonzeroCol(t *simplex.Tableau, basicVar string) (string, bool) {
	for _, row := range t.Rows {
		if row.BasicVar != basicVar {
			continue
		}
		names := make([]string, 0, len(row.Coeffs))
		for v := range row.Coeffs {
			names = append(names, v)
		}
		sort.Strings(names)
		for _, v := range names {
			if abs(row.Coeffs[v]) > simplex.Eps {
				return v, true
			}
		}
	}
	return "", false
}

// selectViolation returns the violated pair with the lowest repair
// count, ties broken by original order (stable, matching Python's
// min(..., key=...) over a list).
func (s *search) selectViolation(viol []Pair) Pair {
	best := viol[0]
	bestCount := s.repairCount[best]
	for _, p := range viol[1:] {
		c := s.repairCount[p]
		if c < bestCount {
			best, bestCount = p, c
		}
	}
	return best
}

// selectBranchVar picks the relu-input variable with the highest
// repair count whose current bounds straddle zero, iterating
// repairCount's pairs sorted by descending count (ties broken by (x,y)
// lexical order for determinism, since Go map iteration order is
// otherwise unspecified).
func (s *search) selectBranchVar(boundsNow map[string]simplex.Bound) (x, y string, ok bool) {
	pairs := make([]Pair, 0, len(s.repairCount))
	for p := range s.repairCount {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		ci, cj := s.repairCount[pairs[i]], s.repairCount[pairs[j]]
		if ci != cj {
			return ci > cj
		}
		if pairs[i].X != pairs[j].X {
			return pairs[i].X < pairs[j].X
		}
		return pairs[i].Y < pairs[j].Y
	})

	for _, p := range pairs {
		b, exists := boundsNow[p.X]
		if !exists {
			b = simplex.Bound{Lower: negInf, Upper: posInf}
		}
		if b.Lower < 0 && b.Upper > 0 {
			for _, rp := range s.relus {
				if rp.X == p.X {
					return p.X, rp.Y, true
				}
			}
			return p.X, "", true
		}
	}
	return "", "", false
}

func boundOrFree(bounds map[string]simplex.Bound, v string) (float64, float64) {
	b, ok := bounds[v]
	if !ok {
		return negInf, posInf
	}
	return b.Lower, b.Upper
}

// max0 returns max(0, v) — used both for the per-recursive-call
// re-intersection of every ReLU output's lower bound with 0, and for
// tightening a ReLU-active branch's lower bound (spec §4.5).
func max0(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0.0
}

// max0AgainstLower is an alias of max0 kept for call-site clarity at the
// active-branch bound-tightening site.
func max0AgainstLower(lo float64) float64 {
	return max0(lo)
}

// min0AgainstUpper returns min(0, hi) — the rule spec §4.5 states for
// tightening a ReLU-inactive branch's upper bound.
func min0AgainstUpper(hi float64) float64 {
	if hi < 0 {
		return hi
	}
	return 0.0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
