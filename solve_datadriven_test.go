package smt

import (
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/kr/pretty"

	"github.com/xDarkicex/reluplex-smt/core"
)

// TestSolveDatadriven runs the fixed-format scenarios in testdata/solve,
// in the style of cockroachdb/datadriven's own TestDatadriven harness:
// each "solve" command's input is DSL source, and the expected output is
// "sat", "unsat", or "error: <kind>".
func TestSolveDatadriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/solve", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "solve":
			res, err := Solve(d.Input)
			if err != nil {
				if se, ok := err.(*core.SolverError); ok {
					return "error: " + se.Kind.String()
				}
				return "error: " + err.Error()
			}
			if res.Satisfiable {
				return "sat"
			}
			return "unsat"
		default:
			t.Fatalf("unrecognized command: %s", d.Cmd)
			return ""
		}
	})
}

// TestSolveAssignmentSatisfiesEveryInequality spot-checks that the
// assignment returned for a satisfiable formula actually satisfies every
// inequality it was parsed from, printing a pretty.Sprint dump on
// failure so a map/struct mismatch reads cleanly instead of as Go's
// default %v output.
func TestSolveAssignmentSatisfiesEveryInequality(t *testing.T) {
	res, err := Solve("ineq(2,x,1,y,8) and ineq(1,x,0) and ineq(1,y,0)")
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if !res.Satisfiable {
		t.Fatal("expected satisfiable")
	}

	x, y := res.Assignment["x"], res.Assignment["y"]
	if 2*x+y < 8-1e-6 || x < -1e-6 || y < -1e-6 {
		t.Errorf("assignment does not satisfy constraints:\n%s", pretty.Sprint(res.Assignment))
	}
}
