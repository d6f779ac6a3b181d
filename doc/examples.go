// Package main demonstrates usage of the LRA+ReLU decision procedure:
// parsing the DSL, running the DPLL(T) orchestrator, and benchmarking
// a handful of scenarios end to end.
package main

import (
	"fmt"

	smt "github.com/xDarkicex/reluplex-smt"
	"github.com/xDarkicex/reluplex-smt/ast"
	"github.com/xDarkicex/reluplex-smt/orchestrator"
)

// ExampleBasicSatisfiable shows a trivially satisfiable linear conjunction.
func ExampleBasicSatisfiable() {
	fmt.Println("=== Basic satisfiable conjunction ===")

	res, err := smt.Solve("ineq(1,x,2) and ineq(-1,x,-10)")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("satisfiable: %v (rounds: %d)\n", res.Satisfiable, res.Rounds)
	fmt.Println()
}

// ExampleUnsatisfiableBounds shows a direct bound contradiction.
func ExampleUnsatisfiableBounds() {
	fmt.Println("=== Contradictory bounds ===")

	res, err := smt.Solve("ineq(1,x,5) and ineq(-1,x,-3)")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("satisfiable: %v (rounds: %d)\n", res.Satisfiable, res.Rounds)
	fmt.Println()
}

// ExampleReluConstraint shows a satisfiable formula involving a single
// ReLU relation.
func ExampleReluConstraint() {
	fmt.Println("=== ReLU constraint ===")

	res, err := smt.Solve("relu(x,y) and ineq(1,x,3)")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("satisfiable: %v (rounds: %d)\n", res.Satisfiable, res.Rounds)
	if res.Satisfiable {
		fmt.Printf("x=%v y=%v\n", res.Assignment["x"], res.Assignment["y"])
	}
	fmt.Println()
}

// ExampleFormulaBuilder shows building a formula programmatically
// instead of parsing the DSL.
func ExampleFormulaBuilder() {
	fmt.Println("=== Programmatic formula construction ===")

	f := smt.Build(ast.Ineq([]ast.Term{{Var: "x", Coeff: 1}}, 0)).
		And(ast.Relu("x", "y")).
		Formula()

	res, err := smt.SolveFormula(f)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("satisfiable: %v\n", res.Satisfiable)
	fmt.Println()
}

// ExampleBenchmark runs several scenarios and prints a timing summary.
func ExampleBenchmark() {
	fmt.Println("=== Benchmark ===")

	b := smt.NewBenchmark()
	b.Add("satisfiable bounds", func() (*orchestrator.Result, error) {
		return smt.Solve("ineq(1,x,2) and ineq(-1,x,-10)")
	})
	b.Add("contradictory bounds", func() (*orchestrator.Result, error) {
		return smt.Solve("ineq(1,x,5) and ineq(-1,x,-3)")
	})
	b.Add("relu constraint", func() (*orchestrator.Result, error) {
		return smt.Solve("relu(x,y) and ineq(1,x,3)")
	})
	b.Run()
	for _, line := range b.Summary() {
		fmt.Println(line)
	}
	fmt.Println()
}

func main() {
	ExampleBasicSatisfiable()
	ExampleUnsatisfiableBounds()
	ExampleReluConstraint()
	ExampleFormulaBuilder()
	ExampleBenchmark()
}
