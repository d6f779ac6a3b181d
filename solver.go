// Package smt is the top-level facade over the LRA+ReLU decision
// procedure: parse a DSL source string (or take an already-built
// ast.Formula) and run it through the DPLL(T) orchestrator.
package smt

import (
	"github.com/xDarkicex/reluplex-smt/ast"
	"github.com/xDarkicex/reluplex-smt/orchestrator"
)

// DefaultOrchestratorOptions is the configuration used by the package-level
// Solve/SolveFormula convenience functions.
var DefaultOrchestratorOptions = orchestrator.DefaultOptions

// Solve parses src as a DSL formula (spec §6 grammar) and decides its
// satisfiability.
func Solve(src string) (*orchestrator.Result, error) {
	f, err := ast.Parse(src)
	if err != nil {
		return nil, err
	}
	return SolveFormula(f)
}

// SolveFormula decides satisfiability of an already-built formula.
func SolveFormula(f *ast.Formula) (*orchestrator.Result, error) {
	return orchestrator.SolveWithOptions(f, DefaultOrchestratorOptions)
}

// SolveWithOptions parses src and decides satisfiability with explicit
// orchestrator options (overriding MaxRounds, per-theory caps, etc.).
func SolveWithOptions(src string, opts orchestrator.Options) (*orchestrator.Result, error) {
	f, err := ast.Parse(src)
	if err != nil {
		return nil, err
	}
	return orchestrator.SolveWithOptions(f, opts)
}
