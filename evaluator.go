package smt

import "github.com/xDarkicex/reluplex-smt/ast"

// FormulaBuilder provides a fluent interface for composing formulas,
// in the same method-chaining style as the boolean Evaluator
// (Eval(bool).And(bool).Or(bool).Result()) — generalized here to the
// AST itself so a caller can build up a conjunction/disjunction
// without naming every intermediate node.
//
// Example:
//
//	f := Build(ast.Var("p")).And(ast.Var("q")).Or(ast.Not(ast.Var("r"))).Formula()
type FormulaBuilder struct {
	value *ast.Formula
}

// Build creates a new FormulaBuilder seeded with the given formula.
func Build(initial *ast.Formula) *FormulaBuilder {
	return &FormulaBuilder{value: initial}
}

// And conjoins the current formula with other.
func (b *FormulaBuilder) And(other *ast.Formula) *FormulaBuilder {
	b.value = ast.And(b.value, other)
	return b
}

// Or disjoins the current formula with other.
func (b *FormulaBuilder) Or(other *ast.Formula) *FormulaBuilder {
	b.value = ast.Or(b.value, other)
	return b
}

// Implies builds current -> other.
func (b *FormulaBuilder) Implies(other *ast.Formula) *FormulaBuilder {
	b.value = ast.Implies(b.value, other)
	return b
}

// Not negates the current formula.
func (b *FormulaBuilder) Not() *FormulaBuilder {
	b.value = ast.Not(b.value)
	return b
}

// Formula returns the built formula.
func (b *FormulaBuilder) Formula() *ast.Formula {
	return b.value
}
