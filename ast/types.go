// Package ast defines the formula algebra for the LRA+ReLU theory: a
// small sum type of propositional and theory-atom variants, together
// with the normalizer (Simplify/EliminateImplies/NNF) and the surface
// DSL lexer/parser that produce it.
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the variants of Formula. Dispatch is always an
// explicit switch on Kind — the same switch-driven ASTNode.Type
// dispatch pattern, rather than virtual/interface dispatch over
// formula variants — per spec §9's explicit preference for a tagged
// sum over dynamic dispatch.
type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindVar
	KindIneq
	KindRelu
	KindAnd
	KindOr
	KindNot
	KindImplies
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindVar:
		return "Var"
	case KindIneq:
		return "Ineq"
	case KindRelu:
		return "Relu"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindNot:
		return "Not"
	case KindImplies:
		return "Implies"
	default:
		return "Unknown"
	}
}

// IsTheoryAtom reports whether this Kind is interpreted by the theory
// solver (inequality or ReLU relation) rather than purely propositionally.
func (k Kind) IsTheoryAtom() bool {
	return k == KindIneq || k == KindRelu
}

// Term is one (coefficient, variable) summand of a linear inequality.
type Term struct {
	Var   string
	Coeff float64
}

// Formula is an immutable AST node. Nodes are compared by value
// (structural equality, see Equal); the same formula built twice from
// the same inputs compares Equal after canonicalization performed by the
// constructors below (terms sorted, duplicate variables merged).
type Formula struct {
	Kind Kind

	// KindVar
	Name string

	// KindIneq: denotes Σ Terms[i].Coeff * Terms[i].Var >= B
	Terms []Term
	B     float64

	// KindRelu: denotes Y = max(0, X)
	X, Y string

	// KindAnd, KindOr, KindNot, KindImplies
	Children []*Formula

	Position int
}

// True is the constant true formula.
func True() *Formula { return &Formula{Kind: KindTrue} }

// False is the constant false formula.
func False() *Formula { return &Formula{Kind: KindFalse} }

// Var constructs a propositional variable leaf.
func Var(name string) *Formula { return &Formula{Kind: KindVar, Name: name} }

// Ineq constructs a canonicalized linear inequality Σ cᵢxᵢ >= b.
// Duplicate variables are merged by summing coefficients, zero
// coefficients are dropped, and terms are sorted by variable name so
// that two inequalities built from the same multiset of terms compare
// structurally equal regardless of input order (the "frozen set"
// semantics of spec §3).
func Ineq(terms []Term, b float64) *Formula {
	merged := make(map[string]float64, len(terms))
	order := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, seen := merged[t.Var]; !seen {
			order = append(order, t.Var)
		}
		merged[t.Var] += t.Coeff
	}
	sort.Strings(order)
	out := make([]Term, 0, len(order))
	for _, v := range order {
		c := merged[v]
		if c == 0 {
			continue
		}
		out = append(out, Term{Var: v, Coeff: c})
	}
	return &Formula{Kind: KindIneq, Terms: out, B: b}
}

// Relu constructs the ReLU atom y = max(0, x).
func Relu(x, y string) *Formula { return &Formula{Kind: KindRelu, X: x, Y: y} }

// And constructs a (possibly n-ary, folded left-to-right into binary
// nodes) conjunction.
func And(fs ...*Formula) *Formula { return foldBinary(KindAnd, fs) }

// Or constructs a (possibly n-ary) disjunction.
func Or(fs ...*Formula) *Formula { return foldBinary(KindOr, fs) }

// Not constructs a negation.
func Not(f *Formula) *Formula { return &Formula{Kind: KindNot, Children: []*Formula{f}} }

// Implies constructs P -> Q.
func Implies(p, q *Formula) *Formula {
	return &Formula{Kind: KindImplies, Children: []*Formula{p, q}}
}

func foldBinary(kind Kind, fs []*Formula) *Formula {
	switch len(fs) {
	case 0:
		if kind == KindAnd {
			return True()
		}
		return False()
	case 1:
		return fs[0]
	}
	acc := fs[0]
	for _, f := range fs[1:] {
		acc = &Formula{Kind: kind, Children: []*Formula{acc, f}}
	}
	return acc
}

// Equal reports structural equality.
func (f *Formula) Equal(g *Formula) bool {
	if f == nil || g == nil {
		return f == g
	}
	if f.Kind != g.Kind {
		return false
	}
	switch f.Kind {
	case KindTrue, KindFalse:
		return true
	case KindVar:
		return f.Name == g.Name
	case KindIneq:
		if f.B != g.B || len(f.Terms) != len(g.Terms) {
			return false
		}
		for i := range f.Terms {
			if f.Terms[i] != g.Terms[i] {
				return false
			}
		}
		return true
	case KindRelu:
		return f.X == g.X && f.Y == g.Y
	default:
		if len(f.Children) != len(g.Children) {
			return false
		}
		for i := range f.Children {
			if !f.Children[i].Equal(g.Children[i]) {
				return false
			}
		}
		return true
	}
}

// String renders the formula back into (roughly) the DSL surface
// syntax; intended for debugging/test failure messages, not as the
// pretty-printer the spec explicitly excludes from scope.
func (f *Formula) String() string {
	if f == nil {
		return "<nil>"
	}
	switch f.Kind {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindVar:
		return f.Name
	case KindIneq:
		var sb strings.Builder
		sb.WriteString("ineq(")
		for _, t := range f.Terms {
			fmt.Fprintf(&sb, "%g,%s,", t.Coeff, t.Var)
		}
		fmt.Fprintf(&sb, "%g)", f.B)
		return sb.String()
	case KindRelu:
		return fmt.Sprintf("relu(%s,%s)", f.X, f.Y)
	case KindNot:
		return "not " + f.Children[0].String()
	case KindAnd:
		return "(" + f.Children[0].String() + " and " + f.Children[1].String() + ")"
	case KindOr:
		return "(" + f.Children[0].String() + " or " + f.Children[1].String() + ")"
	case KindImplies:
		return "(" + f.Children[0].String() + " -> " + f.Children[1].String() + ")"
	default:
		return "<?>"
	}
}
