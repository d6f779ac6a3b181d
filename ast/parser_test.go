package ast

import (
	"testing"

	"github.com/xDarkicex/reluplex-smt/core"
)

func TestParseAtoms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *Formula
	}{
		{"true literal", "true", True()},
		{"false literal", "false", False()},
		{"bare variable", "p", Var("p")},
		{"two-term ineq", "ineq(1,x,5)", Ineq([]Term{{Var: "x", Coeff: 1}}, 5)},
		{
			"multi-term ineq",
			"ineq(1,x,1,y,5)",
			Ineq([]Term{{Var: "x", Coeff: 1}, {Var: "y", Coeff: 1}}, 5),
		},
		{"negative coefficient ineq", "ineq(-1,x,-10)", Ineq([]Term{{Var: "x", Coeff: -1}}, -10)},
		{"relu atom", "relu(x,y)", Relu("x", "y")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.src, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestParseConnectives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *Formula
	}{
		{"conjunction", "p and q", And(Var("p"), Var("q"))},
		{"disjunction", "p or q", Or(Var("p"), Var("q"))},
		{"negation with not", "not p", Not(Var("p"))},
		{"negation with tilde", "~p", Not(Var("p"))},
		{"implication", "p -> q", Implies(Var("p"), Var("q"))},
		{
			"implication is right-associative",
			"p -> q -> r",
			Implies(Var("p"), Implies(Var("q"), Var("r"))),
		},
		{
			"and binds tighter than or",
			"p or q and r",
			Or(Var("p"), And(Var("q"), Var("r"))),
		},
		{"parenthesized grouping", "(p or q) and r", And(Or(Var("p"), Var("q")), Var("r"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.src, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unterminated paren", "(p and q"},
		{"dangling and", "p and"},
		{"malformed ineq missing constant", "ineq(1,x)"},
		{"relu missing arg", "relu(x)"},
		{"stray character", "p @ q"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			if err == nil {
				t.Fatalf("Parse(%q): expected error, got none", tc.src)
			}
			if !core.IsKind(err, core.ErrParse) {
				t.Errorf("Parse(%q): expected ErrParse kind, got %v", tc.src, err)
			}
		})
	}
}
