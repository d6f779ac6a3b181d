package ast

// Simplify constant-folds True/False through And/Or/Not and removes
// double negation. Theory atoms and variables pass through unchanged.
func Simplify(f *Formula) *Formula {
	switch f.Kind {
	case KindTrue, KindFalse, KindVar, KindIneq, KindRelu:
		return f

	case KindNot:
		inner := Simplify(f.Children[0])
		if inner.Kind == KindTrue {
			return False()
		}
		if inner.Kind == KindFalse {
			return True()
		}
		if inner.Kind == KindNot {
			return inner.Children[0] // double negation removed
		}
		return Not(inner)

	case KindAnd:
		l := Simplify(f.Children[0])
		r := Simplify(f.Children[1])
		if l.Kind == KindFalse || r.Kind == KindFalse {
			return False()
		}
		if l.Kind == KindTrue {
			return r
		}
		if r.Kind == KindTrue {
			return l
		}
		return And(l, r)

	case KindOr:
		l := Simplify(f.Children[0])
		r := Simplify(f.Children[1])
		if l.Kind == KindTrue || r.Kind == KindTrue {
			return True()
		}
		if l.Kind == KindFalse {
			return r
		}
		if r.Kind == KindFalse {
			return l
		}
		return Or(l, r)

	case KindImplies:
		l := Simplify(f.Children[0])
		r := Simplify(f.Children[1])
		if l.Kind == KindFalse || r.Kind == KindTrue {
			return True()
		}
		if l.Kind == KindTrue {
			return r
		}
		return Implies(l, r)

	default:
		return f
	}
}

// EliminateImplies rewrites every `P -> Q` node to `¬P ∨ Q`, structurally,
// recursing into children first.
func EliminateImplies(f *Formula) *Formula {
	switch f.Kind {
	case KindTrue, KindFalse, KindVar, KindIneq, KindRelu:
		return f
	case KindNot:
		return Not(EliminateImplies(f.Children[0]))
	case KindAnd:
		return And(EliminateImplies(f.Children[0]), EliminateImplies(f.Children[1]))
	case KindOr:
		return Or(EliminateImplies(f.Children[0]), EliminateImplies(f.Children[1]))
	case KindImplies:
		p := EliminateImplies(f.Children[0])
		q := EliminateImplies(f.Children[1])
		return Or(Not(p), q)
	default:
		return f
	}
}

// NNF pushes negation down to the atoms (De Morgan), after eliminating
// implications. A negated theory atom is preserved as Not(atom) — the
// CNF encoder assigns it a single propositional name and the
// orchestrator is responsible for interpreting the negation (spec
// §4.1, §4.6); NNF itself never tries to interpret it.
func NNF(f *Formula) *Formula {
	return nnf(EliminateImplies(f), false)
}

// nnf recursively pushes a pending negation (neg) down to the leaves.
func nnf(f *Formula, neg bool) *Formula {
	switch f.Kind {
	case KindTrue:
		if neg {
			return False()
		}
		return True()
	case KindFalse:
		if neg {
			return True()
		}
		return False()
	case KindVar, KindIneq, KindRelu:
		if neg {
			return Not(f)
		}
		return f
	case KindNot:
		return nnf(f.Children[0], !neg)
	case KindAnd:
		l := nnf(f.Children[0], neg)
		r := nnf(f.Children[1], neg)
		if neg {
			return Or(l, r) // De Morgan: ¬(a∧b) = ¬a∨¬b
		}
		return And(l, r)
	case KindOr:
		l := nnf(f.Children[0], neg)
		r := nnf(f.Children[1], neg)
		if neg {
			return And(l, r) // De Morgan: ¬(a∨b) = ¬a∧¬b
		}
		return Or(l, r)
	case KindImplies:
		// EliminateImplies runs first in NNF/Normalize, but nnf is
		// exported-adjacent enough that a caller could feed it an
		// un-eliminated Implies node directly; treat it the same as
		// Or(Not(p), q) rather than assuming it never appears here.
		expanded := Or(Not(f.Children[0]), f.Children[1])
		return nnf(expanded, neg)
	default:
		return f
	}
}

// Normalize runs the full pipeline Simplify -> EliminateImplies -> NNF,
// the sequence the orchestrator applies to every input formula before
// Tseitin encoding.
func Normalize(f *Formula) *Formula {
	return NNF(Simplify(f))
}
