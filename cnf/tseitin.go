package cnf

import (
	"github.com/xDarkicex/reluplex-smt/ast"
	"github.com/xDarkicex/reluplex-smt/core"
)

// AtomMap is the bidirectional table between theory atoms (inequality
// or ReLU formulas) and the propositional atom names the encoder gives
// them. Spec §9 explicitly rejects conflating AST node identity with a
// pointer-keyed map; this interns atoms by their canonical string key
// (ast.Formula.String() on a canonicalized Ineq/Relu node is already
// stable under term reordering, see ast.Ineq) into a side table keyed
// by name, giving a stable id rather than a pointer graph.
type AtomMap struct {
	byName map[string]*ast.Formula
	byKey  map[string]string
}

func newAtomMap() *AtomMap {
	return &AtomMap{
		byName: make(map[string]*ast.Formula),
		byKey:  make(map[string]string),
	}
}

// Lookup returns the theory atom a propositional name was assigned to,
// if any.
func (m *AtomMap) Lookup(name string) (*ast.Formula, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Names returns every propositional name assigned to a theory atom.
func (m *AtomMap) Names() []string {
	out := make([]string, 0, len(m.byName))
	for n := range m.byName {
		out = append(out, n)
	}
	return out
}

// Encoder performs the Tseitin transformation of spec §4.2. A fresh
// Encoder must be used per solve call so that auxiliary and theory-atom
// names are assigned deterministically from call to call (spec §9's
// per-solve fresh-name generator requirement).
type Encoder struct {
	aux   *core.NameGen
	theo  *core.NameGen
	cnf   *CNF
	atoms *AtomMap
}

// NewEncoder creates an Encoder with fresh name generators.
func NewEncoder() *Encoder {
	return &Encoder{
		aux:   core.NewNameGen("t_"),
		theo:  core.NewNameGen("a_"),
		cnf:   NewCNF(),
		atoms: newAtomMap(),
	}
}

// Encode converts a normalized (NNF) formula into an equisatisfiable
// CNF, returning the CNF (whose last clause is the unit clause asserting
// the root literal) and the theory-atom map.
func Encode(f *ast.Formula) (*CNF, *AtomMap, error) {
	e := NewEncoder()
	root, err := e.transform(f)
	if err != nil {
		return nil, nil, err
	}
	e.cnf.AddClause(NewClause(root))
	return e.cnf, e.atoms, nil
}

func (e *Encoder) transform(f *ast.Formula) (Literal, error) {
	switch f.Kind {
	case ast.KindTrue:
		name := e.aux.Next()
		e.cnf.AddClause(NewClause(Literal{Variable: name, Negated: false}))
		return Literal{Variable: name}, nil

	case ast.KindFalse:
		name := e.aux.Next()
		e.cnf.AddClause(NewClause(Literal{Variable: name, Negated: true}))
		return Literal{Variable: name}, nil

	case ast.KindVar:
		return Literal{Variable: f.Name}, nil

	case ast.KindIneq, ast.KindRelu:
		return Literal{Variable: e.internTheoryAtom(f)}, nil

	case ast.KindNot:
		inner, err := e.transform(f.Children[0])
		if err != nil {
			return Literal{}, err
		}
		return inner.Negate(), nil

	case ast.KindAnd:
		return e.transformAnd(f)

	case ast.KindOr:
		return e.transformOr(f)

	case ast.KindImplies:
		// Defensive: callers are expected to run ast.Normalize first,
		// which eliminates Implies, but encoding it directly as
		// Or(Not(p), q) keeps this total over any well-formed input.
		expanded := ast.Or(ast.Not(f.Children[0]), f.Children[1])
		return e.transform(expanded)

	default:
		return Literal{}, core.NewSolverError(core.ErrParse, "cnf", "transform", "unknown formula kind")
	}
}

// internTheoryAtom assigns (or reuses) a deterministic name for a
// theory atom, keyed by its canonical structural representation so the
// same inequality/ReLU atom encountered twice gets the same name.
func (e *Encoder) internTheoryAtom(f *ast.Formula) string {
	key := f.String()
	if name, ok := e.atoms.byKey[key]; ok {
		return name
	}
	name := e.theo.Next()
	e.atoms.byKey[key] = name
	e.atoms.byName[name] = f
	return name
}

// transformAnd emits `t ↔ a ∧ b` as {¬t,a}, {¬t,b}, {t,¬a,¬b}, over
// literals rather than bare variables so that a child which is itself a
// negated leaf (e.g. Not(theory-atom)) composes correctly without a
// wasted auxiliary name.
func (e *Encoder) transformAnd(f *ast.Formula) (Literal, error) {
	a, err := e.transform(f.Children[0])
	if err != nil {
		return Literal{}, err
	}
	b, err := e.transform(f.Children[1])
	if err != nil {
		return Literal{}, err
	}
	t := Literal{Variable: e.aux.Next()}

	e.cnf.AddClause(NewClause(t.Negate(), a))
	e.cnf.AddClause(NewClause(t.Negate(), b))
	e.cnf.AddClause(NewClause(t, a.Negate(), b.Negate()))
	return t, nil
}

// transformOr emits `t ↔ a ∨ b` as {¬t,a,b}, {t,¬a}, {t,¬b}.
func (e *Encoder) transformOr(f *ast.Formula) (Literal, error) {
	a, err := e.transform(f.Children[0])
	if err != nil {
		return Literal{}, err
	}
	b, err := e.transform(f.Children[1])
	if err != nil {
		return Literal{}, err
	}
	t := Literal{Variable: e.aux.Next()}

	e.cnf.AddClause(NewClause(t.Negate(), a, b))
	e.cnf.AddClause(NewClause(t, a.Negate()))
	e.cnf.AddClause(NewClause(t, b.Negate()))
	return t, nil
}
