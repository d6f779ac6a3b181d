package core

import "fmt"

// NameGen produces fresh, collision-free variable/atom names scoped to a
// single solve call. Spec §9 explicitly calls for replacing global
// mutable counters with a per-solve generator passed explicitly, so
// that replays are deterministic and concurrent solves never interfere.
type NameGen struct {
	prefix string
	next   int
}

// NewNameGen creates a generator that yields "<prefix><n>" for increasing n.
func NewNameGen(prefix string) *NameGen {
	return &NameGen{prefix: prefix}
}

// Next returns the next fresh name and advances the counter.
func (g *NameGen) Next() string {
	name := fmt.Sprintf("%s%d", g.prefix, g.next)
	g.next++
	return name
}

// Count reports how many names have been generated so far.
func (g *NameGen) Count() int {
	return g.next
}
