package solver

import (
	"github.com/Qwaz/satire/lit"
)

// propagate saturates the consequences of everything in the propagation
// queue. It returns nil once a fixpoint is reached, or the conflicting clause
// as soon as some clause is falsified. Work is proportional to the watch-list
// entries actually visited, never to whole clause database.
func (s *Solver) propagate() *Clause {
	for s.propQ.Size() > 0 {
		p := s.propQ.Dequeue()
		s.stats.Propagations++

		// Every clause watching ~p must be rechecked. Watchers
		// re-register themselves as they go: either back here, or on
		// the literal their watch moved to.
		watching := s.watches[p]
		s.watches[p] = nil

		for i, c := range watching {
			if s.propagateClause(c, p) {
				continue
			}
			// Conflict. Keep the unvisited watchers and drop the
			// queue; the analyzer takes over from here.
			s.watches[p] = append(s.watches[p], watching[i+1:]...)
			s.propQ.Clear()

			return c
		}
	}
	return nil
}

// propagateClause rechecks c after p became true, where c was watching ~p.
// It either moves the endangered watch to another literal, recognizes the
// clause as satisfied, or derives the unit implication. Returns false on
// conflict.
func (s *Solver) propagateClause(c *Clause, p lit.Lit) bool {
	// Normalize so the falsified watch sits in lits[1].
	if c.lits[0] == p.Not() {
		c.lits[0], c.lits[1] = c.lits[1], c.lits[0]
	}
	// If the other watch is already true the clause is satisfied; just
	// keep watching ~p.
	if s.litValue(c.lits[0]).True() {
		s.watch(c, p)
		return true
	}
	// Look for a non-false literal to take over the watch.
	for i := 2; i < len(c.lits); i++ {
		if !s.litValue(c.lits[i]).False() {
			c.lits[1], c.lits[i] = c.lits[i], c.lits[1]
			s.watch(c, c.lits[1].Not())
			return true
		}
	}
	// Every alternative is false: the clause is unit on the other watch,
	// or conflicting if that literal is false too.
	s.watch(c, p)
	return s.enqueue(c.lits[0], c)
}
