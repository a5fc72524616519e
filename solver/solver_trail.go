package solver

import (
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
	"github.com/Qwaz/satire/tribool"
)

// decisionLevel returns the current decision level. Level 0 holds only unit
// facts established without any decision.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// numAssigns returns the number of assigned variables.
func (s *Solver) numAssigns() int {
	return len(s.trail)
}

// assume opens a new decision level and asserts p on it. Assuming a literal
// whose variable is already assigned is a contract violation.
func (s *Solver) assume(p lit.Lit) {
	if !s.assigns[p.Index()].Undef() {
		panic(sat.Faultf("decision on already assigned variable %d", p.Var()))
	}
	s.trailLim = append(s.trailLim, len(s.trail))
	s.enqueue(p, nil)
}

// enqueue records that p is made true, tagged with the current decision level
// and the clause that forced it (nil for decisions), and schedules p for
// propagation. If p is already true nothing happens; if p is already false
// the new fact is conflicting and enqueue returns false.
func (s *Solver) enqueue(p lit.Lit, from *Clause) bool {
	switch val := s.litValue(p); {
	case val.True():
		return true
	case val.False():
		return false
	}
	v := p.Index()
	s.assigns[v] = tribool.NewFromBool(!p.Sign())
	s.level[v] = s.decisionLevel()
	s.reason[v] = from
	s.trail = append(s.trail, p)
	s.propQ.Insert(p)

	return true
}

// undoOne unassigns the most recent trail entry and returns its variable to
// the decision order.
func (s *Solver) undoOne() {
	p := s.trail[len(s.trail)-1]
	v := p.Index()

	s.assigns[v] = tribool.Undef
	s.reason[v] = nil
	s.level[v] = -1
	s.trail = s.trail[:len(s.trail)-1]
	s.order.Push(v)
}

// cancelUntil backjumps to the given decision level: every assignment made
// above it is undone and any pending propagation is discarded, leaving all
// entries at or below the target level untouched. Backtracking to a level
// above the current one is a contract violation.
func (s *Solver) cancelUntil(target int) {
	if target > s.decisionLevel() {
		panic(sat.Faultf("backtrack to level %d above current level %d", target, s.decisionLevel()))
	}
	for s.decisionLevel() > target {
		bound := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > bound {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.propQ.Clear()
}
