package solver

import (
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
)

// analyze derives a learnt clause from a conflict at the current decision
// level by resolving the conflicting clause against the antecedents of
// current-level literals, walking the trail backwards, until exactly one
// current-level literal remains: the first unique implication point. The
// returned clause has the negated first-UIP in position 0 and is asserting at
// the returned backjump level, the second-highest decision level among its
// literals (0 when the clause is unit). Every variable met during resolution
// gets an activity bump.
//
// The caller guarantees the conflict did not happen at level 0.
func (s *Solver) analyze(confl *Clause) ([]lit.Lit, int) {
	seen := make([]bool, s.numVars)
	learnt := []lit.Lit{lit.Undef} // room for the asserting literal
	counter := 0                   // unresolved current-level variables
	btLevel := 0

	p := lit.Undef
	idx := len(s.trail) - 1

	for {
		if confl.learnt {
			s.claBumpActivity(confl)
		}
		// Resolve in the literals this clause falsifies. For the
		// conflicting clause that is all of them; for an antecedent,
		// lits[0] is the implied literal p itself and is skipped.
		reason := confl.lits
		if p != lit.Undef {
			reason = confl.lits[1:]
		}
		for _, q := range reason {
			v := q.Index()
			if seen[v] {
				continue
			}
			seen[v] = true
			s.varBumpActivity(v)

			switch level := s.level[v]; {
			case level == s.decisionLevel():
				counter++
			case level > 0:
				learnt = append(learnt, q)
				if level > btLevel {
					btLevel = level
				}
			}
		}

		// Walk back to the most recent trail literal that takes part
		// in the conflict.
		for !seen[s.trail[idx].Index()] {
			idx--
		}
		p = s.trail[idx]
		idx--

		counter--
		if counter == 0 {
			break
		}

		confl = s.reason[p.Index()]
		if confl == nil {
			panic(sat.Faultf("resolution reached literal %s with no antecedent before the first UIP", p))
		}
	}
	learnt[0] = p.Not()

	s.logger.Debugf("learnt %v, backjump to level %d", learnt, btLevel)

	return learnt, btLevel
}
