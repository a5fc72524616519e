package solver

import (
	"context"

	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
)

// search is the CDCL driver loop: propagate to a fixpoint, then either handle
// the conflict (learn, backjump, assert) or make a new decision, until every
// variable is assigned (SAT), a contradiction is derived at level 0 (UNSAT),
// or the decision budget runs out (Unknown).
func (s *Solver) search(ctx context.Context) sat.Result {
	for {
		if confl := s.propagate(); confl != nil {
			s.stats.Conflicts++
			s.logger.Debugf("conflict %d in clause [%s] at level %d", s.stats.Conflicts, confl, s.decisionLevel())

			// A conflict independent of any decision refutes the
			// formula.
			if s.decisionLevel() == 0 {
				return sat.Result{Status: sat.Unsat}
			}

			learnt, btLevel := s.analyze(confl)
			s.cancelUntil(btLevel)
			if !s.record(learnt) {
				return sat.Result{Status: sat.Unsat}
			}
			s.decayActivities()
			continue
		}

		if s.numAssigns() == s.numVars {
			model := s.buildModel()
			s.cancelUntil(0)
			return sat.Result{Status: sat.Sat, Model: model}
		}

		// Decision boundary: the only place cancellation is observed,
		// so clause and trail invariants always hold when we leave.
		select {
		case <-ctx.Done():
			s.cancelUntil(0)
			return sat.Result{Status: sat.Unknown}
		default:
		}
		if s.conf.MaxDecisions > 0 && s.stats.Decisions >= s.conf.MaxDecisions {
			s.cancelUntil(0)
			return sat.Result{Status: sat.Unknown}
		}

		s.stats.Decisions++
		s.assume(s.chooseDecision())
	}
}

// chooseDecision returns the next decision literal: the unassigned variable
// of maximum activity, tried positive first. Entries popped from the order
// may be stale (already assigned by propagation) and are discarded here.
func (s *Solver) chooseDecision() lit.Lit {
	for {
		v := s.order.Pop()
		if v < 0 {
			panic(sat.Faultf("decision requested with no unassigned variable left"))
		}
		if s.assigns[v].Undef() {
			return lit.New(v, false)
		}
	}
}

// buildModel snapshots the current total assignment. Called only when every
// variable is assigned.
func (s *Solver) buildModel() []bool {
	model := make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		if s.assigns[v].Undef() {
			panic(sat.Faultf("model requested with variable %d unassigned", v+1))
		}
		model[v] = s.assigns[v].True()
	}
	return model
}
