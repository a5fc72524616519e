package solver

// varBumpActivity raises a variable's activity by the current increment and
// restores its heap position.
func (s *Solver) varBumpActivity(v int) {
	s.activity[v] += s.varInc

	if s.activity[v] > 1e100 {
		s.varRescaleActivity()
	}
	s.order.Fix(v)
}

// varDecayActivity decays variable activity by growing the future increment,
// approximating an exponential recency weighting without touching every
// score.
func (s *Solver) varDecayActivity() {
	s.varInc *= s.varDecay
}

// varRescaleActivity rescales all variable activity to avoid overflow.
// Relative order is preserved.
func (s *Solver) varRescaleActivity() {
	for v := 0; v < s.numVars; v++ {
		s.activity[v] *= 1e-100
	}
	s.varInc *= 1e-100
}

// claBumpActivity raises a clause's activity score.
func (s *Solver) claBumpActivity(c *Clause) {
	c.activity += s.claInc

	if c.activity > 1e20 {
		s.claRescaleActivity()
	}
}

// claDecayActivity decays clause activity by growing the future increment.
func (s *Solver) claDecayActivity() {
	s.claInc *= s.claDecay
}

// claRescaleActivity rescales all clause activity to avoid overflow.
func (s *Solver) claRescaleActivity() {
	for _, c := range s.learnts {
		c.activity *= 1e-20
	}
	s.claInc *= 1e-20
}

// decayActivities is invoked once per conflict.
func (s *Solver) decayActivities() {
	s.varDecayActivity()
	s.claDecayActivity()
}
