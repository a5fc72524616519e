// Package dpll implements the exhaustive DPLL baseline solver: unit
// propagation over occurrence lists with per-clause satisfied/falsified
// counters, chronological backtracking, and a first-unassigned-variable
// decision rule. Backtracking state lives on an explicit stack of search
// frames rather than the call stack, so deep formulas cannot exhaust call
// depth.
package dpll

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Qwaz/satire/cnf"
	"github.com/Qwaz/satire/config"
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
	"github.com/Qwaz/satire/tribool"
)

// Stats counts the work performed by a solve.
type Stats struct {
	Decisions    int64
	Propagations int64
	Backtracks   int64
}

// frame is one entry of the explicit search stack: a decision literal, the
// trail length just before it was asserted, and whether its complement has
// already been tried.
type frame struct {
	decision lit.Lit
	trailLen int
	flipped  bool
}

// Solver is the DPLL engine. Like the CDCL engine it owns all of its state;
// independent instances may run concurrently.
type Solver struct {
	conf   *config.Config
	logger *logrus.Logger

	numVars int
	// clauses holds the normalized input clauses (duplicates removed,
	// tautologies dropped).
	clauses [][]lit.Lit
	// occur maps each literal to the clauses it appears in.
	occur [][]int
	// satCount and falseCount track, per clause, how many of its literals
	// are currently true respectively false.
	satCount   []int
	falseCount []int
	// numSatisfied counts clauses with satCount > 0; numFalsified counts
	// clauses whose every literal is false.
	numSatisfied int
	numFalsified int

	assigns []tribool.Tribool
	trail   []lit.Lit
	frames  []frame

	// unsat records an empty input clause.
	unsat bool

	stats Stats
}

// New builds a DPLL solver from a parsed formula.
func New(f *cnf.Formula, conf *config.Config) *Solver {
	s := &Solver{
		conf:    conf,
		logger:  conf.Logger,
		numVars: f.NumVars,
		occur:   make([][]int, f.NumVars*2),
		assigns: make([]tribool.Tribool, f.NumVars),
		trail:   make([]lit.Lit, 0, f.NumVars),
	}

	for _, ints := range f.Clauses {
		clause, tautology := normalize(ints)
		if tautology {
			continue
		}
		if len(clause) == 0 {
			s.unsat = true
			return s
		}
		idx := len(s.clauses)
		s.clauses = append(s.clauses, clause)
		for _, p := range clause {
			s.occur[p] = append(s.occur[p], idx)
		}
	}
	s.satCount = make([]int, len(s.clauses))
	s.falseCount = make([]int, len(s.clauses))

	return s
}

// normalize converts a clause to literals, dropping duplicates. The second
// return value is true when the clause is a tautology.
func normalize(ints []int) ([]lit.Lit, bool) {
	seen := make(map[lit.Lit]struct{}, len(ints))
	clause := make([]lit.Lit, 0, len(ints))
	for _, p := range ints {
		l := lit.NewFromInt(p)
		if _, ok := seen[l.Not()]; ok {
			return nil, true
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		clause = append(clause, l)
	}
	return clause, false
}

// Solve runs the DPLL search to completion. The context is polled only
// between decisions.
func (s *Solver) Solve(ctx context.Context) (result sat.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fault, ok := r.(*sat.InternalError); ok {
				err = fault
				return
			}
			panic(r)
		}
	}()

	if s.unsat {
		return sat.Result{Status: sat.Unsat}, nil
	}
	return s.search(ctx), nil
}

// Stats returns the work counters of the most recent solve.
func (s *Solver) Stats() Stats {
	return s.stats
}

func (s *Solver) search(ctx context.Context) sat.Result {
	for {
		switch {
		case s.numFalsified > 0:
			if !s.backtrack() {
				return sat.Result{Status: sat.Unsat}
			}

		case s.numSatisfied == len(s.clauses):
			return sat.Result{Status: sat.Sat, Model: s.buildModel()}

		default:
			if p := s.findUnit(); p != lit.Undef {
				s.stats.Propagations++
				s.assign(p)
				continue
			}

			select {
			case <-ctx.Done():
				return sat.Result{Status: sat.Unknown}
			default:
			}
			if s.conf.MaxDecisions > 0 && s.stats.Decisions >= s.conf.MaxDecisions {
				return sat.Result{Status: sat.Unknown}
			}

			s.stats.Decisions++
			s.decide()
		}
	}
}

// decide pushes a new search frame trying the first unassigned variable,
// positive polarity first.
func (s *Solver) decide() {
	for v := 0; v < s.numVars; v++ {
		if s.assigns[v].Undef() {
			p := lit.New(v, false)
			s.frames = append(s.frames, frame{decision: p, trailLen: len(s.trail)})
			s.assign(p)
			return
		}
	}
	panic(sat.Faultf("decision requested with no unassigned variable left"))
}

// backtrack unwinds search frames until one with an untried complement is
// found, flips it, and resumes. Returns false when the stack is exhausted,
// which proves the formula unsatisfiable.
func (s *Solver) backtrack() bool {
	for {
		if len(s.frames) == 0 {
			return false
		}
		s.stats.Backtracks++

		f := &s.frames[len(s.frames)-1]
		for len(s.trail) > f.trailLen {
			s.unassign()
		}
		if !f.flipped {
			f.flipped = true
			s.assign(f.decision.Not())
			return true
		}
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// findUnit scans for a clause with no true literal and exactly one
// non-false literal left, returning that literal, or lit.Undef if none
// exists. A linear scan, deliberately so: the baseline trades speed for
// simplicity.
func (s *Solver) findUnit() lit.Lit {
	for idx, clause := range s.clauses {
		if s.satCount[idx] > 0 || s.falseCount[idx] != len(clause)-1 {
			continue
		}
		for _, p := range clause {
			if s.litValue(p).Undef() {
				return p
			}
		}
		panic(sat.Faultf("unit clause %d has no unassigned literal", idx))
	}
	return lit.Undef
}

// assign makes p true and updates the clause counters it touches. Assigning
// an already assigned variable is a contract violation.
func (s *Solver) assign(p lit.Lit) {
	if !s.assigns[p.Index()].Undef() {
		panic(sat.Faultf("assignment to already assigned variable %d", p.Var()))
	}
	s.assigns[p.Index()] = tribool.NewFromBool(!p.Sign())
	s.trail = append(s.trail, p)

	for _, idx := range s.occur[p] {
		if s.satCount[idx] == 0 {
			s.numSatisfied++
		}
		s.satCount[idx]++
	}
	for _, idx := range s.occur[p.Not()] {
		s.falseCount[idx]++
		if s.falseCount[idx] == len(s.clauses[idx]) {
			s.numFalsified++
		}
	}
}

// unassign undoes the most recent assignment.
func (s *Solver) unassign() {
	p := s.trail[len(s.trail)-1]
	s.trail = s.trail[:len(s.trail)-1]
	s.assigns[p.Index()] = tribool.Undef

	for _, idx := range s.occur[p] {
		s.satCount[idx]--
		if s.satCount[idx] == 0 {
			s.numSatisfied--
		}
	}
	for _, idx := range s.occur[p.Not()] {
		if s.falseCount[idx] == len(s.clauses[idx]) {
			s.numFalsified--
		}
		s.falseCount[idx]--
	}
}

// litValue returns the current value of a literal.
func (s *Solver) litValue(p lit.Lit) tribool.Tribool {
	if p.Sign() {
		return s.assigns[p.Index()].Not()
	}
	return s.assigns[p.Index()]
}

// buildModel snapshots the assignment; variables left unassigned once every
// clause is satisfied default to true.
func (s *Solver) buildModel() []bool {
	model := make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		model[v] = !s.assigns[v].False()
	}
	return model
}
