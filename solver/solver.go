// Package solver implements a conflict-driven clause learning (CDCL) SAT
// solver: unit propagation over two watched literals per clause, first-UIP
// conflict analysis with non-chronological backjumping, and an activity-based
// (VSIDS) decision heuristic.
package solver

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Qwaz/satire/cnf"
	"github.com/Qwaz/satire/config"
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/order"
	"github.com/Qwaz/satire/sat"
	"github.com/Qwaz/satire/tribool"
)

// Stats counts the work performed by a solve.
type Stats struct {
	Decisions    int64
	Propagations int64
	Conflicts    int64
	Learnt       int64
}

// Solver is the CDCL engine. It owns a clause database, an assignment trail,
// the watch-list index, and the decision heuristic for the lifetime of a
// single Solve call; nothing is shared across instances.
type Solver struct {
	conf   *config.Config
	logger *logrus.Logger

	numVars int

	// Constraint database fields.

	// constrs is the list of original problem clauses.
	constrs []*Clause
	// learnts is the list of clauses derived by conflict analysis.
	learnts []*Clause
	// claInc is the clause activity increment.
	claInc float64
	// claDecay is the decay factor for the clause activity increment.
	claDecay float64
	// unsat records a contradiction found while loading clauses (an empty
	// input clause or conflicting unit facts).
	unsat bool

	// Variable order fields.

	// activity holds the heuristic score of each variable.
	activity []float64
	// varInc is the variable activity increment.
	varInc float64
	// varDecay is the decay factor for the variable activity increment.
	varDecay float64
	// order answers "unassigned variable of maximum activity".
	order *order.Order

	// Propagation fields.

	// watches maps each literal to the clauses watching its negation.
	watches [][]*Clause
	// propQ is the queue of newly true literals awaiting propagation.
	propQ *lit.Queue

	// Assignment trail fields.

	// assigns holds the current value of each variable.
	assigns []tribool.Tribool
	// trail lists assignments in chronological order.
	trail []lit.Lit
	// trailLim marks the trail index where each decision level starts.
	trailLim []int
	// reason holds the antecedent clause of each propagated variable, nil
	// for decisions.
	reason []*Clause
	// level holds the decision level at which each variable was assigned.
	level []int

	stats Stats
}

// New builds a solver from a parsed formula. Well-formedness of the clause
// list (no zero literals, in-range variables) is the formula's concern;
// duplicate literals and tautological clauses are normalized away here.
func New(f *cnf.Formula, conf *config.Config) *Solver {
	s := &Solver{
		conf:     conf,
		logger:   conf.Logger,
		numVars:  f.NumVars,
		claInc:   1.0,
		claDecay: 1 / conf.ClaDecay,
		activity: make([]float64, f.NumVars),
		varInc:   1.0,
		varDecay: 1 / conf.VarDecay,
		watches:  make([][]*Clause, f.NumVars*2),
		propQ:    lit.NewQueue(),
		assigns:  make([]tribool.Tribool, f.NumVars),
		trail:    make([]lit.Lit, 0, f.NumVars),
		reason:   make([]*Clause, f.NumVars),
		level:    make([]int, f.NumVars),
	}
	s.order = order.New(s.activity)

	for _, clause := range f.Clauses {
		if !s.addClause(clause) {
			s.unsat = true
			break
		}
	}
	return s
}

// Solve runs the CDCL search to completion. The context is polled only
// between decisions, so a cancelled solve reports an Unknown verdict with the
// engine state still consistent. A returned error means an internal invariant
// broke; it is never used for UNSAT.
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

// NumVars returns the number of variables.
func (s *Solver) NumVars() int {
	return s.numVars
}

// NumConstrs returns the number of original clauses kept in the database.
func (s *Solver) NumConstrs() int {
	return len(s.constrs)
}

// NumLearnts returns the number of learnt clauses.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// addClause loads an original clause into the database, returning false on a
// top-level contradiction. Duplicate literals are dropped, tautological
// clauses are skipped, literals already false at level 0 are removed, and a
// resulting unit clause is enqueued as a level-0 fact instead of being
// stored.
func (s *Solver) addClause(ints []int) bool {
	lits := make([]lit.Lit, len(ints))
	for i, p := range ints {
		lits[i] = lit.NewFromInt(p)
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })

	idx := 0
	last := lit.Undef
	for _, p := range lits {
		switch {
		case p == last:
			// Duplicate literal.
			continue
		case p == last.Not():
			s.logger.Debugf("skipping tautological clause on variable %d", p.Var())
			return true
		case s.litValue(p).True():
			// Satisfied by a level-0 fact.
			return true
		case s.litValue(p).False():
			// Falsified by a level-0 fact.
			continue
		}
		lits[idx] = p
		last = p
		idx++
	}
	lits = lits[:idx]

	switch len(lits) {
	case 0:
		// The empty clause: the formula is contradictory.
		return false
	case 1:
		return s.enqueue(lits[0], nil)
	}

	c := &Clause{lits: lits}
	s.constrs = append(s.constrs, c)
	s.watch(c, lits[0].Not())
	s.watch(c, lits[1].Not())

	return true
}

// record inserts a clause learnt by conflict analysis and asserts its first
// literal with the clause as antecedent. The caller has already backjumped to
// the asserting level, so lits[0] is unassigned and every other literal is
// false. Returns false when the learnt clause is empty, which proves the
// formula unsatisfiable.
func (s *Solver) record(lits []lit.Lit) bool {
	if len(lits) == 0 {
		return false
	}
	c := &Clause{lits: lits, learnt: true}

	if len(lits) >= 2 {
		// Watch the asserting literal and the literal of the second
		// highest decision level, so the clause wakes up as soon as
		// the search revisits that level.
		maxLevel, maxIdx := -1, 1
		for i := 1; i < len(lits); i++ {
			if l := s.level[lits[i].Index()]; l > maxLevel {
				maxLevel, maxIdx = l, i
			}
		}
		lits[1], lits[maxIdx] = lits[maxIdx], lits[1]

		s.watch(c, lits[0].Not())
		s.watch(c, lits[1].Not())
		s.learnts = append(s.learnts, c)
		s.claBumpActivity(c)
		s.stats.Learnt++
	}

	if !s.enqueue(lits[0], c) {
		panic(sat.Faultf("asserting literal %s of learnt clause is falsified", lits[0]))
	}
	return true
}

// litValue returns the current value of a literal.
func (s *Solver) litValue(p lit.Lit) tribool.Tribool {
	if p == lit.Undef {
		return tribool.Undef
	}
	if p.Sign() {
		return s.assigns[p.Index()].Not()
	}
	return s.assigns[p.Index()]
}

// watch registers c on p's watch list: c is woken whenever p becomes true.
func (s *Solver) watch(c *Clause, p lit.Lit) {
	s.watches[p] = append(s.watches[p], c)
}
