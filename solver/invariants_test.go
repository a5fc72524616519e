package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Qwaz/satire/config"
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
)

// requireFault asserts that fn panics with an internal fault.
func requireFault(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected an internal fault")
		}
		if _, ok := r.(*sat.InternalError); !ok {
			t.Fatalf("panicked with %v, want an internal fault", r)
		}
	}()
	fn()
}

func TestBacktrackRestoresTrailLevels(t *testing.T) {
	f := mkFormula(t, 4, []int{-1, 2}, []int{-3, 4})
	s := New(f, config.New())

	s.assume(lit.NewFromInt(1))
	require.Nil(t, s.propagate()) // forces 2
	s.assume(lit.NewFromInt(3))
	require.Nil(t, s.propagate()) // forces 4

	require.Equal(t, 2, s.decisionLevel())
	require.Equal(t, 4, s.numAssigns())

	s.cancelUntil(1)

	require.Equal(t, 1, s.decisionLevel())
	for _, p := range s.trail {
		require.LessOrEqual(t, s.level[p.Index()], 1)
	}
	// Variables assigned above the target level are unassigned again.
	require.True(t, s.assigns[lit.NewFromInt(3).Index()].Undef())
	require.True(t, s.assigns[lit.NewFromInt(4).Index()].Undef())
	// Entries below the target level survive untouched.
	require.True(t, s.litValue(lit.NewFromInt(1)).True())
	require.True(t, s.litValue(lit.NewFromInt(2)).True())

	s.cancelUntil(0)
	require.Zero(t, s.numAssigns())
}

// After a propagation fixpoint no unsatisfied clause may have a falsified
// watch: a falsified unwatched literal must never hide a unit or a conflict.
func checkWatchInvariant(t *testing.T, s *Solver) {
	t.Helper()
	for _, c := range append(append([]*Clause{}, s.constrs...), s.learnts...) {
		satisfied := false
		for _, p := range c.lits {
			if s.litValue(p).True() {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		require.False(t, s.litValue(c.lits[0]).False(),
			"clause [%s] has a falsified watch in slot 0", c)
		require.False(t, s.litValue(c.lits[1]).False(),
			"clause [%s] has a falsified watch in slot 1", c)
	}
}

func TestWatchInvariantAfterPropagation(t *testing.T) {
	f := mkFormula(t, 5,
		[]int{1, 2, 3}, []int{-1, 2, 4}, []int{-2, 3, 5}, []int{-3, -4, 5}, []int{1, -5})
	s := New(f, config.New())

	require.Nil(t, s.propagate())
	checkWatchInvariant(t, s)

	s.assume(lit.NewFromInt(-2))
	require.Nil(t, s.propagate())
	checkWatchInvariant(t, s)

	s.assume(lit.NewFromInt(-3))
	require.Nil(t, s.propagate())
	checkWatchInvariant(t, s)

	s.cancelUntil(0)
	require.Nil(t, s.propagate())
	checkWatchInvariant(t, s)
}

func TestLearnedClauseAssertsAtBackjumpLevel(t *testing.T) {
	// Two independent decisions followed by one that conflicts through
	// propagation: analysis must jump back over the middle level.
	f := mkFormula(t, 6,
		[]int{-1, -4, 5}, []int{-1, -4, -5}, []int{2, 3})
	s := New(f, config.New())

	s.assume(lit.NewFromInt(1))
	require.Nil(t, s.propagate())
	s.assume(lit.NewFromInt(2))
	require.Nil(t, s.propagate())
	s.assume(lit.NewFromInt(4))

	confl := s.propagate()
	require.NotNil(t, confl)

	learnt, btLevel := s.analyze(confl)
	require.NotEmpty(t, learnt)

	// The asserting literal is the negated first UIP of level 3; the rest
	// of the clause lives at level 1, skipping level 2 entirely.
	require.Equal(t, 1, btLevel)
	require.Equal(t, 3, s.level[learnt[0].Index()])

	s.cancelUntil(btLevel)
	require.Equal(t, 1, s.decisionLevel())
	require.True(t, s.record(learnt))
	// The asserting literal is now enqueued at the backjump level with
	// the learnt clause as its antecedent.
	uip := learnt[0]
	require.True(t, s.litValue(uip).True())
	require.Equal(t, 1, s.level[uip.Index()])
	if len(learnt) >= 2 {
		require.NotNil(t, s.reason[uip.Index()])
	}
}

func TestDoubleDecisionIsFault(t *testing.T) {
	f := mkFormula(t, 2, []int{1, 2})
	s := New(f, config.New())

	s.assume(lit.NewFromInt(1))
	requireFault(t, func() { s.assume(lit.NewFromInt(-1)) })
}

func TestBacktrackAboveCurrentLevelIsFault(t *testing.T) {
	f := mkFormula(t, 2, []int{1, 2})
	s := New(f, config.New())

	s.assume(lit.NewFromInt(1))
	requireFault(t, func() { s.cancelUntil(5) })
}

func TestSolveSurfacesFaultsAsErrors(t *testing.T) {
	f := mkFormula(t, 2, []int{1, 2})
	s := New(f, config.New())

	// Corrupt the engine: a trail entry whose variable claims to be
	// unassigned breaks the decision loop's contract.
	s.assume(lit.NewFromInt(1))
	s.assigns[0] = 0
	s.order.Pop() // drop var 1 so the order runs dry
	s.order.Pop()

	_, err := s.Solve(context.Background())
	require.Error(t, err)
	var fault *sat.InternalError
	require.ErrorAs(t, err, &fault)
}
