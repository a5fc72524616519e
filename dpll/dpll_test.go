package dpll

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Qwaz/satire/cnf"
	"github.com/Qwaz/satire/config"
	"github.com/Qwaz/satire/lit"
	"github.com/Qwaz/satire/sat"
	"github.com/Qwaz/satire/solver"
)

func mkFormula(t *testing.T, numVars int, clauses ...[]int) *cnf.Formula {
	t.Helper()
	f := cnf.New(numVars)
	for _, clause := range clauses {
		require.NoError(t, f.AddClause(clause))
	}
	return f
}

func solve(t *testing.T, f *cnf.Formula) sat.Result {
	t.Helper()
	result, err := New(f, config.New()).Solve(context.Background())
	require.NoError(t, err)
	return result
}

func TestSingleUnitClause(t *testing.T) {
	result := solve(t, mkFormula(t, 1, []int{1}))
	require.Equal(t, sat.Sat, result.Status)
	require.Equal(t, []bool{true}, result.Model)
}

func TestConflictingUnits(t *testing.T) {
	result := solve(t, mkFormula(t, 1, []int{1}, []int{-1}))
	require.Equal(t, sat.Unsat, result.Status)
	require.Nil(t, result.Model)
}

func TestExactlyOneOfTwo(t *testing.T) {
	f := mkFormula(t, 2, []int{1, 2}, []int{-1, -2})
	result := solve(t, f)

	require.Equal(t, sat.Sat, result.Status)
	require.True(t, f.Verify(result.Model))
	require.NotEqual(t, result.Model[0], result.Model[1])
}

func TestEmptyInputClauseIsUnsat(t *testing.T) {
	result := solve(t, mkFormula(t, 2, []int{1, 2}, []int{}))
	require.Equal(t, sat.Unsat, result.Status)
}

func TestTrivialFormulas(t *testing.T) {
	result := solve(t, mkFormula(t, 3))
	require.Equal(t, sat.Sat, result.Status)
	require.Len(t, result.Model, 3)

	result = solve(t, mkFormula(t, 0))
	require.Equal(t, sat.Sat, result.Status)
	require.Empty(t, result.Model)
}

func TestDuplicateAndTautologicalClauses(t *testing.T) {
	f := mkFormula(t, 2, []int{1, 1, 2}, []int{1, -1}, []int{-2, -2})
	result := solve(t, f)

	require.Equal(t, sat.Sat, result.Status)
	require.True(t, f.Verify(result.Model))
}

func TestBacktracksThroughFlippedDecisions(t *testing.T) {
	// Positive-polarity-first decisions on x1 and x2 both fail, so the
	// search must flip each before finding the all-false model.
	f := mkFormula(t, 3, []int{-1, 3}, []int{-1, -3}, []int{-2, 3}, []int{-2, -3})
	s := New(f, config.New())
	result, err := s.Solve(context.Background())

	require.NoError(t, err)
	require.Equal(t, sat.Sat, result.Status)
	require.True(t, f.Verify(result.Model))
	require.False(t, result.Model[0])
	require.False(t, result.Model[1])
	require.Greater(t, s.Stats().Backtracks, int64(0))
}

func TestUnitPropagationCountsWork(t *testing.T) {
	f := mkFormula(t, 3, []int{1}, []int{-1, 2}, []int{-2, 3})
	s := New(f, config.New())
	result, err := s.Solve(context.Background())

	require.NoError(t, err)
	require.Equal(t, sat.Sat, result.Status)
	require.Equal(t, int64(0), s.Stats().Decisions)
	require.Equal(t, int64(3), s.Stats().Propagations)
}

func TestCancelledSolveIsUnknown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(mkFormula(t, 2, []int{1, 2}), config.New()).Solve(ctx)
	require.NoError(t, err)
	require.Equal(t, sat.Unknown, result.Status)
	require.Nil(t, result.Model)
}

func TestDecisionBudgetIsUnknown(t *testing.T) {
	conf := config.New()
	conf.MaxDecisions = 1

	f := mkFormula(t, 4, []int{1, 2}, []int{3, 4})
	result, err := New(f, conf).Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, sat.Unknown, result.Status)
}

func TestAgreesWithClauseLearningEngine(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		f := cnf.New(8)
		for j := 0; j < 34; j++ {
			clause := make([]int, 3)
			for k := range clause {
				v := r.Intn(8) + 1
				if r.Intn(2) == 0 {
					v = -v
				}
				clause[k] = v
			}
			require.NoError(t, f.AddClause(clause))
		}

		baseline := solve(t, f)
		cdcl, err := solver.New(f, config.New()).Solve(context.Background())
		require.NoError(t, err)

		require.Equal(t, cdcl.Status, baseline.Status, "formula %s", f)
		if baseline.Status == sat.Sat {
			require.True(t, f.Verify(baseline.Model), "formula %s", f)
		}
	}
}

func TestDoubleAssignIsFault(t *testing.T) {
	s := New(mkFormula(t, 2, []int{1, 2}), config.New())
	s.assign(lit.NewFromInt(1))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected an internal fault")
		}
		if _, ok := r.(*sat.InternalError); !ok {
			t.Fatalf("panicked with %v, want an internal fault", r)
		}
	}()
	s.assign(lit.NewFromInt(-1))
}
