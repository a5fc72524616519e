package cnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddClause(t *testing.T) {
	f := New(3)
	require.NoError(t, f.AddClause([]int{1, -2}))
	require.NoError(t, f.AddClause([]int{3}))
	require.NoError(t, f.AddClause([]int{}))
	require.Equal(t, 3, f.NumClauses())
}

func TestAddClauseRejectsZeroLiteral(t *testing.T) {
	f := New(2)
	require.Error(t, f.AddClause([]int{1, 0, 2}))
}

func TestAddClauseRejectsOutOfRangeVariable(t *testing.T) {
	f := New(2)
	require.Error(t, f.AddClause([]int{1, -3}))
}

func TestVerify(t *testing.T) {
	f := New(2)
	require.NoError(t, f.AddClause([]int{1, 2}))
	require.NoError(t, f.AddClause([]int{-1, -2}))

	require.True(t, f.Verify([]bool{true, false}))
	require.True(t, f.Verify([]bool{false, true}))
	require.False(t, f.Verify([]bool{true, true}))
	require.False(t, f.Verify([]bool{false, false}))
}

func TestVerifyRejectsPartialModel(t *testing.T) {
	f := New(3)
	require.NoError(t, f.AddClause([]int{1}))
	require.False(t, f.Verify([]bool{true}))
}

func TestVerifyEmptyClauseNeverSatisfied(t *testing.T) {
	f := New(1)
	require.NoError(t, f.AddClause([]int{}))
	require.False(t, f.Verify([]bool{true}))
	require.False(t, f.Verify([]bool{false}))
}

func TestString(t *testing.T) {
	f := New(2)
	require.NoError(t, f.AddClause([]int{1, -2}))
	require.Equal(t, "p cnf 2 1\n1 -2 0", f.String())
}
