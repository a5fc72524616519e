// Package cnf represents propositional formulas in conjunctive normal form.
package cnf

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Formula is a CNF formula: a conjunction of clauses over the variables
// 1..NumVars, each clause a disjunction of non-zero DIMACS-style integer
// literals.
type Formula struct {
	// NumVars is the number of variables in the formula. Every literal in
	// Clauses refers to a variable in [1, NumVars].
	NumVars int
	// Clauses holds the original clauses, in input order.
	Clauses [][]int
}

// New returns an empty formula over numVars variables.
func New(numVars int) *Formula {
	return &Formula{NumVars: numVars}
}

// AddClause appends a clause to the formula. Zero literals and out-of-range
// variables are rejected; an empty clause is accepted and makes the formula
// trivially unsatisfiable.
func (f *Formula) AddClause(lits []int) error {
	for _, p := range lits {
		if p == 0 {
			return errors.New("clause contains the zero literal")
		}
		if v := abs(p); v > f.NumVars {
			return errors.Errorf("variable %d out of range (formula has %d variables)", v, f.NumVars)
		}
	}
	f.Clauses = append(f.Clauses, lits)
	return nil
}

// NumClauses returns the number of clauses in the formula.
func (f *Formula) NumClauses() int {
	return len(f.Clauses)
}

// Verify reports whether model satisfies every clause of the formula. The
// model must be a total assignment: model[i] is the value of variable i+1.
func (f *Formula) Verify(model []bool) bool {
	if len(model) != f.NumVars {
		return false
	}
	for _, clause := range f.Clauses {
		satisfied := false
		for _, p := range clause {
			if v := abs(p); model[v-1] == (p > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// String implements the Stringer interface.
func (f *Formula) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d", f.NumVars, len(f.Clauses))
	for _, clause := range f.Clauses {
		b.WriteByte('\n')
		for _, p := range clause {
			fmt.Fprintf(&b, "%d ", p)
		}
		b.WriteByte('0')
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
