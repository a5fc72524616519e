package solver

import (
	"strings"

	"github.com/Qwaz/satire/lit"
)

// Clause is a disjunction of literals. The first two positions of lits are
// the watch slots: as long as the clause is neither satisfied nor falsified,
// lits[0] and lits[1] reference literals that are unassigned or true, so a
// falsified unwatched literal can never hide a unit or a conflict.
type Clause struct {
	lits   []lit.Lit
	learnt bool
	// activity is bumped when the clause participates in a conflict. The
	// solver never deletes clauses, but the score is maintained for
	// database bookkeeping.
	activity float64
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// Learnt returns true if the clause was derived by conflict analysis rather
// than given as input.
func (c *Clause) Learnt() bool {
	return c.learnt
}

// Lits returns the clause literals in their current watch order.
func (c *Clause) Lits() []lit.Lit {
	return c.lits
}

// String implements the Stringer interface.
func (c *Clause) String() string {
	strs := make([]string, len(c.lits))
	for i, p := range c.lits {
		strs[i] = p.String()
	}
	return strings.Join(strs, " ")
}
