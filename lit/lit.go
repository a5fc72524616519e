package lit

import "fmt"

// Undef denotes the absence of a literal.
const Undef = Lit(-1)

// Lit is a literal represented by an integer. The least significant bit holds
// the sign and the remaining bits hold the 0-indexed variable, so L and ~L are
// adjacent when sorted and a literal can index slices directly.
type Lit int

// New returns a literal for the 0-indexed variable v, negated when neg is set.
func New(v int, neg bool) Lit {
	if neg {
		return Lit(v<<1 | 1)
	}
	return Lit(v << 1)
}

// NewFromInt returns a literal from its DIMACS integer form, where a negative
// integer denotes a negated variable. The integer must not be zero.
func NewFromInt(i int) Lit {
	if i < 0 {
		return New(-i-1, true)
	}
	return New(i-1, false)
}

// Not negates a literal.
func (l Lit) Not() Lit {
	return l ^ 1
}

// Sign returns true if the literal is negative.
func (l Lit) Sign() bool {
	return l&1 == 1
}

// Index returns the 0-indexed variable of the literal.
func (l Lit) Index() int {
	return int(l >> 1)
}

// Var returns the 1-indexed variable of the literal.
func (l Lit) Var() int {
	return int(l>>1) + 1
}

// Int returns the literal in DIMACS integer form.
func (l Lit) Int() int {
	if l.Sign() {
		return -l.Var()
	}
	return l.Var()
}

// String implements the Stringer interface.
func (l Lit) String() string {
	if l == Undef {
		return "undef"
	}
	if l.Sign() {
		return fmt.Sprintf("~%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}
