// Package sat defines the contract shared by the solving engines: the verdict
// of a solve, the satisfying model, and the engine interface the CLI
// dispatches on.
package sat

import (
	"context"
	"fmt"
)

// Status is the verdict of a solve.
type Status uint8

const (
	// Unknown means the solve was cancelled or ran out of budget before
	// reaching a verdict. It is never conflated with Sat or Unsat.
	Unknown = Status(0)
	// Sat means a satisfying assignment was found.
	Sat = Status(1)
	// Unsat means no satisfying assignment exists.
	Unsat = Status(2)
)

// String implements the Stringer interface.
func (s Status) String() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a solve. Model is only present when Status is Sat,
// in which case it is a total assignment: Model[i] is the value of variable
// i+1.
type Result struct {
	Status Status
	Model  []bool
}

// Engine is a solving strategy over a fixed formula. An engine owns all of
// its state: independent engines may run concurrently, but a single engine
// must not be shared. Solve observes ctx only between decisions, so a
// cancelled solve always leaves with a clean Unknown verdict rather than a
// torn one.
type Engine interface {
	Solve(ctx context.Context) (Result, error)
}

// InternalError reports a broken engine invariant, such as a double
// assignment or a backtrack above the current level. It indicates a defect in
// the engine itself and is distinct from any Status outcome.
type InternalError struct {
	Msg string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return "internal solver fault: " + e.Msg
}

// Faultf builds an InternalError from a format string.
func Faultf(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
