package mea

import "fmt"

// SolveError reports a failure to eliminate a raw moment symbol: the
// conversion expression did not yield a unique linear solution for it.
type SolveError struct {
	Symbol string
	Err    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("mea: cannot solve for raw moment %s: %v", e.Symbol, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// ClosureKindError reports an unknown closure strategy.
type ClosureKindError struct{ Kind ClosureKind }

func (e *ClosureKindError) Error() string {
	return fmt.Sprintf("mea: unknown closure kind %d", int(e.Kind))
}
