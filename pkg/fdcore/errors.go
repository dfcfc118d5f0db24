package fdcore

import (
	"fmt"
	"time"
)

// ErrorKind enumerates the stable error taxonomy surfaced to
// callers of Solve/Minimize/Maximize.
type ErrorKind int

const (
	// ErrNoSolution: search exhausted without finding a feasible assignment.
	ErrNoSolution ErrorKind = iota
	// ErrTimeout: the configured wall-clock budget was exceeded.
	ErrTimeout
	// ErrMemoryLimit: the configured memory budget was exceeded.
	ErrMemoryLimit
	// ErrInvalidConstraint: a constraint referenced an unknown variable, had
	// mismatched coefficient/variable lengths, or used a zero divisor.
	ErrInvalidConstraint
	// ErrConflictingConstraints: root propagation proved immediate
	// infeasibility between posted constraints.
	ErrConflictingConstraints
	// ErrInvalidDomain: a variable was declared with min > max or a
	// non-finite float bound.
	ErrInvalidDomain
	// ErrInvalidVariable: a variable id does not exist in the model.
	ErrInvalidVariable
	// ErrInternal: an engine invariant was violated (e.g. unrecoverable LP
	// numerical instability).
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNoSolution:
		return "NoSolution"
	case ErrTimeout:
		return "Timeout"
	case ErrMemoryLimit:
		return "MemoryLimit"
	case ErrInvalidConstraint:
		return "InvalidConstraint"
	case ErrConflictingConstraints:
		return "ConflictingConstraints"
	case ErrInvalidDomain:
		return "InvalidDomain"
	case ErrInvalidVariable:
		return "InvalidVariable"
	case ErrInternal:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// SolveError is the concrete error type returned by the external API
// It carries the stable Kind plus whatever context is
// available (elapsed time for a timeout, memory usage for a memory limit,
// the offending variable id, ...).
type SolveError struct {
	Kind      ErrorKind
	Message   string
	Elapsed   time.Duration // set for ErrTimeout
	MemoryMB  uint64        // set for ErrMemoryLimit
	VarID     VarID         // set for ErrInvalidVariable, -1 otherwise
	Operation string        // set for ErrTimeout: which phase was interrupted
	Wrapped   error         // underlying cause, if any (e.g. an LP error)
}

func (e *SolveError) Error() string {
	if e.Message != "" {
		if e.Wrapped != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *SolveError) Unwrap() error { return e.Wrapped }

func newError(kind ErrorKind, format string, args ...interface{}) *SolveError {
	return &SolveError{Kind: kind, Message: fmt.Sprintf(format, args...), VarID: -1}
}

func errInvalidConstraint(format string, args ...interface{}) *SolveError {
	return newError(ErrInvalidConstraint, format, args...)
}

func errInvalidDomain(format string, args ...interface{}) *SolveError {
	return newError(ErrInvalidDomain, format, args...)
}

func errInvalidVariable(id VarID) *SolveError {
	e := newError(ErrInvalidVariable, "variable %d does not exist in the model", id)
	e.VarID = id
	return e
}

func errInternal(format string, args ...interface{}) *SolveError {
	return newError(ErrInternal, format, args...)
}

func errTimeout(operation string, elapsed time.Duration) *SolveError {
	e := newError(ErrTimeout, "%s exceeded the configured timeout after %s", operation, elapsed)
	e.Elapsed = elapsed
	e.Operation = operation
	return e
}

func errMemoryLimit(usedMB uint64) *SolveError {
	e := newError(ErrMemoryLimit, "memory usage %dMB exceeded the configured cap", usedMB)
	e.MemoryMB = usedMB
	return e
}
