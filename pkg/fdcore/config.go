package fdcore

import (
	"log"
	"time"
)

// VarSelectStrategy names the variable-selection heuristics.
type VarSelectStrategy int

const (
	// FirstFail picks the unfixed variable with the smallest domain, ties
	// broken by declaration order.
	FirstFail VarSelectStrategy = iota
	// DomDeg picks the unfixed variable minimizing domain-size / degree,
	// where degree is the number of propagators watching the variable.
	DomDeg
)

// ValSelectStrategy names the integer value-selection heuristics. Float
// variables always bisect regardless of this setting.
type ValSelectStrategy int

const (
	// MinValue tries the domain's minimum value first, then excludes it.
	MinValue ValSelectStrategy = iota
	// Bisect splits the domain at its midpoint.
	Bisect
)

// Config holds the engine tunables: search heuristics, resource limits,
// LP-subsolver gating, float precision, and an optional logger.
type Config struct {
	// Timeout bounds wall-clock time across the whole Solve/Minimize/
	// Maximize call. Zero means no limit.
	Timeout time.Duration
	// MemoryLimitMB bounds approximate peak memory; zero means no limit.
	MemoryLimitMB uint64
	// NodeLimit bounds the number of search nodes expanded; zero means no
	// limit.
	NodeLimit int64

	VarSelect VarSelectStrategy
	ValSelect ValSelectStrategy

	// PreferLPSolver gates whether the LP subsolver (C8/C9) is consulted
	// for bound tightening when the model has enough float-linear
	// structure. Disabling it is always correct, just slower.
	PreferLPSolver bool

	// ULPTolerance is a number of representable float64 steps two values
	// may differ by and still compare equal. The propagators do not read
	// it; they compare with DefaultULPTolerance.
	ULPTolerance uint64

	// FloatPrecisionDigits is a decimal precision for float variables. The
	// model does not read it: NewFloatVar and NewUnboundedFloatVar take the
	// precision as an argument.
	FloatPrecisionDigits int

	// UnboundedInferenceFactor scales the widest currently-declared bounded
	// variable's width to infer bounds for a variable declared unbounded
	// (expand by factor x width, then clamp to the global domain cap).
	UnboundedInferenceFactor uint32

	// Logger receives diagnostic messages (root propagation failures, new
	// incumbents, LP fallbacks). Nil disables logging.
	Logger *log.Logger
}

// DefaultConfig returns the default configuration: first-fail variable selection, min-value selection, LP
// subsolver enabled, default ULP tolerance, no resource limits.
func DefaultConfig() Config {
	return Config{
		VarSelect:                FirstFail,
		ValSelect:                MinValue,
		PreferLPSolver:           true,
		ULPTolerance:             DefaultULPTolerance,
		FloatPrecisionDigits:     6,
		UnboundedInferenceFactor: 1000,
	}
}

func (c *Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
