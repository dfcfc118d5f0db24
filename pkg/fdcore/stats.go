package fdcore

import "time"

// Stats accumulates the solve-run statistics: propagation count,
// search node count, wall-clock elapsed time and peak memory, plus the
// model's variable/constraint counts. Derived rates are computed on demand
// rather than stored, so they always reflect the final counters.
type Stats struct {
	Propagations int64
	Nodes        int64
	Failures     int64
	Elapsed      time.Duration
	PeakMemoryMB uint64
	Variables    int
	Constraints  int
}

// PropagationsPerNode returns 0 if no nodes
// were explored (pure propagation solved the problem at the root).
func (s Stats) PropagationsPerNode() float64 {
	if s.Nodes == 0 {
		return 0
	}
	return float64(s.Propagations) / float64(s.Nodes)
}

// MicrosPerPropagation is the average cost of one propagation step.
func (s Stats) MicrosPerPropagation() float64 {
	if s.Propagations == 0 {
		return 0
	}
	return float64(s.Elapsed.Microseconds()) / float64(s.Propagations)
}

// MicrosPerNode is the average cost of one search node expansion.
func (s Stats) MicrosPerNode() float64 {
	if s.Nodes == 0 {
		return 0
	}
	return float64(s.Elapsed.Microseconds()) / float64(s.Nodes)
}
