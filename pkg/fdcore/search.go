package fdcore

import (
	"time"
)

// branch is one side of a binary choice point: a closure that narrows the
// search state, after which the caller re-runs propagation to a fixed
// point.
type branch func(eng *Engine) error

// choicePoint is one frame of the iterative backtracking stack: a trail
// checkpoint plus the branch closures still to try, instead of an index
// into an enumerated value list.
type choicePoint struct {
	checkpoint int
	branches   []branch
	next       int
}

// searchState carries the mutable bookkeeping of one solve/minimize/
// maximize call across the iterative loop. preferUpper flips the branch
// order so the search descends toward high values first: during Maximize
// the incumbent loop would otherwise creep upward one quantization step
// per round (the documented hanging case), because low-half-first
// bisection always lands on the worst feasible objective value.
type searchState struct {
	eng         *Engine
	cfg         *Config
	start       time.Time
	nodeCount   int64
	preferUpper bool
}

func newSearchState(eng *Engine, cfg *Config) *searchState {
	return &searchState{eng: eng, cfg: cfg, start: time.Now()}
}

// checkLimits polls timeout, memory and node count; it runs before each
// node expansion, never inside the tight propagation loops.
func (s *searchState) checkLimits() error {
	if s.cfg.Timeout > 0 {
		elapsed := time.Since(s.start)
		if elapsed > s.cfg.Timeout {
			return errTimeout("search", elapsed)
		}
	}
	if s.cfg.NodeLimit > 0 && s.nodeCount >= s.cfg.NodeLimit {
		return errTimeout("search (node limit)", time.Since(s.start))
	}
	used := approxMemoryMB(s.eng)
	if used > s.eng.Stats.PeakMemoryMB {
		s.eng.Stats.PeakMemoryMB = used
	}
	if s.cfg.MemoryLimitMB > 0 && used > s.cfg.MemoryLimitMB {
		return errMemoryLimit(used)
	}
	return nil
}

// approxMemoryMB is a coarse estimate of the engine's own working-set size,
// used only to evaluate the configured memory cap; this is not a full
// process-memory sampler.
func approxMemoryMB(eng *Engine) uint64 {
	bytes := uint64(eng.Trail.Len()) * 64
	bytes += uint64(eng.Vars.Len()) * 256
	return bytes / (1024 * 1024)
}

func allFixed(eng *Engine) bool {
	for i := 0; i < eng.Vars.Len(); i++ {
		if !eng.Vars.IsFixed(VarID(i)) {
			return false
		}
	}
	return true
}

// domainWidth is a comparable "size" for both domain kinds, used by the
// first-fail and dom/deg heuristics.
func domainWidth(eng *Engine, v VarID) float64 {
	if eng.Vars.Kind(v) == KindInt {
		return float64(eng.Vars.IntDomain(v).Count())
	}
	d := eng.Vars.FloatDomain(v)
	lo, hi := d.Min().F, d.Max().F
	return (hi-lo)/d.Step() + 1
}

// selectVariable implements the variable-selection heuristics: first-fail
// (smallest domain, ties by declaration order) or dom/deg (smallest
// domain-size/degree ratio). Returns -1 if every variable is fixed.
func selectVariable(eng *Engine, strat VarSelectStrategy) VarID {
	best := VarID(-1)
	bestScore := 0.0
	for i := 0; i < eng.Vars.Len(); i++ {
		v := VarID(i)
		if eng.Vars.IsFixed(v) {
			continue
		}
		score := domainWidth(eng, v)
		if strat == DomDeg {
			deg := float64(len(eng.triggers[v]))
			if deg < 1 {
				deg = 1
			}
			score = score / deg
		}
		if best == -1 || score < bestScore {
			best = v
			bestScore = score
		}
	}
	return best
}

// makeBranches builds the two-way choice point for v: integer variables
// use min-value or bisection per cfg.ValSelect; float variables always
// bisect, narrowing toward width < step as the recursion descends.
// preferUpper reverses the branch order (and flips min-value to max-value)
// so that optimization toward larger objective values reaches good
// incumbents early.
func makeBranches(eng *Engine, v VarID, cfg *Config, preferUpper bool) []branch {
	if eng.Vars.Kind(v) == KindFloat {
		d := eng.Vars.FloatDomain(v)
		lo, hi := d.Min().F, d.Max().F
		// Floor the split point onto the grid: a nearest-rounded midpoint of
		// a width-one-step interval rounds up to hi, making the lower branch
		// a no-op and leaving the same unfixed variable selected forever.
		// Flooring keeps the lower half strictly below hi, so both branches
		// always shrink the domain.
		mid := FloorStep((lo+hi)/2, d.Step())
		lower := func(eng *Engine) error {
			_, err := eng.TightenFloatMax(v, mid)
			return err
		}
		upper := func(eng *Engine) error {
			_, err := eng.TightenFloatMinStrict(v, mid)
			return err
		}
		if preferUpper {
			return []branch{upper, lower}
		}
		return []branch{lower, upper}
	}

	d := eng.Vars.IntDomain(v)
	if cfg.ValSelect == Bisect {
		min, max := int(d.Min().I), int(d.Max().I)
		mid := min + (max-min)/2
		lower := func(eng *Engine) error {
			_, err := eng.TightenIntMax(v, mid)
			return err
		}
		upper := func(eng *Engine) error {
			_, err := eng.TightenIntMin(v, mid+1)
			return err
		}
		if preferUpper {
			return []branch{upper, lower}
		}
		return []branch{lower, upper}
	}

	val := int(d.Min().I)
	if preferUpper {
		val = int(d.Max().I)
	}
	take := func(eng *Engine) error {
		_, err := eng.FixInt(v, val)
		return err
	}
	exclude := func(eng *Engine) error {
		_, err := eng.RemoveInt(v, val)
		return err
	}
	return []branch{take, exclude}
}

// runSearch is the depth-first branch-and-bound loop: a stack of choice
// points, each holding two branch closures tried in order,
// backtracking via Trail.Restore when a branch's propagation fails or both
// branches have been exhausted. Returns (true, nil) on a satisfying
// assignment (left live in the engine's current domains), (false, nil) on
// exhausted search, or an error on a resource-limit breach or an engine
// error from RunToFixedPoint.
func runSearch(eng *Engine, cfg *Config, s *searchState) (bool, error) {
	if res, err := eng.RunToFixedPoint(); err != nil {
		return false, err
	} else if res == PropFailure {
		return false, nil
	}

	var stack []choicePoint
	descend := true

	for {
		if err := s.checkLimits(); err != nil {
			return false, err
		}

		if descend {
			if allFixed(eng) {
				return true, nil
			}
			v := selectVariable(eng, cfg.VarSelect)
			if v < 0 {
				return true, nil
			}
			stack = append(stack, choicePoint{
				checkpoint: eng.Trail.Checkpoint(),
				branches:   makeBranches(eng, v, cfg, s.preferUpper),
			})
			descend = false
		}

		cp := &stack[len(stack)-1]
		if cp.next >= len(cp.branches) {
			eng.Trail.Restore(cp.checkpoint)
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return false, nil
			}
			continue
		}

		eng.Trail.Restore(cp.checkpoint)
		br := cp.branches[cp.next]
		cp.next++

		if err := br(eng); err != nil {
			continue // this branch is infeasible outright; try the next one
		}
		s.nodeCount++
		eng.Stats.Nodes++

		res, err := eng.RunToFixedPoint()
		if err != nil {
			return false, err
		}
		if res == Quiescent {
			descend = true
		}
		// on PropFailure, loop again with the same choice point: its
		// checkpoint restore at the top of the loop undoes this attempt
		// before the next branch (or backtrack) is tried.
	}
}
