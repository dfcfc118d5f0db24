package fdcore

import "errors"

// PropagatorID is a dense id into the Engine's propagator catalog.
type PropagatorID int

// PropResult is the three-way outcome a propagator reports each time it
// runs.
type PropResult int

const (
	NoChange PropResult = iota
	Changed
	Failure
)

// errDomainEmpty is the internal sentinel a propagator's bound-tightening
// helper returns when a mutation would leave a domain empty: an empty
// domain is reported as failure, never committed. Propagators translate it into a Failure PropResult; it
// never escapes the engine.
var errDomainEmpty = errors.New("fdcore: domain became empty")

// Propagator is the common interface every constraint in the catalog
// implements: pure narrowing functions over the Engine's variable
// store. The catalog is closed; callers of
// the external API post constraints by name (AddEq, AddLinearLe, ...)
// rather than supplying arbitrary Propagator implementations.
type Propagator interface {
	// Vars returns every variable this propagator reads or writes; this is
	// also its trigger set unless TriggerVars overrides it.
	Vars() []VarID
	// Propagate runs one narrowing step. NoChange/Changed must leave every
	// domain a subset of what it was on entry.
	Propagate(eng *Engine) (PropResult, error)
	// Name identifies the constraint kind for diagnostics and Stats.
	Name() string
}

// triggerSource is implemented by propagators that wake on a strict subset
// of Vars(); some propagators register only for coarse events to avoid
// repeated wakeups. If absent, the scheduler uses Vars() as the trigger set.
type triggerSource interface {
	TriggerVars() []VarID
}

// Engine owns the variable store, trail and scheduler state shared by every
// propagator and the search engine (components C4, C3, C6 wired together).
type Engine struct {
	Vars  *VarStore
	Trail *Trail

	props    []Propagator
	triggers map[VarID][]PropagatorID
	queue    []PropagatorID
	queued   []bool

	Stats Stats
}

// NewEngine creates an engine with its own trail and variable store.
func NewEngine() *Engine {
	trail := NewTrail()
	return &Engine{
		Vars:     newVarStore(trail),
		Trail:    trail,
		triggers: make(map[VarID][]PropagatorID),
	}
}

// Register adds a propagator to the catalog, wires its trigger set, and
// enqueues it for an initial run.
func (eng *Engine) Register(p Propagator) PropagatorID {
	id := PropagatorID(len(eng.props))
	eng.props = append(eng.props, p)
	eng.queued = append(eng.queued, false)

	trigVars := p.Vars()
	if ts, ok := p.(triggerSource); ok {
		trigVars = ts.TriggerVars()
	}
	for _, v := range trigVars {
		eng.triggers[v] = append(eng.triggers[v], id)
	}
	eng.enqueuePropagator(id)
	return id
}

func (eng *Engine) enqueuePropagator(id PropagatorID) {
	if eng.queued[id] {
		return
	}
	eng.queued[id] = true
	eng.queue = append(eng.queue, id)
}

// markChanged wakes every propagator watching v. Domain-mutation helpers
// below call this whenever a mutator actually narrowed the domain.
func (eng *Engine) markChanged(v VarID) {
	for _, pid := range eng.triggers[v] {
		eng.enqueuePropagator(pid)
	}
}

// --- domain-mutation helpers shared by the propagator catalog ---
// Each returns (changed, err); err is errDomainEmpty when the mutation
// would empty the domain. Propagators should return (Failure, err) from
// Propagate when err != nil.

func (eng *Engine) TightenIntMin(v VarID, lo int) (bool, error) {
	d := eng.Vars.IntDomain(v)
	changed := d.SetMin(lo)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) TightenIntMax(v VarID, hi int) (bool, error) {
	d := eng.Vars.IntDomain(v)
	changed := d.SetMax(hi)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) RemoveInt(v VarID, value int) (bool, error) {
	d := eng.Vars.IntDomain(v)
	changed := d.Remove(value)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) FixInt(v VarID, value int) (bool, error) {
	d := eng.Vars.IntDomain(v)
	if !d.Contains(IntValue(int64(value))) {
		return false, errDomainEmpty
	}
	min, max, changed := d.Min().I, d.Max().I, false
	if int64(value) != min {
		if c, err := eng.TightenIntMin(v, value); err != nil {
			return c, err
		} else {
			changed = changed || c
		}
	}
	if int64(value) != max {
		if c, err := eng.TightenIntMax(v, value); err != nil {
			return c, err
		} else {
			changed = changed || c
		}
	}
	// Remove any interior holes a sparse-set may still hold for non-value entries.
	if d.Count() > 1 {
		var toRemove []int
		d.IterateValues(func(v2 int) {
			if v2 != value {
				toRemove = append(toRemove, v2)
			}
		})
		for _, v2 := range toRemove {
			if c, err := eng.RemoveInt(v, v2); err != nil {
				return c, err
			} else {
				changed = changed || c
			}
		}
	}
	return changed, nil
}

func (eng *Engine) TightenFloatMin(v VarID, lo float64) (bool, error) {
	d := eng.Vars.FloatDomain(v)
	changed := d.SetMin(lo)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) TightenFloatMax(v VarID, hi float64) (bool, error) {
	d := eng.Vars.FloatDomain(v)
	changed := d.SetMax(hi)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) TightenFloatMinStrict(v VarID, bound float64) (bool, error) {
	d := eng.Vars.FloatDomain(v)
	changed := d.SetMinStrict(bound)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}

func (eng *Engine) TightenFloatMaxStrict(v VarID, bound float64) (bool, error) {
	d := eng.Vars.FloatDomain(v)
	changed := d.SetMaxStrict(bound)
	if changed {
		eng.Stats.Propagations++
		if d.IsEmpty() {
			return true, errDomainEmpty
		}
		eng.markChanged(v)
	}
	return changed, nil
}
