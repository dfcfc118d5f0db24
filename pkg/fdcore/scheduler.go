package fdcore

import "errors"

// PropagateResult is the outcome the scheduler reports to the search engine.
type PropagateResult int

const (
	Quiescent PropagateResult = iota
	PropFailure
)

// RunToFixedPoint drains the work queue, invoking each queued propagator's
// Propagate until no propagator would change any domain. FIFO ordering is
// used since it is simple and order-independent for correctness; the
// membership bitset (eng.queued) prevents double-queuing the same
// propagator, and every Propagate call is monotone (domains only shrink),
// so the loop is guaranteed to terminate within the sum of domain sizes.
//
// An emptied domain is the ordinary failure signal and surfaces as a bare
// PropFailure for the search engine to backtrack on; a non-nil error is
// reserved for engine invariant violations (integer overflow, unrecovered
// LP instability) that must abort the solve instead.
func (eng *Engine) RunToFixedPoint() (PropagateResult, error) {
	for len(eng.queue) > 0 {
		id := eng.queue[0]
		eng.queue = eng.queue[1:]
		eng.queued[id] = false

		res, err := eng.props[id].Propagate(eng)
		if err != nil || res == Failure {
			eng.Stats.Failures++
			if errors.Is(err, errDomainEmpty) {
				err = nil
			}
			return PropFailure, err
		}
	}
	return Quiescent, nil
}

// EnqueueAll re-queues every propagator; the optimization loop calls this
// after rewinding the trail to the pre-root checkpoint, which discards the
// previous round's propagation results wholesale.
func (eng *Engine) EnqueueAll() {
	for id := range eng.props {
		eng.enqueuePropagator(PropagatorID(id))
	}
}
