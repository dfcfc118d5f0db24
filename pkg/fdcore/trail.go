package fdcore

// Trail is the reversible-state store: an append-only log of undo actions.
// A Checkpoint is simply the log length, and Restore pops and replays undo
// actions in reverse order back to that length. Undo is recorded per cell
// rather than per domain clone, so restoring a single bound flip costs
// O(1) instead of O(domain words).
//
// Every mutable cell participating in propagation (bitset words, sparse-set
// positions, interval bounds) must push its undo action here before
// writing; direct reads never go through the trail. The Stats counters are
// cumulative and are not trailed.
type Trail struct {
	entries []func()
}

// NewTrail returns an empty trail with a small pre-allocated backing array,
// sized for the node counts search routinely produces between checkpoints.
func NewTrail() *Trail {
	return &Trail{entries: make([]func(), 0, 256)}
}

// Checkpoint marks the current trail length. Checkpoints form a stack
// discipline: callers must restore in the reverse order they were taken.
func (t *Trail) Checkpoint() int {
	return len(t.entries)
}

// record appends an undo action. Cells call this immediately before
// mutating themselves.
func (t *Trail) record(undo func()) {
	t.entries = append(t.entries, undo)
}

// Restore pops entries above marker, invoking each undo action in reverse
// (last-recorded-first) order, then truncates the log. Restoring to a
// marker at or above the current length is a no-op.
func (t *Trail) Restore(marker int) {
	if marker >= len(t.entries) {
		return
	}
	for i := len(t.entries) - 1; i >= marker; i-- {
		t.entries[i]()
	}
	t.entries = t.entries[:marker]
}

// Len reports the number of recorded undo actions, used by the search's
// approximate memory estimate.
func (t *Trail) Len() int {
	return len(t.entries)
}
