package fdcore

import "fmt"

// SparseSetDomain is the integer domain for ranges too wide for a bitset.
// present holds the currently-available values packed contiguously in
// present[0:size]; index maps a value to its slot in present, so Remove is
// O(1) swap-to-end. A maintained min/max avoids scanning the live region
// on every bound query. The complement iterator and PreferComplement
// heuristic let callers walk whichever of removed/present is smaller.
type SparseSetDomain struct {
	lo, hi  int
	present []int // present[0:size] are the live values, offset from lo
	index   []int // index[v-lo] = position of v in present; >= size once removed
	size    int
	min     int // actual value, not offset
	max     int
	trail   *Trail
}

// NewSparseSetDomain creates a domain covering every integer in [lo, hi].
func NewSparseSetDomain(lo, hi int) *SparseSetDomain {
	n := hi - lo + 1
	if n < 0 {
		n = 0
	}
	present := make([]int, n)
	index := make([]int, n)
	for i := 0; i < n; i++ {
		present[i] = i
		index[i] = i
	}
	return &SparseSetDomain{lo: lo, hi: hi, present: present, index: index, size: n, min: lo, max: hi}
}

func (d *SparseSetDomain) Attach(t *Trail) { d.trail = t }

func (d *SparseSetDomain) Kind() Kind { return KindInt }

func (d *SparseSetDomain) Count() int { return d.size }

func (d *SparseSetDomain) IsEmpty() bool { return d.size == 0 }

func (d *SparseSetDomain) IsFixed() bool { return d.size == 1 }

func (d *SparseSetDomain) offsetOf(value int) (int, bool) {
	if value < d.lo || value > d.hi {
		return 0, false
	}
	return value - d.lo, true
}

func (d *SparseSetDomain) Has(value int) bool {
	off, ok := d.offsetOf(value)
	if !ok {
		return false
	}
	return d.index[off] < d.size
}

func (d *SparseSetDomain) Contains(v Value) bool {
	if v.Kind != KindInt {
		return false
	}
	return d.Has(int(v.I))
}

func (d *SparseSetDomain) Min() Value { return IntValue(int64(d.min)) }
func (d *SparseSetDomain) Max() Value { return IntValue(int64(d.max)) }

// setSize records size's current value then writes the new one.
func (d *SparseSetDomain) setSize(n int) {
	old := d.size
	if old == n {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.size = old })
	}
	d.size = n
}

func (d *SparseSetDomain) setMin(v int) {
	old := d.min
	if old == v {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.min = old })
	}
	d.min = v
}

func (d *SparseSetDomain) setMax(v int) {
	old := d.max
	if old == v {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.max = old })
	}
	d.max = v
}

// swapOut moves the value at present[pos] (which must be < size) to the end
// of the live region, decrementing size. Both present and index entries it
// touches are restored on undo.
func (d *SparseSetDomain) swapOut(pos int) {
	last := d.size - 1
	vPos, vLast := d.present[pos], d.present[last]
	if d.trail != nil {
		p, l := pos, last
		d.trail.record(func() {
			d.present[p] = vPos
			d.present[last] = vLast
			d.index[vPos] = p
			d.index[vLast] = l
		})
	}
	d.present[pos], d.present[last] = vLast, vPos
	d.index[vPos], d.index[vLast] = last, pos
	d.setSize(last)
}

// Remove excludes value from the domain. Returns true if it was present.
func (d *SparseSetDomain) Remove(value int) bool {
	off, ok := d.offsetOf(value)
	if !ok {
		return false
	}
	pos := d.index[off]
	if pos >= d.size {
		return false
	}
	d.swapOut(pos)
	d.refreshBoundsAfterRemove(value)
	return true
}

// refreshBoundsAfterRemove updates the maintained min/max when the removed
// value was exactly at a bound.
func (d *SparseSetDomain) refreshBoundsAfterRemove(removed int) {
	if d.size == 0 {
		return
	}
	if removed == d.min {
		newMin := d.hi + 1
		for i := 0; i < d.size; i++ {
			v := d.present[i] + d.lo
			if v < newMin {
				newMin = v
			}
		}
		d.setMin(newMin)
	}
	if removed == d.max {
		newMax := d.lo - 1
		for i := 0; i < d.size; i++ {
			v := d.present[i] + d.lo
			if v > newMax {
				newMax = v
			}
		}
		d.setMax(newMax)
	}
}

// SetMin removes every value below lo.
func (d *SparseSetDomain) SetMin(lo int) bool {
	changed := false
	for i := 0; i < d.size; {
		v := d.present[i] + d.lo
		if v < lo {
			d.swapOut(i)
			changed = true
			continue // present[i] now holds what was previously at the end
		}
		i++
	}
	if changed {
		d.refreshBoundsAfterSetBound()
	}
	return changed
}

// SetMax removes every value above hi.
func (d *SparseSetDomain) SetMax(hi int) bool {
	changed := false
	for i := 0; i < d.size; {
		v := d.present[i] + d.lo
		if v > hi {
			d.swapOut(i)
			changed = true
			continue
		}
		i++
	}
	if changed {
		d.refreshBoundsAfterSetBound()
	}
	return changed
}

func (d *SparseSetDomain) refreshBoundsAfterSetBound() {
	if d.size == 0 {
		return
	}
	newMin, newMax := d.hi+1, d.lo-1
	for i := 0; i < d.size; i++ {
		v := d.present[i] + d.lo
		if v < newMin {
			newMin = v
		}
		if v > newMax {
			newMax = v
		}
	}
	d.setMin(newMin)
	d.setMax(newMax)
}

// IterateValues visits every present value. Order is not guaranteed sorted;
// callers needing ascending order should sort the results themselves.
func (d *SparseSetDomain) IterateValues(f func(value int)) {
	for i := 0; i < d.size; i++ {
		f(d.present[i] + d.lo)
	}
}

// IterateComplement visits every value that has been removed from the
// domain.
func (d *SparseSetDomain) IterateComplement(f func(value int)) {
	for i := d.size; i < len(d.present); i++ {
		f(d.present[i] + d.lo)
	}
}

// PreferComplement reports whether the removed set is cheaper to iterate
// than the present set (|removed| < |present|/2).
func (d *SparseSetDomain) PreferComplement() bool {
	removed := len(d.present) - d.size
	return removed*2 < d.size
}

func (d *SparseSetDomain) Clone() Domain {
	present := make([]int, len(d.present))
	copy(present, d.present)
	index := make([]int, len(d.index))
	copy(index, d.index)
	return &SparseSetDomain{lo: d.lo, hi: d.hi, present: present, index: index, size: d.size, min: d.min, max: d.max}
}

func (d *SparseSetDomain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	return fmt.Sprintf("{%d..%d, |D|=%d}", d.min, d.max, d.size)
}
