package fdcore

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitSetDomain is the bitset-backed integer domain: a
// universe of at most 128 values packed into uint64 words plus an offset so
// the represented range need not start at zero. Bit i represents value
// lo+i. Generalized from a
// fixed 1-based universe to an arbitrary [lo, hi] range and made
// trail-reversible instead of copy-on-write.
type BitSetDomain struct {
	lo, hi int
	words  []uint64
	trail  *Trail
}

// NewBitSetDomain creates a domain covering every integer in [lo, hi].
// hi-lo+1 must be <= 128; callers needing larger universes should use
// NewSparseSetDomain instead (selectIntegerDomain enforces this).
func NewBitSetDomain(lo, hi int) *BitSetDomain {
	n := hi - lo + 1
	if n < 0 {
		n = 0
	}
	numWords := (n + 63) / 64
	d := &BitSetDomain{lo: lo, hi: hi, words: make([]uint64, numWords)}
	for i := 0; i < n; i++ {
		d.words[i/64] |= 1 << uint(i%64)
	}
	return d
}

// Attach binds the domain to the trail that will record its future
// mutations. Must be called once, by the VarStore, before propagation
// begins.
func (d *BitSetDomain) Attach(t *Trail) { d.trail = t }

func (d *BitSetDomain) Kind() Kind { return KindInt }

func (d *BitSetDomain) Count() int {
	c := 0
	for _, w := range d.words {
		c += bits.OnesCount64(w)
	}
	return c
}

func (d *BitSetDomain) IsEmpty() bool { return d.Count() == 0 }

func (d *BitSetDomain) IsFixed() bool { return d.Count() == 1 }

func (d *BitSetDomain) bitIndex(value int) (word int, off uint, ok bool) {
	if value < d.lo || value > d.hi {
		return 0, 0, false
	}
	i := value - d.lo
	return i / 64, uint(i % 64), true
}

func (d *BitSetDomain) Has(value int) bool {
	w, off, ok := d.bitIndex(value)
	if !ok {
		return false
	}
	return (d.words[w]>>off)&1 == 1
}

func (d *BitSetDomain) Contains(v Value) bool {
	if v.Kind != KindInt {
		return false
	}
	return d.Has(int(v.I))
}

func (d *BitSetDomain) Min() Value {
	for w, word := range d.words {
		if word != 0 {
			off := bits.TrailingZeros64(word)
			return IntValue(int64(d.lo + w*64 + off))
		}
	}
	return IntValue(int64(d.lo))
}

func (d *BitSetDomain) Max() Value {
	for w := len(d.words) - 1; w >= 0; w-- {
		word := d.words[w]
		if word == 0 {
			continue
		}
		off := 63 - bits.LeadingZeros64(word)
		v := d.lo + w*64 + off
		if v > d.hi {
			continue
		}
		return IntValue(int64(v))
	}
	return IntValue(int64(d.hi))
}

// setWord writes words[idx] = val, recording the previous contents on the
// trail so the write can be undone in O(1).
func (d *BitSetDomain) setWord(idx int, val uint64) {
	old := d.words[idx]
	if old == val {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.words[idx] = old })
	}
	d.words[idx] = val
}

// Remove clears value's bit. Returns true if the bit was set (i.e. the
// domain actually shrank).
func (d *BitSetDomain) Remove(value int) bool {
	w, off, ok := d.bitIndex(value)
	if !ok || (d.words[w]>>off)&1 == 0 {
		return false
	}
	d.setWord(w, d.words[w]&^(1<<off))
	return true
}

// SetMin removes every value below lo, returning true if anything changed.
func (d *BitSetDomain) SetMin(lo int) bool {
	changed := false
	for w, word := range d.words {
		if word == 0 {
			continue
		}
		newWord := word
		for off := 0; off < 64; off++ {
			if (word>>uint(off))&1 == 0 {
				continue
			}
			value := d.lo + w*64 + off
			if value > d.hi {
				newWord &^= 1 << uint(off)
				continue
			}
			if value < lo {
				newWord &^= 1 << uint(off)
			}
		}
		if newWord != word {
			d.setWord(w, newWord)
			changed = true
		}
	}
	return changed
}

// SetMax removes every value above hi, returning true if anything changed.
func (d *BitSetDomain) SetMax(hi int) bool {
	changed := false
	for w, word := range d.words {
		if word == 0 {
			continue
		}
		newWord := word
		for off := 0; off < 64; off++ {
			if (word>>uint(off))&1 == 0 {
				continue
			}
			value := d.lo + w*64 + off
			if value > hi {
				newWord &^= 1 << uint(off)
			}
		}
		if newWord != word {
			d.setWord(w, newWord)
			changed = true
		}
	}
	return changed
}

func (d *BitSetDomain) IterateValues(f func(value int)) {
	for w, word := range d.words {
		for word != 0 {
			off := bits.TrailingZeros64(word)
			value := d.lo + w*64 + off
			if value <= d.hi {
				f(value)
			}
			word &^= word & -word
		}
	}
}

// IntersectMask narrows the domain to the values also present in mask,
// where mask is interpreted over the same [lo, hi] range. No propagator in
// this package calls it.
func (d *BitSetDomain) IntersectMask(mask *BitSetDomain) bool {
	changed := false
	for i := range d.words {
		var mw uint64
		if i < len(mask.words) {
			mw = mask.words[i]
		}
		nw := d.words[i] & mw
		if nw != d.words[i] {
			d.setWord(i, nw)
			changed = true
		}
	}
	return changed
}

func (d *BitSetDomain) Clone() Domain {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return &BitSetDomain{lo: d.lo, hi: d.hi, words: words}
}

func (d *BitSetDomain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	var vals []int
	d.IterateValues(func(v int) { vals = append(vals, v) })
	if len(vals) == 1 {
		return fmt.Sprintf("{%d}", vals[0])
	}
	consecutive := true
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return fmt.Sprintf("{%d..%d}", vals[0], vals[len(vals)-1])
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte('}')
	return b.String()
}
