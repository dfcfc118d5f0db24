package fdcore

import "math/bits"

// allDifferentProp implements the all_different constraint with two
// narrowing rules: (1) remove any fixed variable's value from every other
// variable's domain, and (2) detect Hall sets of size 2 to 4 — a subset of
// k variables whose domains' union has exactly k values, which forces
// those values out of every other variable. A full matching-based
// all-different (Régin's algorithm) would give complete arc consistency,
// but this bounded Hall-set search is enough to catch the common small
// conflicts without the O(n^2.5) matching machinery.
type allDifferentProp struct {
	vars []VarID
}

func NewAllDifferent(vars []VarID) Propagator {
	return &allDifferentProp{vars: vars}
}

func (p *allDifferentProp) Vars() []VarID { return p.vars }
func (p *allDifferentProp) Name() string  { return "all_different" }

func (p *allDifferentProp) Propagate(eng *Engine) (PropResult, error) {
	changed := false

	// Rule 1: assigned-value removal.
	for _, v := range p.vars {
		if !eng.Vars.IsFixed(v) {
			continue
		}
		val := int(getMin(eng, v).I)
		for _, w := range p.vars {
			if w == v {
				continue
			}
			c, err := eng.RemoveInt(w, val)
			if err != nil {
				return Failure, err
			}
			changed = changed || c
		}
	}

	// Rule 2: bounded Hall-set detection over subsets of size 2..4, capping
	// subset size rather than searching all 2^n subsets. Domains are packed
	// into 64-bit masks relative to the smallest value across the scope, so
	// a subset's union is a single OR and its cardinality a popcount; value
	// ranges too wide to pack skip Hall detection (rule 1 still applies).
	n := len(p.vars)
	if n < 2 {
		return resultOf(changed), nil
	}
	base, top := int(getMin(eng, p.vars[0]).I), int(getMax(eng, p.vars[0]).I)
	for _, v := range p.vars[1:] {
		if lo := int(getMin(eng, v).I); lo < base {
			base = lo
		}
		if hi := int(getMax(eng, v).I); hi > top {
			top = hi
		}
	}
	if top-base+1 > 64 {
		return resultOf(changed), nil
	}
	masks := make([]uint64, n)
	for i, v := range p.vars {
		eng.Vars.IntDomain(v).IterateValues(func(x int) {
			masks[i] |= 1 << uint(x-base)
		})
	}

	for k := 2; k <= 4 && k <= n; k++ {
		c, err := p.findHallSets(eng, masks, base, k)
		if err != nil {
			return Failure, err
		}
		changed = changed || c
	}

	return resultOf(changed), nil
}

// findHallSets enumerates every k-subset of variables (by index) and checks
// whether the union of their domain masks has exactly k values; if so, the
// captured values are removed from every variable outside the subset.
func (p *allDifferentProp) findHallSets(eng *Engine, masks []uint64, base, k int) (bool, error) {
	n := len(masks)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	changed := false

	for {
		var union uint64
		for _, i := range idx {
			union |= masks[i]
		}
		if bits.OnesCount64(union) == k {
			for j, v := range p.vars {
				if containsIndex(idx, j) {
					continue
				}
				for rest := union; rest != 0; rest &^= rest & -rest {
					val := base + bits.TrailingZeros64(rest)
					c, err := eng.RemoveInt(v, val)
					if err != nil {
						return changed, err
					}
					if c {
						masks[j] &^= 1 << uint(val-base)
						changed = true
					}
				}
			}
		}

		// advance idx to the next k-combination (standard combinadic walk)
		pos := k - 1
		for pos >= 0 && idx[pos] == n-k+pos {
			pos--
		}
		if pos < 0 {
			break
		}
		idx[pos]++
		for i := pos + 1; i < k; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
	return changed, nil
}

func containsIndex(idx []int, j int) bool {
	for _, i := range idx {
		if i == j {
			return true
		}
	}
	return false
}
