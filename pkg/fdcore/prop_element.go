package fdcore

// elementProp implements the element global constraint: array[index] =
// result, where array is a slice of finite-domain variables (integer or
// float), index is an integer variable, and result shares array's kind.
// Propagation runs both directions: index -> result narrows result to the
// hull of every admissible slot's bounds, and result -> index shrinks the
// admissible index range to slots whose bounds still overlap result. The
// kind-generic getMin/getMax/tightenMin/tightenMax helpers let one
// propagator serve both int and float arrays.
type elementProp struct {
	index  VarID
	array  []VarID
	result VarID
}

// NewElement constructs an element constraint over a 0-based array of
// variables.
func NewElement(index VarID, array []VarID, result VarID) Propagator {
	a := make([]VarID, len(array))
	copy(a, array)
	return &elementProp{index: index, array: a, result: result}
}

func (p *elementProp) Vars() []VarID {
	vars := make([]VarID, 0, len(p.array)+2)
	vars = append(vars, p.array...)
	vars = append(vars, p.index, p.result)
	return vars
}
func (p *elementProp) Name() string { return "element" }

// validIndexRange returns the contiguous [lo, hi] admissible index range
// implied by index's current bounds, clipped to the array's own bounds;
// it works from index.min/index.max, not a hole-punctured value set.
func (p *elementProp) validIndexRange(eng *Engine) (lo, hi int, ok bool) {
	n := len(p.array)
	ilo := int(getMin(eng, p.index).AsFloat())
	ihi := int(getMax(eng, p.index).AsFloat())
	if ilo < 0 {
		ilo = 0
	}
	if ihi > n-1 {
		ihi = n - 1
	}
	if ilo > ihi {
		return 0, 0, false
	}
	return ilo, ihi, true
}

func (p *elementProp) Propagate(eng *Engine) (PropResult, error) {
	n := len(p.array)
	changed := false

	if c, err := tightenMin(eng, p.index, 0); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.index, float64(n-1)); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	lo, hi, ok := p.validIndexRange(eng)
	if !ok {
		return Failure, errDomainEmpty
	}

	if lo == hi {
		// Index is fixed: degenerates to array[lo] == result.
		c, err := p.intersectBounds(eng, p.array[lo], p.result)
		if err != nil {
			return Failure, err
		}
		changed = changed || c
		return resultOf(changed), nil
	}

	// index -> result: result's bounds tighten to the hull of every
	// admissible slot's bounds.
	unionLo, unionHi := 0.0, 0.0
	first := true
	for i := lo; i <= hi; i++ {
		alo, ahi := getMin(eng, p.array[i]).AsFloat(), getMax(eng, p.array[i]).AsFloat()
		if first {
			unionLo, unionHi = alo, ahi
			first = false
			continue
		}
		if alo < unionLo {
			unionLo = alo
		}
		if ahi > unionHi {
			unionHi = ahi
		}
	}
	if !first {
		if c, err := tightenMin(eng, p.result, unionLo); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
		if c, err := tightenMax(eng, p.result, unionHi); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
	}

	// result -> index: shrink the admissible index range to slots whose
	// bounds still overlap result's domain, then push the new range back
	// onto index as a bound (index.min/index.max only, no interior holes).
	resLo, resHi := getMin(eng, p.result).AsFloat(), getMax(eng, p.result).AsFloat()
	newLo, newHi := -1, -1
	for i := lo; i <= hi; i++ {
		alo, ahi := getMin(eng, p.array[i]).AsFloat(), getMax(eng, p.array[i]).AsFloat()
		if ahi < resLo || alo > resHi {
			continue
		}
		if newLo == -1 {
			newLo = i
		}
		newHi = i
	}
	if newLo == -1 {
		return Failure, errDomainEmpty
	}
	if c, err := tightenMin(eng, p.index, float64(newLo)); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.index, float64(newHi)); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	return resultOf(changed), nil
}

// intersectBounds narrows both v and w to the intersection of their
// current bounds, used when index is fixed and array[index] must equal
// result exactly.
func (p *elementProp) intersectBounds(eng *Engine, v, w VarID) (bool, error) {
	vlo, vhi := getMin(eng, v).AsFloat(), getMax(eng, v).AsFloat()
	wlo, whi := getMin(eng, w).AsFloat(), getMax(eng, w).AsFloat()
	newLo, newHi := vlo, vhi
	if wlo > newLo {
		newLo = wlo
	}
	if whi < newHi {
		newHi = whi
	}
	if newLo > newHi {
		return false, errDomainEmpty
	}
	changed := false
	for _, step := range []struct {
		v  VarID
		fn func(*Engine, VarID, float64) (bool, error)
		b  float64
	}{
		{v, tightenMin, newLo},
		{v, tightenMax, newHi},
		{w, tightenMin, newLo},
		{w, tightenMax, newHi},
	} {
		c, err := step.fn(eng, step.v, step.b)
		if err != nil {
			return false, err
		}
		changed = changed || c
	}
	return changed, nil
}

func resultOf(changed bool) PropResult {
	if changed {
		return Changed
	}
	return NoChange
}
