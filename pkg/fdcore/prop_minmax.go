package fdcore

// minMaxProp implements array_min/array_max: result equals
// the minimum (or maximum) of a non-empty array of variables. Bound
// consistent in both directions: the array bounds the result, and the
// result's bounds prune each array element.
type minMaxProp struct {
	vars   []VarID
	result VarID
	isMax  bool
}

func NewArrayMin(vars []VarID, result VarID) Propagator {
	return &minMaxProp{vars: vars, result: result, isMax: false}
}

func NewArrayMax(vars []VarID, result VarID) Propagator {
	return &minMaxProp{vars: vars, result: result, isMax: true}
}

func (p *minMaxProp) Vars() []VarID {
	out := make([]VarID, 0, len(p.vars)+1)
	out = append(out, p.vars...)
	out = append(out, p.result)
	return out
}

func (p *minMaxProp) Name() string {
	if p.isMax {
		return "array_max"
	}
	return "array_min"
}

func (p *minMaxProp) Propagate(eng *Engine) (PropResult, error) {
	changed := false

	// result <- array: result's bound is the min (max) of the elements'
	// corresponding bounds.
	lo := getMin(eng, p.vars[0]).AsFloat()
	hi := getMax(eng, p.vars[0]).AsFloat()
	for _, v := range p.vars[1:] {
		vlo, vhi := getMin(eng, v).AsFloat(), getMax(eng, v).AsFloat()
		if p.isMax {
			if vlo > lo {
				lo = vlo
			}
			if vhi > hi {
				hi = vhi
			}
		} else {
			if vlo < lo {
				lo = vlo
			}
			if vhi < hi {
				hi = vhi
			}
		}
	}
	if c, err := tightenMin(eng, p.result, lo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.result, hi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	// array <- result: each element is bounded by result's range on the
	// side that the min/max direction permits.
	rlo, rhi := getMin(eng, p.result).AsFloat(), getMax(eng, p.result).AsFloat()
	for _, v := range p.vars {
		if p.isMax {
			// every element <= result.max
			if c, err := tightenMax(eng, v, rhi); err != nil {
				return Failure, err
			} else {
				changed = changed || c
			}
		} else {
			// every element >= result.min
			if c, err := tightenMin(eng, v, rlo); err != nil {
				return Failure, err
			} else {
				changed = changed || c
			}
		}
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
