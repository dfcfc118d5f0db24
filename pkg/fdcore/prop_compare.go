package fdcore

// This file implements the binary comparison propagators: eq, ne, lt, le,
// gt, ge over mixed int/float pairs. All are bound consistent (they only
// ever narrow min/max).

func stepOf(eng *Engine, v VarID) float64 {
	if eng.Vars.Kind(v) == KindFloat {
		return eng.Vars.FloatDomain(v).Step()
	}
	return 1
}

// compareProp implements eq/ne/lt/le/gt/ge as a single propagator shape,
// parameterized by the relation: one struct per family rather than six
// duplicated types.
type compareProp struct {
	x, y VarID
	rel  relation
}

// NewCompare constructs a comparison propagator for x REL y.
func NewCompare(rel relation, x, y VarID) Propagator {
	return &compareProp{x: x, y: y, rel: rel}
}

func (p *compareProp) Vars() []VarID { return []VarID{p.x, p.y} }

func (p *compareProp) Name() string {
	switch p.rel {
	case relEq:
		return "eq"
	case relNe:
		return "ne"
	case relLt:
		return "lt"
	case relLe:
		return "le"
	case relGt:
		return "gt"
	default:
		return "ge"
	}
}

func (p *compareProp) Propagate(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	changed := false

	apply := func(lo, hi VarID, strict bool) (bool, error) {
		xs := stepOf(eng, lo)
		b := getMax(eng, hi).AsFloat()
		if strict {
			b -= xs
		}
		c1, err := tightenMax(eng, lo, b)
		if err != nil {
			return c1, err
		}
		b2 := getMin(eng, lo).AsFloat()
		if strict {
			b2 += stepOf(eng, hi)
		}
		c2, err := tightenMin(eng, hi, b2)
		return c1 || c2, err
	}

	switch p.rel {
	case relEq:
		lo := xlo
		if ylo > lo {
			lo = ylo
		}
		hi := xhi
		if yhi < hi {
			hi = yhi
		}
		if lo > hi {
			return Failure, errDomainEmpty
		}
		c1, err := tightenMin(eng, p.x, lo)
		if err != nil {
			return Failure, err
		}
		c2, err := tightenMax(eng, p.x, hi)
		if err != nil {
			return Failure, err
		}
		c3, err := tightenMin(eng, p.y, lo)
		if err != nil {
			return Failure, err
		}
		c4, err := tightenMax(eng, p.y, hi)
		if err != nil {
			return Failure, err
		}
		changed = c1 || c2 || c3 || c4
	case relNe:
		if eng.Vars.IsFixed(p.x) && eng.Vars.IsFixed(p.y) {
			if ValuesEqual(getMin(eng, p.x), getMin(eng, p.y), DefaultULPTolerance) {
				return Failure, errDomainEmpty
			}
		}
		if eng.Vars.IsFixed(p.x) && eng.Vars.Kind(p.x) == KindInt && eng.Vars.Kind(p.y) == KindInt {
			val := int(getMin(eng, p.x).I)
			c, err := eng.RemoveInt(p.y, val)
			if err != nil {
				return Failure, err
			}
			changed = c
		} else if eng.Vars.IsFixed(p.y) && eng.Vars.Kind(p.y) == KindInt && eng.Vars.Kind(p.x) == KindInt {
			val := int(getMin(eng, p.y).I)
			c, err := eng.RemoveInt(p.x, val)
			if err != nil {
				return Failure, err
			}
			changed = c
		}
	case relLe:
		c, err := apply(p.x, p.y, false)
		if err != nil {
			return Failure, err
		}
		changed = c
	case relLt:
		c, err := apply(p.x, p.y, true)
		if err != nil {
			return Failure, err
		}
		changed = c
	case relGe:
		c, err := apply(p.y, p.x, false)
		if err != nil {
			return Failure, err
		}
		changed = c
	case relGt:
		c, err := apply(p.y, p.x, true)
		if err != nil {
			return Failure, err
		}
		changed = c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
