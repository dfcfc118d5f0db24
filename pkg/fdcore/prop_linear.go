package fdcore

import "math"

// linRel distinguishes the three linear-constraint shapes:
// sum(coeffs[i]*vars[i]) REL constant, for REL in {=, <=, !=}.
type linRel int

const (
	linEq linRel = iota
	linLe
	linNe
)

// linearProp implements lin_eq/lin_le/lin_ne and their float_lin_*
// counterparts as one parameterized propagator. Bound consistency is
// achieved via the standard "slack" projection: for each term i, bound x_i
// using the sum of the other terms' worst-case contribution.
type linearProp struct {
	vars   []VarID
	coeffs []float64
	rhs    float64
	rel    linRel
}

// NewLinear constructs a linear constraint sum(coeffs[i]*vars[i]) REL rhs.
// vars and coeffs must have equal length; the caller (model-building layer)
// validates this before construction.
func NewLinear(rel linRel, vars []VarID, coeffs []float64, rhs float64) Propagator {
	return &linearProp{vars: vars, coeffs: coeffs, rhs: rhs, rel: rel}
}

func (p *linearProp) Vars() []VarID { return p.vars }

func (p *linearProp) Name() string {
	switch p.rel {
	case linEq:
		return "lin_eq"
	case linLe:
		return "lin_le"
	default:
		return "lin_ne"
	}
}

// termBounds returns the [lo,hi] contribution range of coeffs[i]*vars[i].
func termBounds(eng *Engine, v VarID, c float64) (float64, float64) {
	lo, hi := getMin(eng, v).AsFloat(), getMax(eng, v).AsFloat()
	a, b := c*lo, c*hi
	if a > b {
		a, b = b, a
	}
	return a, b
}

// sumBounds returns the [lo,hi] of the whole sum, and, per term, the
// contribution range, reused by the per-term projection loop below.
func (p *linearProp) sumBounds(eng *Engine) (float64, float64, [][2]float64) {
	ranges := make([][2]float64, len(p.vars))
	var lo, hi float64
	for i, v := range p.vars {
		a, b := termBounds(eng, v, p.coeffs[i])
		ranges[i] = [2]float64{a, b}
		lo += a
		hi += b
	}
	return lo, hi, ranges
}

func (p *linearProp) Propagate(eng *Engine) (PropResult, error) {
	if err := p.checkOverflow(eng); err != nil {
		return Failure, err
	}
	switch p.rel {
	case linNe:
		return p.propagateNe(eng)
	case linLe:
		return p.propagateLe(eng)
	default:
		return p.propagateEq(eng)
	}
}

// checkOverflow rejects integer terms whose contribution exceeds the range
// where float64 accumulation stays exact; past it, the sums silently lose
// precision and the projected bounds become unsound.
func (p *linearProp) checkOverflow(eng *Engine) error {
	for i, v := range p.vars {
		if eng.Vars.Kind(v) != KindInt {
			continue
		}
		a, b := termBounds(eng, v, p.coeffs[i])
		if math.Max(math.Abs(a), math.Abs(b)) > overflowGuard {
			return errInternal("%s: integer overflow in bound projection", p.Name())
		}
	}
	return nil
}

// propagateLe enforces sum <= rhs: for each term i, x_i's bound from the
// other terms' worst case is (rhs - sum_{j!=i} lo_j) / coeffs[i], direction
// depending on coeffs[i]'s sign.
func (p *linearProp) propagateLe(eng *Engine) (PropResult, error) {
	_, _, ranges := p.sumBounds(eng)
	var totalLo float64
	for _, r := range ranges {
		totalLo += r[0]
	}
	if totalLo > p.rhs+1e-9 {
		return Failure, errDomainEmpty
	}
	changed := false
	for i, v := range p.vars {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		othersLo := totalLo - ranges[i][0]
		slack := p.rhs - othersLo
		bound := slack / c
		var ch bool
		var err error
		if c > 0 {
			ch, err = tightenMax(eng, v, bound)
		} else {
			ch, err = tightenMin(eng, v, bound)
		}
		if err != nil {
			return Failure, err
		}
		changed = changed || ch
	}
	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// propagateEq enforces sum == rhs by running propagateLe in both directions
// (<=rhs and >=rhs, i.e. <= -rhs on the negated sum).
func (p *linearProp) propagateEq(eng *Engine) (PropResult, error) {
	le := &linearProp{vars: p.vars, coeffs: p.coeffs, rhs: p.rhs, rel: linLe}
	res1, err := le.Propagate(eng)
	if err != nil || res1 == Failure {
		return res1, err
	}
	negCoeffs := make([]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		negCoeffs[i] = -c
	}
	ge := &linearProp{vars: p.vars, coeffs: negCoeffs, rhs: -p.rhs, rel: linLe}
	res2, err := ge.Propagate(eng)
	if err != nil || res2 == Failure {
		return res2, err
	}
	if res1 == Changed || res2 == Changed {
		return Changed, nil
	}
	return NoChange, nil
}

// propagateNe handles the disequality form: only active once every variable
// but one is fixed, at which point the last variable's forced value (if
// within its domain) is excluded.
func (p *linearProp) propagateNe(eng *Engine) (PropResult, error) {
	freeIdx := -1
	var fixedSum float64
	for i, v := range p.vars {
		if eng.Vars.IsFixed(v) {
			fixedSum += p.coeffs[i] * getMin(eng, v).AsFloat()
			continue
		}
		if freeIdx != -1 {
			return NoChange, nil // more than one free variable; nothing to do yet
		}
		freeIdx = i
	}
	if freeIdx == -1 {
		if math.Abs(fixedSum-p.rhs) < 1e-9 {
			return Failure, errDomainEmpty
		}
		return NoChange, nil
	}
	v := p.vars[freeIdx]
	c := p.coeffs[freeIdx]
	if c == 0 {
		return NoChange, nil
	}
	forced := (p.rhs - fixedSum) / c
	if eng.Vars.Kind(v) != KindInt {
		return NoChange, nil // float domains have no single-point removal
	}
	iforced := int(math.Round(forced))
	if math.Abs(float64(iforced)-forced) > 1e-9 {
		return NoChange, nil // forced value isn't an integer; constraint can't bind
	}
	changed, err := eng.RemoveInt(v, iforced)
	if err != nil {
		return Failure, err
	}
	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// Convenience constructors for the model layer: the integer and float
// linear forms map onto the same propagator, the distinction carried only
// by the variables' Kind.
func NewLinearEq(vars []VarID, coeffs []float64, rhs float64) Propagator {
	return NewLinear(linEq, vars, coeffs, rhs)
}

func NewLinearLe(vars []VarID, coeffs []float64, rhs float64) Propagator {
	return NewLinear(linLe, vars, coeffs, rhs)
}

func NewLinearNe(vars []VarID, coeffs []float64, rhs float64) Propagator {
	return NewLinear(linNe, vars, coeffs, rhs)
}
