package fdcore

// reifiedCompareProp implements b <=> (x REL y) for comparisons. It is a
// single composite propagator holding both the base
// relation and its negation plus the control variable b, doing case
// analysis on b's domain and the bounds of x/y — not two independent
// propagators plus a clause, which is unsound (it loses
// the entailment direction).
type reifiedCompareProp struct {
	b    VarID
	x, y VarID
	rel  relation
}

func NewReifiedCompare(rel relation, x, y, b VarID) Propagator {
	return &reifiedCompareProp{b: b, x: x, y: y, rel: rel}
}

func (p *reifiedCompareProp) Vars() []VarID { return []VarID{p.b, p.x, p.y} }
func (p *reifiedCompareProp) Name() string  { return "reified_compare" }

func (p *reifiedCompareProp) Propagate(eng *Engine) (PropResult, error) {
	bDom := eng.Vars.IntDomain(p.b)
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	changed := false

	// Entailment direction: if the base relation already holds or already
	// fails given current bounds, fix b accordingly.
	if !bDom.IsFixed() {
		if holds, ok := boundsEntail(p.rel, xlo, xhi, ylo, yhi); ok {
			val := 0
			if holds {
				val = 1
			}
			c, err := eng.FixInt(p.b, val)
			if err != nil {
				return Failure, err
			}
			changed = changed || c
		}
	}

	if bDom.IsFixed() {
		bv := getMin(eng, p.b).I
		var activeRel relation
		if bv == 1 {
			activeRel = p.rel
		} else {
			activeRel = p.rel.negate()
		}
		sub := compareProp{x: p.x, y: p.y, rel: activeRel}
		res, err := sub.Propagate(eng)
		if err != nil || res == Failure {
			return Failure, err
		}
		if res == Changed {
			changed = true
		}
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// reifiedLinearProp implements b <=> (sum(coeffs*vars) REL rhs) for linear
// constraints, mirroring reifiedCompareProp's case analysis.
type reifiedLinearProp struct {
	b      VarID
	vars   []VarID
	coeffs []float64
	rhs    float64
	rel    linRel
}

func NewReifiedLinear(rel linRel, vars []VarID, coeffs []float64, rhs float64, b VarID) Propagator {
	return &reifiedLinearProp{b: b, vars: vars, coeffs: coeffs, rhs: rhs, rel: rel}
}

func (p *reifiedLinearProp) Vars() []VarID {
	out := make([]VarID, 0, len(p.vars)+1)
	out = append(out, p.b)
	out = append(out, p.vars...)
	return out
}

func (p *reifiedLinearProp) Name() string { return "reified_linear" }

// linBoundsEntail reports whether sum REL rhs is entailed true/false by the
// current term bounds, for rel in {linEq, linLe, linNe}.
func linBoundsEntail(rel linRel, lo, hi, rhs float64) (holds bool, ok bool) {
	switch rel {
	case linLe:
		if hi <= rhs+1e-9 {
			return true, true
		}
		if lo > rhs+1e-9 {
			return false, true
		}
	case linEq:
		if lo == hi && lo == rhs {
			return true, true
		}
		if hi < rhs-1e-9 || lo > rhs+1e-9 {
			return false, true
		}
	case linNe:
		if hi < rhs-1e-9 || lo > rhs+1e-9 {
			return true, true
		}
		if lo == hi && lo == rhs {
			return false, true
		}
	}
	return false, false
}

// negateLinRel implements the negation table for linear
// constraints: ¬lin_eq = lin_ne, ¬lin_le is a strict-greater (modeled here
// as lin_le on the negated, offset sum: ¬(sum <= rhs) == sum >= rhs + step,
// i.e. -sum <= -rhs - step).
func (p *reifiedLinearProp) negated(eng *Engine) *linearProp {
	switch p.rel {
	case linEq:
		return &linearProp{vars: p.vars, coeffs: p.coeffs, rhs: p.rhs, rel: linNe}
	case linNe:
		return &linearProp{vars: p.vars, coeffs: p.coeffs, rhs: p.rhs, rel: linEq}
	default: // linLe: negate to strict-greater via the smallest representable step
		step := stepOf(eng, p.vars[0])
		for _, v := range p.vars[1:] {
			if s := stepOf(eng, v); s < step {
				step = s
			}
		}
		negCoeffs := make([]float64, len(p.coeffs))
		for i, c := range p.coeffs {
			negCoeffs[i] = -c
		}
		return &linearProp{vars: p.vars, coeffs: negCoeffs, rhs: -p.rhs - step, rel: linLe}
	}
}

func (p *reifiedLinearProp) Propagate(eng *Engine) (PropResult, error) {
	bDom := eng.Vars.IntDomain(p.b)
	changed := false

	var lo, hi float64
	for i, v := range p.vars {
		a, b := termBounds(eng, v, p.coeffs[i])
		lo += a
		hi += b
	}

	if !bDom.IsFixed() {
		if holds, ok := linBoundsEntail(p.rel, lo, hi, p.rhs); ok {
			val := 0
			if holds {
				val = 1
			}
			c, err := eng.FixInt(p.b, val)
			if err != nil {
				return Failure, err
			}
			changed = changed || c
		}
	}

	if bDom.IsFixed() {
		bv := getMin(eng, p.b).I
		var sub *linearProp
		if bv == 1 {
			sub = &linearProp{vars: p.vars, coeffs: p.coeffs, rhs: p.rhs, rel: p.rel}
		} else {
			sub = p.negated(eng)
		}
		res, err := sub.Propagate(eng)
		if err != nil || res == Failure {
			return Failure, err
		}
		if res == Changed {
			changed = true
		}
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
