package fdcore

import "math"

// This file implements the ternary/binary arithmetic propagators:
// add, sub, mul, div, mod, abs. Each is bound-consistent
// (three-way bound projection) and, for integer arguments, detects overflow
// as failure rather than silently wrapping.

// addProp enforces x + y = z.
type addProp struct{ x, y, z VarID }

func NewAdd(x, y, z VarID) Propagator { return &addProp{x, y, z} }

func (p *addProp) Vars() []VarID { return []VarID{p.x, p.y, p.z} }
func (p *addProp) Name() string  { return "add" }

func (p *addProp) Propagate(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	zlo, zhi := getMin(eng, p.z).AsFloat(), getMax(eng, p.z).AsFloat()

	if math.Abs(xlo)+math.Abs(ylo) > overflowGuard || math.Abs(xhi)+math.Abs(yhi) > overflowGuard {
		if eng.Vars.Kind(p.x) == KindInt && eng.Vars.Kind(p.y) == KindInt {
			return Failure, errInternal("add: integer overflow in bound projection")
		}
	}

	changed := false
	// z = x + y
	if c, err := tightenMin(eng, p.z, xlo+ylo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.z, xhi+yhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	// x = z - y
	if c, err := tightenMin(eng, p.x, zlo-yhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.x, zhi-ylo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	// y = z - x
	if c, err := tightenMin(eng, p.y, zlo-xhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.y, zhi-xlo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// overflowGuard is a conservative bound well inside int64 range; bound
// projections that would exceed it on integer variables are treated as
// overflow, reported as an internal error rather than a silent wrap.
const overflowGuard = 1e15

// subProp enforces x - y = z, implemented as add(y, z, x) reordered: x = y + z.
type subProp struct{ x, y, z VarID }

func NewSub(x, y, z VarID) Propagator { return &subProp{x, y, z} }

func (p *subProp) Vars() []VarID { return []VarID{p.x, p.y, p.z} }
func (p *subProp) Name() string  { return "sub" }

func (p *subProp) Propagate(eng *Engine) (PropResult, error) {
	// x - y = z  <=>  x = y + z
	delegate := addProp{x: p.y, y: p.z, z: p.x}
	return delegate.Propagate(eng)
}

// absProp enforces y = |x|.
type absProp struct{ x, y VarID }

func NewAbs(x, y VarID) Propagator { return &absProp{x, y} }

func (p *absProp) Vars() []VarID { return []VarID{p.x, p.y} }
func (p *absProp) Name() string  { return "abs" }

func (p *absProp) Propagate(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	changed := false

	// y bounds from x: y in [0, max(|xlo|,|xhi|)], and y.min >= 0 always,
	// but also y.min >= min(|v|) over [xlo,xhi] which is 0 if the interval
	// straddles zero, else min(|xlo|,|xhi|).
	var ymin, ymax float64
	ymax = math.Max(math.Abs(xlo), math.Abs(xhi))
	if xlo <= 0 && xhi >= 0 {
		ymin = 0
	} else {
		ymin = math.Min(math.Abs(xlo), math.Abs(xhi))
	}
	if c, err := tightenMin(eng, p.y, ymin); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.y, ymax); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	// x bounds from y: x in [-y.max, y.max] intersected with current x.
	yhi := getMax(eng, p.y).AsFloat()
	if c, err := tightenMin(eng, p.x, -yhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.x, yhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// mulProp enforces x * y = z, handling sign cases for bound projection
// carefully, since the sign of the result depends on both operands.
type mulProp struct{ x, y, z VarID }

func NewMul(x, y, z VarID) Propagator { return &mulProp{x, y, z} }

func (p *mulProp) Vars() []VarID { return []VarID{p.x, p.y, p.z} }
func (p *mulProp) Name() string  { return "mul" }

// productRange returns the [min,max] of a*b over a in [alo,ahi], b in [blo,bhi].
func productRange(alo, ahi, blo, bhi float64) (float64, float64) {
	p1, p2, p3, p4 := alo*blo, alo*bhi, ahi*blo, ahi*bhi
	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))
	return lo, hi
}

func (p *mulProp) Propagate(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()

	if eng.Vars.Kind(p.x) == KindInt && eng.Vars.Kind(p.y) == KindInt {
		bound := math.Max(math.Abs(xlo), math.Abs(xhi)) * math.Max(math.Abs(ylo), math.Abs(yhi))
		if bound > overflowGuard {
			return Failure, errInternal("mul: integer overflow in bound projection")
		}
	}

	changed := false
	zlo, zhi := productRange(xlo, xhi, ylo, yhi)
	if c, err := tightenMin(eng, p.z, zlo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.z, zhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	zlo, zhi = getMin(eng, p.z).AsFloat(), getMax(eng, p.z).AsFloat()

	// x = z / y, only safely invertible when y's range excludes 0.
	if ylo > 0 || yhi < 0 {
		xlo2, xhi2 := divRange(zlo, zhi, ylo, yhi)
		if c, err := tightenMin(eng, p.x, xlo2); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
		if c, err := tightenMax(eng, p.x, xhi2); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
	}
	if xlo > 0 || xhi < 0 {
		ylo2, yhi2 := divRange(zlo, zhi, xlo, xhi)
		if c, err := tightenMin(eng, p.y, ylo2); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
		if c, err := tightenMax(eng, p.y, yhi2); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// divRange returns the [min,max] of a/b over a in [alo,ahi], b in [blo,bhi],
// requiring 0 not in (blo,bhi).
func divRange(alo, ahi, blo, bhi float64) (float64, float64) {
	q1, q2, q3, q4 := alo/blo, alo/bhi, ahi/blo, ahi/bhi
	lo := math.Min(math.Min(q1, q2), math.Min(q3, q4))
	hi := math.Max(math.Max(q1, q2), math.Max(q3, q4))
	return lo, hi
}

// divProp enforces x / y = z for integer truncating division; fails on a
// zero divisor.
type divProp struct{ x, y, z VarID }

func NewDiv(x, y, z VarID) Propagator { return &divProp{x, y, z} }

func (p *divProp) Vars() []VarID { return []VarID{p.x, p.y, p.z} }
func (p *divProp) Name() string  { return "div" }

func (p *divProp) Propagate(eng *Engine) (PropResult, error) {
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	if ylo <= 0 && yhi >= 0 {
		// Zero is still a candidate divisor; narrow it out before failing,
		// since the constraint is undefined only once y is actually 0.
		if eng.Vars.Kind(p.y) == KindInt {
			if c, err := eng.RemoveInt(p.y, 0); err != nil {
				return Failure, err
			} else if c {
				ylo, yhi = getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
			}
		}
	}
	if ylo <= 0 && yhi >= 0 {
		return NoChange, nil // divisor domain still straddles zero; wait
	}

	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	changed := false

	zlo, zhi := divRange(xlo, xhi, ylo, yhi)
	intDiv := eng.Vars.Kind(p.x) == KindInt && eng.Vars.Kind(p.y) == KindInt
	if intDiv {
		// Truncation is monotone, so truncating the real quotient's hull
		// bounds every truncated integer quotient.
		zlo, zhi = math.Trunc(zlo), math.Trunc(zhi)
	}
	if c, err := tightenMin(eng, p.z, zlo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.z, zhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	zlo, zhi = getMin(eng, p.z).AsFloat(), getMax(eng, p.z).AsFloat()
	xlo2, xhi2 := productRange(zlo, zhi, ylo, yhi)
	if intDiv {
		// x = y*z + r with |r| <= |y|-1 under truncating division.
		r := math.Max(math.Abs(ylo), math.Abs(yhi)) - 1
		xlo2, xhi2 = xlo2-r, xhi2+r
	}
	if c, err := tightenMin(eng, p.x, xlo2); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.x, xhi2); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// modProp enforces x mod y = z for integer variables; fails on a zero
// divisor.
type modProp struct{ x, y, z VarID }

func NewMod(x, y, z VarID) Propagator { return &modProp{x, y, z} }

func (p *modProp) Vars() []VarID { return []VarID{p.x, p.y, p.z} }
func (p *modProp) Name() string  { return "mod" }

func (p *modProp) Propagate(eng *Engine) (PropResult, error) {
	if eng.Vars.Kind(p.y) == KindInt {
		if c, err := eng.RemoveInt(p.y, 0); err != nil {
			return Failure, err
		} else if c {
			return Changed, nil
		}
	}
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	if ylo <= 0 && yhi >= 0 {
		return NoChange, nil
	}
	// z is bounded by the divisor's magnitude: |z| < |y|.
	bound := math.Max(math.Abs(ylo), math.Abs(yhi))
	changed := false
	if c, err := tightenMax(eng, p.z, bound-1); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMin(eng, p.z, -(bound - 1)); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	// If x is non-negative, so is z (truncating Euclidean-style remainder
	// for our non-negative modeling convention).
	if getMin(eng, p.x).AsFloat() >= 0 {
		if c, err := tightenMin(eng, p.z, 0); err != nil {
			return Failure, err
		} else {
			changed = changed || c
		}
	}
	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
