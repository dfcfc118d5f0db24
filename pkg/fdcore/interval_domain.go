package fdcore

import "fmt"

// FloatIntervalDomain is the continuous-variable domain: a closed,
// quantized interval [lo, hi]. There is no hole representation; "removal"
// of interior values is achieved only by search-time bisection, never by
// this domain directly.
type FloatIntervalDomain struct {
	lo, hi float64
	step   float64
	trail  *Trail
}

// NewFloatIntervalDomain creates a domain covering [lo, hi], quantized to
// step (10^-precision for a variable with decimal precision digits).
func NewFloatIntervalDomain(lo, hi, step float64) *FloatIntervalDomain {
	return &FloatIntervalDomain{
		lo:   QuantizeBound(lo, step),
		hi:   QuantizeBound(hi, step),
		step: step,
	}
}

func (d *FloatIntervalDomain) Attach(t *Trail) { d.trail = t }

func (d *FloatIntervalDomain) Kind() Kind { return KindFloat }

func (d *FloatIntervalDomain) tol() float64 { return Tolerance(d.step) }

func (d *FloatIntervalDomain) IsEmpty() bool { return d.lo > d.hi+d.tol() }

func (d *FloatIntervalDomain) IsFixed() bool { return d.hi-d.lo < d.step }

func (d *FloatIntervalDomain) Min() Value { return FloatValue(d.lo) }
func (d *FloatIntervalDomain) Max() Value { return FloatValue(d.hi) }

func (d *FloatIntervalDomain) Contains(v Value) bool {
	f := v.AsFloat()
	tol := d.tol()
	return f >= d.lo-tol && f <= d.hi+tol
}

func (d *FloatIntervalDomain) setLo(v float64) {
	old := d.lo
	if old == v {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.lo = old })
	}
	d.lo = v
}

func (d *FloatIntervalDomain) setHi(v float64) {
	old := d.hi
	if old == v {
		return
	}
	if d.trail != nil {
		d.trail.record(func() { d.hi = old })
	}
	d.hi = v
}

// SetMin tightens the lower bound to newLo, quantizing to the grid and
// treating a new bound within tolerance of the current one as a no-op;
// without the no-op rule, repeated propagation of the same logical bound
// narrows forever instead of reaching a fixed point. Returns true if the
// bound actually moved.
func (d *FloatIntervalDomain) SetMin(newLo float64) bool {
	q := QuantizeBound(newLo, d.step)
	if q <= d.lo+d.tol() {
		return false
	}
	d.setLo(q)
	return true
}

// SetMax tightens the upper bound to newHi, symmetric to SetMin.
func (d *FloatIntervalDomain) SetMax(newHi float64) bool {
	q := QuantizeBound(newHi, d.step)
	if q >= d.hi-d.tol() {
		return false
	}
	d.setHi(q)
	return true
}

// SetMinStrict tightens the lower bound to a value strictly greater than
// bound (used by strict comparisons x > y / x >= y+step), advancing by one
// quantization step beyond bound.
func (d *FloatIntervalDomain) SetMinStrict(bound float64) bool {
	return d.SetMin(bound + d.step)
}

// SetMaxStrict tightens the upper bound to a value strictly less than bound.
func (d *FloatIntervalDomain) SetMaxStrict(bound float64) bool {
	return d.SetMax(bound - d.step)
}

func (d *FloatIntervalDomain) Step() float64 { return d.step }

func (d *FloatIntervalDomain) Clone() Domain {
	return &FloatIntervalDomain{lo: d.lo, hi: d.hi, step: d.step}
}

func (d *FloatIntervalDomain) String() string {
	return fmt.Sprintf("[%g, %g]", d.lo, d.hi)
}
