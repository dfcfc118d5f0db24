package fdcore

import "math"

// convertKind distinguishes the four type-conversion constraints.
// Rounding direction is part of the constraint's identity, so each
// gets its own bound-projection rule rather than sharing one generic
// "convert" shape.
type convertKind int

const (
	convIntToFloat convertKind = iota
	convFloatToIntFloor
	convFloatToIntCeil
	convFloatToIntRound
)

// convertProp implements int2float/float2int_floor/float2int_ceil/
// float2int_round. x and y always denote (source, target) in that order
// regardless of direction, matching the constructor names below.
type convertProp struct {
	x, y VarID
	kind convertKind
}

// NewIntToFloat constructs int2float(x, y): y = float(x).
func NewIntToFloat(x, y VarID) Propagator {
	return &convertProp{x: x, y: y, kind: convIntToFloat}
}

// NewFloatToIntFloor constructs float2int_floor(x, y): y = floor(x).
func NewFloatToIntFloor(x, y VarID) Propagator {
	return &convertProp{x: x, y: y, kind: convFloatToIntFloor}
}

// NewFloatToIntCeil constructs float2int_ceil(x, y): y = ceil(x).
func NewFloatToIntCeil(x, y VarID) Propagator {
	return &convertProp{x: x, y: y, kind: convFloatToIntCeil}
}

// NewFloatToIntRound constructs float2int_round(x, y): y = round(x),
// ties-away-from-zero, consistent with RoundStep.
func NewFloatToIntRound(x, y VarID) Propagator {
	return &convertProp{x: x, y: y, kind: convFloatToIntRound}
}

func (p *convertProp) Vars() []VarID { return []VarID{p.x, p.y} }

func (p *convertProp) Name() string {
	switch p.kind {
	case convIntToFloat:
		return "int2float"
	case convFloatToIntFloor:
		return "float2int_floor"
	case convFloatToIntCeil:
		return "float2int_ceil"
	default:
		return "float2int_round"
	}
}

func (p *convertProp) Propagate(eng *Engine) (PropResult, error) {
	switch p.kind {
	case convIntToFloat:
		return p.propagateIntToFloat(eng)
	case convFloatToIntFloor:
		return p.propagateFloatToInt(eng, math.Floor, 0, 1)
	case convFloatToIntCeil:
		return p.propagateFloatToInt(eng, math.Ceil, -1, 0)
	default:
		return p.propagateRound(eng)
	}
}

func (p *convertProp) propagateIntToFloat(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	changed := false
	if c, err := tightenMin(eng, p.y, xlo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.y, xhi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	if c, err := tightenMin(eng, p.x, ylo); err != nil {
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

// propagateFloatToInt handles float2int_floor (roundFn=Floor, loOffset=0,
// hiOffset=1: x in [y, y+1)) and float2int_ceil (roundFn=Ceil, loOffset=-1,
// hiOffset=0: x in (y-1, y]). x is the float source, y the integer target.
func (p *convertProp) propagateFloatToInt(eng *Engine, roundFn func(float64) float64, loOffset, hiOffset float64) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	changed := false

	if c, err := eng.TightenIntMin(p.y, int(roundFn(xlo))); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := eng.TightenIntMax(p.y, int(roundFn(xhi))); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	step := stepOf(eng, p.x)
	newLo := ylo + loOffset
	if loOffset < 0 {
		newLo += step // strict lower bound: x > y-1
	}
	newHi := yhi + hiOffset
	if hiOffset > 0 {
		newHi -= step // strict upper bound: x < y+1
	}
	if c, err := tightenMin(eng, p.x, newLo); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.x, newHi); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}

// propagateRound handles float2int_round: y = round(x), with x in
// [y-0.5, y+0.5]. The x projection admits either tie direction, but y's
// bounds come from math.Round of x's bounds, so a tied x (e.g. exactly
// 0.5 or -0.5) resolves away from zero, as NewFloatToIntRound states.
func (p *convertProp) propagateRound(eng *Engine) (PropResult, error) {
	xlo, xhi := getMin(eng, p.x).AsFloat(), getMax(eng, p.x).AsFloat()
	changed := false

	if c, err := eng.TightenIntMin(p.y, int(math.Round(xlo))); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := eng.TightenIntMax(p.y, int(math.Round(xhi))); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	ylo, yhi := getMin(eng, p.y).AsFloat(), getMax(eng, p.y).AsFloat()
	if c, err := tightenMin(eng, p.x, ylo-0.5); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}
	if c, err := tightenMax(eng, p.x, yhi+0.5); err != nil {
		return Failure, err
	} else {
		changed = changed || c
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
