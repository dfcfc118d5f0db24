package fdcore

// This file provides kind-generic accessors so the comparison, arithmetic
// and linear propagators can be written once and work
// over mixed int/float variable pairs, promoting integers to float for
// mixed comparisons.

func getMin(eng *Engine, v VarID) Value { return eng.Vars.Min(v) }
func getMax(eng *Engine, v VarID) Value { return eng.Vars.Max(v) }

// tightenMin raises v's lower bound to at least lo (a float value, already
// promoted if v is an integer variable it is rounded up to the next
// integer). Returns (changed, err) with err == errDomainEmpty on failure.
func tightenMin(eng *Engine, v VarID, lo float64) (bool, error) {
	switch eng.Vars.Kind(v) {
	case KindInt:
		ilo := ceilInt(lo)
		return eng.TightenIntMin(v, ilo)
	default:
		return eng.TightenFloatMin(v, lo)
	}
}

// tightenMax lowers v's upper bound to at most hi.
func tightenMax(eng *Engine, v VarID, hi float64) (bool, error) {
	switch eng.Vars.Kind(v) {
	case KindInt:
		ihi := floorInt(hi)
		return eng.TightenIntMax(v, ihi)
	default:
		return eng.TightenFloatMax(v, hi)
	}
}

func ceilInt(f float64) int {
	i := int(f)
	if float64(i) < f {
		i++
	}
	return i
}

func floorInt(f float64) int {
	i := int(f)
	if float64(i) > f {
		i--
	}
	return i
}

// relation names the binary comparison lhs OP rhs used by the compare and
// reified-compare propagators.
type relation int

const (
	relEq relation = iota
	relNe
	relLt
	relLe
	relGt
	relGe
)

func (r relation) negate() relation {
	switch r {
	case relEq:
		return relNe
	case relNe:
		return relEq
	case relLt:
		return relGe
	case relLe:
		return relGt
	case relGt:
		return relLe
	case relGe:
		return relLt
	}
	return r
}

// boundsEntail reports whether the bounds [xlo,xhi] REL [ylo,yhi] is
// guaranteed (true), guaranteed false (false, ok=true), or undetermined
// (ok=false).
func boundsEntail(r relation, xlo, xhi, ylo, yhi float64) (holds bool, ok bool) {
	switch r {
	case relLe:
		if xhi <= ylo {
			return true, true
		}
		if xlo > yhi {
			return false, true
		}
	case relLt:
		if xhi < ylo {
			return true, true
		}
		if xlo >= yhi {
			return false, true
		}
	case relGe:
		h, k := boundsEntail(relLe, ylo, yhi, xlo, xhi)
		return h, k
	case relGt:
		h, k := boundsEntail(relLt, ylo, yhi, xlo, xhi)
		return h, k
	case relEq:
		if xlo == xhi && ylo == yhi && xlo == ylo {
			return true, true
		}
		if xhi < ylo || xlo > yhi {
			return false, true
		}
	case relNe:
		if xhi < ylo || xlo > yhi {
			return true, true
		}
		if xlo == xhi && ylo == yhi && xlo == ylo {
			return false, true
		}
	}
	return false, false
}
