package fdcore

import (
	"math"
	"time"
)

// Model is the external entry point: create variables, post
// constraints from the fixed catalog, then call Solve/Minimize/Maximize.
// It owns one Engine and tracks constraint count for Stats; there is no
// macro or expression-rewriting layer here, callers construct the model by
// calling these methods directly.
type Model struct {
	eng *Engine
	cfg Config

	// floatLinear collects every constraint posted through AddLinearEq or
	// AddLinearLe whose variables are all float-kind, for the LP integration layer to
	// extract a standard-form LP from. int-or-mixed linear constraints are
	// never LP candidates.
	floatLinear        []*linearProp
	lpWarm             *lpWarmState
	lpBoundsRegistered bool
}

// NewModel creates an empty model with the given configuration.
func NewModel(cfg Config) *Model {
	return &Model{eng: NewEngine(), cfg: cfg}
}

// NewIntVar declares an integer variable with domain [lo, hi].
func (m *Model) NewIntVar(name string, lo, hi int) (VarID, error) {
	if lo > hi {
		return -1, errInvalidDomain("variable %q: min %d > max %d", name, lo, hi)
	}
	id := m.eng.Vars.newInt(name, lo, hi)
	return id, nil
}

// NewFloatVar declares a float variable with domain [lo, hi] quantized to
// precisionDigits decimal digits (step = 10^-precision).
func (m *Model) NewFloatVar(name string, lo, hi float64, precisionDigits int) (VarID, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return -1, errInvalidDomain("variable %q: non-finite bound", name)
	}
	if lo > hi {
		return -1, errInvalidDomain("variable %q: min %g > max %g", name, lo, hi)
	}
	id := m.eng.Vars.newFloat(name, lo, hi, Step(precisionDigits))
	return id, nil
}

// globalIntDomainCap and globalFloatDomainCap bound the inferred range for
// a variable declared unbounded, so the "expand by factor x width" rule
// never produces an unusably wide domain when no bounded context exists
// yet to measure.
const (
	globalIntDomainCap   = 1_000_000
	globalFloatDomainCap = 1e9
	defaultUnboundedBase = 1 // width assumed when the model has no bounded variable yet
)

// widestIntWidth returns the width (hi-lo) of the widest currently
// declared bounded integer variable, or defaultUnboundedBase if none exist.
func (m *Model) widestIntWidth() int {
	widest := 0
	for i := 0; i < m.eng.Vars.Len(); i++ {
		id := VarID(i)
		if m.eng.Vars.Kind(id) != KindInt {
			continue
		}
		d := m.eng.Vars.IntDomain(id)
		w := int(d.Max().I - d.Min().I)
		if w > widest {
			widest = w
		}
	}
	if widest == 0 {
		return defaultUnboundedBase
	}
	return widest
}

func (m *Model) widestFloatWidth() float64 {
	widest := 0.0
	for i := 0; i < m.eng.Vars.Len(); i++ {
		id := VarID(i)
		if m.eng.Vars.Kind(id) != KindFloat {
			continue
		}
		d := m.eng.Vars.FloatDomain(id)
		w := d.Max().F - d.Min().F
		if w > widest {
			widest = w
		}
	}
	if widest == 0 {
		return defaultUnboundedBase
	}
	return widest
}

// NewUnboundedIntVar declares an integer variable with no caller-supplied
// bounds: its range is inferred by expanding the widest currently-declared
// bounded integer variable's width by UnboundedInferenceFactor, centered at
// zero and clamped to globalIntDomainCap.
func (m *Model) NewUnboundedIntVar(name string) (VarID, error) {
	half := m.widestIntWidth() * int(m.cfg.UnboundedInferenceFactor) / 2
	if half > globalIntDomainCap {
		half = globalIntDomainCap
	}
	if half < 1 {
		half = 1
	}
	return m.NewIntVar(name, -half, half)
}

// NewUnboundedFloatVar is NewUnboundedIntVar's float counterpart.
func (m *Model) NewUnboundedFloatVar(name string, precisionDigits int) (VarID, error) {
	half := m.widestFloatWidth() * float64(m.cfg.UnboundedInferenceFactor) / 2
	if half > globalFloatDomainCap {
		half = globalFloatDomainCap
	}
	return m.NewFloatVar(name, -half, half, precisionDigits)
}

func (m *Model) checkVars(ids ...VarID) error {
	for _, id := range ids {
		if !m.eng.Vars.Valid(id) {
			return errInvalidVariable(id)
		}
	}
	return nil
}

func (m *Model) post(p Propagator, vars ...VarID) error {
	if err := m.checkVars(vars...); err != nil {
		return err
	}
	m.eng.Register(p)
	m.eng.Stats.Constraints++
	return nil
}

// --- comparison constraints ---

func (m *Model) AddEq(x, y VarID) error { return m.post(NewCompare(relEq, x, y), x, y) }
func (m *Model) AddNe(x, y VarID) error { return m.post(NewCompare(relNe, x, y), x, y) }
func (m *Model) AddLt(x, y VarID) error { return m.post(NewCompare(relLt, x, y), x, y) }
func (m *Model) AddLe(x, y VarID) error { return m.post(NewCompare(relLe, x, y), x, y) }
func (m *Model) AddGt(x, y VarID) error { return m.post(NewCompare(relGt, x, y), x, y) }
func (m *Model) AddGe(x, y VarID) error { return m.post(NewCompare(relGe, x, y), x, y) }

// --- arithmetic constraints ---

func (m *Model) AddAdd(x, y, z VarID) error { return m.post(NewAdd(x, y, z), x, y, z) }
func (m *Model) AddSub(x, y, z VarID) error { return m.post(NewSub(x, y, z), x, y, z) }
func (m *Model) AddMul(x, y, z VarID) error { return m.post(NewMul(x, y, z), x, y, z) }
func (m *Model) AddDiv(x, y, z VarID) error { return m.post(NewDiv(x, y, z), x, y, z) }
func (m *Model) AddMod(x, y, z VarID) error { return m.post(NewMod(x, y, z), x, y, z) }
func (m *Model) AddAbs(x, y VarID) error { return m.post(NewAbs(x, y), x, y) }

// --- linear constraints; the same propagator serves both the
// int and float-linear forms, distinguished only by the variables' Kind ---

func (m *Model) AddLinearEq(vars []VarID, coeffs []float64, rhs float64) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	p := &linearProp{vars: vars, coeffs: coeffs, rhs: rhs, rel: linEq}
	m.trackFloatLinear(p)
	return m.post(p, vars...)
}

func (m *Model) AddLinearLe(vars []VarID, coeffs []float64, rhs float64) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	p := &linearProp{vars: vars, coeffs: coeffs, rhs: rhs, rel: linLe}
	m.trackFloatLinear(p)
	return m.post(p, vars...)
}

// trackFloatLinear records p for the LP integration layer if every
// variable it touches is float-kind.
func (m *Model) trackFloatLinear(p *linearProp) {
	for _, v := range p.vars {
		if !m.eng.Vars.Valid(v) || m.eng.Vars.Kind(v) != KindFloat {
			return
		}
	}
	m.floatLinear = append(m.floatLinear, p)
}

func (m *Model) AddLinearNe(vars []VarID, coeffs []float64, rhs float64) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	return m.post(NewLinearNe(vars, coeffs, rhs), vars...)
}

func (m *Model) checkLinear(vars []VarID, coeffs []float64) error {
	if len(vars) != len(coeffs) {
		return errInvalidConstraint("linear constraint: %d variables but %d coefficients", len(vars), len(coeffs))
	}
	if len(vars) == 0 {
		return errInvalidConstraint("linear constraint: empty variable list")
	}
	return nil
}

// --- all_different ---

func (m *Model) AddAllDifferent(vars []VarID) error {
	if len(vars) == 0 {
		return errInvalidConstraint("all_different: empty variable list")
	}
	return m.post(NewAllDifferent(vars), vars...)
}

// --- element ---

// AddElement posts array[index] = result with 0-based indexing. array's
// entries are propagation variables, not fixed constants; a caller wanting
// a constant table can post one fixed-domain variable per entry.
func (m *Model) AddElement(index VarID, array []VarID, result VarID) error {
	if len(array) == 0 {
		return errInvalidConstraint("element: empty array")
	}
	vars := append(append([]VarID{}, array...), index, result)
	return m.post(NewElement(index, array, result), vars...)
}

// --- array min/max ---

func (m *Model) AddArrayMin(vars []VarID, result VarID) error {
	if len(vars) == 0 {
		return errInvalidConstraint("array_min: empty variable list")
	}
	return m.post(NewArrayMin(vars, result), append(append([]VarID{}, vars...), result)...)
}

func (m *Model) AddArrayMax(vars []VarID, result VarID) error {
	if len(vars) == 0 {
		return errInvalidConstraint("array_max: empty variable list")
	}
	return m.post(NewArrayMax(vars, result), append(append([]VarID{}, vars...), result)...)
}

// --- reified constraints ---

func (m *Model) AddReifiedEq(x, y, b VarID) error { return m.post(NewReifiedCompare(relEq, x, y, b), x, y, b) }
func (m *Model) AddReifiedNe(x, y, b VarID) error { return m.post(NewReifiedCompare(relNe, x, y, b), x, y, b) }
func (m *Model) AddReifiedLt(x, y, b VarID) error { return m.post(NewReifiedCompare(relLt, x, y, b), x, y, b) }
func (m *Model) AddReifiedLe(x, y, b VarID) error { return m.post(NewReifiedCompare(relLe, x, y, b), x, y, b) }
func (m *Model) AddReifiedGt(x, y, b VarID) error { return m.post(NewReifiedCompare(relGt, x, y, b), x, y, b) }
func (m *Model) AddReifiedGe(x, y, b VarID) error { return m.post(NewReifiedCompare(relGe, x, y, b), x, y, b) }

func (m *Model) AddReifiedLinearEq(vars []VarID, coeffs []float64, rhs float64, b VarID) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	return m.post(NewReifiedLinear(linEq, vars, coeffs, rhs, b), append(append([]VarID{}, vars...), b)...)
}

func (m *Model) AddReifiedLinearLe(vars []VarID, coeffs []float64, rhs float64, b VarID) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	return m.post(NewReifiedLinear(linLe, vars, coeffs, rhs, b), append(append([]VarID{}, vars...), b)...)
}

func (m *Model) AddReifiedLinearNe(vars []VarID, coeffs []float64, rhs float64, b VarID) error {
	if err := m.checkLinear(vars, coeffs); err != nil {
		return err
	}
	return m.post(NewReifiedLinear(linNe, vars, coeffs, rhs, b), append(append([]VarID{}, vars...), b)...)
}

// --- boolean clauses ---

func (m *Model) AddClause(pos, neg []VarID) error {
	if len(pos)+len(neg) == 0 {
		return errInvalidConstraint("clause: empty literal list")
	}
	return m.post(NewClause(pos, neg), append(append([]VarID{}, pos...), neg...)...)
}

// --- type conversion ---

func (m *Model) AddIntToFloat(x, y VarID) error      { return m.post(NewIntToFloat(x, y), x, y) }
func (m *Model) AddFloatToIntFloor(x, y VarID) error { return m.post(NewFloatToIntFloor(x, y), x, y) }
func (m *Model) AddFloatToIntCeil(x, y VarID) error  { return m.post(NewFloatToIntCeil(x, y), x, y) }
func (m *Model) AddFloatToIntRound(x, y VarID) error { return m.post(NewFloatToIntRound(x, y), x, y) }

// propagateRoot runs propagation to a fixed point before any branching;
// failure here surfaces as ErrConflictingConstraints rather than the
// ErrNoSolution an exhausted search produces, while engine invariant
// violations pass through unchanged. A nil return means the root is
// consistent and search may proceed.
func (m *Model) propagateRoot() error {
	res, err := m.eng.RunToFixedPoint()
	if err != nil {
		return err
	}
	if res == PropFailure {
		m.cfg.logf("root propagation failed: conflicting constraints")
		return newError(ErrConflictingConstraints, "propagation at the root detected immediate infeasibility")
	}
	return nil
}

// Solve runs the search engine to find a single satisfying assignment.
// Returns ErrNoSolution if the search exhausts without
// finding one, or ErrConflictingConstraints if root propagation alone
// already proves infeasibility.
func (m *Model) Solve() (*Solution, Stats, error) {
	m.maybeRegisterLP()
	m.eng.Stats.Variables = m.eng.Vars.Len()
	state := newSearchState(m.eng, &m.cfg)
	if err := m.propagateRoot(); err != nil {
		m.eng.Stats.Elapsed = time.Since(state.start)
		return nil, m.eng.Stats, err
	}
	found, err := runSearch(m.eng, &m.cfg, state)
	m.eng.Stats.Elapsed = time.Since(state.start)
	if err != nil {
		return nil, m.eng.Stats, err
	}
	if !found {
		return nil, m.eng.Stats, newError(ErrNoSolution, "search exhausted without finding a feasible assignment")
	}
	return newSolution(m.eng), m.eng.Stats, nil
}

// Minimize runs branch-and-bound minimization of obj: each
// satisfying assignment tightens obj's upper bound before the search
// resumes from the pre-search root, so every subsequent solution found is
// strictly better. Returns the best solution found; if the search is
// interrupted by a resource limit after at least one solution was found,
// that incumbent is returned with no error.
func (m *Model) Minimize(obj VarID) (*Solution, Stats, error) {
	return m.optimize(obj, true)
}

// Maximize is symmetric to Minimize, tightening obj's lower bound.
func (m *Model) Maximize(obj VarID) (*Solution, Stats, error) {
	return m.optimize(obj, false)
}

func (m *Model) optimize(obj VarID, minimize bool) (*Solution, Stats, error) {
	if err := m.checkVars(obj); err != nil {
		return nil, m.eng.Stats, err
	}
	m.maybeRegisterLP()
	m.eng.Stats.Variables = m.eng.Vars.Len()

	root := m.eng.Trail.Checkpoint()
	state := newSearchState(m.eng, &m.cfg)
	state.preferUpper = !minimize

	if err := m.propagateRoot(); err != nil {
		m.eng.Stats.Elapsed = time.Since(state.start)
		return nil, m.eng.Stats, err
	}

	var best *Solution
	haveBest := false

	for {
		found, err := runSearch(m.eng, &m.cfg, state)
		if err != nil {
			m.eng.Stats.Elapsed = time.Since(state.start)
			if haveBest {
				return best, m.eng.Stats, nil
			}
			return nil, m.eng.Stats, err
		}
		if !found {
			break
		}

		best = newSolution(m.eng)
		haveBest = true
		bestVal := m.eng.Vars.Min(obj).AsFloat()
		m.cfg.logf("new incumbent: obj=%g nodes=%d", bestVal, m.eng.Stats.Nodes)

		m.eng.Trail.Restore(root)
		// Restoring to the pre-root checkpoint also undid root propagation;
		// everything must run again against the tightened objective.
		m.eng.EnqueueAll()

		var tightenErr error
		isInt := m.eng.Vars.Kind(obj) == KindInt
		switch {
		case minimize && isInt:
			_, tightenErr = m.eng.TightenIntMax(obj, int(bestVal)-1)
		case minimize && !isInt:
			_, tightenErr = m.eng.TightenFloatMaxStrict(obj, bestVal)
		case !minimize && isInt:
			_, tightenErr = m.eng.TightenIntMin(obj, int(bestVal)+1)
		default:
			_, tightenErr = m.eng.TightenFloatMinStrict(obj, bestVal)
		}
		if tightenErr != nil {
			break // no strictly-better value remains; best is optimal
		}
	}

	m.eng.Stats.Elapsed = time.Since(state.start)
	if !haveBest {
		return nil, m.eng.Stats, newError(ErrNoSolution, "search exhausted without finding a feasible assignment")
	}
	return best, m.eng.Stats, nil
}

// Stats returns the running statistics for this model's engine.
func (m *Model) Stats() Stats { return m.eng.Stats }
