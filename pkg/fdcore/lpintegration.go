package fdcore

import (
	"sort"

	"github.com/gitrdm/fdcore/pkg/fdcore/lp"
)

// minFloatLinearForLP is the trigger threshold: only a model with at least
// this many float-linear constraints has enough structure for an LP
// extraction to pay for itself.
const minFloatLinearForLP = 3

// lpWarmState retains the basis index list from the previous successful LP
// solve so the next solve in the same search subtree can attempt a dual
// simplex warm start before falling back to a cold solve.
type lpWarmState struct {
	basis []int
}

// maybeRegisterLP registers the LP bound-tightening propagator once, the
// first time the model has enough float-linear structure and the caller
// has not disabled it. Safe to call
// repeatedly; it is a no-op once registered or while under threshold.
func (m *Model) maybeRegisterLP() {
	if !m.cfg.PreferLPSolver {
		return
	}
	if m.lpBoundsRegistered {
		return
	}
	if len(m.floatLinear) < minFloatLinearForLP {
		return
	}
	varSet := map[VarID]bool{}
	for _, c := range m.floatLinear {
		for _, v := range c.vars {
			varSet[v] = true
		}
	}
	vars := make([]VarID, 0, len(varSet))
	for v := range varSet {
		vars = append(vars, v)
	}
	// Column order must not depend on map iteration order; identical models
	// must propagate identically.
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	m.lpWarm = &lpWarmState{}
	p := &lpBoundsProp{
		vars:        vars,
		constraints: append([]*linearProp(nil), m.floatLinear...),
		cfg:         &m.cfg,
		warm:        m.lpWarm,
	}
	m.eng.Register(p)
	m.lpBoundsRegistered = true
}

// lpBoundsProp is the LP integration layer in propagator form: it builds a standard-form LP from the model's float-linear constraints and
// the float variables' current bounds, decides feasibility (with a warm
// start from the previous solve's basis), and tightens each float
// variable's bounds via per-variable min/max re-solves. LP failure modes
// other than a certified Infeasible (iteration limit, timeout, singular
// basis) degrade to NoChange — the CSP propagators remain the source of
// truth, the LP is only an oracle.
type lpBoundsProp struct {
	vars        []VarID
	constraints []*linearProp
	cfg         *Config
	warm        *lpWarmState
}

func (p *lpBoundsProp) Vars() []VarID { return p.vars }
func (p *lpBoundsProp) Name() string  { return "lp_bounds" }

// buildStandardForm converts the tracked float-linear constraints plus
// each float variable's current [lo, hi] bounds into a standard-form LP
// with one non-negative column per variable and one slack column per row
// (inequalities become equalities via slack: Ax + s = b, s >= 0). Columns
// are shifted so the origin is a domain
// corner: x_i = lo_i + y_i when fromUpper is false, x_i = hi_i - y_i when
// true. The upper-corner orientation exists so that maximizing a model
// variable is expressed as maximizing -y (objective coefficient -1), which
// keeps the all-slack basis dual feasible and lets the dual simplex start
// from it soundly.
//
// objVar selects the column whose model value the objective minimizes
// (fromUpper false) or maximizes (fromUpper true); pass an invalid id for
// a zero objective. Returns the problem, the VarID -> column map, and the
// per-column base (lo_i or hi_i) for mapping LP values back to model
// coordinates.
func (p *lpBoundsProp) buildStandardForm(eng *Engine, objVar VarID, fromUpper bool) (lp.Problem, map[VarID]int, []float64) {
	n := len(p.vars)
	varIdx := make(map[VarID]int, n)
	base := make([]float64, n)
	width := make([]float64, n)
	sign := 1.0
	if fromUpper {
		sign = -1.0
	}
	for i, v := range p.vars {
		varIdx[v] = i
		d := eng.Vars.FloatDomain(v)
		if fromUpper {
			base[i] = d.Max().F
		} else {
			base[i] = d.Min().F
		}
		width[i] = d.Max().F - d.Min().F
	}

	var rows [][]float64
	var rhs []float64
	addRow := func(coeffs []float64, b float64) {
		row := make([]float64, n)
		copy(row, coeffs)
		rows = append(rows, row)
		rhs = append(rhs, b)
	}

	rowFor := func(c *linearProp) ([]float64, float64) {
		row := make([]float64, n)
		adjustedRHS := c.rhs
		for i, v := range c.vars {
			idx := varIdx[v]
			row[idx] += sign * c.coeffs[i]
			adjustedRHS -= c.coeffs[i] * base[idx]
		}
		return row, adjustedRHS
	}

	for _, c := range p.constraints {
		row, b := rowFor(c)
		switch c.rel {
		case linLe:
			addRow(row, b)
		case linEq:
			addRow(row, b)
			neg := make([]float64, n)
			for i, r := range row {
				neg[i] = -r
			}
			addRow(neg, -b)
		}
	}

	// Bound rows: y_i <= hi_i - lo_i (the shift already pins the other side
	// at zero).
	for i := range p.vars {
		row := make([]float64, n)
		row[i] = 1
		addRow(row, width[i])
	}

	m := len(rows)
	total := n + m
	A := make([][]float64, m)
	for i := range A {
		A[i] = make([]float64, total)
		copy(A[i], rows[i])
		A[i][n+i] = 1
	}
	c := make([]float64, total)
	if idx, ok := varIdx[objVar]; ok {
		c[idx] = -1 // maximize -y == drive x toward the chosen corner
	}

	return lp.Problem{A: A, B: rhs, C: c}, varIdx, base
}

// identityBasis returns the all-slack basis (the standard initial basis for
// a system built with one slack per row).
func identityBasis(numVars, numRows int) []int {
	basis := make([]int, numRows)
	for i := range basis {
		basis[i] = numVars + i
	}
	return basis
}

func (p *lpBoundsProp) lpConfig() lp.Config {
	cfg := lp.DefaultConfig()
	cfg.Timeout = p.cfg.Timeout
	return cfg
}

func (p *lpBoundsProp) Propagate(eng *Engine) (PropResult, error) {
	if len(p.vars) == 0 {
		return NoChange, nil
	}
	cfg := p.lpConfig()

	// Feasibility first. With a zero objective every basis is dual
	// feasible, so the dual simplex decides feasibility soundly even when
	// the all-slack start is primal infeasible, and the previous solve's
	// basis is a valid warm start.
	feas, _, _ := p.buildStandardForm(eng, VarID(-1), false)
	basis := identityBasis(len(p.vars), len(feas.B))
	if len(p.warm.basis) == len(feas.B) {
		basis = p.warm.basis
	}
	res := lp.SolveDual(feas, cfg, basis)
	if res.Status != lp.Optimal && len(p.warm.basis) == len(feas.B) {
		p.cfg.logf("lp: dual warm start inconclusive (%v), retrying from the slack basis", res.Status)
		res = lp.SolveDual(feas, cfg, identityBasis(len(p.vars), len(feas.B)))
	}
	switch res.Status {
	case lp.Infeasible:
		if res.Err != nil {
			// A factorization failure (singular basis) certifies nothing.
			p.cfg.logf("lp: feasibility solve failed (%v), skipping bound tightening", res.Err)
			return NoChange, nil
		}
		// A dual-certified infeasible LP relaxation means no float
		// assignment can satisfy the linear subsystem.
		return Failure, errDomainEmpty
	case lp.Optimal:
		p.warm.basis = append(p.warm.basis[:0], res.Basis...)
	default:
		p.cfg.logf("lp: feasibility solve inconclusive (%v), skipping bound tightening", res.Status)
		return NoChange, nil
	}

	// Per-variable tightening: one LP toward each corner. Both orientations
	// carry objective coefficient -1 on the shifted column, so the slack
	// basis stays dual feasible and the dual simplex applies.
	changed := false
	for _, v := range p.vars {
		for _, fromUpper := range []bool{false, true} {
			prob, idx, base := p.buildStandardForm(eng, v, fromUpper)
			r := lp.SolveDual(prob, cfg, identityBasis(len(p.vars), len(prob.B)))
			if r.Status != lp.Optimal {
				continue
			}
			j := idx[v]
			var c bool
			var err error
			if fromUpper {
				c, err = eng.TightenFloatMax(v, base[j]-r.X[j])
			} else {
				c, err = eng.TightenFloatMin(v, base[j]+r.X[j])
			}
			if err != nil {
				return Failure, err
			}
			changed = changed || c
		}
	}

	if changed {
		return Changed, nil
	}
	return NoChange, nil
}
