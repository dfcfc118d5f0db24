package fdcore

// Solution is a dense, VarID-indexed snapshot of concrete values taken once
// every variable is fixed.
type Solution struct {
	values []Value
	names  []string
}

func newSolution(eng *Engine) *Solution {
	s := &Solution{
		values: make([]Value, eng.Vars.Len()),
		names:  make([]string, eng.Vars.Len()),
	}
	for i := 0; i < eng.Vars.Len(); i++ {
		id := VarID(i)
		s.values[i] = eng.Vars.Min(id)
		s.names[i] = eng.Vars.Name(id)
	}
	return s
}

// GetInt returns the integer value assigned to id. Panics if id is out of
// range or the variable is a float variable; callers know the kind of the
// variables they created.
func (s *Solution) GetInt(id VarID) int64 {
	v := s.values[id]
	if v.Kind != KindInt {
		panic("fdcore: GetInt called on a float variable")
	}
	return v.I
}

// GetFloat returns the float value assigned to id.
func (s *Solution) GetFloat(id VarID) float64 {
	v := s.values[id]
	return v.AsFloat()
}

// Value returns the raw tagged value assigned to id.
func (s *Solution) Value(id VarID) Value { return s.values[id] }

// Len returns the number of variables in the solution.
func (s *Solution) Len() int { return len(s.values) }

// Name returns the declared name of variable id, or "" if unnamed.
func (s *Solution) Name(id VarID) string { return s.names[id] }
