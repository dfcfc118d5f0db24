package fdcore

import "testing"

func TestNewUnboundedIntVarUsesDefaultBaseWhenModelEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnboundedInferenceFactor = 10
	m := NewModel(cfg)
	id, err := m.NewUnboundedIntVar("x")
	if err != nil {
		t.Fatalf("NewUnboundedIntVar: %v", err)
	}
	d := m.eng.Vars.IntDomain(id)
	width := int(d.Max().I - d.Min().I)
	if width <= 0 {
		t.Fatalf("unbounded variable has non-positive width %d", width)
	}
}

func TestNewUnboundedIntVarExpandsWidestBoundedContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnboundedInferenceFactor = 100
	m := NewModel(cfg)
	_, err := m.NewIntVar("bounded", 0, 50) // width 50
	if err != nil {
		t.Fatalf("NewIntVar: %v", err)
	}
	id, err := m.NewUnboundedIntVar("u")
	if err != nil {
		t.Fatalf("NewUnboundedIntVar: %v", err)
	}
	d := m.eng.Vars.IntDomain(id)
	width := int(d.Max().I - d.Min().I)
	// factor x width = 100 x 50 = 5000, halved and doubled back gives ~5000.
	if width < 1000 {
		t.Fatalf("width = %d, want an inference-expanded range", width)
	}
}

func TestNewUnboundedIntVarClampsToGlobalCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnboundedInferenceFactor = 1 << 30
	m := NewModel(cfg)
	if _, err := m.NewIntVar("bounded", 0, 1000); err != nil {
		t.Fatalf("NewIntVar: %v", err)
	}
	id, err := m.NewUnboundedIntVar("u")
	if err != nil {
		t.Fatalf("NewUnboundedIntVar: %v", err)
	}
	d := m.eng.Vars.IntDomain(id)
	if d.Max().I > globalIntDomainCap || d.Min().I < -globalIntDomainCap {
		t.Fatalf("bounds [%d,%d] exceed the global domain cap", d.Min().I, d.Max().I)
	}
}

func TestNewUnboundedFloatVarIsUsable(t *testing.T) {
	m := NewModel(DefaultConfig())
	id, err := m.NewUnboundedFloatVar("x", 6)
	if err != nil {
		t.Fatalf("NewUnboundedFloatVar: %v", err)
	}
	d := m.eng.Vars.FloatDomain(id)
	if d.Max().F <= d.Min().F {
		t.Fatalf("unbounded float variable has non-positive width")
	}
}
