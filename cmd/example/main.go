// Package main demonstrates basic fdcore usage patterns.
package main

import (
	"fmt"

	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func main() {
	fmt.Println("=== fdcore Examples ===")
	fmt.Println()

	basicSatisfaction()
	linearArithmetic()
	allDifferent()
	floatBounds()
}

// basicSatisfaction shows the smallest possible model: one integer
// variable bounded by a comparison against a fixed constant.
func basicSatisfaction() {
	fmt.Println("1. Basic Satisfaction:")

	cfg := fdcore.DefaultConfig()
	m := fdcore.NewModel(cfg)
	x, _ := m.NewIntVar("x", 0, 10)
	_ = m.AddLe(x, mustConst(m, 5))

	sol, stats, err := m.Solve()
	if err != nil {
		fmt.Printf("   solve failed: %v\n", err)
		return
	}
	fmt.Printf("   x = %d (nodes=%d, propagations=%d)\n", sol.GetInt(x), stats.Nodes, stats.Propagations)
	fmt.Println()
}

// linearArithmetic reproduces the small linear system of the testable
// scenarios: x + 2y + 3z = 15, x <= y, y <= z, over [0,10]^3.
func linearArithmetic() {
	fmt.Println("2. Linear System:")

	cfg := fdcore.DefaultConfig()
	m := fdcore.NewModel(cfg)
	x, _ := m.NewIntVar("x", 0, 10)
	y, _ := m.NewIntVar("y", 0, 10)
	z, _ := m.NewIntVar("z", 0, 10)

	_ = m.AddLinearEq([]fdcore.VarID{x, y, z}, []float64{1, 2, 3}, 15)
	_ = m.AddLe(x, y)
	_ = m.AddLe(y, z)

	sol, stats, err := m.Solve()
	if err != nil {
		fmt.Printf("   solve failed: %v\n", err)
		return
	}
	fmt.Printf("   x=%d y=%d z=%d (nodes=%d)\n", sol.GetInt(x), sol.GetInt(y), sol.GetInt(z), stats.Nodes)
	fmt.Println()
}

// allDifferent shows the all_different propagator on a small permutation.
func allDifferent() {
	fmt.Println("3. All-Different:")

	cfg := fdcore.DefaultConfig()
	m := fdcore.NewModel(cfg)
	vars := make([]fdcore.VarID, 4)
	for i := range vars {
		vars[i], _ = m.NewIntVar(fmt.Sprintf("v%d", i), 0, 3)
	}
	_ = m.AddAllDifferent(vars)

	sol, stats, err := m.Solve()
	if err != nil {
		fmt.Printf("   solve failed: %v\n", err)
		return
	}
	vals := make([]int64, len(vars))
	for i, v := range vars {
		vals[i] = sol.GetInt(v)
	}
	fmt.Printf("   permutation=%v (nodes=%d)\n", vals, stats.Nodes)
	fmt.Println()
}

// floatBounds demonstrates the ULP-tolerant float domain and quantization.
func floatBounds() {
	fmt.Println("4. Float Bounds:")

	cfg := fdcore.DefaultConfig()
	m := fdcore.NewModel(cfg)
	x, _ := m.NewFloatVar("x", 1.0, 10.0, 6)
	_ = m.AddLt(x, mustFloatConst(m, 5.5))

	sol, _, err := m.Maximize(x)
	if err != nil {
		fmt.Printf("   solve failed: %v\n", err)
		return
	}
	fmt.Printf("   x = %g (< 5.5)\n", sol.GetFloat(x))
	fmt.Println()
}

// mustConst creates an integer variable pinned to a single value, used to
// express a constant operand in a binary comparison (the catalog has no
// separate "constant" value type; a fixed singleton domain serves the same
// purpose).
func mustConst(m *fdcore.Model, v int) fdcore.VarID {
	id, err := m.NewIntVar("", v, v)
	if err != nil {
		panic(err)
	}
	return id
}

func mustFloatConst(m *fdcore.Model, v float64) fdcore.VarID {
	id, err := m.NewFloatVar("", v, v, 6)
	if err != nil {
		panic(err)
	}
	return id
}
