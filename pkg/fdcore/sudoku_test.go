package fdcore

import "testing"

// sudokuModel builds the standard 9x9 model: one [1,9] variable per cell
// (clues are declared as singleton domains), and a bitset-backed
// all_different over every row, column and 3x3 box.
func sudokuModel(t *testing.T, clues *[81]int) (*Model, *[81]VarID) {
	t.Helper()
	m := NewModel(DefaultConfig())
	var cells [81]VarID
	for i := 0; i < 81; i++ {
		lo, hi := 1, 9
		if clues[i] != 0 {
			lo, hi = clues[i], clues[i]
		}
		v, err := m.NewIntVar("", lo, hi)
		if err != nil {
			t.Fatalf("NewIntVar cell %d: %v", i, err)
		}
		cells[i] = v
	}
	for r := 0; r < 9; r++ {
		row := make([]VarID, 9)
		col := make([]VarID, 9)
		for c := 0; c < 9; c++ {
			row[c] = cells[r*9+c]
			col[c] = cells[c*9+r]
		}
		if err := m.AddAllDifferent(row); err != nil {
			t.Fatalf("AddAllDifferent row %d: %v", r, err)
		}
		if err := m.AddAllDifferent(col); err != nil {
			t.Fatalf("AddAllDifferent col %d: %v", r, err)
		}
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			box := make([]VarID, 0, 9)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					box = append(box, cells[(br*3+r)*9+(bc*3+c)])
				}
			}
			if err := m.AddAllDifferent(box); err != nil {
				t.Fatalf("AddAllDifferent box %d,%d: %v", br, bc, err)
			}
		}
	}
	return m, &cells
}

func checkSudokuSolution(t *testing.T, sol *Solution, cells *[81]VarID, clues *[81]int) {
	t.Helper()
	var grid [81]int
	for i := range cells {
		grid[i] = int(sol.GetInt(cells[i]))
		if grid[i] < 1 || grid[i] > 9 {
			t.Fatalf("cell %d = %d out of range", i, grid[i])
		}
		if clues[i] != 0 && grid[i] != clues[i] {
			t.Fatalf("cell %d = %d overwrote clue %d", i, grid[i], clues[i])
		}
	}
	unit := func(kind string, n int, idx [9]int) {
		var seen [10]bool
		for _, i := range idx {
			if seen[grid[i]] {
				t.Fatalf("%s %d repeats value %d", kind, n, grid[i])
			}
			seen[grid[i]] = true
		}
	}
	for r := 0; r < 9; r++ {
		var row, col [9]int
		for c := 0; c < 9; c++ {
			row[c] = r*9 + c
			col[c] = c*9 + r
		}
		unit("row", r, row)
		unit("column", r, col)
	}
	for b := 0; b < 9; b++ {
		var box [9]int
		k := 0
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				box[k] = ((b/3)*3+r)*9 + (b%3)*3 + c
				k++
			}
		}
		unit("box", b, box)
	}
}

// solvedBase is a complete valid grid used to derive the easy puzzle.
var solvedBase = [81]int{
	1, 2, 3, 4, 5, 6, 7, 8, 9,
	4, 5, 6, 7, 8, 9, 1, 2, 3,
	7, 8, 9, 1, 2, 3, 4, 5, 6,
	2, 3, 4, 5, 6, 7, 8, 9, 1,
	5, 6, 7, 8, 9, 1, 2, 3, 4,
	8, 9, 1, 2, 3, 4, 5, 6, 7,
	3, 4, 5, 6, 7, 8, 9, 1, 2,
	6, 7, 8, 9, 1, 2, 3, 4, 5,
	9, 1, 2, 3, 4, 5, 6, 7, 8,
}

// TestSudokuEasyPropagationOnly blanks nine cells of a solved grid chosen so
// no two share a row, column or box; each blank is then the only open cell
// in its row, so assigned-value removal alone completes the grid and the
// search never branches.
func TestSudokuEasyPropagationOnly(t *testing.T) {
	clues := solvedBase
	blanked := [9][2]int{
		{0, 0}, {1, 3}, {2, 6}, {3, 1}, {4, 4}, {5, 7}, {6, 2}, {7, 5}, {8, 8},
	}
	for _, rc := range blanked {
		clues[rc[0]*9+rc[1]] = 0
	}

	m, cells := sudokuModel(t, &clues)
	sol, stats, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if stats.Nodes != 0 {
		t.Fatalf("expected propagation alone to finish the grid, searched %d nodes", stats.Nodes)
	}
	checkSudokuSolution(t, sol, cells, &clues)
	for i, v := range solvedBase {
		if int(sol.GetInt(cells[i])) != v {
			t.Fatalf("cell %d = %d, want %d from the unique completion", i, sol.GetInt(cells[i]), v)
		}
	}
}

// TestSudokuHardRequiresSearch solves the "platinum blonde" puzzle, which
// propagation alone cannot finish; the search must branch and still return
// a grid satisfying every row/column/box constraint.
func TestSudokuHardRequiresSearch(t *testing.T) {
	clues := [81]int{
		0, 0, 0, 0, 0, 0, 0, 1, 2,
		0, 0, 0, 0, 0, 0, 0, 0, 3,
		0, 0, 2, 3, 0, 0, 4, 0, 0,
		0, 0, 1, 8, 0, 0, 0, 0, 5,
		0, 6, 0, 0, 7, 0, 8, 0, 0,
		0, 0, 0, 0, 0, 9, 0, 0, 0,
		0, 0, 8, 5, 0, 0, 0, 0, 0,
		9, 0, 0, 0, 4, 0, 5, 0, 0,
		4, 7, 0, 0, 0, 6, 0, 0, 0,
	}

	m, cells := sudokuModel(t, &clues)
	sol, stats, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if stats.Nodes == 0 {
		t.Fatal("expected this puzzle to require branching")
	}
	checkSudokuSolution(t, sol, cells, &clues)
}
