package placement

import (
	"errors"
	"fmt"
	"testing"

	"svw.info/battleship/internal/domain"
)

func mustNew(t *testing.T, n int) *Enumerator {
	t.Helper()
	e, err := New(n)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", n, err)
	}
	return e
}

func TestNewRejectsSmallBoards(t *testing.T) {
	if _, err := New(0); !errors.Is(err, domain.ErrBoardSize) {
		t.Fatalf("New(0) err = %v, want ErrBoardSize", err)
	}
	if _, err := New(4); !errors.Is(err, domain.ErrBoardTooSmall) {
		t.Fatalf("New(4) err = %v, want ErrBoardTooSmall", err)
	}
}

func TestCounts(t *testing.T) {
	e := mustNew(t, 5)
	cases := []struct {
		ship    domain.ShipType
		reduced int
		total   int
	}{
		{domain.Patrol, 4, 40},
		{domain.Destroyer, 3, 30},
		{domain.Submarine, 3, 30},
		{domain.Battleship, 2, 20},
		{domain.Carrier, 1, 10},
	}
	for _, tc := range cases {
		if got := e.ReducedCount(tc.ship); got != tc.reduced {
			t.Fatalf("ReducedCount(%v) = %d, want %d", tc.ship, got, tc.reduced)
		}
		if got := e.NumPlacements(tc.ship); got != tc.total {
			t.Fatalf("NumPlacements(%v) = %d, want %d", tc.ship, got, tc.total)
		}
	}
}

func TestOccupiedCellsBijection(t *testing.T) {
	for _, n := range []int{5, 7, 10} {
		e := mustNew(t, n)
		for _, ship := range domain.AllShipTypes() {
			t.Run(fmt.Sprintf("n%d/%v", n, ship), func(t *testing.T) {
				seen := make(map[string]int)
				for i := 0; i < e.NumPlacements(ship); i++ {
					cells := e.OccupiedCells(ship, i)
					if len(cells) != ship.Size() {
						t.Fatalf("index %d: %d cells, want %d", i, len(cells), ship.Size())
					}
					for _, c := range cells {
						if !c.InBounds(n) {
							t.Fatalf("index %d: cell %d out of bounds", i, c)
						}
					}
					key := fmt.Sprint(cells)
					if prev, dup := seen[key]; dup {
						t.Fatalf("indices %d and %d both cover %v", prev, i, cells)
					}
					seen[key] = i

					back, ok := e.IndexOf(ship, cells)
					if !ok || back != i {
						t.Fatalf("IndexOf(%v) = %d,%v want %d", cells, back, ok, i)
					}
				}
			})
		}
	}
}

func TestHalfSplit(t *testing.T) {
	n := 6
	e := mustNew(t, n)
	for _, ship := range domain.AllShipTypes() {
		half := e.NumPlacements(ship) / 2
		for i := 0; i < e.NumPlacements(ship); i++ {
			cells := e.OccupiedCells(ship, i)
			r0, c0 := cells[0].Parts(n)
			for _, c := range cells[1:] {
				r, col := c.Parts(n)
				if i < half && r != r0 {
					t.Fatalf("%v index %d (horizontal) spans rows %d and %d", ship, i, r0, r)
				}
				if i >= half && col != c0 {
					t.Fatalf("%v index %d (vertical) spans cols %d and %d", ship, i, c0, col)
				}
			}
			if e.IsVertical(ship, i) != (i >= half) {
				t.Fatalf("%v index %d: IsVertical = %v", ship, i, e.IsVertical(ship, i))
			}
		}
	}
}

func TestOccupiedCellsDecoding(t *testing.T) {
	e := mustNew(t, 10)
	cases := []struct {
		ship  domain.ShipType
		index int
		want  []domain.BoardPos
	}{
		{domain.Patrol, 0, []domain.BoardPos{0, 1}},
		{domain.Patrol, 9, []domain.BoardPos{10, 11}},
		{domain.Patrol, 89, []domain.BoardPos{98, 99}},
		{domain.Patrol, 90, []domain.BoardPos{0, 10}},
		{domain.Carrier, 71, []domain.BoardPos{11, 21, 31, 41, 51}},
		{domain.Carrier, 119, []domain.BoardPos{59, 69, 79, 89, 99}},
	}
	for _, tc := range cases {
		got := e.OccupiedCells(tc.ship, tc.index)
		if fmt.Sprint(got) != fmt.Sprint(tc.want) {
			t.Fatalf("OccupiedCells(%v, %d) = %v, want %v", tc.ship, tc.index, got, tc.want)
		}
	}
}

func TestCoversMatchesOccupiedCells(t *testing.T) {
	e := mustNew(t, 7)
	for _, ship := range domain.AllShipTypes() {
		for i := 0; i < e.NumPlacements(ship); i++ {
			in := make(map[domain.BoardPos]bool)
			for _, c := range e.OccupiedCells(ship, i) {
				in[c] = true
			}
			for p := domain.BoardPos(0); int(p) < e.Cells(); p++ {
				if e.Covers(ship, i, p) != in[p] {
					t.Fatalf("Covers(%v, %d, %d) = %v", ship, i, p, !in[p])
				}
			}
		}
	}
}

func TestIndexOfRejectsInvalidShapes(t *testing.T) {
	e := mustNew(t, 5)
	bad := [][]domain.BoardPos{
		{3, 4, 5},    // wraps to the next row
		{0, 6, 12},   // diagonal
		{0, 1},       // wrong length for a destroyer
		{20, 25, 30}, // leaves the board
	}
	for _, cells := range bad {
		if idx, ok := e.IndexOf(domain.Destroyer, cells); ok {
			t.Fatalf("IndexOf(%v) = %d, want rejection", cells, idx)
		}
	}
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	e := mustNew(t, 5)
	for _, idx := range []int{-1, 40} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, domain.ErrPlacementRange) {
					t.Fatalf("index %d: recovered %v, want ErrPlacementRange", idx, r)
				}
			}()
			e.OccupiedCells(domain.Patrol, idx)
		}()
	}
}
