package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/movelog"
	"svw.info/battleship/internal/overlap"
	"svw.info/battleship/internal/placement"
)

// MaxListed caps how many placements Text prints per ship type.
const MaxListed = 12

// PairStatus says whether two ship types can still be placed side by side.
type PairStatus struct {
	A          domain.ShipType `json:"a"`
	B          domain.ShipType `json:"b"`
	Compatible bool            `json:"compatible"`
}

// Span renders a placement as its first and last cell, e.g. "B2-B6".
func Span(e *placement.Enumerator, t domain.ShipType, index int) string {
	cells := e.OccupiedCells(t, index)
	n := e.BoardSize()
	return movelog.FormatPos(n, cells[0]) + "-" + movelog.FormatPos(n, cells[len(cells)-1])
}

// Text writes one block per ship type with its remaining placements.
func Text(w io.Writer, e *placement.Enumerator, r domain.Result) error {
	for _, t := range domain.AllShipTypes() {
		set := r.Candidates[t]
		if _, err := fmt.Fprintf(w, "%-10s %3d/%d\n", t, len(set), e.NumPlacements(t)); err != nil {
			return err
		}
		if len(set) == 0 {
			continue
		}
		shown := lo.Map(lo.Subset(set, 0, MaxListed), func(i int, _ int) string {
			return Span(e, t, i)
		})
		line := "  " + strings.Join(shown, " ")
		if len(set) > MaxListed {
			line += fmt.Sprintf(" … (+%d)", len(set)-MaxListed)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Heatmap counts, per cell, how many remaining placements of any ship type
// cover it.
func Heatmap(e *placement.Enumerator, r domain.Result) [][]int {
	n := e.BoardSize()
	grid := make([][]int, n)
	for i := range grid {
		grid[i] = make([]int, n)
	}
	for _, t := range domain.AllShipTypes() {
		for _, i := range r.Candidates[t] {
			for _, c := range e.OccupiedCells(t, i) {
				row, col := c.Parts(n)
				grid[row][col]++
			}
		}
	}
	return grid
}

// RenderHeatmap prints the grid with row letters and column numbers.
func RenderHeatmap(w io.Writer, grid [][]int) error {
	width := len(fmt.Sprint(lo.Max(lo.Flatten(grid))))
	if width < 2 {
		width = 2
	}
	var b strings.Builder
	b.WriteString("  ")
	for c := range grid {
		fmt.Fprintf(&b, " %*d", width, c+1)
	}
	b.WriteByte('\n')
	for r, row := range grid {
		fmt.Fprintf(&b, "%c ", 'A'+r)
		for _, v := range row {
			fmt.Fprintf(&b, " %*d", width, v)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Feasibility checks every unordered pair of ship types for at least one
// non-overlapping combination of remaining candidates. It only reads the
// candidate sets.
func Feasibility(tab *overlap.Table, r domain.Result) []PairStatus {
	types := domain.AllShipTypes()
	var out []PairStatus
	for i, a := range types {
		for _, b := range types[i+1:] {
			out = append(out, PairStatus{
				A:          a,
				B:          b,
				Compatible: tab.Compatible(a, r.Candidates[a], b, r.Candidates[b]),
			})
		}
	}
	return out
}

// Conflicts returns the pairs from Feasibility that cannot coexist.
func Conflicts(st []PairStatus) []PairStatus {
	return lo.Filter(st, func(p PairStatus, _ int) bool { return !p.Compatible })
}
