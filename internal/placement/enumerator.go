package placement

import (
	"fmt"

	"svw.info/battleship/internal/domain"
)

// Enumerator maps placement indices of each ship type to board cells.
//
// The index space of a ship type is split in two halves of equal size:
//
//	[0, half)          horizontal: anchor row × (N-size+1) anchor columns
//	[half, 2*half)     vertical:   (N-size+1) anchor rows × anchor column
//
// Callers rely on this ordering ("lower half horizontal, upper half
// vertical"), so it must not change.
type Enumerator struct {
	n int
}

// New returns an enumerator for an n×n board. The largest ship must fit.
func New(n int) (*Enumerator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrBoardSize, n)
	}
	if m := domain.MaxShipSize(); m > n {
		return nil, fmt.Errorf("%w: size %d, largest ship %d", domain.ErrBoardTooSmall, n, m)
	}
	return &Enumerator{n: n}, nil
}

// BoardSize is N.
func (e *Enumerator) BoardSize() int { return e.n }

// Cells is the number of board cells, N².
func (e *Enumerator) Cells() int { return e.n * e.n }

// ReducedCount is the number of anchor offsets along the ship's axis.
func (e *Enumerator) ReducedCount(t domain.ShipType) int {
	return e.n - t.Size() + 1
}

// NumPlacements is the size of t's placement index space.
func (e *Enumerator) NumPlacements(t domain.ShipType) int {
	return 2 * e.ReducedCount(t) * e.n
}

func (e *Enumerator) half(t domain.ShipType) int {
	return e.ReducedCount(t) * e.n
}

// IsVertical reports which half of the index space index falls in.
func (e *Enumerator) IsVertical(t domain.ShipType, index int) bool {
	e.check(t, index)
	return index >= e.half(t)
}

// span decodes index into its first cell and the distance between cells.
func (e *Enumerator) span(t domain.ShipType, index int) (start, step int) {
	e.check(t, index)
	h := e.half(t)
	if index < h {
		rc := e.ReducedCount(t)
		return (index/rc)*e.n + index%rc, 1
	}
	index -= h
	return (index/e.n)*e.n + index%e.n, e.n
}

// OccupiedCells lists the cells covered by placement index of t, starting
// at the anchor.
func (e *Enumerator) OccupiedCells(t domain.ShipType, index int) []domain.BoardPos {
	start, step := e.span(t, index)
	cells := make([]domain.BoardPos, t.Size())
	for i := range cells {
		cells[i] = domain.BoardPos(start + i*step)
	}
	return cells
}

// Covers reports whether placement index of t occupies pos. It does not
// allocate.
func (e *Enumerator) Covers(t domain.ShipType, index int, pos domain.BoardPos) bool {
	start, step := e.span(t, index)
	p := int(pos)
	if p < start {
		return false
	}
	d := p - start
	if d%step != 0 {
		return false
	}
	return d/step < t.Size()
}

// IndexOf reconstructs the placement index from its cells. The cells must
// be given in order starting at the anchor.
func (e *Enumerator) IndexOf(t domain.ShipType, cells []domain.BoardPos) (int, bool) {
	if len(cells) != t.Size() || len(cells) < 2 {
		return 0, false
	}
	for _, c := range cells {
		if !c.InBounds(e.n) {
			return 0, false
		}
	}
	row, col := cells[0].Parts(e.n)
	var index, step int
	switch cells[1] - cells[0] {
	case 1:
		if col >= e.ReducedCount(t) {
			return 0, false
		}
		index, step = row*e.ReducedCount(t)+col, 1
	case domain.BoardPos(e.n):
		if row >= e.ReducedCount(t) {
			return 0, false
		}
		index, step = e.half(t)+row*e.n+col, e.n
	default:
		return 0, false
	}
	for i, c := range cells {
		if int(c) != int(cells[0])+i*step {
			return 0, false
		}
	}
	return index, true
}

// Placement returns the decoded view of index.
func (e *Enumerator) Placement(t domain.ShipType, index int) domain.Placement {
	return domain.Placement{
		Ship:     t,
		Index:    index,
		Vertical: e.IsVertical(t, index),
		Cells:    e.OccupiedCells(t, index),
	}
}

// check panics on an index outside t's placement space; such an index can
// only come from a caller bug.
func (e *Enumerator) check(t domain.ShipType, index int) {
	if !t.Valid() {
		panic(fmt.Errorf("%w: %d", domain.ErrUnknownShipType, int(t)))
	}
	if index < 0 || index >= e.NumPlacements(t) {
		panic(fmt.Errorf("%w: %v index %d not in [0, %d)", domain.ErrPlacementRange, t, index, e.NumPlacements(t)))
	}
}
