package overlap

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/placement"
)

// Table records, for every ordered pair of ship types and every pair of
// their placements, whether the two placements share a cell.
//
// Each ordered type pair owns one bitset in a flat arena; bit p1*n2+p2 of
// the (t1, t2) bitset is set when placement p1 of t1 overlaps placement p2
// of t2. A built Table is never mutated.
type Table struct {
	enum   *placement.Enumerator
	counts [domain.NumShipTypes]int
	pairs  [domain.NumShipTypes][domain.NumShipTypes]bitset
}

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int) { b[i>>6] |= 1 << uint(i&63) }
func (b bitset) get(i int) bool { return b[i>>6]&(1<<uint(i&63)) != 0 }

// Build computes the table for every ordered type pair. Pairs are
// independent and are filled concurrently.
func Build(ctx context.Context, e *placement.Enumerator) (*Table, error) {
	t := &Table{enum: e}
	for _, s := range domain.AllShipTypes() {
		t.counts[s] = e.NumPlacements(s)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, a := range domain.AllShipTypes() {
		for _, b := range domain.AllShipTypes() {
			a, b := a, b
			g.Go(func() error {
				bs, err := t.buildPair(ctx, a, b)
				if err != nil {
					return err
				}
				t.pairs[a][b] = bs
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) buildPair(ctx context.Context, a, b domain.ShipType) (bitset, error) {
	na, nb := t.counts[a], t.counts[b]
	bs := newBitset(na * nb)

	// Cell masks of b's placements, computed once per pair.
	cells := t.enum.Cells()
	words := (cells + 63) / 64
	masks := make([]uint64, nb*words)
	for p := 0; p < nb; p++ {
		for _, c := range t.enum.OccupiedCells(b, p) {
			masks[p*words+int(c)>>6] |= 1 << uint(int(c)&63)
		}
	}

	for p1 := 0; p1 < na; p1++ {
		if p1%64 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for _, c := range t.enum.OccupiedCells(a, p1) {
			w, bit := int(c)>>6, uint64(1)<<uint(int(c)&63)
			for p2 := 0; p2 < nb; p2++ {
				if masks[p2*words+w]&bit != 0 {
					bs.set(p1*nb + p2)
				}
			}
		}
	}
	return bs, nil
}

// BoardSize is the board the table was built for.
func (t *Table) BoardSize() int { return t.enum.BoardSize() }

// Overlaps reports whether placement p1 of a and placement p2 of b share a
// cell. Out-of-range indices panic.
func (t *Table) Overlaps(a domain.ShipType, p1 int, b domain.ShipType, p2 int) bool {
	t.check(a, p1)
	t.check(b, p2)
	return t.pairs[a][b].get(p1*t.counts[b] + p2)
}

// Count returns the number of overlapping placement pairs of (a, b).
func (t *Table) Count(a, b domain.ShipType) int {
	n := 0
	for _, w := range t.pairs[a][b] {
		n += bits.OnesCount64(w)
	}
	return n
}

// Compatible reports whether some candidate of a and some candidate of b can
// lie on the board together without sharing a cell.
func (t *Table) Compatible(a domain.ShipType, as []int, b domain.ShipType, bs []int) bool {
	for _, p1 := range as {
		for _, p2 := range bs {
			if !t.Overlaps(a, p1, b, p2) {
				return true
			}
		}
	}
	return false
}

func (t *Table) check(s domain.ShipType, p int) {
	if !s.Valid() {
		panic(fmt.Errorf("%w: %d", domain.ErrUnknownShipType, int(s)))
	}
	if p < 0 || p >= t.counts[s] {
		panic(fmt.Errorf("%w: %v index %d not in [0, %d)", domain.ErrPlacementRange, s, p, t.counts[s]))
	}
}
