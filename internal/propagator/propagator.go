package propagator

import (
	"context"

	"github.com/pkg/errors"

	"svw.info/battleship/internal/candidates"
	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/placement"
)

// Effect is the number of candidates a move removed, per ship type.
type Effect [domain.NumShipTypes]int

// Total sums the removals over all ship types.
func (e Effect) Total() int {
	n := 0
	for _, v := range e {
		n += v
	}
	return n
}

// Propagator applies revealed moves to a candidate store.
//
// A miss removes, for every ship type, the placements covering the cell. A
// hit on type t keeps only t's placements covering the cell and leaves every
// other type alone.
type Propagator struct {
	enum  *placement.Enumerator
	store *candidates.Store
}

func New(e *placement.Enumerator, s *candidates.Store) *Propagator {
	return &Propagator{enum: e, store: s}
}

// ApplyMove narrows the candidate sets by one move.
func (p *Propagator) ApplyMove(m domain.Move) (Effect, error) {
	var eff Effect
	if !m.Pos.InBounds(p.enum.BoardSize()) {
		return eff, errors.Wrapf(domain.ErrPosRange, "pos %d on %dx%d board", m.Pos, p.enum.BoardSize(), p.enum.BoardSize())
	}
	if m.Ship == nil {
		for _, t := range domain.AllShipTypes() {
			t := t
			eff[t] = p.store.RetainIf(t, func(i int) bool {
				return !p.enum.Covers(t, i, m.Pos)
			})
		}
		return eff, nil
	}
	t := *m.Ship
	if !t.Valid() {
		return eff, errors.Wrapf(domain.ErrUnknownShipType, "ship %d", int(t))
	}
	eff[t] = p.store.RetainIf(t, func(i int) bool {
		return p.enum.Covers(t, i, m.Pos)
	})
	return eff, nil
}

// ApplyAll applies moves in log order. observe, if non-nil, is called after
// each move. The first failing move stops the run.
func (p *Propagator) ApplyAll(ctx context.Context, moves []domain.Move, observe func(i int, m domain.Move, e Effect)) error {
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		eff, err := p.ApplyMove(m)
		if err != nil {
			return errors.Wrapf(err, "move %d", i+1)
		}
		if observe != nil {
			observe(i, m, eff)
		}
	}
	return nil
}

// Store exposes the candidate store being narrowed.
func (p *Propagator) Store() *candidates.Store { return p.store }
