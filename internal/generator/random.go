package generator

import (
	"context"
	"fmt"
	"math/rand"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/overlap"
	"svw.info/battleship/internal/placement"
)

// Generate places the whole fleet without overlaps and fires shots at
// distinct random cells, recording a hit with its ship type or a miss.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64, n, shots int) (*domain.Game, error) {
	e, tab, err := g.Tables.Tables(ctx, n)
	if err != nil {
		return nil, err
	}
	if shots < 0 || shots > e.Cells() {
		return nil, fmt.Errorf("shots %d not in [0, %d]", shots, e.Cells())
	}
	rng := rand.New(rand.NewSource(seed))

	fleet, ok := placeFleet(ctx, rng, e, tab)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: no layout for %dx%d", domain.ErrBoardTooSmall, n, n)
	}

	owner := make(map[domain.BoardPos]domain.ShipType)
	for t, idx := range fleet {
		for _, c := range e.OccupiedCells(t, idx) {
			owner[c] = t
		}
	}
	cells := rng.Perm(e.Cells())[:shots]
	moves := make([]domain.Move, 0, shots)
	for _, c := range cells {
		pos := domain.BoardPos(c)
		if t, hit := owner[pos]; hit {
			moves = append(moves, domain.Hit(pos, t))
		} else {
			moves = append(moves, domain.Miss(pos))
		}
	}
	return &domain.Game{BoardSize: n, Seed: seed, Fleet: fleet, Moves: moves}, nil
}

// placeFleet picks one placement per ship type, backtracking when a ship has
// nowhere left to go.
func placeFleet(ctx context.Context, rng *rand.Rand, e *placement.Enumerator, tab *overlap.Table) (map[domain.ShipType]int, bool) {
	types := domain.AllShipTypes()
	chosen := make([]int, len(types))
	var dfs func(k int) bool
	dfs = func(k int) bool {
		if ctx.Err() != nil {
			return false
		}
		if k == len(types) {
			return true
		}
		t := types[k]
	next:
		for _, idx := range rng.Perm(e.NumPlacements(t)) {
			for j := 0; j < k; j++ {
				if tab.Overlaps(t, idx, types[j], chosen[j]) {
					continue next
				}
			}
			chosen[k] = idx
			if dfs(k + 1) {
				return true
			}
		}
		return false
	}
	if !dfs(0) {
		return nil, false
	}
	fleet := make(map[domain.ShipType]int, len(types))
	for k, t := range types {
		fleet[t] = chosen[k]
	}
	return fleet, true
}
