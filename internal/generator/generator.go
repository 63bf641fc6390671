package generator

import (
	"context"

	"svw.info/battleship/internal/overlap"
	"svw.info/battleship/internal/placement"
)

// Tables supplies the enumerator and overlap table for a board size.
type Tables interface {
	Tables(ctx context.Context, n int) (*placement.Enumerator, *overlap.Table, error)
}

// RandomGenerator lays out fleets at random, using the overlap table to keep
// ships apart.
type RandomGenerator struct {
	Tables Tables
}

// NewRandomGenerator wires a generator that takes its tables from t.
func NewRandomGenerator(t Tables) *RandomGenerator {
	return &RandomGenerator{Tables: t}
}

// Note: The Generate method is implemented in random.go.
