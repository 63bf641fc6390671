package ports

import (
	"context"
	"time"

	"svw.info/battleship/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Moves    int
	Removed  int
	Duration time.Duration
}

// Storage persists and retrieves solved runs as JSON.
type Storage interface {
	Save(ctx context.Context, r *domain.Run) error
	Load(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context) ([]domain.RunMeta, error)
}

// Generator lays out a random fleet and the shots fired at it.
type Generator interface {
	Generate(ctx context.Context, seed int64, n, shots int) (*domain.Game, error)
}
