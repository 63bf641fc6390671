package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"svw.info/battleship/internal/candidates"
	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/overlap"
	"svw.info/battleship/internal/placement"
	"svw.info/battleship/internal/ports"
	"svw.info/battleship/internal/propagator"
)

// Service runs move logs against cached per-board tables.
type Service struct {
	Generator ports.Generator
	Storage   ports.Storage
	Log       *slog.Logger

	mu     sync.Mutex
	tables map[int]*tables
}

type tables struct {
	once  sync.Once
	enum  *placement.Enumerator
	table *overlap.Table
	err   error
}

func NewService(logger *slog.Logger, st ports.Storage) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Storage: st, Log: logger, tables: make(map[int]*tables)}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Tables returns the enumerator and overlap table for an n×n board, building
// them on first use. Built tables are shared and never mutated. The build
// ignores cancellation of ctx: other callers may be waiting on it.
func (u *Service) Tables(ctx context.Context, n int) (*placement.Enumerator, *overlap.Table, error) {
	u.mu.Lock()
	t, ok := u.tables[n]
	if !ok {
		t = &tables{}
		u.tables[n] = t
	}
	u.mu.Unlock()

	t.once.Do(func() {
		start := time.Now()
		t.enum, t.err = placement.New(n)
		if t.err != nil {
			return
		}
		t.table, t.err = overlap.Build(context.WithoutCancel(ctx), t.enum)
		if t.err == nil {
			u.Log.Debug("overlap table built", "size", n, "dur", time.Since(start).Round(time.Millisecond))
		}
	})
	if t.err != nil {
		// a failed build may be retried
		u.mu.Lock()
		if u.tables[n] == t {
			delete(u.tables, n)
		}
		u.mu.Unlock()
		return nil, nil, t.err
	}
	return t.enum, t.table, nil
}

// Solve applies moves in order to a fresh candidate store.
func (u *Service) Solve(ctx context.Context, n int, moves []domain.Move) (domain.Result, ports.Stats, error) {
	return u.Stream(ctx, n, moves, nil)
}

// Step describes the effect of one applied move.
type Step struct {
	Index   int                     `json:"index"`
	Move    domain.Move             `json:"move"`
	Removed map[domain.ShipType]int `json:"removed"`
	Left    map[domain.ShipType]int `json:"left"`
}

// Stream is Solve with a callback after every move.
func (u *Service) Stream(ctx context.Context, n int, moves []domain.Move, observe func(Step)) (domain.Result, ports.Stats, error) {
	start := time.Now()
	e, _, err := u.Tables(ctx, n)
	if err != nil {
		return domain.Result{}, ports.Stats{}, err
	}
	store := candidates.New(e)
	p := propagator.New(e, store)
	st := ports.Stats{}
	err = p.ApplyAll(ctx, moves, func(i int, m domain.Move, eff propagator.Effect) {
		st.Moves++
		st.Removed += eff.Total()
		if observe == nil {
			return
		}
		step := Step{
			Index:   i,
			Move:    m,
			Removed: make(map[domain.ShipType]int, domain.NumShipTypes),
			Left:    make(map[domain.ShipType]int, domain.NumShipTypes),
		}
		for _, t := range domain.AllShipTypes() {
			step.Removed[t] = eff[t]
			step.Left[t] = store.Len(t)
		}
		observe(step)
	})
	st.Duration = time.Since(start)
	if err != nil {
		return domain.Result{}, st, err
	}
	u.Log.Debug("solved", "size", n, "moves", st.Moves, "removed", st.Removed, "dur", st.Duration)
	return domain.Result{BoardSize: n, Moves: len(moves), Candidates: store.Snapshot()}, st, nil
}

// Placement decodes one placement index.
func (u *Service) Placement(ctx context.Context, n int, t domain.ShipType, index int) (domain.Placement, error) {
	e, _, err := u.Tables(ctx, n)
	if err != nil {
		return domain.Placement{}, err
	}
	if err := checkIndex(e, t, index); err != nil {
		return domain.Placement{}, err
	}
	return e.Placement(t, index), nil
}

// Overlaps answers one overlap-table query.
func (u *Service) Overlaps(ctx context.Context, n int, a domain.ShipType, p1 int, b domain.ShipType, p2 int) (bool, error) {
	e, tab, err := u.Tables(ctx, n)
	if err != nil {
		return false, err
	}
	if err := checkIndex(e, a, p1); err != nil {
		return false, err
	}
	if err := checkIndex(e, b, p2); err != nil {
		return false, err
	}
	return tab.Overlaps(a, p1, b, p2), nil
}

// checkIndex turns external input into an error before it reaches code that
// treats a bad index as a bug.
func checkIndex(e *placement.Enumerator, t domain.ShipType, index int) error {
	if !t.Valid() {
		return domain.ErrUnknownShipType
	}
	if index < 0 || index >= e.NumPlacements(t) {
		return domain.ErrPlacementRange
	}
	return nil
}

func (u *Service) Generate(ctx context.Context, seed int64, n, shots int) (*domain.Game, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, n, shots)
}

// Persistence
func (u *Service) Save(ctx context.Context, r *domain.Run) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, r)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Run, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.RunMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
