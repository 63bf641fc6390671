package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/battleship/internal/domain"
)

// FS stores runs as JSON files, one directory per board size:
// <dir>/<size>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string, size int) string {
	return filepath.Join(s.dir, strconv.Itoa(size), strings.TrimSpace(id)+".json")
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\*?[`) && id != "." && id != ".."
}

func (s *FS) Save(ctx context.Context, r *domain.Run) error {
	if r == nil {
		return errors.New("invalid run: nil")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if !validID(r.ID) {
		return errors.New("invalid run: bad ID")
	}
	if r.BoardSize <= 0 {
		return errors.New("invalid run: missing board size")
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixNano()
	}
	target := s.pathFor(r.ID, r.BoardSize)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Load looks the ID up in every board-size directory.
func (s *FS) Load(ctx context.Context, id string) (*domain.Run, error) {
	if !validID(id) {
		return nil, os.ErrNotExist
	}
	buckets, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, os.ErrNotExist
	}
	var (
		data  []byte
		size  int
		found bool
	)
	for _, b := range buckets {
		n, err := strconv.Atoi(b.Name())
		if err != nil || !b.IsDir() {
			continue
		}
		if data, err = os.ReadFile(s.pathFor(id, n)); err == nil {
			size, found = n, true
			break
		}
	}
	if !found {
		return nil, os.ErrNotExist
	}
	var out domain.Run
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	// If board size missing, infer from the folder we loaded from
	if out.BoardSize == 0 {
		out.BoardSize = size
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.RunMeta, error) {
	type m struct {
		ID        string   `json:"id"`
		Name      string   `json:"name,omitempty"`
		BoardSize int      `json:"boardSize"`
		Moves     []string `json:"moves"`
		CreatedAt int64    `json:"createdAt"`
	}

	var out []domain.RunMeta
	buckets, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	for _, b := range buckets {
		if !b.IsDir() {
			continue
		}
		size, err := strconv.Atoi(b.Name())
		if err != nil {
			continue
		}
		dir := filepath.Join(s.dir, b.Name())
		ents, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			if mm.BoardSize == 0 {
				mm.BoardSize = size // infer from folder if absent
			}
			out = append(out, domain.RunMeta{
				ID:        mm.ID,
				Name:      mm.Name,
				BoardSize: mm.BoardSize,
				Moves:     len(mm.Moves),
				CreatedAt: mm.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}
