package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBoardSize       = errors.New("board size must be positive")
	ErrBoardTooSmall   = errors.New("board too small for fleet")
	ErrPosRange        = errors.New("board position out of range")
	ErrPlacementRange  = errors.New("placement index out of range")
	ErrUnknownShipType = errors.New("unknown ship type")
	ErrMalformedMove   = errors.New("malformed move")
)

// BoardPos is a row-major cell index: row*N + col on an N×N board.
type BoardPos int

// PosFromParts builds a position from its row and column on an n×n board.
func PosFromParts(n, row, col int) BoardPos {
	return BoardPos(n*row + col)
}

// Parts splits a position into row and column.
func (p BoardPos) Parts(n int) (row, col int) {
	return int(p) / n, int(p) % n
}

// InBounds reports whether p addresses a cell of an n×n board.
func (p BoardPos) InBounds(n int) bool {
	return p >= 0 && int(p) < n*n
}

// Move is one revealed cell. A nil Ship is a miss; otherwise the cell was
// hit and belongs to *Ship.
type Move struct {
	Pos  BoardPos  `json:"pos"`
	Ship *ShipType `json:"ship,omitempty"`
}

func Miss(pos BoardPos) Move { return Move{Pos: pos} }

func Hit(pos BoardPos, t ShipType) Move { return Move{Pos: pos, Ship: &t} }

func (m Move) IsHit() bool { return m.Ship != nil }

func (m Move) String() string {
	if m.Ship == nil {
		return fmt.Sprintf("miss@%d", m.Pos)
	}
	return fmt.Sprintf("hit(%v)@%d", *m.Ship, m.Pos)
}

// Placement is a decoded placement index.
type Placement struct {
	Ship     ShipType   `json:"ship"`
	Index    int        `json:"index"`
	Vertical bool       `json:"vertical"`
	Cells    []BoardPos `json:"cells"`
}

// Result is the state of every candidate set after a move log was applied.
type Result struct {
	BoardSize  int                `json:"boardSize"`
	Moves      int                `json:"moves"`
	Candidates map[ShipType][]int `json:"candidates"`
}

// Remaining returns the number of candidates left for t.
func (r Result) Remaining(t ShipType) int { return len(r.Candidates[t]) }

// Run is a persisted move log together with the result it produced.
type Run struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	BoardSize int      `json:"boardSize"`
	Moves     []string `json:"moves"`
	Result    *Result  `json:"result,omitempty"`
	CreatedAt int64    `json:"createdAt,omitempty"`
}

// RunMeta is a lightweight listing entry.
type RunMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	BoardSize int    `json:"boardSize"`
	Moves     int    `json:"moves"`
	CreatedAt int64  `json:"createdAt"`
}

// Game is a hidden fleet layout plus the shots fired at it, in order.
type Game struct {
	BoardSize int              `json:"boardSize"`
	Seed      int64            `json:"seed,omitempty"`
	Fleet     map[ShipType]int `json:"fleet"`
	Moves     []Move           `json:"moves"`
}
