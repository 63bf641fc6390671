// Package movelog reads and writes the text form of a move log.
//
// One move per line: a row letter (A is the first row), a 1-based column
// number and, for a hit, the letter of the ship that was hit:
//
//	A1P    hit on the patrol boat at row A, column 1
//	J10    miss at row J, column 10
//
// Blank lines and lines starting with '#' are ignored.
package movelog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"svw.info/battleship/internal/domain"
)

// MaxBoardSize is the largest board whose rows can be written as letters.
const MaxBoardSize = 26

// ParseMove decodes one move for an n×n board.
func ParseMove(n int, line string) (domain.Move, error) {
	s := strings.TrimSpace(line)
	if len(s) < 2 {
		return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: too short", line)
	}
	row := int(upper(s[0]) - 'A')
	if row < 0 || row >= n || row >= MaxBoardSize {
		return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: bad row %q", line, s[0])
	}
	end := 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 1 {
		return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: missing column", line)
	}
	col, err := strconv.Atoi(s[1:end])
	if err != nil || col < 1 || col > n {
		return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: bad column %q", line, s[1:end])
	}
	m := domain.Move{Pos: domain.PosFromParts(n, row, col-1)}
	switch rest := s[end:]; len(rest) {
	case 0:
	case 1:
		t, err := domain.ParseShipType(upper(rest[0]))
		if err != nil {
			return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: %v", line, err)
		}
		m.Ship = &t
	default:
		return domain.Move{}, errors.Wrapf(domain.ErrMalformedMove, "%q: trailing %q", line, rest)
	}
	return m, nil
}

// Parse reads a whole log. Any bad line fails the whole log.
func Parse(n int, r io.Reader) ([]domain.Move, error) {
	var moves []domain.Move
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		txt := strings.TrimSpace(sc.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		m, err := ParseMove(n, txt)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		moves = append(moves, m)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read move log")
	}
	return moves, nil
}

// ParseLines decodes an already split log, e.g. from a JSON request.
func ParseLines(n int, lines []string) ([]domain.Move, error) {
	return Parse(n, strings.NewReader(strings.Join(lines, "\n")))
}

// FormatPos writes a position as row letter and column number, e.g. "C7".
func FormatPos(n int, p domain.BoardPos) string {
	r, c := p.Parts(n)
	return fmt.Sprintf("%c%d", 'A'+r, c+1)
}

// FormatMove is the inverse of ParseMove.
func FormatMove(n int, m domain.Move) string {
	s := FormatPos(n, m.Pos)
	if m.Ship != nil {
		s += string(m.Ship.Letter())
	}
	return s
}

// Format renders a log one move per line.
func Format(n int, moves []domain.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = FormatMove(n, m)
	}
	return out
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
