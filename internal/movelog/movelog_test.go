package movelog

import (
	"errors"
	"strings"
	"testing"

	"svw.info/battleship/internal/domain"
)

func TestParseMove(t *testing.T) {
	cases := []struct {
		in   string
		pos  domain.BoardPos
		ship string
	}{
		{"A1", 0, ""},
		{"A1P", 0, "patrol"},
		{"A10", 9, ""},
		{"J10C", 99, "carrier"},
		{"b3s", 12, "submarine"},
		{"  E5D ", 44, "destroyer"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseMove(10, tc.in)
			if err != nil {
				t.Fatalf("ParseMove(%q) failed: %v", tc.in, err)
			}
			if m.Pos != tc.pos {
				t.Fatalf("pos = %d, want %d", m.Pos, tc.pos)
			}
			switch {
			case tc.ship == "" && m.Ship != nil:
				t.Fatalf("got hit on %v, want miss", *m.Ship)
			case tc.ship != "" && (m.Ship == nil || m.Ship.String() != tc.ship):
				t.Fatalf("ship = %v, want %s", m.Ship, tc.ship)
			}
		})
	}
}

func TestParseMoveRejects(t *testing.T) {
	for _, in := range []string{"", "A", "K1", "A0", "A11", "A1X", "A1PP", "11", "AP"} {
		if _, err := ParseMove(10, in); !errors.Is(err, domain.ErrMalformedMove) {
			t.Fatalf("ParseMove(%q) err = %v, want ErrMalformedMove", in, err)
		}
	}
}

func TestParseLog(t *testing.T) {
	log := "# opening shots\nA1\n\nB2P\nJ10\n"
	moves, err := Parse(10, strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("got %d moves, want 3", len(moves))
	}
	if got := strings.Join(Format(10, moves), ","); got != "A1,B2P,J10" {
		t.Fatalf("round trip = %s", got)
	}
}

func TestParseLogReportsLine(t *testing.T) {
	_, err := Parse(5, strings.NewReader("A1\nB2\nF1\n"))
	if !errors.Is(err, domain.ErrMalformedMove) {
		t.Fatalf("err = %v, want ErrMalformedMove", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error %q does not name line 3", err)
	}
}

func TestFormatPos(t *testing.T) {
	if got := FormatPos(10, 99); got != "J10" {
		t.Fatalf("FormatPos(99) = %s", got)
	}
	if got := FormatMove(5, domain.Hit(7, domain.Battleship)); got != "B3B" {
		t.Fatalf("FormatMove = %s", got)
	}
}
