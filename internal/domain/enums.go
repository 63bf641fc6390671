package domain

import (
	"fmt"
	"strings"
)

// ShipType identifies one ship of the standard fleet.
type ShipType int

const (
	Patrol ShipType = iota
	Destroyer
	Submarine
	Battleship
	Carrier
)

// NumShipTypes is the size of the fleet; ShipType values are dense in [0, NumShipTypes).
const NumShipTypes = 5

var shipSizes = [NumShipTypes]int{2, 3, 3, 4, 5}

var shipLetters = [NumShipTypes]byte{'P', 'D', 'S', 'B', 'C'}

var shipNames = [NumShipTypes]string{"patrol", "destroyer", "submarine", "battleship", "carrier"}

// AllShipTypes returns the fleet in its stable enumeration order.
func AllShipTypes() []ShipType {
	return []ShipType{Patrol, Destroyer, Submarine, Battleship, Carrier}
}

// MaxShipSize is the length of the largest ship in the fleet.
func MaxShipSize() int {
	m := 0
	for _, s := range shipSizes {
		if s > m {
			m = s
		}
	}
	return m
}

func (t ShipType) Valid() bool { return t >= 0 && t < NumShipTypes }

// Size is the number of cells the ship covers.
func (t ShipType) Size() int { return shipSizes[t] }

// Letter is the single-character code used in move logs.
func (t ShipType) Letter() byte { return shipLetters[t] }

func (t ShipType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ShipType(%d)", int(t))
	}
	return shipNames[t]
}

// ParseShipType decodes a move-log letter (P, D, S, B, C).
func ParseShipType(c byte) (ShipType, error) {
	for i, l := range shipLetters {
		if l == c {
			return ShipType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipType, c)
}

// ParseShipName accepts either the letter code or the lowercase name.
func ParseShipName(s string) (ShipType, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return ParseShipType(strings.ToUpper(s)[0])
	}
	s = strings.ToLower(s)
	for i, n := range shipNames {
		if n == s {
			return ShipType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipType, s)
}

func (t ShipType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShipType, int(t))
	}
	return []byte(shipNames[t]), nil
}

func (t *ShipType) UnmarshalText(b []byte) error {
	v, err := ParseShipName(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
