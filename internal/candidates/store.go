package candidates

import (
	"sort"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/placement"
)

// Store holds the placements still possible for each ship type. Sets only
// ever shrink.
type Store struct {
	sets [domain.NumShipTypes][]int
}

// New returns a store where every placement of every ship type is possible.
func New(e *placement.Enumerator) *Store {
	s := &Store{}
	for _, t := range domain.AllShipTypes() {
		n := e.NumPlacements(t)
		set := make([]int, n)
		for i := range set {
			set[i] = i
		}
		s.sets[t] = set
	}
	return s
}

// RetainIf drops every candidate of t for which keep returns false and
// returns how many were dropped.
func (s *Store) RetainIf(t domain.ShipType, keep func(index int) bool) int {
	set := s.sets[t]
	removed := 0
	for i := 0; i < len(set); i++ {
		if keep(set[i]) {
			continue
		}
		// swap-remove, then look at the element moved into i
		set[i] = set[len(set)-1]
		set = set[:len(set)-1]
		i--
		removed++
	}
	s.sets[t] = set
	return removed
}

func (s *Store) Len(t domain.ShipType) int { return len(s.sets[t]) }

func (s *Store) Contains(t domain.ShipType, index int) bool {
	for _, v := range s.sets[t] {
		if v == index {
			return true
		}
	}
	return false
}

// Set returns a sorted copy of t's candidates.
func (s *Store) Set(t domain.ShipType) []int {
	out := make([]int, len(s.sets[t]))
	copy(out, s.sets[t])
	sort.Ints(out)
	return out
}

// Snapshot copies every set, keyed by ship type.
func (s *Store) Snapshot() map[domain.ShipType][]int {
	out := make(map[domain.ShipType][]int, domain.NumShipTypes)
	for _, t := range domain.AllShipTypes() {
		out[t] = s.Set(t)
	}
	return out
}
