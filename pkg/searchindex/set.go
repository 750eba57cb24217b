package searchindex

import "github.com/0xZaitsev/polaris/pkg/catalog"

// SongKeySet is a hashed set of SongKeys. SongKey is a Symbol — a
// cheap, comparable uint32 — so a plain Go map keyed on it is the
// standard idiomatic choice; there is no need for a string-keyed set on
// this hot path (spec §9, "Set representation").
type SongKeySet map[catalog.SongKey]struct{}

// NewSongKeySet returns an empty set, optionally sized for n entries.
func NewSongKeySet(n int) SongKeySet {
	return make(SongKeySet, n)
}

// Add inserts key into the set.
func (s SongKeySet) Add(key catalog.SongKey) {
	s[key] = struct{}{}
}

// Contains reports whether key is in the set.
func (s SongKeySet) Contains(key catalog.SongKey) bool {
	_, ok := s[key]
	return ok
}

// Union returns a new set containing every key in s or other.
func (s SongKeySet) Union(other SongKeySet) SongKeySet {
	out := NewSongKeySet(len(s) + len(other))
	for k := range s {
		out.Add(k)
	}
	for k := range other {
		out.Add(k)
	}
	return out
}

// Intersect returns a new set containing every key in both s and other.
func (s SongKeySet) Intersect(other SongKeySet) SongKeySet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := NewSongKeySet(len(small))
	for k := range small {
		if big.Contains(k) {
			out.Add(k)
		}
	}
	return out
}
