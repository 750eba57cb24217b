package catalog

import "github.com/0xZaitsev/polaris/pkg/interner"

// Store holds the interned representation of every song seen during
// build, keyed by SongKey. It grows monotonically during build and is
// read-only once the enclosing index has been frozen — nothing in this
// package enforces that itself (spec places the freeze boundary on the
// Interner), but callers must not call StoreSong after Freeze().
type Store struct {
	byKey map[SongKey]StorageSong
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byKey: make(map[SongKey]StorageSong)}
}

// StoreSong interns every textual attribute of raw through canon
// (canonicalizing, so later exact-match lookups work case/diacritic
// insensitively), interns the virtual path as the SongKey, copies
// numeric attributes through, and records the resulting StorageSong.
//
// It only fails if in is frozen, which is a programmer error (calling
// StoreSong after the index has been built) — that failure surfaces as
// a panic from the underlying Interner, not a returned error, since it
// can never happen from data alone.
func (s *Store) StoreSong(in *interner.Interner, canon *interner.CanonicalMap, raw Song) StorageSong {
	storage := StorageSong{
		VirtualPath: in.Intern(raw.VirtualPath),
		Year:        raw.Year,
		TrackNumber: raw.TrackNumber,
		DiscNumber:  raw.DiscNumber,
	}

	if raw.Title != "" {
		sym := canon.Canonicalize(in, raw.Title)
		storage.Title = &sym
	}
	if raw.Album != "" {
		sym := canon.Canonicalize(in, raw.Album)
		storage.Album = &sym
	}
	storage.Artists = canonicalizeAll(in, canon, raw.ArtistNames)
	storage.AlbumArtists = canonicalizeAll(in, canon, raw.AlbumArtists)
	storage.Composers = canonicalizeAll(in, canon, raw.Composers)
	storage.Genres = canonicalizeAll(in, canon, raw.Genres)
	storage.Labels = canonicalizeAll(in, canon, raw.Labels)
	storage.Lyricists = canonicalizeAll(in, canon, raw.Lyricists)

	s.byKey[storage.Key()] = storage
	return storage
}

// canonicalizeAll canonicalizes each raw value in order, preserving
// input order and duplicates (spec §4.2: list-valued attributes are
// stored as an ordered sequence of Symbols).
func canonicalizeAll(in *interner.Interner, canon *interner.CanonicalMap, raws []string) []interner.Symbol {
	if len(raws) == 0 {
		return nil
	}
	symbols := make([]interner.Symbol, len(raws))
	for i, raw := range raws {
		symbols[i] = canon.Canonicalize(in, raw)
	}
	return symbols
}

// Get returns the StorageSong for key, and whether it was found.
func (s *Store) Get(key SongKey) (StorageSong, bool) {
	song, ok := s.byKey[key]
	return song, ok
}

// Len reports how many songs are stored.
func (s *Store) Len() int {
	return len(s.byKey)
}
