// Package catalog stores the interned representation of each song in
// the collection, keyed by its virtual-path symbol.
package catalog

import "github.com/0xZaitsev/polaris/pkg/interner"

// Song is a raw song record as supplied by the scanner: plain strings
// and numbers, not yet interned. VirtualPath must be unique within a
// collection and non-empty; the caller (scanner) is responsible for
// rejecting duplicates before handing records to the Store.
type Song struct {
	VirtualPath string

	Title       string
	Album       string
	ArtistNames []string
	AlbumArtists []string
	Composers   []string
	Genres      []string
	Labels      []string
	Lyricists   []string

	Year        *int32
	TrackNumber *int32
	DiscNumber  *int32
}

// SongKey is the identity of a song inside the index: the Symbol of
// its virtual path. Paths are unique per collection, so SongKey is
// unique per song and is the unit of set algebra during evaluation.
type SongKey = interner.Symbol

// StorageSong is the interned form of a Song. Every textual attribute
// is a Symbol or an ordered sequence of Symbols; numeric attributes are
// copied through unchanged. Optional fields are nil when the scanner
// did not supply them.
type StorageSong struct {
	VirtualPath SongKey

	Title        *interner.Symbol
	Album        *interner.Symbol
	Artists      []interner.Symbol
	AlbumArtists []interner.Symbol
	Composers    []interner.Symbol
	Genres       []interner.Symbol
	Labels       []interner.Symbol
	Lyricists    []interner.Symbol

	Year        *int32
	TrackNumber *int32
	DiscNumber  *int32
}

// Key returns the song's identity.
func (s StorageSong) Key() SongKey {
	return s.VirtualPath
}
