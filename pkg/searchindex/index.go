package searchindex

import (
	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/0xZaitsev/polaris/pkg/interner"
)

// Index is the frozen, immutable-after-build search index: a text field
// index per TextField, and a number field index per NumberField. It is
// produced once by a Builder and is safe to query concurrently from any
// number of goroutines thereafter — nothing in this package mutates an
// Index after Builder.Build returns it.
type Index struct {
	textFields   map[TextField]*TextFieldIndex
	numberFields map[NumberField]*NumberFieldIndex
}

// TextFieldIndex returns the index for a given text field, or nil if
// nothing has ever been indexed for it.
func (ix *Index) TextFieldIndex(field TextField) *TextFieldIndex {
	return ix.textFields[field]
}

// NumberFieldIndex returns the index for a given number field, or nil
// if nothing has ever been indexed for it.
func (ix *Index) NumberFieldIndex(field NumberField) *NumberFieldIndex {
	return ix.numberFields[field]
}

// Builder accumulates field indexes song by song. It owns its indexes
// mutably and is not safe for concurrent use — the build phase is
// single-threaded cooperative, per spec §5; build is a straight-line
// consumption of a finite sequence of songs.
type Builder struct {
	textFields   map[TextField]*TextFieldIndex
	numberFields map[NumberField]*NumberFieldIndex
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		textFields:   make(map[TextField]*TextFieldIndex),
		numberFields: make(map[NumberField]*NumberFieldIndex),
	}
}

func (b *Builder) text(field TextField) *TextFieldIndex {
	idx, ok := b.textFields[field]
	if !ok {
		idx = NewTextFieldIndex()
		b.textFields[field] = idx
	}
	return idx
}

func (b *Builder) number(field NumberField) *NumberFieldIndex {
	idx, ok := b.numberFields[field]
	if !ok {
		idx = NewNumberFieldIndex()
		b.numberFields[field] = idx
	}
	return idx
}

// AddSong feeds one song's raw and interned forms into every field
// index it has a value for. raw supplies the original strings (for
// bigram sanitization); storage supplies the already-interned symbols
// (for the exact-match buckets) — the two must describe the same song.
func (b *Builder) AddSong(raw catalog.Song, storage catalog.StorageSong) {
	key := storage.Key()

	if storage.Album != nil {
		b.text(Album).Insert(raw.Album, *storage.Album, key)
	}
	if storage.Title != nil {
		b.text(Title).Insert(raw.Title, *storage.Title, key)
	}

	addListField(b.text(AlbumArtist), raw.AlbumArtists, storage.AlbumArtists, key)
	addListField(b.text(Artist), raw.ArtistNames, storage.Artists, key)
	addListField(b.text(Composer), raw.Composers, storage.Composers, key)
	addListField(b.text(Genre), raw.Genres, storage.Genres, key)
	addListField(b.text(Label), raw.Labels, storage.Labels, key)
	addListField(b.text(Lyricist), raw.Lyricists, storage.Lyricists, key)

	// The virtual path is fed to the Path text field via a lossy
	// string conversion upstream (spec §9); Go strings already carry
	// arbitrary bytes so there's no separate conversion step here.
	b.text(Path).Insert(raw.VirtualPath, storage.VirtualPath, key)

	if storage.Year != nil {
		b.number(Year).Insert(*storage.Year, key)
	}
	if storage.TrackNumber != nil {
		b.number(TrackNumber).Insert(*storage.TrackNumber, key)
	}
	if storage.DiscNumber != nil {
		b.number(DiscNumber).Insert(*storage.DiscNumber, key)
	}
}

// addListField inserts every (raw, symbol) pair of a list-valued
// attribute (artists, composers, genres, ...) into field, zipped in
// order. raw and symbols must be the same length — callers always
// build them together in catalog.Store.StoreSong.
func addListField(field *TextFieldIndex, raw []string, symbols []interner.Symbol, key catalog.SongKey) {
	for i := range symbols {
		if i >= len(raw) {
			break
		}
		field.Insert(raw[i], symbols[i], key)
	}
}

// Build freezes the accumulated field indexes into a queryable Index.
// No entity is mutated after this call: each number index's sorted
// value slice is computed here, so later Sorted calls only read it.
func (b *Builder) Build() *Index {
	for _, idx := range b.numberFields {
		idx.Sorted()
	}
	return &Index{
		textFields:   b.textFields,
		numberFields: b.numberFields,
	}
}
