package searchindex

import (
	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/0xZaitsev/polaris/pkg/interner"
)

// Collection bundles everything a query needs: the frozen Index, the
// frozen string Reader, the CanonicalMap built alongside it, and the
// Store of interned songs. This is the "Search" the external HTTP layer
// is handed back from Build (spec §6: "build(songs) → Search").
type Collection struct {
	Index   *Index
	Reader  *interner.Reader
	Canon   *interner.CanonicalMap
	Catalog *catalog.Store
}

// Build consumes songs once, interning and indexing every one, and
// returns a frozen, queryable Collection. This is the sole entry point
// from the build phase to the query phase: afterwards nothing is
// mutated until the whole Collection is dropped.
func Build(songs []catalog.Song) *Collection {
	in := interner.New()
	canon := interner.NewCanonicalMap()
	store := catalog.NewStore()
	builder := NewBuilder()

	for _, raw := range songs {
		storage := store.StoreSong(in, canon, raw)
		builder.AddSong(raw, storage)
	}

	return &Collection{
		Index:   builder.Build(),
		Reader:  in.Freeze(),
		Canon:   canon,
		Catalog: store,
	}
}
