package catalog

import (
	"testing"

	"github.com/0xZaitsev/polaris/pkg/interner"
)

func TestStoreSongInternsFieldsAndKeysByVirtualPath(t *testing.T) {
	in := interner.New()
	canon := interner.NewCanonicalMap()
	store := NewStore()

	storage := store.StoreSong(in, canon, Song{
		VirtualPath: "seasons.mp3",
		Title:       "Seasons",
		ArtistNames: []string{"Dragonforce"},
	})

	reader := in.Freeze()

	if got := reader.Resolve(storage.VirtualPath); got != "seasons.mp3" {
		t.Fatalf("virtual path resolved to %q, want %q", got, "seasons.mp3")
	}
	if storage.Title == nil || reader.Resolve(*storage.Title) != "Seasons" {
		t.Fatalf("title not interned correctly: %+v", storage.Title)
	}
	if len(storage.Artists) != 1 || reader.Resolve(storage.Artists[0]) != "Dragonforce" {
		t.Fatalf("artists not interned correctly: %+v", storage.Artists)
	}

	fetched, ok := store.Get(storage.Key())
	if !ok {
		t.Fatalf("expected song to be retrievable by key")
	}
	if fetched.Key() != storage.Key() {
		t.Fatalf("fetched song key mismatch")
	}
}

func TestStoreSongOmitsUnsetOptionalFields(t *testing.T) {
	in := interner.New()
	canon := interner.NewCanonicalMap()
	store := NewStore()

	storage := store.StoreSong(in, canon, Song{VirtualPath: "whale.mp3"})

	if storage.Title != nil {
		t.Fatalf("expected nil title, got %v", storage.Title)
	}
	if storage.Album != nil {
		t.Fatalf("expected nil album, got %v", storage.Album)
	}
	if len(storage.Artists) != 0 {
		t.Fatalf("expected no artists, got %v", storage.Artists)
	}
}

func TestStoreSongPreservesListOrderAndDuplicates(t *testing.T) {
	in := interner.New()
	canon := interner.NewCanonicalMap()
	store := NewStore()

	storage := store.StoreSong(in, canon, Song{
		VirtualPath: "duet.mp3",
		ArtistNames: []string{"A", "B", "A"},
	})
	reader := in.Freeze()

	got := make([]string, len(storage.Artists))
	for i, sym := range storage.Artists {
		got[i] = reader.Resolve(sym)
	}
	want := []string{"A", "B", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("artists[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}
