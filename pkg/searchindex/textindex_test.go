package searchindex

import (
	"testing"

	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/0xZaitsev/polaris/pkg/interner"
)

func TestTextFieldIndexFindLikeRejectsShortQueries(t *testing.T) {
	in := interner.New()
	idx := NewTextFieldIndex()
	sym := in.Intern("Dragonforce")
	idx.Insert("Dragonforce", sym, catalog.SongKey(1))
	reader := in.Freeze()

	if got := idx.FindLike(reader, "d"); len(got) != 0 {
		t.Fatalf("expected empty result for 1-character query, got %v", got)
	}
}

func TestTextFieldIndexAvoidsBigramFalsePositives(t *testing.T) {
	// "lorry bovine vehicle" contains every bigram of "love"
	// ("lo", "ov", "ve") individually, but never as the contiguous
	// substring "love" — the narrow phase must reject it.
	in := interner.New()
	idx := NewTextFieldIndex()
	sym := in.Intern("lorry bovine vehicle")
	idx.Insert("lorry bovine vehicle", sym, catalog.SongKey(1))
	reader := in.Freeze()

	got := idx.FindLike(reader, "love")
	if len(got) != 0 {
		t.Fatalf("expected no bigram false positive, got %v", got)
	}
}

func TestTextFieldIndexFindLikeMatchesSubstring(t *testing.T) {
	in := interner.New()
	idx := NewTextFieldIndex()
	s1 := in.Intern("Dragonforce")
	s2 := in.Intern("Rhapsody")
	idx.Insert("Dragonforce", s1, catalog.SongKey(1))
	idx.Insert("Rhapsody", s2, catalog.SongKey(2))
	reader := in.Freeze()

	got := idx.FindLike(reader, "agon")
	if !got.Contains(catalog.SongKey(1)) || got.Contains(catalog.SongKey(2)) {
		t.Fatalf("expected only key 1 to match 'agon', got %v", got)
	}
}

func TestTextFieldIndexFindExactIsCaseInsensitive(t *testing.T) {
	in := interner.New()
	canon := interner.NewCanonicalMap()
	idx := NewTextFieldIndex()

	sym := canon.Canonicalize(in, "Dragonforce")
	idx.Insert("Dragonforce", sym, catalog.SongKey(1))

	got := idx.FindExact(canon, "dragonforce")
	if !got.Contains(catalog.SongKey(1)) {
		t.Fatalf("expected case-insensitive exact match, got %v", got)
	}

	if got := idx.FindExact(canon, "Dragon"); len(got) != 0 {
		t.Fatalf("expected no exact match for prefix 'Dragon', got %v", got)
	}
}

func TestTextFieldIndexExactIsSubsetOfLike(t *testing.T) {
	// Invariant: find_exact(v) ⊆ find_like(v).
	in := interner.New()
	canon := interner.NewCanonicalMap()
	idx := NewTextFieldIndex()

	sym := canon.Canonicalize(in, "Dragonforce")
	idx.Insert("Dragonforce", sym, catalog.SongKey(1))
	reader := in.Freeze()

	exact := idx.FindExact(canon, "Dragonforce")
	like := idx.FindLike(reader, "Dragonforce")

	for key := range exact {
		if !like.Contains(key) {
			t.Fatalf("exact match %v missing from like results %v", key, like)
		}
	}
}
