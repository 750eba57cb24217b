package searchindex

import (
	"testing"

	"github.com/0xZaitsev/polaris/pkg/catalog"
)

func int32p(v int32) *int32 { return &v }

func buildFixture(t *testing.T, songs []catalog.Song) *Collection {
	t.Helper()
	return Build(songs)
}

func TestBuildIndexesArtistFieldForLikeSearch(t *testing.T) {
	coll := buildFixture(t, []catalog.Song{
		{
			VirtualPath: "seasons.mp3",
			Title:       "Seasons",
			ArtistNames: []string{"Dragonforce"},
		},
		{
			VirtualPath: "potd.mp3",
			Title:       "Power of the Dragonflame",
			ArtistNames: []string{"Rhapsody"},
		},
		{
			VirtualPath: "calcium.mp3",
			Title:       "Calcium",
			ArtistNames: []string{"FSOL"},
		},
	})

	artistIdx := coll.Index.TextFieldIndex(Artist)
	if artistIdx == nil {
		t.Fatalf("expected artist field index to exist")
	}
	got := artistIdx.FindLike(coll.Reader, "agon")
	if len(got) != 1 {
		t.Fatalf("expected exactly one artist match for 'agon', got %v", got)
	}
}

func TestNumberFieldIndexEquality(t *testing.T) {
	coll := buildFixture(t, []catalog.Song{
		{VirtualPath: "a.mp3", Year: int32p(1999)},
		{VirtualPath: "b.mp3", Year: int32p(2005)},
	})

	yearIdx := coll.Index.NumberFieldIndex(Year)
	if yearIdx == nil {
		t.Fatalf("expected year field index to exist")
	}
	got := yearIdx.FindEqual(1999)
	if len(got) != 1 {
		t.Fatalf("expected exactly one song for year=1999, got %v", got)
	}
}

func TestSongKeySetUnionAndIntersect(t *testing.T) {
	a := NewSongKeySet(0)
	a.Add(1)
	a.Add(2)
	b := NewSongKeySet(0)
	b.Add(2)
	b.Add(3)

	union := a.Union(b)
	if len(union) != 3 {
		t.Fatalf("expected union of size 3, got %v", union)
	}

	intersect := a.Intersect(b)
	if len(intersect) != 1 || !intersect.Contains(2) {
		t.Fatalf("expected intersection {2}, got %v", intersect)
	}
}
