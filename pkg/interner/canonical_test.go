package interner

import "testing"

func TestSanitizeIsIdempotent(t *testing.T) {
	cases := []string{
		"Dragonforce",
		"  Dragonforce  ",
		"Drágönforce",
		"Whales In Space",
		"",
	}
	for _, s := range cases {
		once := sanitize(s)
		twice := sanitize(once)
		if once != twice {
			t.Fatalf("sanitize(%q) = %q, sanitize(sanitize(%q)) = %q", s, once, s, twice)
		}
	}
}

func TestSanitizeFoldsCaseDiacriticsAndWhitespace(t *testing.T) {
	cases := map[string]string{
		"Dragonforce":    "dragonforce",
		"DRAGONFORCE":    "dragonforce",
		"Drágönforce":    "dragonforce",
		"  whales   in  \tspace ": "whales in space",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeFirstWriterWins(t *testing.T) {
	in := New()
	c := NewCanonicalMap()

	first := c.Canonicalize(in, "Dragonforce")
	second := c.Canonicalize(in, "DRAGONFORCE")

	if first != second {
		t.Fatalf("expected both spellings to canonicalize to the first-seen symbol, first=%d second=%d", first, second)
	}

	got, ok := c.Lookup("dragonforce")
	if !ok {
		t.Fatalf("expected canonical lookup to succeed")
	}
	if got != first {
		t.Fatalf("expected canonical symbol to be the first-seen raw form (%d), got %d", first, got)
	}
}

func TestCanonicalizeThirdSpellingAlsoJoinsFirstBucket(t *testing.T) {
	in := New()
	c := NewCanonicalMap()

	first := c.Canonicalize(in, "Dragonforce")
	_ = c.Canonicalize(in, "dragonforce")
	third := c.Canonicalize(in, "Drágönforce")

	if third != first {
		t.Fatalf("expected diacritic-folded spelling to join the first-seen bucket, first=%d third=%d", first, third)
	}
}

func TestCanonicalLookupMissingReturnsFalse(t *testing.T) {
	c := NewCanonicalMap()
	if _, ok := c.Lookup("no-such-value"); ok {
		t.Fatalf("expected lookup of unknown value to fail")
	}
}
