package interner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold decomposes accented runes (NFD) and drops the combining
// marks that fall out (unicode.Mn), then recomposes (NFC). This is the
// standard transform.Chain idiom for stripping diacritics in Go:
// "Dragonforce" and "Drágönforce" sanitize to the same string.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitize deterministically normalizes a string for exact-match and
// fuzzy comparison: lowercase, diacritics stripped, whitespace
// collapsed. It is idempotent: sanitize(sanitize(s)) == sanitize(s).
func sanitize(s string) string {
	folded, _, err := transform.String(diacriticFold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Sanitize exposes sanitize to callers outside this package (the
// search index's narrow phase and the query evaluator both need to
// sanitize at query time exactly as the canonical map does at build
// time — spec invariant 5).
func Sanitize(s string) string {
	return sanitize(s)
}

// CanonicalMap maps a sanitized string to the Symbol of the first raw
// string that sanitized to it. First writer wins: if "Dragonforce" is
// canonicalized before "DRAGONFORCE", both resolve to Dragonforce's
// symbol.
type CanonicalMap struct {
	bySanitized map[string]Symbol
}

// NewCanonicalMap returns an empty CanonicalMap.
func NewCanonicalMap() *CanonicalMap {
	return &CanonicalMap{bySanitized: make(map[string]Symbol)}
}

// Canonicalize interns raw via in, then returns the canonical Symbol
// for sanitize(raw): the Symbol of the first raw spelling ever seen for
// that sanitized form. If sanitize(raw) has no entry yet, raw's own
// fresh symbol becomes that entry and is returned. Every later raw
// spelling that sanitizes the same way returns the first one's symbol,
// never its own — this is what lets exact[canonical(sanitize(v))]
// collect every song sharing a case/diacritic-insensitive spelling
// under one bucket.
func (c *CanonicalMap) Canonicalize(in *Interner, raw string) Symbol {
	sym := in.Intern(raw)
	key := sanitize(raw)
	if existing, exists := c.bySanitized[key]; exists {
		return existing
	}
	c.bySanitized[key] = sym
	return sym
}

// Lookup reads the canonical map at sanitize(queryText), returning the
// symbol of the first raw spelling seen for that sanitized form and
// whether one exists.
func (c *CanonicalMap) Lookup(queryText string) (Symbol, bool) {
	sym, ok := c.bySanitized[sanitize(queryText)]
	return sym, ok
}
