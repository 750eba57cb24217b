package searchindex

import (
	"sort"
	"strings"

	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/0xZaitsev/polaris/pkg/interner"
)

// bigram is a 2-rune window of a sanitized string, the broad-phase key
// of a TextFieldIndex's ngram postings.
type bigram [2]rune

// posting maps a song to the Symbol of the field value that produced a
// given bigram. Within one bigram's posting, a later Insert for the
// same song overwrites the recorded Symbol — acceptable because the
// narrow phase re-verifies by full substring on whichever Symbol wins
// (spec §4.3).
type posting map[catalog.SongKey]interner.Symbol

// TextFieldIndex is one text field's inverted index: an exact-match map
// keyed by canonical symbol, and a bigram map for substring ("like")
// search.
type TextFieldIndex struct {
	exact  map[interner.Symbol]SongKeySet
	ngrams map[bigram]posting
}

// NewTextFieldIndex returns an empty TextFieldIndex.
func NewTextFieldIndex() *TextFieldIndex {
	return &TextFieldIndex{
		exact:  make(map[interner.Symbol]SongKeySet),
		ngrams: make(map[bigram]posting),
	}
}

// Insert records that song key has rawValue (already interned as
// valueSymbol) in this field. Every bigram of sanitize(rawValue) gets a
// posting entry, and key is added to the exact bucket for valueSymbol.
func (t *TextFieldIndex) Insert(rawValue string, valueSymbol interner.Symbol, key catalog.SongKey) {
	chars := []rune(interner.Sanitize(rawValue))
	for i := 0; i+1 < len(chars); i++ {
		bg := bigram{chars[i], chars[i+1]}
		p, ok := t.ngrams[bg]
		if !ok {
			p = make(posting)
			t.ngrams[bg] = p
		}
		p[key] = valueSymbol
	}

	bucket, ok := t.exact[valueSymbol]
	if !ok {
		bucket = NewSongKeySet(1)
		t.exact[valueSymbol] = bucket
	}
	bucket.Add(key)
}

// FindExact returns every song whose value in this field sanitizes to
// the same canonical form as query (case/diacritic-insensitive exact
// match).
func (t *TextFieldIndex) FindExact(canon *interner.CanonicalMap, query string) SongKeySet {
	sym, ok := canon.Lookup(query)
	if !ok {
		return NewSongKeySet(0)
	}
	bucket, ok := t.exact[sym]
	if !ok {
		return NewSongKeySet(0)
	}
	return bucket
}

// FindLike runs the two-phase fuzzy substring search described in spec
// §4.3: a bigram broad phase intersects postings to find candidates
// that contain every bigram of the sanitized query, then a narrow phase
// resolves each candidate's indexed value and keeps only those that
// actually contain the query as a contiguous substring.
//
// A query that sanitizes to fewer than 2 characters returns no matches
// — a deliberate policy, not a bug: a 1-character fuzzy query would
// match almost everything.
func (t *TextFieldIndex) FindLike(reader *interner.Reader, query string) SongKeySet {
	sanitizedQuery := interner.Sanitize(query)
	chars := []rune(sanitizedQuery)
	if len(chars) < 2 {
		return NewSongKeySet(0)
	}

	postings := make([]posting, 0, len(chars)-1)
	for i := 0; i+1 < len(chars); i++ {
		bg := bigram{chars[i], chars[i+1]}
		postings = append(postings, t.ngrams[bg])
	}
	sort.Slice(postings, func(i, j int) bool { return len(postings[i]) < len(postings[j]) })

	driving := postings[0]
	rest := postings[1:]

	result := NewSongKeySet(len(driving))
	for key, valueSymbol := range driving {
		inAll := true
		for _, other := range rest {
			if _, found := other[key]; !found {
				inAll = false
				break
			}
		}
		if !inAll {
			continue
		}

		resolved := interner.Sanitize(reader.Resolve(valueSymbol))
		if strings.Contains(resolved, sanitizedQuery) {
			result.Add(key)
		}
	}
	return result
}
