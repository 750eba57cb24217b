// Package interner provides a string interner that is mutable during
// index build and frozen to a read-only resolver for the query phase.
//
// Every user-visible string in the collection (titles, artists, album
// names, virtual paths, ...) is interned exactly once. Callers hold a
// compact Symbol instead of a string; two equal strings always yield
// the same Symbol, so field-value equality becomes an integer compare
// instead of a string compare.
package interner

import "fmt"

// Symbol is an opaque, compact, copyable handle for an interned string.
// Symbol(0) is an ordinary value — the first string ever interned gets
// it — not a sentinel; callers that need an optional field use *Symbol
// (nil meaning "unset"), never a reserved zero Symbol.
type Symbol uint32

// ErrFrozen is the value Intern (and so Canonicalize) panics with once
// the interner has been frozen. Encountering it means a caller tried to mutate the
// index after build() — a programmer error, not a data error.
var ErrFrozen = fmt.Errorf("interner: cannot intern after freeze")

// Interner is the mutable, build-phase half of the string table. It is
// not safe for concurrent use; the Builder that owns it is expected to
// run single-threaded, per the core's build-phase contract.
type Interner struct {
	strings []string
	index   map[string]Symbol
	frozen  bool
}

// New returns an empty, mutable Interner.
func New() *Interner {
	return &Interner{
		index: make(map[string]Symbol),
	}
}

// Intern returns the Symbol for raw, assigning a fresh one on first
// sight. It panics if called after Freeze — that can only happen if a
// caller holds onto a mutable Interner past build(), which is always a
// programming mistake, never a data condition.
func (in *Interner) Intern(raw string) Symbol {
	if in.frozen {
		panic(ErrFrozen)
	}
	if sym, ok := in.index[raw]; ok {
		return sym
	}
	in.strings = append(in.strings, raw)
	sym := Symbol(len(in.strings) - 1)
	in.index[raw] = sym
	return sym
}

// Freeze performs the one-way transition from mutable build phase to
// read-only query phase. The Interner must not be used after this call.
func (in *Interner) Freeze() *Reader {
	in.frozen = true
	return &Reader{strings: in.strings}
}

// Reader is the frozen, read-only half of the string table. It is safe
// for concurrent use by any number of query goroutines, since nothing
// ever mutates it again.
type Reader struct {
	strings []string
}

// Resolve returns the string a Symbol was interned from.
//
// A Symbol not produced by this Reader's Interner is a contract
// violation (spec invariant: every Symbol held by the index was
// produced by the same Interner the evaluator consults) and will panic
// with an index-out-of-range, the same way it would if a caller handed
// back a slice index from the wrong slice.
func (r *Reader) Resolve(sym Symbol) string {
	return r.strings[sym]
}

// Len reports how many distinct strings are interned.
func (r *Reader) Len() int {
	return len(r.strings)
}
