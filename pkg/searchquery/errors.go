package searchquery

import "errors"

// ErrSearchQueryParse is returned whenever a query string does not
// match the grammar — a single error kind, no partial results, no
// location data required (spec §4.6, §7). Wrapping errors from the
// lexer and parser are all created with this as their %w target, so
// callers can test with errors.Is(err, ErrSearchQueryParse).
var ErrSearchQueryParse = errors.New("search: invalid query syntax")

// ErrSongNotFound and ErrPathResolution correspond to spec §7's second
// failure kind: a resolved SongKey's path symbol missing from the
// Reader. This must not occur if the index's invariants hold, so
// nothing in this package returns them in normal operation — Reader.Resolve
// panics instead, since the condition is a programmer error, not a
// data error. They're declared here so callers that want to recover()
// and reclassify such a panic have a sentinel to wrap it in.
var (
	ErrSongNotFound   = errors.New("search: song not found")
	ErrPathResolution = errors.New("search: could not resolve song path")
)

// ErrIndexSerialization and ErrIndexDeserialization are reserved for an
// enclosing application's persistence layer (spec §7); this core never
// produces or consumes them.
var (
	ErrIndexSerialization   = errors.New("search: index serialization error")
	ErrIndexDeserialization = errors.New("search: index deserialization error")
)
