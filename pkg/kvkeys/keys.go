// Package kvkeys defines the key schema for the KeyVal (Redis/Valkey) layer.
package kvkeys

// SearchResult is the cache key for a find_songs result set. buildID
// scopes the key to one index generation: rebuilding the index (a
// rescan, a watch-triggered reload) changes buildID, so stale entries
// from a prior generation are simply never looked up again rather than
// needing explicit invalidation.
func SearchResult(buildID, query string) string {
	return "search:" + buildID + ":" + query
}
