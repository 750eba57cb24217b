package searchquery

import (
	"strconv"

	"github.com/0xZaitsev/polaris/pkg/interner"
	"github.com/0xZaitsev/polaris/pkg/searchindex"
)

// Evaluator turns a parsed Expr into a set of matching SongKeys by
// reading a frozen Index, string Reader, and CanonicalMap. It holds no
// mutable state of its own and is safe to share across concurrently
// running queries — the same read-only guarantee the underlying Index
// and Reader make (spec §5).
type Evaluator struct {
	index  *searchindex.Index
	reader *interner.Reader
	canon  *interner.CanonicalMap
}

// NewEvaluator builds an Evaluator over a built Collection.
func NewEvaluator(coll *searchindex.Collection) *Evaluator {
	return &Evaluator{index: coll.Index, reader: coll.Reader, canon: coll.Canon}
}

// Eval evaluates expr against the Evaluator's Index, returning the set
// of matching SongKeys.
func (e *Evaluator) Eval(expr Expr) searchindex.SongKeySet {
	switch node := expr.(type) {
	case Fuzzy:
		return e.evalFuzzy(node.Value)
	case TextCmp:
		return e.evalTextCmp(node)
	case NumberCmp:
		return e.evalNumberCmp(node)
	case Combined:
		return e.evalCombined(node)
	default:
		return searchindex.NewSongKeySet(0)
	}
}

// evalFuzzy implements both Fuzzy(Text) and Fuzzy(Number) arms of
// spec §4.6.
func (e *Evaluator) evalFuzzy(lit Literal) searchindex.SongKeySet {
	if lit.Kind == LiteralNumber {
		return e.evalFuzzyNumber(lit.Num)
	}
	return e.evalFuzzyText(lit.Text)
}

// evalFuzzyText unions find_like across every text field (unioning
// across all fields is the fuzzy-term semantic), and, when s itself
// parses as an integer, also unions find_equal across every number
// field — so typing a bare year matches both text occurrences and the
// numeric field.
func (e *Evaluator) evalFuzzyText(s string) searchindex.SongKeySet {
	result := searchindex.NewSongKeySet(0)
	for _, field := range searchindex.AllTextFields() {
		idx := e.index.TextFieldIndex(field)
		if idx == nil {
			continue
		}
		result = result.Union(idx.FindLike(e.reader, s))
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		result = result.Union(e.evalNumberEqualAllFields(int32(n)))
	}
	return result
}

// evalFuzzyNumber unions find_equal across every number field with
// Fuzzy(Text(decimal(n))) — users typing "1999" should find both
// year=1999 songs and text occurrences of "1999".
func (e *Evaluator) evalFuzzyNumber(n int32) searchindex.SongKeySet {
	result := e.evalNumberEqualAllFields(n)
	return result.Union(e.evalFuzzyText(strconv.FormatInt(int64(n), 10)))
}

func (e *Evaluator) evalNumberEqualAllFields(n int32) searchindex.SongKeySet {
	result := searchindex.NewSongKeySet(0)
	for _, field := range searchindex.AllNumberFields() {
		idx := e.index.NumberFieldIndex(field)
		if idx == nil {
			continue
		}
		result = result.Union(idx.FindEqual(n))
	}
	return result
}

func (e *Evaluator) evalTextCmp(node TextCmp) searchindex.SongKeySet {
	idx := e.index.TextFieldIndex(node.Field)
	if idx == nil {
		return searchindex.NewSongKeySet(0)
	}
	switch node.Op {
	case TextEq:
		return idx.FindExact(e.canon, node.Value)
	case TextLike:
		return idx.FindLike(e.reader, node.Value)
	default:
		return searchindex.NewSongKeySet(0)
	}
}

// evalNumberCmp implements NumberCmp. Only NumberEq is evaluated in
// this revision — the ordering operators (<, <=, >, >=) parse
// successfully (spec grammar admits them) but evaluate to an empty set
// here. The upstream source leaves this arm unimplemented entirely
// (`todo!()`, which panics at runtime); returning an empty result
// instead is a deliberate deviation so a Go caller gets a clean,
// documented answer rather than a crash for a grammar-valid query
// (spec §9 Open Questions explicitly permits implementers to add an
// ordered index here without affecting other contracts).
func (e *Evaluator) evalNumberCmp(node NumberCmp) searchindex.SongKeySet {
	idx := e.index.NumberFieldIndex(node.Field)
	if idx == nil {
		return searchindex.NewSongKeySet(0)
	}
	if node.Op == NumberEq {
		return idx.FindEqual(node.Value)
	}
	return searchindex.NewSongKeySet(0)
}

func (e *Evaluator) evalCombined(node Combined) searchindex.SongKeySet {
	left := e.Eval(node.Left)
	right := e.Eval(node.Right)
	switch node.Op {
	case And:
		return left.Intersect(right)
	case Or:
		return left.Union(right)
	default:
		return searchindex.NewSongKeySet(0)
	}
}

// FindSongs parses query, evaluates it against coll, and resolves the
// matching SongKeys to virtual paths. Result order is unspecified;
// callers that need deterministic ordering sort the returned slice
// (spec §4.6).
func FindSongs(coll *searchindex.Collection, query string) ([]string, error) {
	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	eval := NewEvaluator(coll)
	keys := eval.Eval(expr)

	paths := make([]string, 0, len(keys))
	for key := range keys {
		paths = append(paths, coll.Reader.Resolve(key))
	}
	return paths, nil
}
