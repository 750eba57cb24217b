package searchquery

import "github.com/0xZaitsev/polaris/pkg/searchindex"

// TextOp is a text-field comparison operator.
type TextOp int

const (
	TextEq   TextOp = iota // "=" exact match
	TextLike               // "%" substring ("like") match
)

// NumberOp is a number-field comparison operator. Only NumberEq is
// evaluated in this revision (spec §4.4, §9); the ordering operators
// parse but evaluate to an empty set — see eval.go.
type NumberOp int

const (
	NumberEq NumberOp = iota
	NumberGt
	NumberLt
	NumberGe
	NumberLe
)

// BoolOp combines two sub-expressions.
type BoolOp int

const (
	And BoolOp = iota
	Or
)

// LiteralKind distinguishes a bareword/quoted string from an integer
// literal in the parsed tree.
type LiteralKind int

const (
	LiteralText LiteralKind = iota
	LiteralNumber
)

// Literal is a fuzzy query term: either free text or a parsed integer.
type Literal struct {
	Kind Kind
	Text string
	Num  int32
}

// Kind is an alias kept for readability at call sites (Literal.Kind).
type Kind = LiteralKind

// Expr is a node in the parsed query expression tree. Exactly one of
// the concrete node types below is embedded in any given Expr value;
// Expr itself is produced only by the parser in this package.
type Expr interface {
	isExpr()
}

// Fuzzy is a bare literal, matched against every field as a substring
// (and, for integers, also against every number field as equality).
type Fuzzy struct {
	Value Literal
}

// TextCmp is a field comparison against a text field: "field op value".
type TextCmp struct {
	Field searchindex.TextField
	Op    TextOp
	Value string
}

// NumberCmp is a field comparison against a number field.
type NumberCmp struct {
	Field searchindex.NumberField
	Op    NumberOp
	Value int32
}

// Combined joins two sub-expressions with a boolean operator.
type Combined struct {
	Left  Expr
	Op    BoolOp
	Right Expr
}

func (Fuzzy) isExpr()     {}
func (TextCmp) isExpr()   {}
func (NumberCmp) isExpr() {}
func (Combined) isExpr()  {}
