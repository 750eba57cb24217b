package searchquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xZaitsev/polaris/pkg/searchindex"
)

// ParseQuery parses a query string into an expression tree per the
// grammar in spec §4.5. On malformed input it fails with a single
// ErrSearchQueryParse-wrapped error — no partial results, no location
// data required.
func ParseQuery(query string) (Expr, error) {
	p, err := newParser(query)
	if err != nil {
		return nil, err
	}
	expr, err := p.parse()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

type parser struct {
	lex *lexer
	cur token
}

func newParser(input string) (*parser, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// parse implements `expr := or_expr` and requires the whole input to
// be consumed — trailing tokens (e.g. a dangling comparison operator)
// are a parse error, never silently ignored.
func (p *parser) parse() (Expr, error) {
	if p.cur.kind == tokEOF {
		return nil, fmt.Errorf("%w: empty query", ErrSearchQueryParse)
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected trailing input", ErrSearchQueryParse)
	}
	return expr, nil
}

// or_expr := and_expr ( "||" and_expr )*
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Combined{Left: left, Op: Or, Right: right}
	}
	return left, nil
}

// and_expr := atom ( ( "&&" | WS ) atom )* — juxtaposition of atoms
// (naturally separated by whitespace in the token stream) is treated
// identically to an explicit "&&".
func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur.kind == tokAnd {
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			left = Combined{Left: left, Op: And, Right: right}
			continue
		}
		if p.atAtomStart() {
			right, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			left = Combined{Left: left, Op: And, Right: right}
			continue
		}
		break
	}
	return left, nil
}

func (p *parser) atAtomStart() bool {
	switch p.cur.kind {
	case tokLParen, tokWord, tokString:
		return true
	}
	return false
}

// atom := "(" expr ")" | field_cmp | literal
func (p *parser) parseAtom() (Expr, error) {
	switch p.cur.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrSearchQueryParse)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr, nil

	case tokString:
		text := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Fuzzy{Value: Literal{Kind: LiteralText, Text: text}}, nil

	case tokWord:
		return p.parseWordAtom()

	default:
		return nil, fmt.Errorf("%w: unexpected token", ErrSearchQueryParse)
	}
}

// parseWordAtom handles the three shapes a bareword can start:
// "field = value"/"field % value", "field <op> number", or a plain
// fuzzy literal. It tries field_cmp first and backtracks to a literal
// if the word isn't followed by a recognized comparison operator for
// its field kind — the same try-then-fall-back resolution the
// original's parser-combinator grammar performs.
func (p *parser) parseWordAtom() (Expr, error) {
	word := p.cur.text
	lower := strings.ToLower(word)

	if tf, ok := searchindex.TextFieldByName(lower); ok {
		if expr, ok, err := p.tryTextCmp(tf); err != nil {
			return nil, err
		} else if ok {
			return expr, nil
		}
	}

	if nf, ok := searchindex.NumberFieldByName(lower); ok {
		if expr, ok, err := p.tryNumberCmp(nf); err != nil {
			return nil, err
		} else if ok {
			return expr, nil
		}
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	return Fuzzy{Value: literalFromBareword(word)}, nil
}

// tryTextCmp attempts "field (= | %) text_literal" starting from the
// field-name token (not yet consumed). On any non-match it restores
// the lexer to its pre-attempt position and returns ok=false.
func (p *parser) tryTextCmp(field searchindex.TextField) (Expr, bool, error) {
	savedLex := *p.lex
	savedCur := p.cur

	if err := p.advance(); err != nil {
		return nil, false, err
	}

	var op TextOp
	switch p.cur.kind {
	case tokEq:
		op = TextEq
	case tokLike:
		op = TextLike
	default:
		*p.lex = savedLex
		p.cur = savedCur
		return nil, false, nil
	}

	if err := p.advance(); err != nil {
		return nil, false, err
	}

	value, ok := p.textLiteralText()
	if !ok {
		*p.lex = savedLex
		p.cur = savedCur
		return nil, false, nil
	}
	if err := p.advance(); err != nil {
		return nil, false, err
	}

	return TextCmp{Field: field, Op: op, Value: value}, true, nil
}

// tryNumberCmp attempts "field number_op integer" the same way.
func (p *parser) tryNumberCmp(field searchindex.NumberField) (Expr, bool, error) {
	savedLex := *p.lex
	savedCur := p.cur

	if err := p.advance(); err != nil {
		return nil, false, err
	}

	op, ok := numberOpFromToken(p.cur.kind)
	if !ok {
		*p.lex = savedLex
		p.cur = savedCur
		return nil, false, nil
	}

	if err := p.advance(); err != nil {
		return nil, false, err
	}

	if p.cur.kind != tokWord {
		*p.lex = savedLex
		p.cur = savedCur
		return nil, false, nil
	}
	n, err := strconv.ParseInt(p.cur.text, 10, 32)
	if err != nil {
		*p.lex = savedLex
		p.cur = savedCur
		return nil, false, nil
	}
	if err := p.advance(); err != nil {
		return nil, false, err
	}

	return NumberCmp{Field: field, Op: op, Value: int32(n)}, true, nil
}

func numberOpFromToken(kind tokenKind) (NumberOp, bool) {
	switch kind {
	case tokEq:
		return NumberEq, true
	case tokGt:
		return NumberGt, true
	case tokLt:
		return NumberLt, true
	case tokGe:
		return NumberGe, true
	case tokLe:
		return NumberLe, true
	}
	return 0, false
}

// textLiteralText returns the raw text of the current token if it's a
// valid text_literal (quoted string or bareword), without consuming it.
func (p *parser) textLiteralText() (string, bool) {
	switch p.cur.kind {
	case tokWord, tokString:
		return p.cur.text, true
	}
	return "", false
}

// literalFromBareword classifies a bareword as an integer literal when
// it parses cleanly as one, text otherwise (spec §4.5: "Integer
// literals yield Literal::Number(i32); all others yield Literal::Text").
func literalFromBareword(word string) Literal {
	if n, err := strconv.ParseInt(word, 10, 32); err == nil {
		return Literal{Kind: LiteralNumber, Num: int32(n), Text: word}
	}
	return Literal{Kind: LiteralText, Text: word}
}
