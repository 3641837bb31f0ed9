// Package query resolves dotted location expressions and raw character
// offsets against a parsed message. A location query names a path like
// `PID.5.1` or `IN2[2].4[1].2.3`: segment (with optional occurrence
// index), field, repeat, component, subcomponent. All indices are
// 1-based.
package query

import (
	"fmt"
	"strings"
)

// Query is a parsed location expression. Zero index values mean the
// level was not named; resolution stops at the deepest level present.
type Query struct {
	Segment      string
	SegmentIndex int
	Field        int
	Repeat       int
	Component    int
	Subcomponent int
}

// ParseError reports a syntactically malformed location expression.
// A well-formed expression that matches nothing is not an error.
type ParseError struct {
	Offset   int
	Fragment string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query parsing failed at position %d: %q", e.Offset, e.Fragment)
}

// Parse parses a location expression. Index separators may be `.`, `-`
// or a space; occurrence/repeat indices use `[n]`.
func Parse(expr string) (Query, error) {
	p := &exprParser{src: expr}
	q, err := p.parse()
	if err != nil {
		return Query{}, err
	}
	return q, nil
}

// String renders the query in canonical dotted form.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString(q.Segment)
	if q.SegmentIndex > 0 {
		fmt.Fprintf(&b, "[%d]", q.SegmentIndex)
	}
	if q.Field == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ".%d", q.Field)
	if q.Repeat > 0 {
		fmt.Fprintf(&b, "[%d]", q.Repeat)
	}
	if q.Component == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ".%d", q.Component)
	if q.Subcomponent > 0 {
		fmt.Fprintf(&b, ".%d", q.Subcomponent)
	}
	return b.String()
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) parse() (Query, error) {
	var q Query

	name := p.takeName()
	if name == "" {
		return q, p.fail()
	}
	q.Segment = name

	var err error
	if q.SegmentIndex, err = p.bracketIndex(); err != nil {
		return q, err
	}
	if q.Field, err = p.dottedIndex(); err != nil {
		return q, err
	}
	if q.Field > 0 {
		if q.Repeat, err = p.bracketIndex(); err != nil {
			return q, err
		}
		if q.Component, err = p.dottedIndex(); err != nil {
			return q, err
		}
	}
	if q.Component > 0 {
		if q.Subcomponent, err = p.dottedIndex(); err != nil {
			return q, err
		}
	}
	if p.pos != len(p.src) {
		return q, p.fail()
	}
	return q, nil
}

func (p *exprParser) fail() *ParseError {
	frag := p.src[p.pos:]
	if len(frag) > 7 {
		frag = frag[:7]
	}
	return &ParseError{Offset: p.pos, Fragment: frag}
}

// takeName consumes a 2-3 character alphanumeric segment name.
func (p *exprParser) takeName() string {
	n := 0
	for p.pos+n < len(p.src) && n < 3 && isAlnum(p.src[p.pos+n]) {
		n++
	}
	if n < 2 {
		return ""
	}
	name := p.src[p.pos : p.pos+n]
	p.pos += n
	return name
}

// bracketIndex consumes `[n]` if present, returning 0 otherwise.
func (p *exprParser) bracketIndex() (int, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return 0, nil
	}
	p.pos++
	n, err := p.positiveInt()
	if err != nil {
		return 0, err
	}
	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return 0, p.fail()
	}
	p.pos++
	return n, nil
}

// dottedIndex consumes a separator (`.`, `-` or space) followed by a
// positive integer if present, returning 0 when the expression ends.
func (p *exprParser) dottedIndex() (int, error) {
	if p.pos >= len(p.src) {
		return 0, nil
	}
	c := p.src[p.pos]
	if c != '.' && c != '-' && c != ' ' {
		return 0, nil
	}
	p.pos++
	return p.positiveInt()
}

func (p *exprParser) positiveInt() (int, error) {
	start := p.pos
	n := 0
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	if p.pos == start || n == 0 {
		return 0, p.fail()
	}
	return n, nil
}

func isAlnum(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
