// Package parse turns raw HL7 message text into the zero-copy
// structural index of the message package. Parsing is a single forward
// pass: no content is copied, no backtracking across segment
// boundaries, and no semantic validation is performed.
package parse

import (
	"strings"

	"hale/internal/message"
	"hale/internal/source"
)

// Message parses src with the strict terminator policy: only a carriage
// return ends a segment. A line feed is ordinary field content; input
// that relies on LF terminators degrades to fewer, longer segments.
func Message(src string) (*message.Message, error) {
	return run(src, false)
}

// MessageLenient parses src accepting CR, LF, or CRLF as segment
// terminators. A CRLF pair counts as a single terminator, never two.
func MessageLenient(src string) (*message.Message, error) {
	return run(src, true)
}

func run(src string, lenient bool) (*message.Message, error) {
	if len(src) == 0 {
		return nil, errAt(KindEmptyInput, src, 0)
	}

	seps, err := header(src, lenient)
	if err != nil {
		return nil, err
	}

	msg := &message.Message{
		Source:     src,
		Separators: seps,
	}

	first := true
	for chunk := range terminatedChunks(src, lenient) {
		if chunk.Empty() {
			continue // consecutive terminators
		}
		if first {
			msg.Segments = append(msg.Segments, headerSegment(src, chunk, seps))
			first = false
			continue
		}
		seg, ok := segment(src, chunk, seps)
		if !ok {
			// Not a segment start; strict parses of LF-terminated
			// input end up here. Everything before this chunk stays.
			break
		}
		msg.Segments = append(msg.Segments, seg)
	}
	return msg, nil
}

// header validates the fixed prefix of the first segment (name, field
// separator, four encoding characters) and extracts the effective
// separators.
func header(src string, lenient bool) (message.Separators, error) {
	var seps message.Separators
	n := nameLen(src)
	if n == 0 {
		return seps, errAt(KindIncompleteHeader, src, 0)
	}
	if len(src) < n+5 {
		return seps, errAt(KindIncompleteHeader, src, len(src))
	}
	seps = message.Separators{
		Field:        src[n],
		Component:    src[n+1],
		Repetition:   src[n+2],
		Escape:       src[n+3],
		Subcomponent: src[n+4],
	}
	if len(src) > n+5 {
		next := src[n+5]
		if next != seps.Field && !isTerminator(next, lenient) {
			return seps, errAt(KindUnterminatedHeader, src, n+5)
		}
	}
	return seps, nil
}

func isTerminator(c byte, lenient bool) bool {
	return c == '\r' || (lenient && c == '\n')
}

// nameLen returns the length of the 2-3 character alphanumeric segment
// name at the start of s, or 0 when there is none.
func nameLen(s string) int {
	n := 0
	for n < len(s) && n < 3 && isAlnum(s[n]) {
		n++
	}
	if n < 2 {
		return 0
	}
	// a 4th alphanumeric character means this is not a segment name
	if n == 3 && len(s) > 3 && isAlnum(s[3]) {
		return 0
	}
	return n
}

func isAlnum(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

// terminatedChunks yields the spans between segment terminators in
// source order. Terminator bytes belong to no chunk.
func terminatedChunks(src string, lenient bool) func(yield func(source.Span) bool) {
	return func(yield func(source.Span) bool) {
		start := 0
		i := 0
		for i < len(src) {
			c := src[i]
			if c == '\r' || (lenient && c == '\n') {
				if !yield(source.Of(start, i)) {
					return
				}
				if lenient && c == '\r' && i+1 < len(src) && src[i+1] == '\n' {
					i++ // CRLF is one terminator
				}
				i++
				start = i
				continue
			}
			i++
		}
		if start < len(src) {
			yield(source.Of(start, len(src)))
		}
	}
}

// headerSegment indexes the header chunk. Its first two fields are
// pseudo-fields: the field separator character itself and the four
// encoding characters. Neither is split further, so querying the
// encoding-characters field yields the raw character run.
func headerSegment(src string, chunk source.Span, seps message.Separators) message.Segment {
	base := int(chunk.Start)
	n := nameLen(chunk.Text(src))

	fields := []message.Field{
		leafField(src, source.Of(base+n, base+n+1)),
		leafField(src, source.Of(base+n+1, base+n+5)),
	}
	if int(chunk.End) > base+n+5 {
		// skip the field separator that closes the encoding field
		rest := source.Of(base+n+6, int(chunk.End))
		for _, fs := range splitOn(src, rest, seps.Field) {
			fields = append(fields, field(src, fs, seps))
		}
	}
	return message.Segment{
		Name:   src[base : base+n],
		Raw:    chunk.Text(src),
		Span:   chunk,
		Fields: fields,
	}
}

// segment indexes a non-header chunk, reporting ok=false when the chunk
// does not begin with a segment name.
func segment(src string, chunk source.Span, seps message.Separators) (message.Segment, bool) {
	text := chunk.Text(src)
	n := nameLen(text)
	if n == 0 || (n < len(text) && text[n] != seps.Field) {
		return message.Segment{}, false
	}
	base := int(chunk.Start)

	var fields []message.Field
	if n < len(text) {
		body := source.Of(base+n+1, int(chunk.End))
		for _, fs := range splitOn(src, body, seps.Field) {
			fields = append(fields, field(src, fs, seps))
		}
	}
	return message.Segment{
		Name:   src[base : base+n],
		Raw:    text,
		Span:   chunk,
		Fields: fields,
	}, true
}

func field(src string, span source.Span, seps message.Separators) message.Field {
	f := message.Field{Raw: span.Text(src), Span: span}
	for _, rs := range splitOn(src, span, seps.Repetition) {
		f.Repeats = append(f.Repeats, repeat(src, rs, seps))
	}
	return f
}

func repeat(src string, span source.Span, seps message.Separators) message.Repeat {
	r := message.Repeat{Raw: span.Text(src), Span: span}
	for _, cs := range splitOn(src, span, seps.Component) {
		r.Components = append(r.Components, component(src, cs, seps))
	}
	return r
}

func component(src string, span source.Span, seps message.Separators) message.Component {
	c := message.Component{Raw: span.Text(src), Span: span}
	for _, ss := range splitOn(src, span, seps.Subcomponent) {
		c.Subcomponents = append(c.Subcomponents, message.Subcomponent{
			Raw:  ss.Text(src),
			Span: ss,
		})
	}
	return c
}

// leafField wraps a span as a field with a single unsplit
// repeat/component/subcomponent chain. Used for the header
// pseudo-fields, whose content must not be re-split on the very
// separators it declares.
func leafField(src string, span source.Span) message.Field {
	return message.Field{
		Raw:  span.Text(src),
		Span: span,
		Repeats: []message.Repeat{{
			Raw:  span.Text(src),
			Span: span,
			Components: []message.Component{{
				Raw:  span.Text(src),
				Span: span,
				Subcomponents: []message.Subcomponent{{
					Raw:  span.Text(src),
					Span: span,
				}},
			}},
		}},
	}
}

// splitOn splits a span on the raw separator byte. Structural splitting
// happens before escape decoding; well-formed messages never carry a
// literal separator inside an escape sequence, so no escape scanning is
// needed here. An empty span still yields one empty token.
func splitOn(src string, span source.Span, sep byte) []source.Span {
	text := span.Text(src)
	base := int(span.Start)
	out := make([]source.Span, 0, strings.Count(text, string(sep))+1)
	start := 0
	for {
		i := strings.IndexByte(text[start:], sep)
		if i < 0 {
			out = append(out, source.Of(base+start, base+len(text)))
			return out
		}
		out = append(out, source.Of(base+start, base+start+i))
		start += i + 1
	}
}
