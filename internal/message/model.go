// Package message holds the parsed HL7 message model: an index of
// segment/field/repeat/component/subcomponent spans over a single
// source string. Nodes never copy field content; every Raw value is a
// slice of the message source, and the Message must outlive every node
// read from it.
package message

import "hale/internal/source"

// Node is any structural entity of a parsed message.
type Node interface {
	// RawValue returns the undecoded text of the node exactly as it
	// appears in the source, including any child separators.
	RawValue() string
	// Bounds returns the node's span in the message source.
	Bounds() source.Span
}

// Message is the root of the parsed index. It owns the source text;
// all child nodes borrow from it.
type Message struct {
	Source     string
	Separators Separators
	Segments   []Segment
}

// Segment is a top-level record: a short name code plus ordered fields.
// Repeated segment types are legal; same-named segments are told apart
// only by position.
type Segment struct {
	Name   string
	Raw    string
	Span   source.Span
	Fields []Field
}

// Field is a one-based slot within a segment. A field always carries at
// least one repeat; a field without repetition separators is its own
// single repeat.
type Field struct {
	Raw     string
	Span    source.Span
	Repeats []Repeat
}

// Repeat is one occurrence of a (possibly repeating) field value.
type Repeat struct {
	Raw        string
	Span       source.Span
	Components []Component
}

// Component subdivides a repeat on the component separator.
type Component struct {
	Raw           string
	Span          source.Span
	Subcomponents []Subcomponent
}

// Subcomponent is the leaf: raw, possibly escape-encoded text.
type Subcomponent struct {
	Raw  string
	Span source.Span
}

// Segment returns the first segment with the given name, or nil.
func (m *Message) Segment(name string) *Segment {
	for i := range m.Segments {
		if m.Segments[i].Name == name {
			return &m.Segments[i]
		}
	}
	return nil
}

// NamedSegments returns all segments with the given name in source
// order. The slice is built per call, so iteration is restartable.
func (m *Message) NamedSegments(name string) []*Segment {
	var out []*Segment
	for i := range m.Segments {
		if m.Segments[i].Name == name {
			out = append(out, &m.Segments[i])
		}
	}
	return out
}

// SegmentN returns the nth (1-based) segment with the given name.
func (m *Message) SegmentN(name string, n int) *Segment {
	if n < 1 {
		return nil
	}
	for i := range m.Segments {
		if m.Segments[i].Name != name {
			continue
		}
		n--
		if n == 0 {
			return &m.Segments[i]
		}
	}
	return nil
}

// SegmentCount returns how many segments carry the given name.
func (m *Message) SegmentCount(name string) int {
	n := 0
	for i := range m.Segments {
		if m.Segments[i].Name == name {
			n++
		}
	}
	return n
}

// HasSegment reports whether at least one segment carries the name.
func (m *Message) HasSegment(name string) bool {
	return m.Segment(name) != nil
}

func (m *Message) RawValue() string { return m.Source }
func (m *Message) Bounds() source.Span { return source.Of(0, len(m.Source)) }

func (s *Segment) RawValue() string { return s.Raw }
func (s *Segment) Bounds() source.Span { return s.Span }

func (f *Field) RawValue() string { return f.Raw }
func (f *Field) Bounds() source.Span { return f.Span }

func (r *Repeat) RawValue() string { return r.Raw }
func (r *Repeat) Bounds() source.Span { return r.Span }

func (c *Component) RawValue() string { return c.Raw }
func (c *Component) Bounds() source.Span { return c.Span }

func (sc *Subcomponent) RawValue() string { return sc.Raw }
func (sc *Subcomponent) Bounds() source.Span { return sc.Span }

// DecodedValue returns the escape-decoded text of any node.
func DecodedValue(n Node, seps Separators) string {
	return seps.Decode(n.RawValue())
}

// Field returns the field at the 1-based index, or nil. Absent trailing
// fields are a normal condition, never an error.
func (s *Segment) Field(i int) *Field {
	if i < 1 || i > len(s.Fields) {
		return nil
	}
	return &s.Fields[i-1]
}

// Repeat returns the repeat at the 1-based index, or nil.
func (f *Field) Repeat(i int) *Repeat {
	if i < 1 || i > len(f.Repeats) {
		return nil
	}
	return &f.Repeats[i-1]
}

// HasRepeats reports whether the field repeats more than once.
func (f *Field) HasRepeats() bool {
	return len(f.Repeats) > 1
}

// Component returns the component at the 1-based index of the first
// repeat, the common case for non-repeating fields.
func (f *Field) Component(i int) *Component {
	r := f.Repeat(1)
	if r == nil {
		return nil
	}
	return r.Component(i)
}

// Component returns the component at the 1-based index, or nil.
func (r *Repeat) Component(i int) *Component {
	if i < 1 || i > len(r.Components) {
		return nil
	}
	return &r.Components[i-1]
}

// HasComponents reports whether the repeat splits into more than one
// component.
func (r *Repeat) HasComponents() bool {
	return len(r.Components) > 1
}

// Subcomponent returns the subcomponent at the 1-based index, or nil.
func (c *Component) Subcomponent(i int) *Subcomponent {
	if i < 1 || i > len(c.Subcomponents) {
		return nil
	}
	return &c.Subcomponents[i-1]
}

// HasSubcomponents reports whether the component splits into more than
// one subcomponent.
func (c *Component) HasSubcomponents() bool {
	return len(c.Subcomponents) > 1
}
