// Package build constructs messages from owned string values and
// renders them to wire text. The builder family mirrors the parsed
// model's shape but owns its content: no source buffer exists yet to
// borrow spans from, so this is a separate set of types rather than a
// mutable view over a parsed message.
package build

import (
	"hale/internal/message"
	"hale/internal/timestamp"
)

// Message assembles segments for rendering. Segments render in the
// order they were appended.
type Message struct {
	Separators message.Separators
	Segments   []*Segment
}

// NewMessage returns an empty builder rendering with the given
// separator set.
func NewMessage(seps message.Separators) *Message {
	return &Message{Separators: seps}
}

// WithSegment appends a segment and returns the message for chaining.
func (m *Message) WithSegment(s *Segment) *Message {
	m.Segments = append(m.Segments, s)
	return m
}

// SegmentNamed returns the first segment with the given name, or nil.
func (m *Message) SegmentNamed(name string) *Segment {
	for _, s := range m.Segments {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SegmentN returns the nth (1-based) segment with the given name.
func (m *Message) SegmentN(name string, n int) *Segment {
	if n < 1 {
		return nil
	}
	for _, s := range m.Segments {
		if s.Name != name {
			continue
		}
		n--
		if n == 0 {
			return s
		}
	}
	return nil
}

// RemoveSegmentNamed removes the first segment with the given name and
// reports whether one was found.
func (m *Message) RemoveSegmentNamed(name string) bool {
	for i, s := range m.Segments {
		if s.Name == name {
			m.Segments = append(m.Segments[:i], m.Segments[i+1:]...)
			return true
		}
	}
	return false
}

// Segment holds a sparse map of 1-based field slots. Unset slots
// between set ones render as empty fields.
type Segment struct {
	Name   string
	fields map[int]*Field
}

func NewSegment(name string) *Segment {
	return &Segment{Name: name, fields: make(map[int]*Field)}
}

// SetField stores a field at the 1-based index, replacing any previous
// value. Indices below 1 are ignored.
func (s *Segment) SetField(i int, f *Field) {
	if i < 1 {
		return
	}
	if s.fields == nil {
		s.fields = make(map[int]*Field)
	}
	s.fields[i] = f
}

// SetFieldValue stores a flat string field at the 1-based index.
func (s *Segment) SetFieldValue(i int, v string) {
	s.SetField(i, FieldValue(v))
}

// WithField is SetField returning the segment for chaining.
func (s *Segment) WithField(i int, f *Field) *Segment {
	s.SetField(i, f)
	return s
}

// WithFieldValue is SetFieldValue returning the segment for chaining.
func (s *Segment) WithFieldValue(i int, v string) *Segment {
	s.SetFieldValue(i, v)
	return s
}

// WithFieldTimestamp stores a timestamp rendered in the wire grammar.
func (s *Segment) WithFieldTimestamp(i int, ts timestamp.TimeStamp) *Segment {
	s.SetFieldValue(i, ts.String())
	return s
}

// Field returns the field at the 1-based index, or nil.
func (s *Segment) Field(i int) *Field { return s.fields[i] }

// HasField reports whether the 1-based index is set.
func (s *Segment) HasField(i int) bool { return s.fields[i] != nil }

// RemoveField unsets the 1-based index.
func (s *Segment) RemoveField(i int) { delete(s.fields, i) }

func (s *Segment) maxField() int {
	max := 0
	for i := range s.fields {
		if i > max {
			max = i
		}
	}
	return max
}

// Field is either a flat value or a list of repeats. Setting one form
// discards the other.
type Field struct {
	value   string
	repeats []*Repeat
}

// NewField returns an empty flat field.
func NewField() *Field { return &Field{} }

// FieldValue returns a flat field holding v.
func FieldValue(v string) *Field { return &Field{value: v} }

// SetValue makes the field a flat value, dropping any repeats.
func (f *Field) SetValue(v string) {
	f.value = v
	f.repeats = nil
}

// AppendRepeat adds a repeat, converting a flat field into a repeating
// one. The flat value, if any, is discarded.
func (f *Field) AppendRepeat(r *Repeat) *Field {
	f.value = ""
	f.repeats = append(f.repeats, r)
	return f
}

// HasRepeats reports whether the field holds repeats rather than a
// flat value.
func (f *Field) HasRepeats() bool { return f.repeats != nil }

// Value returns the flat value; empty when the field holds repeats.
func (f *Field) Value() string { return f.value }

// Repeat returns the 1-based repeat, or nil.
func (f *Field) Repeat(i int) *Repeat {
	if i < 1 || i > len(f.repeats) {
		return nil
	}
	return f.repeats[i-1]
}

// WithComponent sets a component value on the field's first repeat,
// creating it as needed. Convenience for the common non-repeating case.
func (f *Field) WithComponent(i int, v string) *Field {
	if len(f.repeats) == 0 {
		f.AppendRepeat(NewRepeat())
	}
	f.repeats[0].SetComponentValue(i, v)
	return f
}

// Repeat is one occurrence of a repeating field: a flat value or a
// sparse map of 1-based components.
type Repeat struct {
	value      string
	components map[int]*Component
}

func NewRepeat() *Repeat { return &Repeat{} }

// RepeatValue returns a flat repeat holding v.
func RepeatValue(v string) *Repeat { return &Repeat{value: v} }

// SetComponent stores a component at the 1-based index, converting a
// flat repeat into a structured one.
func (r *Repeat) SetComponent(i int, c *Component) {
	if i < 1 {
		return
	}
	if r.components == nil {
		r.components = make(map[int]*Component)
		r.value = ""
	}
	r.components[i] = c
}

// SetComponentValue stores a flat component value at the 1-based index.
func (r *Repeat) SetComponentValue(i int, v string) {
	r.SetComponent(i, ComponentValue(v))
}

// WithComponent is SetComponent returning the repeat for chaining.
func (r *Repeat) WithComponent(i int, c *Component) *Repeat {
	r.SetComponent(i, c)
	return r
}

// WithComponentValue is SetComponentValue returning the repeat.
func (r *Repeat) WithComponentValue(i int, v string) *Repeat {
	r.SetComponentValue(i, v)
	return r
}

// Component returns the component at the 1-based index, or nil.
func (r *Repeat) Component(i int) *Component { return r.components[i] }

// HasComponents reports whether the repeat is structured.
func (r *Repeat) HasComponents() bool { return r.components != nil }

// Component is a flat value or a sparse map of 1-based subcomponent
// strings.
type Component struct {
	value         string
	subcomponents map[int]string
}

func NewComponent() *Component { return &Component{} }

// ComponentValue returns a flat component holding v.
func ComponentValue(v string) *Component { return &Component{value: v} }

// SetSubcomponent stores a subcomponent string at the 1-based index,
// converting a flat component into a structured one.
func (c *Component) SetSubcomponent(i int, v string) {
	if i < 1 {
		return
	}
	if c.subcomponents == nil {
		c.subcomponents = make(map[int]string)
		c.value = ""
	}
	c.subcomponents[i] = v
}

// WithSubcomponent is SetSubcomponent returning the component.
func (c *Component) WithSubcomponent(i int, v string) *Component {
	c.SetSubcomponent(i, v)
	return c
}

// Subcomponent returns the subcomponent at the 1-based index.
func (c *Component) Subcomponent(i int) string { return c.subcomponents[i] }

// HasSubcomponents reports whether the component is structured.
func (c *Component) HasSubcomponents() bool { return c.subcomponents != nil }
