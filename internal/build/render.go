package build

import (
	"strings"

	"hale/internal/message"
)

// Render serializes the message with the standard carriage-return
// segment terminator.
func (m *Message) Render() string {
	return m.RenderWithTerminator("\r")
}

// RenderWithTerminator serializes the message joining segments with
// the given terminator. Leaf values pass through Separators.Encode, so
// literal delimiter characters inside values come out escaped.
func (m *Message) RenderWithTerminator(term string) string {
	var b strings.Builder
	for i, s := range m.Segments {
		if i > 0 {
			b.WriteString(term)
		}
		s.render(&b, m.Separators)
	}
	return b.String()
}

func (m *Message) String() string { return m.Render() }

// render writes the segment. The header segment's first two slots are
// the field separator and the encoding characters; they come from the
// separator set itself, and any builder values at indices 1 and 2 are
// ignored. User fields start at 3.
func (s *Segment) render(b *strings.Builder, seps message.Separators) {
	b.WriteString(s.Name)
	if len(s.fields) == 0 {
		return
	}

	first := 1
	if s.Name == "MSH" {
		b.WriteByte(seps.Field)
		b.WriteString(seps.EncodingCharacters())
		first = 3
	}
	b.WriteByte(seps.Field)
	max := s.maxField()
	for i := first; i <= max; i++ {
		if f := s.fields[i]; f != nil {
			f.render(b, seps)
		}
		if i < max {
			b.WriteByte(seps.Field)
		}
	}
}

func (f *Field) render(b *strings.Builder, seps message.Separators) {
	if f.repeats == nil {
		b.WriteString(seps.Encode(f.value))
		return
	}
	for i, r := range f.repeats {
		if i > 0 {
			b.WriteByte(seps.Repetition)
		}
		r.render(b, seps)
	}
}

func (r *Repeat) render(b *strings.Builder, seps message.Separators) {
	if r.components == nil {
		b.WriteString(seps.Encode(r.value))
		return
	}
	max := 0
	for i := range r.components {
		if i > max {
			max = i
		}
	}
	for i := 1; i <= max; i++ {
		if c := r.components[i]; c != nil {
			c.render(b, seps)
		}
		if i < max {
			b.WriteByte(seps.Component)
		}
	}
}

func (c *Component) render(b *strings.Builder, seps message.Separators) {
	if c.subcomponents == nil {
		b.WriteString(seps.Encode(c.value))
		return
	}
	max := 0
	for i := range c.subcomponents {
		if i > max {
			max = i
		}
	}
	for i := 1; i <= max; i++ {
		if v, ok := c.subcomponents[i]; ok {
			b.WriteString(seps.Encode(v))
		}
		if i < max {
			b.WriteByte(seps.Subcomponent)
		}
	}
}
