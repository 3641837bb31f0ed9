package build

import "hale/internal/message"

// FromMessage converts a parsed message into a builder for
// modify-and-rerender round trips. Values are carried over in raw
// (still escaped) form; Encode leaves well-formed escape sequences
// alone at render time, so content survives the trip unchanged.
func FromMessage(msg *message.Message) *Message {
	out := NewMessage(msg.Separators)
	for i := range msg.Segments {
		out.WithSegment(fromSegment(&msg.Segments[i]))
	}
	return out
}

func fromSegment(seg *message.Segment) *Segment {
	s := NewSegment(seg.Name)
	for i := range seg.Fields {
		s.SetField(i+1, fromField(&seg.Fields[i]))
	}
	return s
}

// fromField keeps a field flat unless anything below it actually
// split; a flat copy of the raw text renders back identically.
func fromField(f *message.Field) *Field {
	structured := f.HasRepeats()
	if !structured && len(f.Repeats) > 0 {
		r := &f.Repeats[0]
		structured = r.HasComponents() ||
			(len(r.Components) > 0 && r.Components[0].HasSubcomponents())
	}
	if !structured {
		return FieldValue(f.Raw)
	}
	out := NewField()
	for i := range f.Repeats {
		out.AppendRepeat(fromRepeat(&f.Repeats[i]))
	}
	return out
}

func fromRepeat(r *message.Repeat) *Repeat {
	if !r.HasComponents() && !(len(r.Components) > 0 && r.Components[0].HasSubcomponents()) {
		return RepeatValue(r.Raw)
	}
	out := NewRepeat()
	for i := range r.Components {
		out.SetComponent(i+1, fromComponent(&r.Components[i]))
	}
	return out
}

func fromComponent(c *message.Component) *Component {
	if !c.HasSubcomponents() {
		return ComponentValue(c.Raw)
	}
	out := NewComponent()
	for i := range c.Subcomponents {
		out.SetSubcomponent(i+1, c.Subcomponents[i].Raw)
	}
	return out
}
