package query

import (
	"fmt"
	"strings"

	"hale/internal/message"
)

// Cursor identifies the structural path enclosing a character offset.
// Every populated level carries both the node and its 1-based index;
// deeper levels are nil when the offset falls outside them (an offset
// on a field separator stops at the segment level, and so on).
type Cursor struct {
	Message *message.Message
	Offset  int

	Segment      *message.Segment
	SegmentIndex int // occurrence among same-named segments

	Field      *message.Field
	FieldIndex int

	Repeat      *message.Repeat
	RepeatIndex int

	Component      *message.Component
	ComponentIndex int

	Subcomponent      *message.Subcomponent
	SubcomponentIndex int
}

// LocateCursor maps a character offset into the message onto the chain
// of nodes that contain it. An offset on a separator belongs to the
// node that just ended, except a segment terminator, where the offset
// still lies in the terminated segment. Returns nil when the offset is
// outside the source or lands between segments.
func LocateCursor(msg *message.Message, offset int) *Cursor {
	if offset < 0 || offset >= len(msg.Source) {
		return nil
	}

	cur := &Cursor{Message: msg, Offset: offset}
	off := uint32(offset)

	nth := make(map[string]int, 4)
	for i := range msg.Segments {
		seg := &msg.Segments[i]
		nth[seg.Name]++
		// A later segment wins a shared boundary offset, but spans
		// never overlap: the terminator byte between two segments
		// belongs to the earlier one alone.
		if seg.Span.ContainsInclusive(off) {
			cur.Segment = seg
			cur.SegmentIndex = nth[seg.Name]
			break
		}
	}
	if cur.Segment == nil {
		return nil
	}

	for i := range cur.Segment.Fields {
		if f := &cur.Segment.Fields[i]; f.Span.ContainsInclusive(off) {
			cur.Field = f
			cur.FieldIndex = i + 1
		}
	}
	if cur.Field == nil {
		return cur
	}

	for i := range cur.Field.Repeats {
		if r := &cur.Field.Repeats[i]; r.Span.ContainsInclusive(off) {
			cur.Repeat = r
			cur.RepeatIndex = i + 1
		}
	}
	if cur.Repeat == nil {
		return cur
	}

	for i := range cur.Repeat.Components {
		if c := &cur.Repeat.Components[i]; c.Span.ContainsInclusive(off) {
			cur.Component = c
			cur.ComponentIndex = i + 1
		}
	}
	if cur.Component == nil {
		return cur
	}

	for i := range cur.Component.Subcomponents {
		if sc := &cur.Component.Subcomponents[i]; sc.Span.ContainsInclusive(off) {
			cur.Subcomponent = sc
			cur.SubcomponentIndex = i + 1
		}
	}
	return cur
}

// Node returns the deepest node the cursor resolved to.
func (c *Cursor) Node() message.Node {
	switch {
	case c.Subcomponent != nil:
		return c.Subcomponent
	case c.Component != nil:
		return c.Component
	case c.Repeat != nil:
		return c.Repeat
	case c.Field != nil:
		return c.Field
	default:
		return c.Segment
	}
}

// Query converts the cursor into the equivalent location query,
// omitting the levels String would omit.
func (c *Cursor) Query() Query {
	q := Query{Segment: c.Segment.Name}
	if c.Message.SegmentCount(c.Segment.Name) > 1 {
		q.SegmentIndex = c.SegmentIndex
	}
	if c.Field == nil {
		return q
	}
	q.Field = c.FieldIndex
	if c.Repeat == nil {
		return q
	}
	if c.Field.HasRepeats() {
		q.Repeat = c.RepeatIndex
	}
	if c.Component != nil && c.Repeat.HasComponents() {
		q.Component = c.ComponentIndex
		if c.Subcomponent != nil && c.Component.HasSubcomponents() {
			q.Subcomponent = c.SubcomponentIndex
		}
	}
	return q
}

// String renders the cursor in short dotted form, eliding levels that
// carry no information: the segment occurrence when the name is unique,
// the repeat index when the field has a single repeat, and component or
// subcomponent indices when nothing was split at that level.
func (c *Cursor) String() string {
	var b strings.Builder
	b.WriteString(c.Segment.Name)
	if c.Message.SegmentCount(c.Segment.Name) > 1 {
		fmt.Fprintf(&b, "[%d]", c.SegmentIndex)
	}
	if c.Field == nil {
		return b.String()
	}
	fmt.Fprintf(&b, ".%d", c.FieldIndex)
	if c.Repeat == nil {
		return b.String()
	}
	if c.Field.HasRepeats() {
		fmt.Fprintf(&b, "[%d]", c.RepeatIndex)
	}
	if c.Component == nil || !c.Repeat.HasComponents() {
		return b.String()
	}
	fmt.Fprintf(&b, ".%d", c.ComponentIndex)
	if c.Subcomponent != nil && c.Component.HasSubcomponents() {
		fmt.Fprintf(&b, ".%d", c.SubcomponentIndex)
	}
	return b.String()
}
