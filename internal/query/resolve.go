package query

import "hale/internal/message"

// Resolve walks the query path against a parsed message and returns the
// deepest node the query names, or nil when any level is absent. The
// repeat index defaults to 1 when a component is named without one.
func Resolve(msg *message.Message, q Query) message.Node {
	var seg *message.Segment
	if q.SegmentIndex > 0 {
		seg = msg.SegmentN(q.Segment, q.SegmentIndex)
	} else {
		seg = msg.Segment(q.Segment)
	}
	if seg == nil {
		return nil
	}
	if q.Field == 0 {
		return seg
	}

	f := seg.Field(q.Field)
	if f == nil {
		return nil
	}
	if q.Repeat == 0 && q.Component == 0 {
		return f
	}

	ri := q.Repeat
	if ri == 0 {
		ri = 1
	}
	r := f.Repeat(ri)
	if r == nil {
		return nil
	}
	if q.Component == 0 {
		return r
	}

	c := r.Component(q.Component)
	if c == nil {
		return nil
	}
	if q.Subcomponent == 0 {
		return c
	}

	sc := c.Subcomponent(q.Subcomponent)
	if sc == nil {
		return nil
	}
	return sc
}
