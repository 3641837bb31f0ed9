package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) into the single message
// source buffer. Spans never own text; the Message that produced them
// must outlive every Span derived from it.
type Span struct {
	Start uint32
	End   uint32
}

// Of builds a Span from int offsets, panicking on overflow. Message
// sources are in-memory buffers, so offsets beyond uint32 mean the
// caller has already gone wrong.
func Of(start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return Span{Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Text resolves the span against the source buffer it was built from.
// The result aliases src; no copy is made.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// ContainsInclusive reports whether off falls within the span, counting
// the End offset itself. Cursor location attributes a separator offset
// to the node that just ended, which needs the inclusive upper bound.
func (s Span) ContainsInclusive(off uint32) bool {
	return off >= s.Start && off <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
