package parse

import "fmt"

// ErrKind discriminates the structural parse failures. These are the
// only ways a parse can fail; everything else about the message content
// is accepted as-is.
type ErrKind uint8

const (
	// KindEmptyInput: the source text is empty.
	KindEmptyInput ErrKind = iota + 1
	// KindIncompleteHeader: the header segment is shorter than the
	// name + field separator + four encoding characters it must carry,
	// or its name is not a 2-3 character alphanumeric code.
	KindIncompleteHeader
	// KindUnterminatedHeader: the encoding-characters field is not
	// followed by a field separator, a segment terminator, or the end
	// of input.
	KindUnterminatedHeader
)

func (k ErrKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindIncompleteHeader:
		return "incomplete header segment"
	case KindUnterminatedHeader:
		return "unterminated header segment"
	}
	return "unknown"
}

// Error is a structural parse failure. Offset is the byte position the
// parse failed at; Fragment is a short snippet of the input from there.
type Error struct {
	Kind     ErrKind
	Offset   int
	Fragment string
}

func (e *Error) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("message parsing failed at position %d: %s", e.Offset, e.Kind)
	}
	return fmt.Sprintf("message parsing failed at position %d: %s: %q", e.Offset, e.Kind, e.Fragment)
}

func errAt(kind ErrKind, src string, offset int) *Error {
	frag := src[min(offset, len(src)):]
	if len(frag) > 7 {
		frag = frag[:7]
	}
	return &Error{Kind: kind, Offset: offset, Fragment: frag}
}
