package message

import "strings"

// Separators holds the delimiter characters that structure an HL7
// message. The defaults are the conventional `|^&~\` set, but a parsed
// message carries whatever its header segment declared.
//
// Decode and Encode are pure transforms parameterized only by the
// receiver; two messages with different separator sets never interfere.
type Separators struct {
	Field        byte
	Component    byte
	Subcomponent byte
	Repetition   byte
	Escape       byte
}

// DefaultSeparators returns the conventional separator set.
func DefaultSeparators() Separators {
	return Separators{
		Field:        '|',
		Component:    '^',
		Subcomponent: '&',
		Repetition:   '~',
		Escape:       '\\',
	}
}

// EncodingCharacters renders the four-character encoding-characters
// field of a header segment (component, repetition, escape,
// subcomponent — in wire order).
func (s Separators) EncodingCharacters() string {
	return string([]byte{s.Component, s.Repetition, s.Escape, s.Subcomponent})
}

// Decode replaces every recognized escape sequence with its literal
// character: \F\ \S\ \T\ \R\ \E\ for the separators, \.br\ for a
// carriage return, and \Xhh...\ for arbitrary hex-encoded bytes.
// Unrecognized or unterminated sequences pass through verbatim.
func (s Separators) Decode(value string) string {
	esc := s.Escape
	if strings.IndexByte(value, esc) < 0 {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); {
		c := value[i]
		if c != esc {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(value[i+1:], esc)
		if end < 0 {
			// unterminated sequence, keep the rest as-is
			b.WriteString(value[i:])
			break
		}
		token := value[i+1 : i+1+end]
		next := i + end + 2
		if lit, ok := s.decodeToken(token); ok {
			b.WriteString(lit)
		} else {
			b.WriteString(value[i:next])
		}
		i = next
	}
	return b.String()
}

func (s Separators) decodeToken(token string) (string, bool) {
	switch token {
	case "F":
		return string(s.Field), true
	case "S":
		return string(s.Component), true
	case "T":
		return string(s.Subcomponent), true
	case "R":
		return string(s.Repetition), true
	case "E":
		return string(s.Escape), true
	case ".br":
		return "\r", true
	}
	if len(token) >= 3 && token[0] == 'X' && len(token)%2 == 1 {
		decoded := make([]byte, 0, (len(token)-1)/2)
		for i := 1; i < len(token); i += 2 {
			hi, ok1 := hexVal(token[i])
			lo, ok2 := hexVal(token[i+1])
			if !ok1 || !ok2 {
				return "", false
			}
			decoded = append(decoded, hi<<4|lo)
		}
		return string(decoded), true
	}
	return "", false
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// Encode is the inverse of Decode: literal separator characters, the
// escape character, CR and LF become their canonical escape sequences.
// A substring that already forms a valid escape sequence is copied
// through untouched rather than double-escaped.
func (s Separators) Encode(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); {
		c := value[i]
		switch c {
		case s.Escape:
			if n := s.escapeSeqLen(value[i:]); n > 0 {
				b.WriteString(value[i : i+n])
				i += n
				continue
			}
			s.writeEscaped(&b, 'E')
		case s.Field:
			s.writeEscaped(&b, 'F')
		case s.Component:
			s.writeEscaped(&b, 'S')
		case s.Subcomponent:
			s.writeEscaped(&b, 'T')
		case s.Repetition:
			s.writeEscaped(&b, 'R')
		case '\r':
			b.WriteByte(s.Escape)
			b.WriteString("X0D")
			b.WriteByte(s.Escape)
		case '\n':
			b.WriteByte(s.Escape)
			b.WriteString("X0A")
			b.WriteByte(s.Escape)
		default:
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

func (s Separators) writeEscaped(b *strings.Builder, token byte) {
	b.WriteByte(s.Escape)
	b.WriteByte(token)
	b.WriteByte(s.Escape)
}

// escapeSeqLen returns the length of the valid escape sequence at the
// start of v (which begins with the escape character), or 0.
func (s Separators) escapeSeqLen(v string) int {
	end := strings.IndexByte(v[1:], s.Escape)
	if end < 0 {
		return 0
	}
	if _, ok := s.decodeToken(v[1 : 1+end]); !ok {
		return 0
	}
	return end + 2
}
