package timestamp

import "fmt"

// Stage names the part of the grammar a parse failure occurred in.
type Stage uint8

const (
	StageYear Stage = iota + 1
	StageFraction
	StageOffset
	StageTrailing
)

func (s Stage) String() string {
	switch s {
	case StageYear:
		return "year"
	case StageFraction:
		return "fractional seconds"
	case StageOffset:
		return "offset"
	case StageTrailing:
		return "trailing characters"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ParseError reports a malformed timestamp literal and the stage of
// the grammar that rejected it.
type ParseError struct {
	Stage  Stage
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timestamp parsing failed at %s (position %d)", e.Stage, e.Offset)
}

// Parse parses a complete timestamp literal. Anything left over after
// the grammar is a trailing-characters error; use ParsePrefix to read
// a timestamp off the front of a longer string.
func Parse(s string) (TimeStamp, error) {
	ts, n, err := ParsePrefix(s)
	if err != nil {
		return TimeStamp{}, err
	}
	if n != len(s) {
		return TimeStamp{}, &ParseError{Stage: StageTrailing, Offset: n}
	}
	return ts, nil
}

// ParsePrefix parses the longest timestamp literal at the start of s
// and returns how many characters it consumed.
func ParsePrefix(s string) (TimeStamp, int, error) {
	var ts TimeStamp
	pos := 0

	year, ok := digits(s, pos, 4)
	if !ok {
		return TimeStamp{}, 0, &ParseError{Stage: StageYear, Offset: pos}
	}
	ts.Year = uint16(year)
	pos += 4

	// Two-digit runs nest strictly: a minute can only follow a
	// present hour, so the first absent run ends the chain.
	units := []struct {
		prec Precision
		dst  *uint8
	}{
		{Month, &ts.Month},
		{Day, &ts.Day},
		{Hour, &ts.Hour},
		{Minute, &ts.Minute},
		{Second, &ts.Second},
	}
	for _, u := range units {
		v, ok := digits(s, pos, 2)
		if !ok {
			break
		}
		*u.dst = uint8(v)
		ts.Precision = u.prec
		pos += 2
	}

	if ts.Precision == Second && pos < len(s) && s[pos] == '.' {
		pos++
		n := 0
		frac := 0
		for n < 4 && pos+n < len(s) && isDigit(s[pos+n]) {
			frac = frac*10 + int(s[pos+n]-'0')
			n++
		}
		if n == 0 {
			return TimeStamp{}, 0, &ParseError{Stage: StageFraction, Offset: pos}
		}
		// A one-digit fraction is tenths of a second, so scale by
		// position: .1 is 100000 of 1e6 microseconds.
		ts.Microsecond = uint32(frac * fracMultiplier(n))
		ts.Precision = Subsecond
		pos += n
	}

	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		neg := s[pos] == '-'
		pos++
		hours, hok := digits(s, pos, 2)
		minutes, mok := digits(s, pos+2, 2)
		if !hok || !mok {
			return TimeStamp{}, 0, &ParseError{Stage: StageOffset, Offset: pos}
		}
		if neg {
			hours = -hours
		}
		ts.Offset = Offset{Hours: int8(hours), Minutes: uint8(minutes)}
		ts.HasOffset = true
		pos += 4
	}

	return ts, pos, nil
}

func fracMultiplier(n int) int {
	switch n {
	case 1:
		return 100_000
	case 2:
		return 10_000
	case 3:
		return 1_000
	default:
		return 100
	}
}

// digits reads exactly n decimal digits at offset pos.
func digits(s string, pos, n int) (int, bool) {
	if pos+n > len(s) {
		return 0, false
	}
	v := 0
	for i := pos; i < pos+n; i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
