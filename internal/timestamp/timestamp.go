// Package timestamp parses the clinical date-time literal grammar
// YYYY[MM[DD[HH[MM[SS[.S{1,4}]]]]]][+/-ZZZZ]. Values are structural
// only: month 13 or day 32 parse fine, calendar validation belongs to
// whatever calendar library the caller feeds the fields into.
package timestamp

import (
	"fmt"
	"strings"
)

// Precision says how deep into the grammar a timestamp goes. Finer
// fields of a TimeStamp are meaningful only up to its precision.
type Precision uint8

const (
	Year Precision = iota
	Month
	Day
	Hour
	Minute
	Second
	Subsecond
)

func (p Precision) String() string {
	switch p {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	case Subsecond:
		return "subsecond"
	default:
		return fmt.Sprintf("precision(%d)", uint8(p))
	}
}

// Offset is a UTC offset. Negative hours mean behind UTC; minutes
// carry no sign of their own.
type Offset struct {
	Hours   int8
	Minutes uint8
}

func (o Offset) String() string {
	return fmt.Sprintf("%+03d%02d", o.Hours, o.Minutes)
}

// TimeStamp is a parsed date-time literal. Fields finer than Precision
// hold their zero value and carry no meaning; reduced precision is not
// the same thing as midnight. The offset is independent of precision
// and may accompany a bare year.
type TimeStamp struct {
	Year        uint16
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	Microsecond uint32

	Precision Precision
	Offset    Offset
	HasOffset bool
}

// String renders the timestamp back into the wire grammar, emitting
// exactly the fields the precision covers. Fractional seconds print as
// four digits of the microsecond value.
func (ts TimeStamp) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d", ts.Year)
	if ts.Precision >= Month {
		fmt.Fprintf(&b, "%02d", ts.Month)
	}
	if ts.Precision >= Day {
		fmt.Fprintf(&b, "%02d", ts.Day)
	}
	if ts.Precision >= Hour {
		fmt.Fprintf(&b, "%02d", ts.Hour)
	}
	if ts.Precision >= Minute {
		fmt.Fprintf(&b, "%02d", ts.Minute)
	}
	if ts.Precision >= Second {
		fmt.Fprintf(&b, "%02d", ts.Second)
	}
	if ts.Precision >= Subsecond {
		fmt.Fprintf(&b, ".%04d", ts.Microsecond/100)
	}
	if ts.HasOffset {
		b.WriteString(ts.Offset.String())
	}
	return b.String()
}
