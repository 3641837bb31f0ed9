package hl7fmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hale/internal/message"
	"hale/internal/query"
)

var caretStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

// Caret prints the segment containing the cursor with a marker under
// the exact offset, then the resolved structural path:
//
//	PID|1||599102||DUCK^DONALD^D
//	               ^ PID.5.1
//
// Control characters in the segment print as spaces so the marker
// column stays aligned.
func Caret(w io.Writer, msg *message.Message, cur *query.Cursor, color bool) {
	seg := cur.Segment
	line := sanitize(seg.Raw)
	rel := cur.Offset - int(seg.Span.Start)
	if rel > len(seg.Raw) {
		rel = len(seg.Raw)
	}
	pad := runewidth.StringWidth(sanitize(seg.Raw[:rel]))

	marker := "^"
	if color {
		marker = caretStyle.Render(marker)
	}
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "%s%s %s\n", strings.Repeat(" ", pad), marker, cur)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 {
			return ' '
		}
		return r
	}, s)
}
