// Package hl7fmt renders parsed messages for the CLI: an indented
// structural tree, JSON and msgpack dumps, and source-line caret
// rendering for cursor lookups. The library packages themselves never
// format output; everything presentation-related lives here.
package hl7fmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hale/internal/message"
)

// TreeOpts controls Tree rendering.
type TreeOpts struct {
	Color bool
	// Decode prints escape-decoded values instead of raw ones.
	Decode bool
	// MaxValueWidth truncates long values; 0 means no limit.
	MaxValueWidth int
}

var (
	segStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	plainStyle = lipgloss.NewStyle()
)

func (o TreeOpts) seg() lipgloss.Style {
	if o.Color {
		return segStyle
	}
	return plainStyle
}

func (o TreeOpts) index() lipgloss.Style {
	if o.Color {
		return indexStyle
	}
	return plainStyle
}

// Tree writes an indented structural view of the message. Levels that
// did not split (a field with one repeat holding one component) print
// as a single line; deeper lines appear only where separators did.
func Tree(w io.Writer, msg *message.Message, opts TreeOpts) {
	for si := range msg.Segments {
		seg := &msg.Segments[si]
		fmt.Fprintln(w, opts.seg().Render(seg.Name))
		for fi := range seg.Fields {
			f := &seg.Fields[fi]
			label := fmt.Sprintf("%d", fi+1)
			if !f.HasRepeats() {
				treeRepeat(w, msg, opts, label, &f.Repeats[0])
				continue
			}
			for ri := range f.Repeats {
				treeRepeat(w, msg, opts, fmt.Sprintf("%s[%d]", label, ri+1), &f.Repeats[ri])
			}
		}
	}
}

func treeRepeat(w io.Writer, msg *message.Message, opts TreeOpts, label string, r *message.Repeat) {
	if !r.HasComponents() {
		c := &r.Components[0]
		if !c.HasSubcomponents() {
			treeLeaf(w, msg, opts, label, c.Subcomponents[0].Raw)
			return
		}
		treeComponent(w, msg, opts, label, c)
		return
	}
	fmt.Fprintf(w, "  %s\n", opts.index().Render(label+":"))
	for ci := range r.Components {
		treeComponent(w, msg, opts, fmt.Sprintf("%s.%d", label, ci+1), &r.Components[ci])
	}
}

func treeComponent(w io.Writer, msg *message.Message, opts TreeOpts, label string, c *message.Component) {
	if !c.HasSubcomponents() {
		treeLeaf(w, msg, opts, label, c.Subcomponents[0].Raw)
		return
	}
	fmt.Fprintf(w, "  %s\n", opts.index().Render(label+":"))
	for i := range c.Subcomponents {
		treeLeaf(w, msg, opts, fmt.Sprintf("%s.%d", label, i+1), c.Subcomponents[i].Raw)
	}
}

func treeLeaf(w io.Writer, msg *message.Message, opts TreeOpts, label, raw string) {
	value := raw
	if opts.Decode {
		value = msg.Separators.Decode(raw)
	}
	value = truncate(value, opts.MaxValueWidth)
	fmt.Fprintf(w, "  %s %s\n", opts.index().Render(label+":"), value)
}

// truncate shortens s to the given display width, ellipsis included.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > width-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	return b.String()
}
