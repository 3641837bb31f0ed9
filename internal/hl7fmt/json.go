package hl7fmt

import (
	"io"

	"github.com/goccy/go-json"

	"hale/internal/message"
	"hale/internal/source"
)

// Output mirrors the parsed model with plain serializable fields.
// Child levels appear only where a separator actually split something,
// keeping the common flat-field case compact.
type MessageOutput struct {
	Separators string          `json:"separators"`
	Segments   []SegmentOutput `json:"segments"`
}

type SegmentOutput struct {
	Name   string        `json:"name"`
	Span   source.Span   `json:"span"`
	Fields []FieldOutput `json:"fields"`
}

type FieldOutput struct {
	Raw     string         `json:"raw"`
	Decoded string         `json:"decoded,omitempty"`
	Span    source.Span    `json:"span"`
	Repeats []RepeatOutput `json:"repeats,omitempty"`
}

type RepeatOutput struct {
	Raw        string            `json:"raw"`
	Span       source.Span       `json:"span"`
	Components []ComponentOutput `json:"components,omitempty"`
}

type ComponentOutput struct {
	Raw           string       `json:"raw"`
	Span          source.Span  `json:"span"`
	Subcomponents []LeafOutput `json:"subcomponents,omitempty"`
}

type LeafOutput struct {
	Raw  string      `json:"raw"`
	Span source.Span `json:"span"`
}

// Dump converts a parsed message into the serializable form shared by
// the JSON and msgpack writers.
func Dump(msg *message.Message) MessageOutput {
	out := MessageOutput{
		Separators: string(msg.Separators.Field) + msg.Separators.EncodingCharacters(),
	}
	for si := range msg.Segments {
		seg := &msg.Segments[si]
		so := SegmentOutput{Name: seg.Name, Span: seg.Span}
		for fi := range seg.Fields {
			f := &seg.Fields[fi]
			fo := FieldOutput{Raw: f.Raw, Span: f.Span}
			if decoded := msg.Separators.Decode(f.Raw); decoded != f.Raw {
				fo.Decoded = decoded
			}
			if f.HasRepeats() || f.Repeats[0].HasComponents() ||
				f.Repeats[0].Components[0].HasSubcomponents() {
				for ri := range f.Repeats {
					fo.Repeats = append(fo.Repeats, dumpRepeat(&f.Repeats[ri]))
				}
			}
			so.Fields = append(so.Fields, fo)
		}
		out.Segments = append(out.Segments, so)
	}
	return out
}

func dumpRepeat(r *message.Repeat) RepeatOutput {
	ro := RepeatOutput{Raw: r.Raw, Span: r.Span}
	if r.HasComponents() || r.Components[0].HasSubcomponents() {
		for ci := range r.Components {
			c := &r.Components[ci]
			co := ComponentOutput{Raw: c.Raw, Span: c.Span}
			if c.HasSubcomponents() {
				for i := range c.Subcomponents {
					co.Subcomponents = append(co.Subcomponents, LeafOutput{
						Raw:  c.Subcomponents[i].Raw,
						Span: c.Subcomponents[i].Span,
					})
				}
			}
			ro.Components = append(ro.Components, co)
		}
	}
	return ro
}

// JSON writes the message as indented JSON.
func JSON(w io.Writer, msg *message.Message) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Dump(msg))
}
