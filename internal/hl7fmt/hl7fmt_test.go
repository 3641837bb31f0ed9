package hl7fmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"

	"hale/internal/hl7fmt"
	"hale/internal/message"
	"hale/internal/parse"
	"hale/internal/query"
)

const sample = "MSH|^~\\&|AccMgr|1\r" +
	"PID|1||599102||DUCK^DONALD^D\r" +
	"IN1|a~b|x&y"

func mustParse(t *testing.T, src string) *message.Message {
	t.Helper()
	msg, err := parse.Message(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return msg
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	hl7fmt.Tree(&buf, mustParse(t, sample), hl7fmt.TreeOpts{})
	got := buf.String()

	for _, want := range []string{
		"MSH\n",
		"  3: AccMgr\n",
		"  5:\n",
		"  5.2: DONALD\n",
		"  1[1]: a\n",
		"  1[2]: b\n",
		"  2.1: x\n",
		"  2.2: y\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tree output missing %q:\n%s", want, got)
		}
	}
	// Flat fields stay on one line.
	if strings.Contains(got, "3.1:") {
		t.Errorf("flat field was expanded:\n%s", got)
	}
}

func TestTreeTruncatesValues(t *testing.T) {
	var buf bytes.Buffer
	msg := mustParse(t, "MSH|^~\\&|aaaaaaaaaaaaaaaaaaaa")
	hl7fmt.Tree(&buf, msg, hl7fmt.TreeOpts{MaxValueWidth: 10})
	if !strings.Contains(buf.String(), "aaaaaaaaa…") {
		t.Errorf("value not truncated:\n%s", buf.String())
	}
}

func TestDumpShape(t *testing.T) {
	out := hl7fmt.Dump(mustParse(t, sample))

	if out.Separators != "|^~\\&" {
		t.Errorf("separators = %q", out.Separators)
	}
	if len(out.Segments) != 3 {
		t.Fatalf("segment count = %d", len(out.Segments))
	}

	pid := out.Segments[1]
	if pid.Name != "PID" {
		t.Fatalf("second segment = %q", pid.Name)
	}
	// Flat fields carry no repeat expansion, split fields do.
	if pid.Fields[0].Repeats != nil {
		t.Errorf("flat field has repeats: %+v", pid.Fields[0])
	}
	name := pid.Fields[4]
	if len(name.Repeats) != 1 || len(name.Repeats[0].Components) != 3 {
		t.Errorf("unexpected name field shape: %+v", name)
	}
	if name.Repeats[0].Components[1].Raw != "DONALD" {
		t.Errorf("component raw = %q", name.Repeats[0].Components[1].Raw)
	}
}

func TestDumpDecodedOnlyWhenDifferent(t *testing.T) {
	out := hl7fmt.Dump(mustParse(t, "MSH|^~\\&|Pierre DuRho\\S\\ne \\T\\ Cie|plain"))
	f := out.Segments[0].Fields[2]
	if f.Decoded != "Pierre DuRho^ne & Cie" {
		t.Errorf("decoded = %q", f.Decoded)
	}
	if out.Segments[0].Fields[3].Decoded != "" {
		t.Errorf("plain field got a decoded copy: %+v", out.Segments[0].Fields[3])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := hl7fmt.JSON(&buf, mustParse(t, sample)); err != nil {
		t.Fatal(err)
	}
	var out hl7fmt.MessageOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Segments) != 3 || out.Segments[2].Name != "IN1" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := hl7fmt.Msgpack(&buf, mustParse(t, sample)); err != nil {
		t.Fatal(err)
	}
	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	var out hl7fmt.MessageOutput
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	if out.Separators != "|^~\\&" || len(out.Segments) != 3 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestCaret(t *testing.T) {
	msg := mustParse(t, sample)
	off := strings.Index(sample, "DONALD")
	cur := query.LocateCursor(msg, off)
	if cur == nil {
		t.Fatal("cursor not found")
	}

	var buf bytes.Buffer
	hl7fmt.Caret(&buf, msg, cur, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "PID|1||599102||DUCK^DONALD^D" {
		t.Errorf("segment line = %q", lines[0])
	}
	col := off - strings.Index(sample, "PID")
	want := strings.Repeat(" ", col) + "^ PID.5.2"
	if lines[1] != want {
		t.Errorf("marker line = %q, want %q", lines[1], want)
	}
}
