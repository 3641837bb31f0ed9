package query_test

import (
	"errors"
	"testing"

	"hale/internal/message"
	"hale/internal/parse"
	"hale/internal/query"
)

const sample = "MSH|^~\\&|AccMgr|1\r" +
	"PID|1||599102||DUCK^DONALD^D\r" +
	"IN2|a|b|c|d\r" +
	"IN2|w|x~y|c1^s1&s2|q\r"

func mustParse(t *testing.T, src string) *message.Message {
	t.Helper()
	msg, err := parse.Message(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return msg
}

func TestParseQuery(t *testing.T) {
	cases := []struct {
		expr string
		want query.Query
	}{
		{"PID", query.Query{Segment: "PID"}},
		{"ZA1", query.Query{Segment: "ZA1"}},
		{"AB", query.Query{Segment: "AB"}},
		{"PID[2]", query.Query{Segment: "PID", SegmentIndex: 2}},
		{"PID.5", query.Query{Segment: "PID", Field: 5}},
		{"PID-5", query.Query{Segment: "PID", Field: 5}},
		{"PID 5", query.Query{Segment: "PID", Field: 5}},
		{"PID.5.1", query.Query{Segment: "PID", Field: 5, Component: 1}},
		{"PID.5.1.2", query.Query{Segment: "PID", Field: 5, Component: 1, Subcomponent: 2}},
		{"IN2[2].4[1].2.3", query.Query{Segment: "IN2", SegmentIndex: 2, Field: 4, Repeat: 1, Component: 2, Subcomponent: 3}},
		{"PID.5[3]", query.Query{Segment: "PID", Field: 5, Repeat: 3}},
		{"PID-5-1", query.Query{Segment: "PID", Field: 5, Component: 1}},
	}
	for _, tc := range cases {
		got, err := query.Parse(tc.expr)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.expr, got, tc.want)
		}
	}
}

func TestParseQueryErrors(t *testing.T) {
	cases := []struct {
		expr   string
		offset int
	}{
		{"", 0},
		{"P", 0},
		{"P.1", 0},
		{"|ID.1", 0},
		{"PID.", 4},
		{"PID..2", 4},
		{"PID.5x", 5},
		{"PID[", 4},
		{"PID[2", 5},
		{"PID[x]", 4},
		{"PIDX.1", 3},
	}
	for _, tc := range cases {
		_, err := query.Parse(tc.expr)
		if err == nil {
			t.Errorf("Parse(%q): expected error, got none", tc.expr)
			continue
		}
		var perr *query.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): error %T is not a ParseError", tc.expr, err)
			continue
		}
		if perr.Offset != tc.offset {
			t.Errorf("Parse(%q): offset = %d, want %d", tc.expr, perr.Offset, tc.offset)
		}
	}
}

func TestQueryString(t *testing.T) {
	// Canonical form uses dots and brackets regardless of the
	// separators the input used, and parses back to the same query.
	cases := []struct {
		expr string
		want string
	}{
		{"PID", "PID"},
		{"PID-5 1", "PID.5.1"},
		{"IN2[2].4", "IN2[2].4"},
		{"IN2[2].4[1].2.3", "IN2[2].4[1].2.3"},
		{"PID.5[3]", "PID.5[3]"},
	}
	for _, tc := range cases {
		q, err := query.Parse(tc.expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.expr, err)
		}
		if got := q.String(); got != tc.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.expr, got, tc.want)
		}
		back, err := query.Parse(q.String())
		if err != nil {
			t.Fatalf("Parse(%q) round trip: %v", q.String(), err)
		}
		if back != q {
			t.Errorf("round trip of %q changed query: %+v != %+v", tc.expr, back, q)
		}
	}
}

func TestResolve(t *testing.T) {
	msg := mustParse(t, sample)
	cases := []struct {
		expr string
		want string
	}{
		{"MSH.1", "|"},
		{"MSH.2", "^~\\&"},
		{"MSH.3", "AccMgr"},
		{"PID", "PID|1||599102||DUCK^DONALD^D"},
		{"PID.3", "599102"},
		{"PID.5", "DUCK^DONALD^D"},
		{"PID.5.1", "DUCK"},
		{"PID.5.2", "DONALD"},
		{"IN2.2", "b"},
		{"IN2[1].2", "b"},
		{"IN2[2].2", "x~y"},
		{"IN2[2].2[1]", "x"},
		{"IN2[2].2[2]", "y"},
		{"IN2[2].2.1", "x"},
		{"IN2[2].2[2].1", "y"},
		{"IN2[2].3.2", "s1&s2"},
		{"IN2[2].3.2.2", "s2"},
	}
	for _, tc := range cases {
		q, err := query.Parse(tc.expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.expr, err)
		}
		node := query.Resolve(msg, q)
		if node == nil {
			t.Errorf("Resolve(%q) = nil, want %q", tc.expr, tc.want)
			continue
		}
		if got := node.RawValue(); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.expr, got, tc.want)
		}
	}
}

func TestResolveHeaderMessageType(t *testing.T) {
	msg := mustParse(t, "MSH|^~\\&|AccMgr|1|||20050110045504||ADT^A01|599102|P|2.3|||")
	q, err := query.Parse("MSH.9.2")
	if err != nil {
		t.Fatal(err)
	}
	node := query.Resolve(msg, q)
	if node == nil {
		t.Fatal("Resolve(MSH.9.2) = nil")
	}
	if got := node.RawValue(); got != "A01" {
		t.Errorf("MSH.9.2 = %q, want %q", got, "A01")
	}
}

func TestResolveUnmatched(t *testing.T) {
	msg := mustParse(t, sample)
	for _, expr := range []string{
		"ZZZ",
		"PID[2]",
		"PID.99",
		"PID.5[2]",
		"PID.5.9",
		"IN2[3].1",
		"IN2[2].3.2.9",
	} {
		q, err := query.Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
		if node := query.Resolve(msg, q); node != nil {
			t.Errorf("Resolve(%q) = %q, want nil", expr, node.RawValue())
		}
	}
}

func TestResolveMatchesAccessors(t *testing.T) {
	msg := mustParse(t, sample)
	q, err := query.Parse("PID.5.2")
	if err != nil {
		t.Fatal(err)
	}
	node := query.Resolve(msg, q)
	if node == nil {
		t.Fatal("Resolve(PID.5.2) = nil")
	}
	direct := msg.Segment("PID").Field(5).Component(2)
	if direct == nil {
		t.Fatal("accessor chain came up empty")
	}
	if node.Bounds() != direct.Bounds() {
		t.Errorf("spans differ: query %v, accessors %v", node.Bounds(), direct.Bounds())
	}
}
