package build_test

import (
	"testing"

	"hale/internal/build"
	"hale/internal/message"
	"hale/internal/parse"
	"hale/internal/timestamp"
)

func TestBuildMessage(t *testing.T) {
	msg := build.NewMessage(message.DefaultSeparators()).
		WithSegment(build.NewSegment("MSH").
			WithFieldValue(3, "SendingApp").
			WithFieldValue(4, "SendingFac").
			WithFieldValue(5, "ReceivingApp").
			WithFieldValue(6, "ReceivingFac").
			WithField(9, build.NewField().
				WithComponent(1, "ADT").
				WithComponent(2, "A01")).
			WithFieldValue(10, "123456").
			WithFieldValue(11, "P").
			WithFieldValue(12, "2.3")).
		WithSegment(build.NewSegment("PID").
			WithFieldValue(3, "123456").
			WithField(5, build.NewField().
				WithComponent(1, "Doe").
				WithComponent(2, "John")).
			WithFieldValue(7, "19700101"))

	want := "MSH|^~\\&|SendingApp|SendingFac|ReceivingApp|ReceivingFac|||ADT^A01|123456|P|2.3\n" +
		"PID|||123456||Doe^John||19700101"
	if got := msg.RenderWithTerminator("\n"); got != want {
		t.Errorf("rendered:\n%s\nwant:\n%s", got, want)
	}

	// The default terminator is a carriage return.
	if got, want := msg.Render(), "MSH|^~\\&|SendingApp"; got[:len(want)] != want {
		t.Errorf("Render() starts %q, want %q", got[:len(want)], want)
	}
}

func TestRenderHeaderCustomSeparators(t *testing.T) {
	seps := message.Separators{
		Field:        '#',
		Component:    '*',
		Subcomponent: '+',
		Repetition:   '!',
		Escape:       '$',
	}
	msg := build.NewMessage(seps).
		WithSegment(build.NewSegment("MSH").
			WithFieldValue(3, "App").
			WithField(4, build.NewField().
				WithComponent(1, "a").
				WithComponent(2, "b")))

	want := "MSH#*!$+#App#a*b"
	if got := msg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderRepeatsAndSubcomponents(t *testing.T) {
	seg := build.NewSegment("ZRP").
		WithField(1, build.NewField().
			AppendRepeat(build.RepeatValue("first")).
			AppendRepeat(build.NewRepeat().
				WithComponentValue(1, "second").
				WithComponent(2, build.NewComponent().
					WithSubcomponent(1, "sub1").
					WithSubcomponent(2, "sub2"))))
	msg := build.NewMessage(message.DefaultSeparators()).WithSegment(seg)

	want := "ZRP|first~second^sub1&sub2"
	if got := msg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderGapsAsEmpty(t *testing.T) {
	seg := build.NewSegment("OBX").
		WithFieldValue(2, "TX").
		WithFieldValue(5, "hello")
	msg := build.NewMessage(message.DefaultSeparators()).WithSegment(seg)

	want := "OBX||TX|||hello"
	if got := msg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEncodesLeaves(t *testing.T) {
	seg := build.NewSegment("NTE").
		WithFieldValue(1, "pipes | and ^ carets").
		WithFieldValue(2, "line one\rline two")
	msg := build.NewMessage(message.DefaultSeparators()).WithSegment(seg)

	want := "NTE|pipes \\F\\ and \\S\\ carets|line one\\X0D\\line two"
	if got := msg.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestWithFieldTimestamp(t *testing.T) {
	ts, err := timestamp.Parse("20230312195905.1234-0700")
	if err != nil {
		t.Fatal(err)
	}
	seg := build.NewSegment("EVN").WithFieldTimestamp(2, ts)
	msg := build.NewMessage(message.DefaultSeparators()).WithSegment(seg)

	if got, want := msg.Render(), "EVN||20230312195905.1234-0700"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSegmentAccess(t *testing.T) {
	msg := build.NewMessage(message.DefaultSeparators()).
		WithSegment(build.NewSegment("MSH")).
		WithSegment(build.NewSegment("OBX").WithFieldValue(1, "1")).
		WithSegment(build.NewSegment("OBX").WithFieldValue(1, "2"))

	if s := msg.SegmentNamed("OBX"); s == nil || s.Field(1).Value() != "1" {
		t.Errorf("SegmentNamed returned wrong segment: %v", s)
	}
	if s := msg.SegmentN("OBX", 2); s == nil || s.Field(1).Value() != "2" {
		t.Errorf("SegmentN(2) returned wrong segment: %v", s)
	}
	if msg.SegmentN("OBX", 3) != nil {
		t.Error("SegmentN(3) should be nil")
	}
	if !msg.RemoveSegmentNamed("OBX") {
		t.Error("RemoveSegmentNamed found nothing")
	}
	if s := msg.SegmentNamed("OBX"); s == nil || s.Field(1).Value() != "2" {
		t.Error("remove took the wrong segment")
	}
}

func TestFromMessageRoundTrip(t *testing.T) {
	src := "MSH|^~\\&|AccMgr|1|||20050110045504||ADT^A01|599102|P|2.3|||\r" +
		"EVN|A01|20050110045502\r" +
		"PID|1||599102||DUCK^DONALD^D~DRAKE^F&M|||||||mixed \\S\\ escape"
	msg, err := parse.Message(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := build.FromMessage(msg).Render(); got != src {
		t.Errorf("round trip changed the message:\n got %q\nwant %q", got, src)
	}
}
