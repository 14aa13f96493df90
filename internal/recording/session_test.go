package recording_test

import (
	"errors"
	"testing"
	"time"

	"lyrix/internal/recording"
	"lyrix/internal/timeline"
)

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time { return c.at }

func (c *fakeClock) advance(ms int64) {
	c.at = c.at.Add(time.Duration(ms) * time.Millisecond)
}

func newSessionTimeline(t *testing.T, texts ...string) *timeline.Timeline {
	t.Helper()
	tl := timeline.New("", "Song", "Artist", "", 0)
	for _, text := range texts {
		tl.AddLine(timeline.UnsyncedTime, text, timeline.LineVocal)
	}
	return tl
}

func TestUpdatePositionThrottles(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one")
	session := recording.NewSession(tl, recording.WithClock(clock.now))

	if !session.UpdatePosition(0) {
		t.Fatal("first update must be accepted")
	}
	clock.advance(50)
	if session.UpdatePosition(50) {
		t.Fatal("update inside throttle window must be dropped")
	}
	clock.advance(50)
	if !session.UpdatePosition(120) {
		t.Fatal("update at throttle boundary must be accepted")
	}
	if pos, ok := session.Position(); !ok || pos != 120 {
		t.Fatalf("position = %d, %v; want 120, true", pos, ok)
	}
}

func TestThrottleDoesNotAffectResolution(t *testing.T) {
	// A dropped update must leave the active line where the last accepted
	// position put it.
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one", "two")
	tl.SetLineTime(0, 0)
	tl.SetLineTime(1, 5000)
	session := recording.NewSession(tl, recording.WithClock(clock.now))

	session.UpdatePosition(6000)
	clock.advance(10)
	session.UpdatePosition(0) // dropped

	index, ok := session.ActiveIndex()
	if !ok || index != 1 {
		t.Fatalf("ActiveIndex = %d, %v; want 1, true", index, ok)
	}
}

func TestStampNextStampsFirstUnsyncedAndCorrects(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one", "two", "three")
	tl.SetLineTime(0, 0)
	tl.SetLineTime(1, 1000)
	session := recording.NewSession(tl, recording.WithClock(clock.now))

	session.UpdatePosition(500)
	index, corrected, err := session.StampNext()
	if err != nil {
		t.Fatalf("StampNext failed: %v", err)
	}
	if index != 2 {
		t.Fatalf("stamped index = %d, want 2", index)
	}
	// Stamped at 500, but line 1 sits at 1000, so the new line is pushed to
	// 1100.
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}
	line, _ := tl.LineAt(2)
	if line.Time != 1100 {
		t.Fatalf("line 2 time = %d, want 1100", line.Time)
	}
}

func TestStampNextExhausted(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one")
	tl.SetLineTime(0, 0)
	session := recording.NewSession(tl, recording.WithClock(clock.now))

	session.UpdatePosition(100)
	if _, _, err := session.StampNext(); !errors.Is(err, recording.ErrNoUnsyncedLine) {
		t.Fatalf("expected ErrNoUnsyncedLine, got %v", err)
	}
}

func TestStampNextRequiresPosition(t *testing.T) {
	tl := newSessionTimeline(t, "one")
	session := recording.NewSession(tl)
	if _, _, err := session.StampNext(); err == nil {
		t.Fatal("expected error before any accepted position")
	}
}

func TestStampLineRipplesForward(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one", "two", "three")
	tl.SetLineTime(0, 0)
	tl.SetLineTime(1, 1000)
	tl.SetLineTime(2, 2000)
	session := recording.NewSession(tl, recording.WithClock(clock.now))

	session.UpdatePosition(2500)
	corrected, err := session.StampLine(1)
	if err != nil {
		t.Fatalf("StampLine failed: %v", err)
	}
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}
	line, _ := tl.LineAt(2)
	if line.Time != 2600 {
		t.Fatalf("line 2 time = %d, want 2600", line.Time)
	}

	if _, err := session.StampLine(9); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestWithThrottleZeroDisables(t *testing.T) {
	clock := &fakeClock{at: time.Unix(0, 0)}
	tl := newSessionTimeline(t, "one")
	session := recording.NewSession(tl, recording.WithClock(clock.now), recording.WithThrottle(0))

	session.UpdatePosition(0)
	if !session.UpdatePosition(1) {
		t.Fatal("throttle 0 must accept back-to-back updates")
	}
}
