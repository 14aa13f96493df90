package timeline_test

import (
	"testing"

	"lyrix/internal/timeline"
)

func syncedTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLines([]timeline.LineInput{
		{Time: 1000, Text: "one"},
		{Time: 3000, Text: "two"},
		{Time: 5000, Text: "three"},
		{Time: timeline.UnsyncedTime, Text: "pending"},
	})
	return tl
}

func TestActiveLineAt(t *testing.T) {
	tl := syncedTimeline(t)

	cases := []struct {
		name   string
		timeMS int64
		want   string
	}{
		{"before first returns first", 0, "one"},
		{"exactly at a line", 3000, "two"},
		{"between two lines returns earlier", 4999, "two"},
		{"at last line", 5000, "three"},
		{"after last line", 60000, "three"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, ok := tl.ActiveLineAt(tc.timeMS)
			if !ok {
				t.Fatal("expected an active line")
			}
			if line.Text != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, line.Text)
			}
		})
	}
}

func TestActiveLineAtNoSynchronizedLines(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	if _, ok := tl.ActiveLineAt(0); ok {
		t.Fatal("expected no active line on an empty timeline")
	}

	tl.AddLine(timeline.UnsyncedTime, "pending", timeline.LineVocal)
	if _, ok := tl.ActiveLineAt(0); ok {
		t.Fatal("expected no active line when nothing is synchronized")
	}
}

func TestActiveLineIgnoresMidSequenceUnsyncedLines(t *testing.T) {
	tl := syncedTimeline(t)
	// Clearing a middle line leaves a -1 gap; the resolver must skip it.
	tl.ClearLineTimecode(1)

	line, ok := tl.ActiveLineAt(4000)
	if !ok || line.Text != "one" {
		t.Fatalf("expected %q, got %q (ok=%v)", "one", line.Text, ok)
	}
}

func TestNextLineAfter(t *testing.T) {
	tl := syncedTimeline(t)

	line, ok := tl.NextLineAfter(1000)
	if !ok || line.Text != "two" {
		t.Fatalf("expected %q, got %q (ok=%v)", "two", line.Text, ok)
	}

	if _, ok := tl.NextLineAfter(5000); ok {
		t.Fatal("expected no line after the last timecode")
	}
}
