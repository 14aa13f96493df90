package timeline_test

import (
	"testing"

	"lyrix/internal/timeline"
)

func TestAddLineSortsSyncedBeforeUnsynced(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLine(timeline.UnsyncedTime, "later", timeline.LineVocal)
	tl.AddLine(5000, "second", timeline.LineVocal)
	tl.AddLine(timeline.UnsyncedTime, "last", timeline.LineVocal)
	tl.AddLine(1000, "first", timeline.LineVocal)

	lines := tl.Lines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	want := []string{"first", "second", "later", "last"}
	for i, text := range want {
		if lines[i].Text != text {
			t.Fatalf("line %d: expected %q, got %q", i, text, lines[i].Text)
		}
	}
	if lines[2].Time != timeline.UnsyncedTime || lines[3].Time != timeline.UnsyncedTime {
		t.Fatal("expected unsynchronized lines collated at the end")
	}
}

func TestAddLinesPreservesInputOrderAmongEqualTimes(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLines([]timeline.LineInput{
		{Time: 1000, Text: "a"},
		{Time: 1000, Text: "b"},
		{Time: timeline.UnsyncedTime, Text: "c"},
		{Time: timeline.UnsyncedTime, Text: "d"},
	})

	lines := tl.Lines()
	want := []string{"a", "b", "c", "d"}
	for i, text := range want {
		if lines[i].Text != text {
			t.Fatalf("line %d: expected %q, got %q", i, text, lines[i].Text)
		}
	}
}

func TestLineIDsAreUniqueAndStable(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLine(2000, "b", timeline.LineVocal)
	tl.AddLine(1000, "a", timeline.LineVocal)

	lines := tl.Lines()
	if lines[0].ID == "" || lines[1].ID == "" {
		t.Fatal("expected every line to carry an id")
	}
	if lines[0].ID == lines[1].ID {
		t.Fatal("expected distinct line ids")
	}

	// The id follows the line across a re-sorting edit.
	id := lines[0].ID
	tl.AddLine(500, "c", timeline.LineVocal)
	moved := tl.Lines()
	if moved[1].Text != "a" || moved[1].ID != id {
		t.Fatalf("expected line %q to keep id %s, got %#v", "a", id, moved[1])
	}
}

func TestClearAllTimecodesIsIdempotent(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLines([]timeline.LineInput{
		{Time: 0, Text: "[12.5s] hello"},
		{Time: 2000, Text: "[-3s]world"},
		{Time: 4000, Text: "clean"},
	})

	tl.ClearAllTimecodes()
	once := tl.Lines()
	tl.ClearAllTimecodes()
	twice := tl.Lines()

	for i := range once {
		if once[i].Time != timeline.UnsyncedTime {
			t.Fatalf("line %d: expected unsynchronized, got %d", i, once[i].Time)
		}
		if once[i].Text != twice[i].Text || once[i].Time != twice[i].Time {
			t.Fatalf("line %d changed on second clear: %#v vs %#v", i, once[i], twice[i])
		}
	}
	if once[0].Text != "hello" || once[1].Text != "world" || once[2].Text != "clean" {
		t.Fatalf("expected bracket residue stripped, got %q %q %q", once[0].Text, once[1].Text, once[2].Text)
	}
}

func TestClearLineTimecodeBounds(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLine(1000, "a", timeline.LineVocal)

	tl.ClearLineTimecode(-1)
	tl.ClearLineTimecode(5)
	if line, _ := tl.LineAt(0); line.Time != 1000 {
		t.Fatalf("out-of-range clear must be a no-op, got time %d", line.Time)
	}

	tl.ClearLineTimecode(0)
	if line, _ := tl.LineAt(0); line.Time != timeline.UnsyncedTime {
		t.Fatalf("expected unsynchronized line, got time %d", line.Time)
	}
}

func TestCleanCorruptedTextsCountsRepairs(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLines([]timeline.LineInput{
		{Time: 0, Text: "[5s] dirty"},
		{Time: 1000, Text: "fine"},
	})

	if repaired := tl.CleanCorruptedTexts(); repaired != 1 {
		t.Fatalf("expected 1 repair, got %d", repaired)
	}
	if repaired := tl.CleanCorruptedTexts(); repaired != 0 {
		t.Fatalf("expected no repairs on clean text, got %d", repaired)
	}
}

func TestHasCustomTimecodes(t *testing.T) {
	cases := []struct {
		name  string
		times []int64
		want  bool
	}{
		{"no lines", nil, false},
		{"all unsynchronized", []int64{-1, -1}, false},
		{"default spacing", []int64{0, 2000, 4000}, false},
		{"within tolerance", []int64{50, 2080, 3950}, false},
		{"adjusted", []int64{0, 2000, 7000}, true},
		{"unsynced gaps ignored", []int64{0, -1, 2000}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tl := timeline.New("id", "Song", "Artist", "", 0)
			for _, ms := range tc.times {
				tl.AddLine(ms, "x", timeline.LineVocal)
			}
			if got := tl.HasCustomTimecodes(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResetTimecodesToDefault(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	tl.AddLines([]timeline.LineInput{
		{Time: 123, Text: "a"},
		{Time: 9999, Text: "b"},
		{Time: timeline.UnsyncedTime, Text: "c"},
	})

	tl.ResetTimecodesToDefault(0)
	for i, line := range tl.Lines() {
		want := int64(i) * timeline.DefaultLineSpacingMS
		if line.Time != want {
			t.Fatalf("line %d: expected %d, got %d", i, want, line.Time)
		}
	}
}

func TestSetAudioRefStoresCanonicalString(t *testing.T) {
	tl := timeline.New("id", "Song", "Artist", "", 0)
	if tl.HasAudio() {
		t.Fatal("expected no audio on a fresh timeline")
	}
	before := tl.Metadata().LastModifiedAt
	tl.SetAudioRef("assets/audios/darkbox.mp3")
	if !tl.HasAudio() || tl.Metadata().AudioRef != "assets/audios/darkbox.mp3" {
		t.Fatalf("unexpected audio ref: %q", tl.Metadata().AudioRef)
	}
	if tl.Metadata().LastModifiedAt.Before(before) {
		t.Fatal("expected LastModifiedAt to advance")
	}
}

func TestRestoreAssignsMissingLineIDs(t *testing.T) {
	tl := timeline.Restore("id", timeline.Metadata{Title: "Song", Artist: "Artist"}, []timeline.Line{
		{Time: 2000, Text: "b"},
		{Time: 0, Text: "a", ID: "line_existing", Type: timeline.LineChorus},
	})

	lines := tl.Lines()
	if lines[0].Text != "a" || lines[0].ID != "line_existing" {
		t.Fatalf("expected restore to sort and keep ids, got %#v", lines[0])
	}
	if lines[1].ID == "" {
		t.Fatal("expected missing line id to be generated")
	}
	if lines[1].Type != timeline.LineVocal {
		t.Fatalf("expected unknown type to default to vocal, got %q", lines[1].Type)
	}
}
