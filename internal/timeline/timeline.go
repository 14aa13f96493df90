package timeline

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// FormatVersion identifies the persisted timeline document format.
const FormatVersion = "syncedlyrics-v1.0"

// DefaultLineSpacingMS is the uniform spacing applied by
// ResetTimecodesToDefault and the baseline HasCustomTimecodes compares
// against.
const DefaultLineSpacingMS int64 = 2000

// customTimecodeToleranceMS is how far a synchronized line may drift from the
// default spacing before the timeline counts as user-adjusted.
const customTimecodeToleranceMS int64 = 100

// bracketResiduePattern matches stray interchange timecode fragments such as
// "[12.5s]" or "[-3s]" that historically leaked into line text.
var bracketResiduePattern = regexp.MustCompile(`\[-?\d+(?:\.\d+)?s\]\s*`)

// Metadata holds song-level information for a timeline.
type Metadata struct {
	Title          string
	Artist         string
	Album          string
	DurationMS     int64
	CreatedAt      time.Time
	LastModifiedAt time.Time
	AudioRef       string
	FormatVersion  string
}

// Timeline is the in-memory model of one song: metadata plus ordered lines.
// The zero value is not usable; construct with New or Restore.
type Timeline struct {
	id    string
	meta  Metadata
	lines []Line
}

// New creates an empty timeline. The id may be empty; the persistence layer
// assigns one on first save in that case.
func New(id, title, artist, album string, durationMS int64) *Timeline {
	now := time.Now().UTC()
	return &Timeline{
		id: id,
		meta: Metadata{
			Title:          title,
			Artist:         artist,
			Album:          album,
			DurationMS:     durationMS,
			CreatedAt:      now,
			LastModifiedAt: now,
			FormatVersion:  FormatVersion,
		},
	}
}

// Restore rebuilds a timeline from persisted state. Lines missing an id get
// a fresh one; the sequence is re-sorted so the grouping invariant holds even
// for documents written by older versions.
func Restore(id string, meta Metadata, lines []Line) *Timeline {
	t := &Timeline{id: id, meta: meta}
	if t.meta.FormatVersion == "" {
		t.meta.FormatVersion = FormatVersion
	}
	t.lines = make([]Line, len(lines))
	copy(t.lines, lines)
	for i := range t.lines {
		if t.lines[i].ID == "" {
			t.lines[i].ID = newLineID()
		}
		if !ValidLineType(t.lines[i].Type) {
			t.lines[i].Type = LineVocal
		}
	}
	t.sortLines()
	return t
}

// ID returns the timeline identifier, or "" when not yet assigned.
func (t *Timeline) ID() string { return t.id }

// SetID assigns the timeline identifier. Used by the persistence layer when
// saving a timeline created without one.
func (t *Timeline) SetID(id string) { t.id = id }

// Metadata returns a copy of the timeline metadata.
func (t *Timeline) Metadata() Metadata { return t.meta }

// Len returns the number of lines.
func (t *Timeline) Len() int { return len(t.lines) }

// LineAt returns a copy of the line at index i.
func (t *Timeline) LineAt(i int) (Line, bool) {
	if i < 0 || i >= len(t.lines) {
		return Line{}, false
	}
	return t.lines[i], true
}

// Lines returns a copy of the line sequence.
func (t *Timeline) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// AddLine appends a new line with a fresh id and re-sorts the sequence.
// timeMS may be UnsyncedTime. Text is trimmed; an unknown type falls back to
// vocal.
func (t *Timeline) AddLine(timeMS int64, text string, lineType LineType) {
	if timeMS < 0 {
		timeMS = UnsyncedTime
	}
	if !ValidLineType(lineType) {
		lineType = LineVocal
	}
	t.lines = append(t.lines, Line{
		ID:   newLineID(),
		Time: timeMS,
		Text: strings.TrimSpace(text),
		Type: lineType,
	})
	t.sortLines()
	t.touch()
}

// AddLines applies AddLine for each input. The sort is stable, so entries
// with equal times and unsynchronized entries keep their input order. Bulk
// adds do not run cascading correction; callers importing external data
// follow up with CorrectAll.
func (t *Timeline) AddLines(inputs []LineInput) {
	for _, in := range inputs {
		t.AddLine(in.Time, in.Text, in.Type)
	}
}

// SetLineTime changes one line's timecode without re-sorting. Editing paths
// call CorrectFrom(i) afterwards to restore monotonicity. Out-of-range
// indexes are a no-op.
func (t *Timeline) SetLineTime(i int, timeMS int64) {
	if i < 0 || i >= len(t.lines) {
		return
	}
	if timeMS < 0 {
		timeMS = UnsyncedTime
	}
	t.lines[i].Time = timeMS
	t.touch()
}

// SetLineText replaces one line's text. Out-of-range indexes are a no-op.
func (t *Timeline) SetLineText(i int, text string) {
	if i < 0 || i >= len(t.lines) {
		return
	}
	t.lines[i].Text = strings.TrimSpace(text)
	t.touch()
}

// RemoveLine deletes the line at index i. Out-of-range indexes are a no-op.
func (t *Timeline) RemoveLine(i int) {
	if i < 0 || i >= len(t.lines) {
		return
	}
	t.lines = append(t.lines[:i], t.lines[i+1:]...)
	t.touch()
}

// ClearAllTimecodes marks every line unsynchronized and strips bracket
// residue from line text. Idempotent.
func (t *Timeline) ClearAllTimecodes() {
	for i := range t.lines {
		t.lines[i].Time = UnsyncedTime
		t.lines[i].Text = strings.TrimSpace(bracketResiduePattern.ReplaceAllString(t.lines[i].Text, ""))
	}
	t.touch()
}

// ClearLineTimecode marks one line unsynchronized. Out-of-range indexes are
// a no-op.
func (t *Timeline) ClearLineTimecode(i int) {
	if i < 0 || i >= len(t.lines) {
		return
	}
	t.lines[i].Time = UnsyncedTime
	t.touch()
}

// ResetTimecodesToDefault re-times every line at a uniform interval starting
// from zero. A non-positive interval falls back to DefaultLineSpacingMS.
func (t *Timeline) ResetTimecodesToDefault(intervalMS int64) {
	if intervalMS <= 0 {
		intervalMS = DefaultLineSpacingMS
	}
	for i := range t.lines {
		t.lines[i].Time = int64(i) * intervalMS
	}
	t.touch()
}

// CleanCorruptedTexts strips bracket residue from every line's text and
// returns how many lines were repaired.
func (t *Timeline) CleanCorruptedTexts() int {
	repaired := 0
	for i := range t.lines {
		cleaned := strings.TrimSpace(bracketResiduePattern.ReplaceAllString(t.lines[i].Text, ""))
		if cleaned != t.lines[i].Text {
			t.lines[i].Text = cleaned
			repaired++
		}
	}
	if repaired > 0 {
		t.touch()
	}
	return repaired
}

// HasCustomTimecodes reports whether the synchronized lines deviate from the
// uniform default spacing by more than a fixed tolerance. Distinguishes
// never-touched timelines from user-adjusted ones.
func (t *Timeline) HasCustomTimecodes() bool {
	idx := 0
	for _, line := range t.lines {
		if !line.Synced() {
			continue
		}
		expected := int64(idx) * DefaultLineSpacingMS
		delta := line.Time - expected
		if delta < 0 {
			delta = -delta
		}
		if delta > customTimecodeToleranceMS {
			return true
		}
		idx++
	}
	return false
}

// SetAudioRef stores the canonical audio reference string. Normalization is
// the caller's concern; the timeline never interprets the value.
func (t *Timeline) SetAudioRef(ref string) {
	t.meta.AudioRef = ref
	t.touch()
}

// HasAudio reports whether an audio reference is attached.
func (t *Timeline) HasAudio() bool {
	return strings.TrimSpace(t.meta.AudioRef) != ""
}

// SetTitle updates the song title.
func (t *Timeline) SetTitle(title string) {
	t.meta.Title = title
	t.touch()
}

// SetArtist updates the song artist.
func (t *Timeline) SetArtist(artist string) {
	t.meta.Artist = artist
	t.touch()
}

// SetAlbum updates the song album.
func (t *Timeline) SetAlbum(album string) {
	t.meta.Album = album
	t.touch()
}

// SetDuration updates the song duration in milliseconds.
func (t *Timeline) SetDuration(durationMS int64) {
	if durationMS < 0 {
		durationMS = 0
	}
	t.meta.DurationMS = durationMS
	t.touch()
}

// sortLines stable-sorts by timecode ascending with unsynchronized lines
// collated after all synchronized ones, preserving their relative order.
func (t *Timeline) sortLines() {
	sort.SliceStable(t.lines, func(i, j int) bool {
		a, b := t.lines[i], t.lines[j]
		switch {
		case !a.Synced() && !b.Synced():
			return false
		case !a.Synced():
			return false
		case !b.Synced():
			return true
		default:
			return a.Time < b.Time
		}
	})
}

func (t *Timeline) touch() {
	t.meta.LastModifiedAt = time.Now().UTC()
}
