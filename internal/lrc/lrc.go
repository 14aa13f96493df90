// Package lrc implements the bracketed line-timecode interchange format used
// for karaoke-style import and export.
//
// A document is a header block of tag lines ([ti:], [ar:], optional [al:],
// [length:mm:ss.cc]) followed by one [mm:ss.cc]text line per lyric. Parsing
// is lenient: lines matching neither pattern are ignored, and a whole
// document never fails to parse. Both Parse and Serialize are pure.
package lrc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lyrix/internal/timeline"
)

var (
	titlePattern  = regexp.MustCompile(`\[ti:(.*?)\]`)
	artistPattern = regexp.MustCompile(`\[ar:(.*?)\]`)
	albumPattern  = regexp.MustCompile(`\[al:(.*?)\]`)
	lengthPattern = regexp.MustCompile(`\[length:(\d{2}):(\d{2})\.(\d{2})\]`)
	timePattern   = regexp.MustCompile(`^\[(\d{2,}):(\d{2})\.(\d{2})\](.*)$`)
)

// header carries the tag values collected during a parse.
type header struct {
	title      string
	artist     string
	album      string
	durationMS int64
}

// Parse builds a timeline from LRC text. Timecoded lines whose text is empty
// are dropped; an imported blank timecode carries no content. The resulting
// timeline has no id assigned; the persistence layer generates one on save.
// An empty or unrecognized document yields an empty timeline, not an error.
func Parse(text string) *timeline.Timeline {
	hdr, entries := scan(text)

	tl := timeline.New("", hdr.title, hdr.artist, hdr.album, hdr.durationMS)
	tl.AddLines(entries)
	return tl
}

// scan extracts header tags and timecoded entries in document order. The
// codec itself never sorts; ordering is the timeline's concern.
func scan(text string) (header, []timeline.LineInput) {
	var hdr header
	var entries []timeline.LineInput

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")

		if m := timePattern.FindStringSubmatch(line); m != nil {
			body := strings.TrimSpace(m[4])
			if body == "" {
				continue
			}
			entries = append(entries, timeline.LineInput{
				Time: timecodeMS(m[1], m[2], m[3]),
				Text: body,
			})
			continue
		}
		if m := lengthPattern.FindStringSubmatch(line); m != nil {
			hdr.durationMS = timecodeMS(m[1], m[2], m[3])
			continue
		}
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			hdr.title = strings.TrimSpace(m[1])
			continue
		}
		if m := artistPattern.FindStringSubmatch(line); m != nil {
			hdr.artist = strings.TrimSpace(m[1])
			continue
		}
		if m := albumPattern.FindStringSubmatch(line); m != nil {
			hdr.album = strings.TrimSpace(m[1])
		}
		// Anything else is a foreign or malformed line; skip it.
	}

	return hdr, entries
}

// Serialize renders a timeline as LRC text. Unsynchronized lines have no
// representable timecode and are omitted.
func Serialize(tl *timeline.Timeline) string {
	meta := tl.Metadata()

	var b strings.Builder
	fmt.Fprintf(&b, "[ti:%s]\n", meta.Title)
	fmt.Fprintf(&b, "[ar:%s]\n", meta.Artist)
	if meta.Album != "" {
		fmt.Fprintf(&b, "[al:%s]\n", meta.Album)
	}
	fmt.Fprintf(&b, "[length:%s]\n\n", FormatTime(meta.DurationMS))

	for _, line := range tl.Lines() {
		if !line.Synced() {
			continue
		}
		fmt.Fprintf(&b, "[%s]%s\n", FormatTime(line.Time), line.Text)
	}

	return b.String()
}

// FormatTime renders milliseconds as mm:ss.cc with zero-padded two-digit
// fields. Minutes widen beyond two digits for songs over 99 minutes.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

func timecodeMS(minutes, seconds, centis string) int64 {
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	c, _ := strconv.ParseInt(centis, 10, 64)
	return (m*60+s)*1000 + c*10
}
