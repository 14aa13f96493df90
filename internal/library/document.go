package library

import (
	"encoding/json"
	"fmt"
	"time"

	"lyrix/internal/timeline"
)

// docShape classifies a decoded song document. Current documents keep all
// song metadata under the metadata object; legacy documents carried title,
// artist, album and duration at the top level.
type docShape int

const (
	shapeCurrent docShape = iota
	shapeLegacy
)

type docMetadata struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Album        string `json:"album,omitempty"`
	Duration     int64  `json:"duration"`
	Format       string `json:"format,omitempty"`
	Created      string `json:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	AudioPath    string `json:"audioPath,omitempty"`
}

type docLine struct {
	ID   string `json:"id,omitempty"`
	Time int64  `json:"time"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// songDocument is the persisted JSON shape of one timeline. The top-level
// title/artist/album/duration/audioPath fields exist only so legacy
// documents decode; normalize folds them into Metadata and save paths never
// write them.
type songDocument struct {
	SongID   string          `json:"songId"`
	Version  string          `json:"version,omitempty"`
	Metadata *docMetadata    `json:"metadata,omitempty"`
	Lines    []docLine       `json:"lines"`
	SyncData json.RawMessage `json:"syncData,omitempty"`

	Title     string `json:"title,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Album     string `json:"album,omitempty"`
	Duration  int64  `json:"duration,omitempty"`
	AudioPath string `json:"audioPath,omitempty"`
}

// decodeSong parses a raw song document and resolves its shape, returning a
// normalized document with canonical data only under Metadata.
func decodeSong(raw []byte) (*songDocument, error) {
	var doc songDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode song document: %w", err)
	}
	doc.normalize()
	if doc.Metadata.Title == "" && doc.Metadata.Artist == "" && len(doc.Lines) == 0 {
		return nil, fmt.Errorf("decode song document: no recognizable song data")
	}
	return &doc, nil
}

func (d *songDocument) shape() docShape {
	if d.Metadata != nil && (d.Metadata.Title != "" || d.Metadata.Artist != "") {
		return shapeCurrent
	}
	return shapeLegacy
}

// normalize resolves the legacy/current variant once, moving any top-level
// metadata into the Metadata object and clearing the duplicate fields.
func (d *songDocument) normalize() {
	if d.Metadata == nil {
		d.Metadata = &docMetadata{}
	}
	if d.shape() == shapeLegacy {
		if d.Metadata.Title == "" {
			d.Metadata.Title = d.Title
		}
		if d.Metadata.Artist == "" {
			d.Metadata.Artist = d.Artist
		}
	}
	if d.Metadata.Album == "" {
		d.Metadata.Album = d.Album
	}
	if d.Metadata.Duration == 0 {
		d.Metadata.Duration = d.Duration
	}
	if d.Metadata.AudioPath == "" {
		d.Metadata.AudioPath = d.AudioPath
	}
	if d.Metadata.Format == "" {
		d.Metadata.Format = timeline.FormatVersion
	}
	if d.Version == "" {
		d.Version = "1.0"
	}
	d.Title = ""
	d.Artist = ""
	d.Album = ""
	d.Duration = 0
	d.AudioPath = ""
}

func docFromTimeline(t *timeline.Timeline) *songDocument {
	meta := t.Metadata()
	doc := &songDocument{
		SongID:  t.ID(),
		Version: "1.0",
		Metadata: &docMetadata{
			Title:        meta.Title,
			Artist:       meta.Artist,
			Album:        meta.Album,
			Duration:     meta.DurationMS,
			Format:       meta.FormatVersion,
			AudioPath:    meta.AudioRef,
			Created:      formatInstant(meta.CreatedAt),
			LastModified: formatInstant(meta.LastModifiedAt),
		},
		Lines: make([]docLine, 0, t.Len()),
	}
	for _, line := range t.Lines() {
		doc.Lines = append(doc.Lines, docLine{
			ID:   line.ID,
			Time: line.Time,
			Text: line.Text,
			Type: string(line.Type),
		})
	}
	return doc
}

func (d *songDocument) toTimeline() *timeline.Timeline {
	lines := make([]timeline.Line, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, timeline.Line{
			ID:   line.ID,
			Time: line.Time,
			Text: line.Text,
			Type: timeline.LineType(line.Type),
		})
	}
	meta := timeline.Metadata{
		Title:          d.Metadata.Title,
		Artist:         d.Metadata.Artist,
		Album:          d.Metadata.Album,
		DurationMS:     d.Metadata.Duration,
		AudioRef:       d.Metadata.AudioPath,
		FormatVersion:  d.Metadata.Format,
		CreatedAt:      parseInstant(d.Metadata.Created),
		LastModifiedAt: parseInstant(d.Metadata.LastModified),
	}
	return timeline.Restore(d.SongID, meta, lines)
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseInstant(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
