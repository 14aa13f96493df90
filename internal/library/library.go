package library

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"lyrix/internal/timeline"
)

// KeyPrefix is prepended to every persisted timeline id to form its store key.
const KeyPrefix = "lyrics_"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// caseFolder normalizes strings for case-insensitive matching.
var caseFolder = cases.Fold()

// Library is the key-addressed persistence layer plus the derived index over
// all stored timelines.
type Library struct {
	kv      KV
	logger  *slog.Logger
	builtin map[string]struct{}
}

// Entry is a summary projection of one stored timeline, computed by scanning
// the store. Entries are derived data; the documents in the store remain
// authoritative.
type Entry struct {
	Key            string    `json:"key"`
	TimelineID     string    `json:"timelineId"`
	Title          string    `json:"title"`
	Artist         string    `json:"artist"`
	Album          string    `json:"album,omitempty"`
	DurationMS     int64     `json:"durationMs"`
	LineCount      int       `json:"lineCount"`
	HasAudio       bool      `json:"hasAudio"`
	BuiltIn        bool      `json:"builtIn"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
}

// Open builds a library over the given store and loads the built-in song
// tracking set. The library is ready for all operations once Open returns.
func Open(kv KV, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Library{kv: kv, logger: logger}
	if err := l.loadBuiltins(); err != nil {
		return nil, err
	}
	return l, nil
}

// GenerateID derives a timeline id from normalized title and artist plus the
// creation instant in milliseconds. Ids stay human-traceable while the
// timestamp keeps them collision-resistant; two creations with identical
// title and artist inside the same millisecond would still collide, which is
// accepted for a single-user editing session.
func GenerateID(title, artist string) string {
	return fmt.Sprintf("%s_%s_%d", normalizeIDPart(artist), normalizeIDPart(title), time.Now().UnixMilli())
}

func normalizeIDPart(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "_")
}

// NewTimeline creates an empty timeline with a freshly generated id.
func (l *Library) NewTimeline(title, artist, album string, durationMS int64) *timeline.Timeline {
	return timeline.New(GenerateID(title, artist), title, artist, album, durationMS)
}

// Save serializes the whole timeline under its store key and returns the
// key. A timeline without an id gets one assigned first. Canonical metadata
// lives only under the document's metadata object; Save never writes the
// legacy top-level duplicates.
func (l *Library) Save(t *timeline.Timeline) (string, error) {
	if t.ID() == "" {
		meta := t.Metadata()
		t.SetID(GenerateID(meta.Title, meta.Artist))
	}
	payload, err := json.Marshal(docFromTimeline(t))
	if err != nil {
		return "", wrapStorage("encode timeline", err)
	}
	key := KeyPrefix + t.ID()
	if err := l.kv.Set(key, string(payload)); err != nil {
		return "", wrapStorage("write "+key, err)
	}
	l.logger.Debug("timeline saved", "key", key, "lines", t.Len())
	return key, nil
}

// Load reads the timeline stored under key. A missing key yields (nil, nil);
// a present but undecodable document is a storage error.
func (l *Library) Load(key string) (*timeline.Timeline, error) {
	value, ok, err := l.kv.Get(key)
	if err != nil {
		return nil, wrapStorage("read "+key, err)
	}
	if !ok {
		return nil, nil
	}
	doc, err := decodeSong([]byte(value))
	if err != nil {
		return nil, wrapStorage("read "+key, err)
	}
	return doc.toTimeline(), nil
}

// Delete removes the timeline stored under key and drops its id from the
// built-in tracking set. Reports whether a stored timeline was removed.
func (l *Library) Delete(key string) (bool, error) {
	value, ok, err := l.kv.Get(key)
	if err != nil {
		return false, wrapStorage("read "+key, err)
	}
	if !ok {
		return false, nil
	}
	if doc, decodeErr := decodeSong([]byte(value)); decodeErr == nil && doc.SongID != "" {
		if err := l.UnmarkBuiltIn(doc.SongID); err != nil {
			return false, err
		}
	}
	if err := l.kv.Remove(key); err != nil {
		return false, wrapStorage("remove "+key, err)
	}
	l.logger.Debug("timeline deleted", "key", key)
	return true, nil
}

// ListAll scans every stored timeline and projects it to an Entry, newest
// modification first. Documents that fail to decode are skipped, not fatal
// to the scan.
func (l *Library) ListAll() ([]Entry, error) {
	keys, err := l.kv.ListKeys(KeyPrefix)
	if err != nil {
		return nil, wrapStorage("list keys", err)
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, ok, err := l.kv.Get(key)
		if err != nil {
			return nil, wrapStorage("read "+key, err)
		}
		if !ok {
			continue
		}
		doc, err := decodeSong([]byte(value))
		if err != nil {
			l.logger.Warn("skipping undecodable library entry", "key", key, "error", err)
			continue
		}
		entries = append(entries, l.project(key, doc))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastModifiedAt.After(entries[j].LastModifiedAt)
	})
	return entries, nil
}

// Search returns the entries whose title, artist or album contains term,
// case-insensitively. An empty term returns everything.
func (l *Library) Search(term string) ([]Entry, error) {
	entries, err := l.ListAll()
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return entries, nil
	}

	folded := caseFolder.String(term)
	matched := entries[:0]
	for _, entry := range entries {
		if strings.Contains(caseFolder.String(entry.Title), folded) ||
			strings.Contains(caseFolder.String(entry.Artist), folded) ||
			strings.Contains(caseFolder.String(entry.Album), folded) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// GetByTimelineID loads the full timeline whose id matches.
func (l *Library) GetByTimelineID(id string) (*timeline.Timeline, error) {
	t, err := l.Load(KeyPrefix + id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: timeline %s", ErrNotFound, id)
	}
	return t, nil
}

func (l *Library) project(key string, doc *songDocument) Entry {
	return Entry{
		Key:            key,
		TimelineID:     doc.SongID,
		Title:          doc.Metadata.Title,
		Artist:         doc.Metadata.Artist,
		Album:          doc.Metadata.Album,
		DurationMS:     doc.Metadata.Duration,
		LineCount:      len(doc.Lines),
		HasAudio:       strings.TrimSpace(doc.Metadata.AudioPath) != "",
		BuiltIn:        l.IsBuiltIn(doc.SongID),
		LastModifiedAt: parseInstant(doc.Metadata.LastModified),
	}
}
