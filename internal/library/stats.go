package library

import (
	"fmt"
	"sort"
	"strings"
)

// Stats aggregates library-wide counts.
type Stats struct {
	TotalSongs          int `json:"totalSongs"`
	TotalLines          int `json:"totalLines"`
	SongsWithAudio      int `json:"songsWithAudio"`
	BuiltInSongs        int `json:"builtInSongs"`
	UserSongs           int `json:"userSongs"`
	AverageLinesPerSong int `json:"averageLinesPerSong"`
}

// Issue is one advisory finding from a library integrity check.
type Issue struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Stats computes aggregate counts over all stored timelines.
func (l *Library) Stats() (Stats, error) {
	entries, err := l.ListAll()
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	s.TotalSongs = len(entries)
	for _, entry := range entries {
		s.TotalLines += entry.LineCount
		if entry.HasAudio {
			s.SongsWithAudio++
		}
		if entry.BuiltIn {
			s.BuiltInSongs++
		}
	}
	s.UserSongs = s.TotalSongs - s.BuiltInSongs
	if s.TotalSongs > 0 {
		s.AverageLinesPerSong = (s.TotalLines + s.TotalSongs/2) / s.TotalSongs
	}
	return s, nil
}

// Validate checks every stored document and reports advisory findings. The
// check never mutates data; callers decide what to do about the issues.
func (l *Library) Validate() ([]Issue, error) {
	keys, err := l.kv.ListKeys(KeyPrefix)
	if err != nil {
		return nil, wrapStorage("list keys", err)
	}

	var issues []Issue
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
			issues = append(issues, Issue{Key: key, Message: fmt.Sprintf("cannot decode: %v", err)})
			continue
		}
		if doc.Metadata.Title == "" || doc.Metadata.Artist == "" {
			issues = append(issues, Issue{Key: key, Message: "missing title or artist"})
		}
		for i, line := range doc.Lines {
			if line.Time < -1 {
				issues = append(issues, Issue{Key: key, Message: fmt.Sprintf("line %d has invalid time %d", i+1, line.Time)})
			}
		}
	}
	return issues, nil
}

// DeleteAll removes every stored timeline and clears the built-in tracking
// set, returning how many songs were deleted.
func (l *Library) DeleteAll() (int, error) {
	keys, err := l.kv.ListKeys(KeyPrefix)
	if err != nil {
		return 0, wrapStorage("list keys", err)
	}
	deleted := 0
	for _, key := range keys {
		if err := l.kv.Remove(key); err != nil {
			return deleted, wrapStorage("remove "+key, err)
		}
		deleted++
	}
	l.builtin = make(map[string]struct{})
	if err := l.saveBuiltins(); err != nil {
		return deleted, err
	}
	l.logger.Info("library cleared", "deleted", deleted)
	return deleted, nil
}

// SongsByArtist returns the entries whose artist matches, case-insensitively.
func (l *Library) SongsByArtist(artist string) ([]Entry, error) {
	entries, err := l.ListAll()
	if err != nil {
		return nil, err
	}
	folded := caseFolder.String(artist)
	matched := entries[:0]
	for _, entry := range entries {
		if caseFolder.String(entry.Artist) == folded {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// Artists returns the sorted set of distinct artists in the library.
func (l *Library) Artists() ([]string, error) {
	return l.distinct(func(e Entry) string { return e.Artist })
}

// Albums returns the sorted set of distinct non-empty albums in the library.
func (l *Library) Albums() ([]string, error) {
	return l.distinct(func(e Entry) string { return e.Album })
}

func (l *Library) distinct(field func(Entry) string) ([]string, error) {
	entries, err := l.ListAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var values []string
	for _, entry := range entries {
		v := strings.TrimSpace(field(entry))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
