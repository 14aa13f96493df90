package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Bundle is a full library snapshot for transfer between instances. Songs
// hold raw documents so opaque companion data (syncData and the like) passes
// through untouched.
type Bundle struct {
	ExportDate time.Time         `json:"exportDate"`
	Version    string            `json:"version"`
	TotalSongs int               `json:"totalSongs"`
	Songs      []json.RawMessage `json:"songs"`
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// Overwrite replaces songs whose id already exists in the library.
	Overwrite bool
	// MarkBuiltIn tracks every imported song as built-in.
	MarkBuiltIn bool
}

// EntryError records one failed bundle entry by position.
type EntryError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (e EntryError) Error() string {
	return fmt.Sprintf("song %d: %s", e.Index+1, e.Message)
}

// ImportResult summarizes a bundle import.
type ImportResult struct {
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	Errors   []EntryError `json:"errors,omitempty"`
}

// ExportBundle snapshots every stored timeline. Documents are re-encoded
// through the normalizing decoder so exported songs never carry legacy
// top-level duplicates; undecodable entries are skipped as in ListAll.
func (l *Library) ExportBundle() (*Bundle, error) {
	keys, err := l.kv.ListKeys(KeyPrefix)
	if err != nil {
		return nil, wrapStorage("list keys", err)
	}

	bundle := &Bundle{
		ExportDate: time.Now().UTC(),
		Version:    "1.0",
		Songs:      make([]json.RawMessage, 0, len(keys)),
	}
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
			l.logger.Warn("skipping undecodable entry in export", "key", key, "error", err)
			continue
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, wrapStorage("encode "+key, err)
		}
		bundle.Songs = append(bundle.Songs, payload)
	}
	bundle.TotalSongs = len(bundle.Songs)
	return bundle, nil
}

// ImportBundle reconstructs and stores each song in the bundle. Existing ids
// are skipped unless Overwrite is set. Errors are accumulated per entry; one
// malformed song never aborts the rest of the bundle.
func (l *Library) ImportBundle(bundle *Bundle, opts ImportOptions) (ImportResult, error) {
	var result ImportResult
	if bundle == nil || bundle.Songs == nil {
		return result, errors.New("invalid bundle: missing songs")
	}

	for i, raw := range bundle.Songs {
		doc, err := decodeSong(raw)
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Index: i, Message: err.Error()})
			continue
		}
		if doc.SongID == "" {
			doc.SongID = GenerateID(doc.Metadata.Title, doc.Metadata.Artist)
		}

		key := KeyPrefix + doc.SongID
		_, exists, err := l.kv.Get(key)
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Index: i, Message: err.Error()})
			continue
		}
		if exists && !opts.Overwrite {
			result.Skipped++
			l.logger.Debug("skipped existing song", "key", key, "title", doc.Metadata.Title)
			continue
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Index: i, Message: err.Error()})
			continue
		}
		if err := l.kv.Set(key, string(payload)); err != nil {
			result.Errors = append(result.Errors, EntryError{Index: i, Message: err.Error()})
			continue
		}
		result.Imported++
		if opts.MarkBuiltIn {
			if err := l.MarkBuiltIn(doc.SongID); err != nil {
				result.Errors = append(result.Errors, EntryError{Index: i, Message: err.Error()})
			}
		}
		l.logger.Debug("imported song", "key", key, "title", doc.Metadata.Title)
	}

	l.logger.Info("bundle import complete",
		"imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}
