package library

import (
	"encoding/json"
	"sort"
)

// builtinKey stores the built-in song id set. It sits outside KeyPrefix so
// library scans never pick it up as a song document.
const builtinKey = "builtin_songs"

func (l *Library) loadBuiltins() error {
	l.builtin = make(map[string]struct{})
	value, ok, err := l.kv.Get(builtinKey)
	if err != nil {
		return wrapStorage("read built-in set", err)
	}
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		// A corrupt tracking set is not worth failing startup over; built-in
		// flags are advisory.
		l.logger.Warn("resetting corrupt built-in song set", "error", err)
		return nil
	}
	for _, id := range ids {
		l.builtin[id] = struct{}{}
	}
	return nil
}

func (l *Library) saveBuiltins() error {
	ids := make([]string, 0, len(l.builtin))
	for id := range l.builtin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	payload, err := json.Marshal(ids)
	if err != nil {
		return wrapStorage("encode built-in set", err)
	}
	if err := l.kv.Set(builtinKey, string(payload)); err != nil {
		return wrapStorage("write built-in set", err)
	}
	return nil
}

// IsBuiltIn reports whether id is tracked as a built-in song.
func (l *Library) IsBuiltIn(id string) bool {
	_, ok := l.builtin[id]
	return ok
}

// MarkBuiltIn adds id to the built-in tracking set and persists it.
func (l *Library) MarkBuiltIn(id string) error {
	if _, ok := l.builtin[id]; ok {
		return nil
	}
	l.builtin[id] = struct{}{}
	return l.saveBuiltins()
}

// UnmarkBuiltIn removes id from the built-in tracking set and persists it.
func (l *Library) UnmarkBuiltIn(id string) error {
	if _, ok := l.builtin[id]; !ok {
		return nil
	}
	delete(l.builtin, id)
	return l.saveBuiltins()
}
