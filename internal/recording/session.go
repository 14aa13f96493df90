// Package recording drives a live sync session: playback position updates
// throttled to a minimum interval, and timecode stamping against the bound
// timeline.
package recording

import (
	"errors"
	"fmt"
	"time"

	"lyrix/internal/timeline"
)

// DefaultThrottleMS is the minimum interval between accepted position
// updates.
const DefaultThrottleMS int64 = 100

// ErrNoUnsyncedLine reports that every line already carries a timecode.
var ErrNoUnsyncedLine = errors.New("recording: no unsynchronized line left to stamp")

// Session binds one timeline for the duration of a recording run.
type Session struct {
	tl         *timeline.Timeline
	throttleMS int64

	now            func() time.Time
	lastAcceptedAt time.Time
	positionMS     int64
	hasPosition    bool
}

// Option customizes session construction.
type Option func(*Session)

// WithThrottle overrides the update throttle. Values <= 0 disable it.
func WithThrottle(ms int64) Option {
	return func(s *Session) {
		s.throttleMS = ms
	}
}

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session over the given timeline.
func NewSession(tl *timeline.Timeline, opts ...Option) *Session {
	s := &Session{
		tl:         tl,
		throttleMS: DefaultThrottleMS,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdatePosition records a playback position. Updates arriving within the
// throttle window of the last accepted one are dropped; the return value
// reports whether this update was accepted. The throttle caps update rate
// only, it never affects which line is considered active for an accepted
// position.
func (s *Session) UpdatePosition(ms int64) bool {
	if ms < 0 {
		return false
	}
	nowAt := s.now()
	if s.hasPosition && s.throttleMS > 0 {
		if nowAt.Sub(s.lastAcceptedAt) < time.Duration(s.throttleMS)*time.Millisecond {
			return false
		}
	}
	s.lastAcceptedAt = nowAt
	s.positionMS = ms
	s.hasPosition = true
	return true
}

// Position returns the last accepted playback position.
func (s *Session) Position() (int64, bool) {
	return s.positionMS, s.hasPosition
}

// ActiveIndex resolves the active line for the last accepted position.
func (s *Session) ActiveIndex() (int, bool) {
	if !s.hasPosition {
		return 0, false
	}
	return s.tl.ActiveIndexAt(s.positionMS)
}

// StampNext writes the last accepted position into the first line that has
// no timecode yet, then ripples the correction forward from it. It returns
// the stamped line index and the number of corrected lines.
func (s *Session) StampNext() (int, int, error) {
	if !s.hasPosition {
		return 0, 0, errors.New("recording: no position accepted yet")
	}
	index := -1
	for i := 0; i < s.tl.Len(); i++ {
		line, _ := s.tl.LineAt(i)
		if !line.Synced() {
			index = i
			break
		}
	}
	if index < 0 {
		return 0, 0, ErrNoUnsyncedLine
	}
	s.tl.SetLineTime(index, s.positionMS)
	corrected := s.tl.CorrectFrom(index)
	return index, corrected, nil
}

// StampLine writes the last accepted position into a specific line and
// ripples the correction forward. Used when re-recording an existing line.
func (s *Session) StampLine(index int) (int, error) {
	if !s.hasPosition {
		return 0, errors.New("recording: no position accepted yet")
	}
	if index < 0 || index >= s.tl.Len() {
		return 0, fmt.Errorf("recording: line index %d out of range", index)
	}
	s.tl.SetLineTime(index, s.positionMS)
	return s.tl.CorrectFrom(index), nil
}
