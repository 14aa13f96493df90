package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// UnsyncedTime marks a line that has not been time-aligned yet. It is a
// first-class state, distinct from a line synchronized at 0 ms.
const UnsyncedTime int64 = -1

// LineType classifies a lyric line for display purposes.
type LineType string

const (
	LineVocal        LineType = "vocal"
	LineChorus       LineType = "chorus"
	LineBridge       LineType = "bridge"
	LineInstrumental LineType = "instrumental"
	LineOutro        LineType = "outro"
)

// ValidLineType reports whether t is one of the known line types.
func ValidLineType(t LineType) bool {
	switch t {
	case LineVocal, LineChorus, LineBridge, LineInstrumental, LineOutro:
		return true
	default:
		return false
	}
}

// Line is one lyric unit. Time is in milliseconds, or UnsyncedTime when the
// line has no timecode. Text may be empty; an empty synchronized line
// represents an instrumental gap.
type Line struct {
	ID   string   `json:"id"`
	Time int64    `json:"time"`
	Text string   `json:"text"`
	Type LineType `json:"type"`
}

// Synced reports whether the line carries a timecode.
func (l Line) Synced() bool {
	return l.Time >= 0
}

func (l Line) String() string {
	if !l.Synced() {
		return fmt.Sprintf("[--:--.--] %s", l.Text)
	}
	return fmt.Sprintf("[%02d:%02d.%02d] %s",
		l.Time/60000, (l.Time%60000)/1000, (l.Time%1000)/10, l.Text)
}

// LineInput describes a line to be added in bulk. Type defaults to vocal
// when empty or unknown.
type LineInput struct {
	Time int64
	Text string
	Type LineType
}

func newLineID() string {
	return "line_" + uuid.NewString()
}
