package timeline

// ActiveIndexAt returns the index of the line that should be highlighted at
// playback position timeMS: the last synchronized line whose timecode is at
// or before the position. When the position precedes the first synchronized
// line, that first line is returned so a caller always has something to
// highlight once any sync exists. Returns false when no line is
// synchronized.
func (t *Timeline) ActiveIndexAt(timeMS int64) (int, bool) {
	first := -1
	active := -1
	for i, line := range t.lines {
		if !line.Synced() {
			continue
		}
		if first == -1 {
			first = i
		}
		if line.Time <= timeMS {
			active = i
		}
	}
	if first == -1 {
		return 0, false
	}
	if active == -1 {
		return first, true
	}
	return active, true
}

// ActiveLineAt is ActiveIndexAt returning the line itself.
func (t *Timeline) ActiveLineAt(timeMS int64) (Line, bool) {
	i, ok := t.ActiveIndexAt(timeMS)
	if !ok {
		return Line{}, false
	}
	return t.lines[i], true
}

// NextLineAfter returns the first synchronized line, in sequence order,
// whose timecode is strictly after timeMS.
func (t *Timeline) NextLineAfter(timeMS int64) (Line, bool) {
	for _, line := range t.lines {
		if line.Synced() && line.Time > timeMS {
			return line, true
		}
	}
	return Line{}, false
}
