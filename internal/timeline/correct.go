package timeline

// MinIncrementMS is the minimum gap the correction pass enforces between two
// consecutive synchronized lines.
const MinIncrementMS int64 = 100

// CorrectFrom restores strict timecode ordering after the line at index was
// edited, without discarding more user intent than necessary. It repeatedly
// sweeps forward from the edited line, bumping any successor whose timecode
// is not strictly greater than its predecessor's to predecessor + 100 ms,
// until a sweep makes no change. A single edit can push a later line out of
// order, and fixing that line can in turn violate order with its own
// successor, hence the fixpoint loop. The pass count is bounded by the line
// count so pathological input (every line at time 0) still terminates.
//
// The sweep starts at the edited line's predecessor pair so a lowered
// timecode is reconciled against the line before it, but only lines at or
// after index are ever rewritten. Unsynchronized lines neither constrain nor
// are constrained by their neighbors. Returns the number of corrections made.
func (t *Timeline) CorrectFrom(index int) int {
	if len(t.lines) < 2 {
		return 0
	}
	start := index - 1
	if start < 0 {
		start = 0
	}
	if start >= len(t.lines)-1 {
		return 0
	}

	corrections := 0
	for pass := 0; pass < len(t.lines); pass++ {
		changed := false
		for i := start; i < len(t.lines)-1; i++ {
			cur := t.lines[i]
			next := &t.lines[i+1]
			if !cur.Synced() || !next.Synced() {
				continue
			}
			if next.Time <= cur.Time {
				next.Time = cur.Time + MinIncrementMS
				corrections++
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	if corrections > 0 {
		t.touch()
	}
	return corrections
}

// CorrectAll runs the pairwise ordering rule once over the whole sequence.
// Used after bulk imports, where timecodes are assumed close to monotonic
// already; any violations a single pass leaves behind are resolved by the
// next interactive edit's cascading CorrectFrom. Returns the number of
// corrections made.
func (t *Timeline) CorrectAll() int {
	corrections := 0
	for i := 0; i < len(t.lines)-1; i++ {
		cur := t.lines[i]
		next := &t.lines[i+1]
		if !cur.Synced() || !next.Synced() {
			continue
		}
		if next.Time <= cur.Time {
			next.Time = cur.Time + MinIncrementMS
			corrections++
		}
	}
	if corrections > 0 {
		t.touch()
	}
	return corrections
}
