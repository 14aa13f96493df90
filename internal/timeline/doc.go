// Package timeline models one song's synchronized lyrics: an ordered set of
// lines, each carrying a millisecond timecode or the unsynchronized sentinel,
// plus song metadata.
//
// The Timeline owns its lines exclusively; callers mutate only through
// Timeline operations so ordering invariants can be re-enforced at a single
// choke point. Two invariants matter:
//
//   - Grouping: synchronized lines (time >= 0) precede unsynchronized ones
//     (time == UnsyncedTime) in sequence order. The stable sort applied after
//     structural mutations maintains this.
//   - Monotonicity: among synchronized lines, timecodes strictly increase.
//     The sort alone does not guarantee this; CorrectFrom and CorrectAll
//     restore it after time edits.
//
// Treat this package as the single source of truth for line ordering
// semantics; the codec and the library index both build on it.
package timeline
