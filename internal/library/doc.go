// Package library persists timelines in a key-addressed store and derives a
// searchable index over them.
//
// Timelines are serialized as JSON documents under keys of the form
// "lyrics_<timelineID>". The index entries returned by ListAll and Search are
// projections computed by scanning the store; they are a cache of
// convenience, never the source of truth. Legacy documents that carry
// title/artist at the top level instead of under metadata are normalized
// once at the decode boundary, so the timeline model stays free of
// historical serialization quirks.
//
// A Library also owns the persisted set of built-in song ids, loaded at
// construction and saved on every mutation.
package library
