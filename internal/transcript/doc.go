// Package transcript defines the diarized transcript model consumed by the
// subtitle compiler.
//
// A transcript is an ordered list of speech segments, each optionally
// carrying word-level timing and speaker attribution. Decode validates the
// document at the boundary: timing fields must be present and every span
// must satisfy end >= start. Downstream code can rely on a decoded
// transcript being well formed.
package transcript
