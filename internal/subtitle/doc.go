// Package subtitle compiles diarized transcripts into subtitle documents.
//
// The pipeline is pure computation: ChunkTranscript converts segments into
// format-agnostic timed chunks under duration, length, word-count, and
// speaker-boundary constraints; Assemble turns chunks into a SubtitleTrack
// of format-specific entries with per-speaker colors; Content renders the
// track into SRT, WebVTT, or ASS document text. Identical input always
// yields byte-identical output, and no state is shared between calls, so
// the package is safe for concurrent use.
package subtitle
