// Package source loads diarized transcripts from their storage locations.
package source
