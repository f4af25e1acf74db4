package source

import (
	"context"
	"fmt"
	"os"

	"cuemill/internal/transcript"
)

// Source fetches a transcript identified by a locator.
type Source interface {
	Fetch(ctx context.Context, locator string) (*transcript.Transcript, error)
}

// FileSource reads transcript JSON from the local filesystem.
type FileSource struct{}

// Fetch reads and decodes the transcript at the given path.
func (FileSource) Fetch(ctx context.Context, locator string) (*transcript.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(locator)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", locator, err)
	}
	parsed, err := transcript.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", locator, err)
	}
	return parsed, nil
}
