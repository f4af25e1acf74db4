package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes subtitle files into a directory.
type FileSink struct {
	Dir string
}

// Put writes content to Dir/destination, creating parent directories as
// needed, and returns the absolute path of the written file.
func (s FileSink) Put(ctx context.Context, content, destination, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, destination)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write subtitle file: %w", err)
	}
	return path, nil
}
