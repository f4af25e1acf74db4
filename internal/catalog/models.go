package catalog

import "time"

// Track records a rendered subtitle track.
type Track struct {
	ID          string
	Source      string
	Format      string
	Language    string
	CueCount    int
	WordCount   int
	Duration    float64
	Speakers    []string
	Destination string
	CreatedAt   time.Time
}
