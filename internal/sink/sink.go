package sink

import "context"

// Sink stores rendered subtitle content under a destination name and returns
// the locator of the stored object.
type Sink interface {
	Put(ctx context.Context, content, destination, contentType string) (string, error)
}
