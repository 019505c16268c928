package driven

import "context"

// DropWatcher reports files that appear in a watched directory.
type DropWatcher interface {
	// Watch starts watching and returns a channel of new file paths.
	// The channel is closed when ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan string, error)

	// Dir returns the watched directory.
	Dir() string

	// Close stops watching and releases resources.
	Close() error
}
