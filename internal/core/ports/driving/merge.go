package driving

import (
	"context"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// MergeService manages the ordered set of PDFs for the merge tool.
type MergeService interface {
	// Add appends PDF paths. Non-PDF paths are rejected with
	// *domain.UnsupportedFileError and nothing is added.
	Add(paths ...string) error

	// Remove deletes the entry at index.
	Remove(index int) bool

	// Move relocates the entry at from to position to.
	Move(from, to int) bool

	// Clear empties the set.
	Clear()

	// Paths returns the queued paths in order.
	Paths() []string

	// Len returns the number of queued paths.
	Len() int

	// Summaries returns each queued path with its page count.
	Summaries(ctx context.Context) []domain.MergeInput

	// Merge writes the queued PDFs to outPath. At least two are required.
	Merge(ctx context.Context, outPath string) error

	// MergeFiles merges paths directly without touching the queued set.
	MergeFiles(ctx context.Context, paths []string, outPath string) error
}
