package archive

import (
	"context"
	"io"

	"github.com/klauspost/compress/zip"
)

func extractZip(ctx context.Context, path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, entry{
			name:  f.Name,
			isDir: f.FileInfo().IsDir(),
			mode:  f.Mode(),
			open:  func() (io.ReadCloser, error) { return f.Open() },
		})
	}
	return writeEntries(ctx, entries, destDir)
}
