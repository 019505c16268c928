package archive

import (
	"context"
	"io"

	"github.com/bodgit/sevenzip"
)

func extractSevenZip(ctx context.Context, path, destDir string) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		info := f.FileInfo()
		entries = append(entries, entry{
			name:  f.Name,
			isDir: info.IsDir(),
			mode:  info.Mode(),
			open:  func() (io.ReadCloser, error) { return f.Open() },
		})
	}
	return writeEntries(ctx, entries, destDir)
}
