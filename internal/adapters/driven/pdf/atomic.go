package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeAtomic streams write into a temporary file beside outPath and
// renames it into place once write and close succeed.
func writeAtomic(outPath string, write func(io.Writer) error) error {
	return writeAtomicPath(outPath, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}

// writeAtomicPath lets write produce a temporary file by path, then
// renames it to outPath. The temporary file is removed on any failure.
func writeAtomicPath(outPath string, write func(tmp string) error) error {
	dir := filepath.Dir(outPath)
	f, err := os.CreateTemp(dir, ".zip2pdf-*.pdf")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
