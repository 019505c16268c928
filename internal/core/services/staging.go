package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// macOSMetadataDir is the resource-fork directory macOS adds to archives.
const macOSMetadataDir = "__MACOSX"

// PreviewFileName is the file Preview writes inside the staging area.
const PreviewFileName = "preview.pdf"

// StagingArea is a per-session directory receiving extracted archives.
type StagingArea struct {
	dir    string
	closed bool
}

// NewStagingArea creates <root>/<id>. With an empty root a fresh
// temporary directory is used instead.
func NewStagingArea(root, id string) (*StagingArea, error) {
	if root == "" {
		dir, err := os.MkdirTemp("", "zip2pdf-")
		if err != nil {
			return nil, fmt.Errorf("create staging area: %w", err)
		}
		return &StagingArea{dir: dir}, nil
	}
	return OpenStagingArea(filepath.Join(root, id))
}

// OpenStagingArea uses dir as the staging area, creating it if needed.
func OpenStagingArea(dir string) (*StagingArea, error) {
	if dir == "" {
		return nil, fmt.Errorf("staging dir: %w", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging area: %w", err)
	}
	return &StagingArea{dir: dir}, nil
}

// Dir returns the staging directory.
func (s *StagingArea) Dir() string { return s.dir }

// Closed reports whether Close was called.
func (s *StagingArea) Closed() bool { return s.closed }

// Unpack gives one archive its own directory below the staging area, named
// after key. unpack writes into a fresh hidden directory that is renamed
// into place only when it succeeds, so a failed extraction leaves nothing
// behind. When key was unpacked before, the existing directory is returned
// with reused set and unpack is not called.
func (s *StagingArea) Unpack(key string, unpack func(dir string) error) (dir string, reused bool, err error) {
	if s.closed {
		return "", false, domain.ErrSessionClosed
	}

	dir = filepath.Join(s.dir, uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String())
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, true, nil
	}

	tmp, err := os.MkdirTemp(s.dir, ".unpack-")
	if err != nil {
		return "", false, err
	}
	if err := unpack(tmp); err != nil {
		_ = os.RemoveAll(tmp)
		return "", false, err
	}
	if err := os.Rename(tmp, dir); err != nil {
		_ = os.RemoveAll(tmp)
		return "", false, err
	}
	return dir, false, nil
}

// Scan walks dir, a directory inside the staging area, and returns every
// page file. With skipHidden set, entries below a dot-directory or __MACOSX
// and dot-files are left out. Paths are returned in walk order.
func (s *StagingArea) Scan(dir string, skipHidden bool) ([]string, error) {
	if s.closed {
		return nil, domain.ErrSessionClosed
	}

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if skipHidden && isHiddenName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && domain.IsPageFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan staging area: %w", err)
	}
	return found, nil
}

// Adopt copies src into the staging area under its base name with ext
// appended and returns the new path. The source file is left untouched.
func (s *StagingArea) Adopt(src, ext string) (string, error) {
	if s.closed {
		return "", domain.ErrSessionClosed
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst, out, err := s.create(filepath.Base(src), ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// create opens a new file named base+ext, adding a counter when taken.
func (s *StagingArea) create(base, ext string) (string, *os.File, error) {
	for i := 0; ; i++ {
		name := base + ext
		if i > 0 {
			name = base + "-" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return path, f, nil
	}
}

// Close removes the staging directory and everything in it.
func (s *StagingArea) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove staging area: %w", err)
	}
	return nil
}

func isHiddenName(name string) bool {
	return (strings.HasPrefix(name, ".") && name != "." && name != "..") || name == macOSMetadataDir
}
