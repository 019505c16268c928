// Package filetype sniffs file contents with magic bytes.
package filetype

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Detector implements the interface.
var _ driven.FileTypeDetector = (*Detector)(nil)

// MIME types of the supported archive formats.
const (
	MIMEZip      = "application/zip"
	MIMESevenZip = "application/x-7z-compressed"
)

// Detector detects file types from content, ignoring the file name.
type Detector struct{}

// New creates a new file type detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the MIME type of the file at path, without parameters.
func (d *Detector) Detect(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect file type: %w", err)
	}
	logger.Debug("Detected %s as %s", path, mtype.String())
	return baseType(mtype), nil
}

// IsSevenZip reports whether the file at path is a 7Z archive.
func (d *Detector) IsSevenZip(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return mtype.Is(MIMESevenZip)
}

// baseType strips parameters such as "; charset=utf-8".
func baseType(mtype *mimetype.MIME) string {
	base, _, _ := strings.Cut(mtype.String(), ";")
	return strings.TrimSpace(base)
}
