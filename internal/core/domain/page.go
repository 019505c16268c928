package domain

import (
	"path/filepath"
	"strings"
)

// PageKind describes how a page source is rendered into the document.
type PageKind string

const (
	// PageKindImage is a raster image placed on its own page.
	PageKindImage PageKind = "image"
	// PageKindText is a plain text file flowed onto one or more pages.
	PageKindText PageKind = "text"
	// PageKindUnknown is any other file.
	PageKindUnknown PageKind = "unknown"
)

// String returns the string representation.
func (k PageKind) String() string {
	return string(k)
}

// Supported file extensions (lower case, with leading dot).
var (
	imageExtensions   = []string{".jpg", ".jpeg", ".png", ".webp"}
	textExtensions    = []string{".txt"}
	archiveExtensions = []string{".zip", ".7z"}
)

// PDFExtension is the extension routed to the merge tool.
const PDFExtension = ".pdf"

// ImageExtensions returns the supported raster image extensions.
func ImageExtensions() []string {
	return append([]string(nil), imageExtensions...)
}

// PageExtensions returns every extension that can become a page.
func PageExtensions() []string {
	exts := make([]string, 0, len(imageExtensions)+len(textExtensions))
	exts = append(exts, imageExtensions...)
	return append(exts, textExtensions...)
}

// ArchiveExtensions returns the supported archive extensions.
func ArchiveExtensions() []string {
	return append([]string(nil), archiveExtensions...)
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// HasExtension reports whether the base name of path carries an extension.
// A leading dot alone (".profile") or a trailing dot ("scan.") is not one.
func HasExtension(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return ext != "" && ext != "." && ext != base
}

// IsPageFile reports whether path has a page extension.
func IsPageFile(path string) bool {
	return KindOf(path) != PageKindUnknown
}

// IsArchiveFile reports whether path has an archive extension.
func IsArchiveFile(path string) bool {
	return contains(archiveExtensions, Ext(path))
}

// IsPDFFile reports whether path has the PDF extension.
func IsPDFFile(path string) bool {
	return Ext(path) == PDFExtension
}

// AbsPath resolves path against the working directory so that a stored
// reference stays valid when the process later runs elsewhere. An empty
// path stays empty.
func AbsPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// KindOf derives the page kind from the extension of path.
func KindOf(path string) PageKind {
	ext := Ext(path)
	switch {
	case contains(imageExtensions, ext):
		return PageKindImage
	case contains(textExtensions, ext):
		return PageKindText
	default:
		return PageKindUnknown
	}
}

// PageRef references one page source on disk.
// It is a value type; two refs are equal when their paths are equal.
type PageRef struct {
	// Path is the filesystem path of the page source.
	Path string `json:"path"`
}

// NewPageRef creates a reference for path.
func NewPageRef(path string) PageRef {
	return PageRef{Path: path}
}

// Kind returns the page kind implied by the extension.
func (p PageRef) Kind() PageKind {
	return KindOf(p.Path)
}

// Name returns the base file name.
func (p PageRef) Name() string {
	return filepath.Base(p.Path)
}

// SortKey returns the case-insensitive name used for ordering.
func (p PageRef) SortKey() string {
	return strings.ToLower(p.Name())
}

// Equal reports whether both refs point at the same path.
func (p PageRef) Equal(other PageRef) bool {
	return p.Path == other.Path
}

// CopyPages returns a deep copy of pages. A nil input yields an empty slice.
func CopyPages(pages []PageRef) []PageRef {
	out := make([]PageRef, len(pages))
	copy(out, pages)
	return out
}

// PagePaths returns the paths of pages in order.
func PagePaths(pages []PageRef) []string {
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.Path
	}
	return paths
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
