package driven

import "context"

// ArchiveExtractor unpacks archives into a directory.
type ArchiveExtractor interface {
	// Extract writes every entry of archivePath below destDir, creating
	// directories as needed. Entries that would land outside destDir are
	// rejected. Errors are reported as *domain.ExtractionError.
	Extract(ctx context.Context, archivePath, destDir string) error

	// Supports reports whether the extractor handles the lower-cased
	// extension ext (including the dot).
	Supports(ext string) bool
}

// FileTypeDetector identifies file content regardless of its name.
type FileTypeDetector interface {
	// Detect returns the MIME type of the file at path.
	Detect(path string) (string, error)

	// IsSevenZip reports whether the file at path looks like a 7z archive.
	IsSevenZip(path string) bool
}
