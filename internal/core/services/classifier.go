package services

import "github.com/custodia-labs/zip2pdf/internal/core/domain"

// Classify decides what to do with one input path by looking at its name
// only. It never touches the filesystem.
//
// Rules, in order: no extension asks whether the file is an archive; .zip and
// .7z are extracted; .pdf asks whether to open the merge tool; image and text
// extensions are appended; anything else is unsupported.
func Classify(path string) domain.Classification {
	c := domain.Classification{Path: path}
	switch {
	case !domain.HasExtension(path):
		c.Action = domain.ActionAskArchive
	case domain.IsArchiveFile(path):
		c.Action = domain.ActionExtract
	case domain.IsPDFFile(path):
		c.Action = domain.ActionAskMerge
	case domain.IsPageFile(path):
		c.Action = domain.ActionAppend
	default:
		c.Action = domain.ActionUnsupported
	}
	return c
}
