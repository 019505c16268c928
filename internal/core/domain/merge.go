package domain

import "path/filepath"

// MergeInput describes one PDF queued for merging.
type MergeInput struct {
	// Path is the PDF file path.
	Path string `json:"path"`

	// PageCount is the number of pages, or 0 when Err is set.
	PageCount int `json:"page_count"`

	// Err is set when the file could not be read.
	Err error `json:"-"`
}

// Name returns the base file name.
func (m MergeInput) Name() string {
	return filepath.Base(m.Path)
}

// TotalPages sums the page counts of readable inputs.
func TotalPages(inputs []MergeInput) int {
	total := 0
	for _, in := range inputs {
		if in.Err == nil {
			total += in.PageCount
		}
	}
	return total
}
