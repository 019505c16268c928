// Package domain defines the core business entities for zip2pdf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PageRef: A reference to one page source (image or text file)
//   - SortMode: How the page list is ordered
//   - Classification, Question, ImportResult: The import decision vocabulary
//   - SessionState: The persistable page list with its undo/redo stacks
//   - AppSettings: Document layout and import settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
