package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same unique key exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates an archive could not be read or unpacked.
	ErrExtraction = errors.New("extraction failed")

	// ErrUnsupportedFile indicates a file kind that cannot be imported.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrGeneration indicates the PDF document could not be produced.
	ErrGeneration = errors.New("pdf generation failed")

	// ErrMerge indicates PDF files could not be merged.
	ErrMerge = errors.New("pdf merge failed")

	// ErrTooFewInputs indicates a merge was requested with fewer than two PDFs.
	ErrTooFewInputs = errors.New("at least two PDF files are required")

	// ErrNoPages indicates generation was requested for an empty page list.
	ErrNoPages = errors.New("no pages to generate")

	// ErrInvalidSortMode indicates an unknown sort mode name.
	ErrInvalidSortMode = errors.New("invalid sort mode")

	// ErrSessionClosed indicates the session's staging area was already removed.
	ErrSessionClosed = errors.New("session closed")
)

// ExtractionError reports an archive that could not be extracted.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s: %v", e.Path, ErrExtraction)
	}
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error { return e.Err }

// Is matches ErrExtraction.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// UnsupportedFileError reports a file whose extension is not recognised.
type UnsupportedFileError struct {
	Path string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, ErrUnsupportedFile)
}

// Is matches ErrUnsupportedFile.
func (e *UnsupportedFileError) Is(target error) bool { return target == ErrUnsupportedFile }

// GenerationError reports the page source that aborted PDF generation.
// Path is empty when the failure is not tied to one source (e.g. writing the output).
type GenerationError struct {
	Path string
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrGeneration, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrGeneration, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is matches ErrGeneration.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// MergeError reports a merge failure, naming the offending input when known.
type MergeError struct {
	Path string
	Err  error
}

func (e *MergeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrMerge, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrMerge, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MergeError) Unwrap() error { return e.Err }

// Is matches ErrMerge.
func (e *MergeError) Is(target error) bool { return target == ErrMerge }

// InvalidValueError reports a setting or argument that failed validation.
type InvalidValueError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// Is matches ErrInvalidInput as well as the wrapped cause.
func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidInput }
