package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// SessionDeps are the collaborators a session calls out to.
type SessionDeps struct {
	// Extractor unpacks archives. Required for archive imports.
	Extractor driven.ArchiveExtractor

	// Generator renders PDFs. Required for Generate and Preview.
	Generator driven.PDFGenerator

	// Detector sniffs extension-less files. Optional.
	Detector driven.FileTypeDetector

	// Settings supplies layout and import settings. Optional; defaults
	// are used when nil.
	Settings driving.SettingsService
}

// Session is one editing session: a page list with history, the staging
// area holding extracted archives, and the collaborators used to fill and
// render it.
type Session struct {
	id        string
	name      string
	createdAt time.Time
	updatedAt time.Time

	list    *PageList
	staging *StagingArea
	deps    SessionDeps
}

// NewSession creates an empty session over staging.
func NewSession(id, name string, staging *StagingArea, deps SessionDeps) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		name:      name,
		createdAt: now,
		updatedAt: now,
		list:      NewPageList(),
		staging:   staging,
		deps:      deps,
	}
}

// RestoreSession rebuilds a session from its persisted state.
func RestoreSession(state *domain.SessionState, staging *StagingArea, deps SessionDeps) *Session {
	s := &Session{
		id:        state.ID,
		name:      state.Name,
		createdAt: state.CreatedAt,
		updatedAt: state.UpdatedAt,
		list:      &PageList{},
		staging:   staging,
		deps:      deps,
	}
	s.list.Restore(state.Pages, state.Past, state.Future)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// StagingDir returns the directory receiving extracted archives.
func (s *Session) StagingDir() string { return s.staging.Dir() }

// Pages returns a copy of the current page order.
func (s *Session) Pages() []domain.PageRef { return s.list.Pages() }

// Len returns the number of pages.
func (s *Session) Len() int { return s.list.Len() }

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.list.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.list.CanRedo() }

// Append adds pages to the end as one undo step.
func (s *Session) Append(refs ...domain.PageRef) { s.list.Append(refs...) }

// Remove deletes the pages at the given positions.
func (s *Session) Remove(indices ...int) int { return s.list.Remove(indices...) }

// Sort orders pages by file name.
func (s *Session) Sort(mode domain.SortMode) error { return s.list.Sort(mode) }

// Move relocates one page.
func (s *Session) Move(from, to int) bool { return s.list.Move(from, to) }

// Clear removes every page.
func (s *Session) Clear() { s.list.Clear() }

// Undo restores the previous page order.
func (s *Session) Undo() bool { return s.list.Undo() }

// Redo reapplies the last undone change.
func (s *Session) Redo() bool { return s.list.Redo() }

// Import classifies each path and imports what it can. Pages collected from
// every successful path are appended in one step, so the whole call undoes
// at once. Per-path failures are joined into the returned error.
// A nil decider answers no to every question.
func (s *Session) Import(ctx context.Context, paths []string, decider driving.Decider) ([]domain.ImportResult, error) {
	if s.staging.Closed() {
		return nil, domain.ErrSessionClosed
	}
	if decider == nil {
		decider = driving.Always(false)
	}

	logger.Section("Import")
	logger.Debug("Session %s: importing %d path(s)", s.name, len(paths))

	batch := make(map[string]struct{})
	results := make([]domain.ImportResult, 0, len(paths))
	var collected []domain.PageRef
	var errs []error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res := s.importOne(ctx, path, decider, batch)
		logger.Debug("%s: %s (%d page(s))", path, res.Outcome, len(res.Added))
		if res.Err != nil {
			logger.Warn("Import %s failed: %v", path, res.Err)
			errs = append(errs, res.Err)
		}
		collected = append(collected, res.Added...)
		results = append(results, res)
	}

	s.list.Append(collected...)
	logger.Info("Imported %d page(s); list now has %d", len(collected), s.list.Len())

	return results, errors.Join(errs...)
}

func (s *Session) importOne(
	ctx context.Context,
	path string,
	decider driving.Decider,
	batch map[string]struct{},
) domain.ImportResult {
	path = domain.AbsPath(path)
	info, err := os.Stat(path)
	if err != nil {
		return failed(path, fmt.Errorf("import: %w", err))
	}
	if info.IsDir() {
		return failed(path, &domain.UnsupportedFileError{Path: path})
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())

	c := Classify(path)
	switch c.Action {
	case domain.ActionAskArchive:
		q, _ := c.Question()
		q.Hint = s.detect(path)
		if !decider.Decide(q) {
			return domain.ImportResult{Path: path, Outcome: domain.OutcomeSkipped}
		}
		return s.extract(ctx, path, key, batch, func() (string, error) {
			return s.staging.Adopt(path, s.archiveExtFor(path))
		})

	case domain.ActionExtract:
		return s.extract(ctx, path, key, batch, func() (string, error) { return path, nil })

	case domain.ActionAskMerge:
		q, _ := c.Question()
		if decider.Decide(q) {
			return domain.ImportResult{Path: path, Outcome: domain.OutcomeRouteToMerge}
		}
		return domain.ImportResult{Path: path, Outcome: domain.OutcomeSkipped}

	case domain.ActionAppend:
		ref := domain.NewPageRef(path)
		batch[path] = struct{}{}
		return domain.ImportResult{Path: path, Outcome: domain.OutcomeAppended, Added: []domain.PageRef{ref}}

	default:
		return failed(path, &domain.UnsupportedFileError{Path: path})
	}
}

// extract unpacks archive into its own directory in the staging area and
// collects page files that are neither in the list nor already collected in
// this batch. source is the path the user supplied and is what errors
// report; archive yields the file handed to the extractor. key identifies
// the archive contents: unpacking the same key again reuses the earlier
// directory, so its pages are not collected twice.
func (s *Session) extract(
	ctx context.Context,
	source, key string,
	batch map[string]struct{},
	archive func() (string, error),
) domain.ImportResult {
	if s.deps.Extractor == nil {
		return failed(source, &domain.ExtractionError{Path: source, Err: errors.New("no archive extractor configured")})
	}

	dir, reused, err := s.staging.Unpack(key, func(dir string) error {
		path, err := archive()
		if err != nil {
			return err
		}
		return s.deps.Extractor.Extract(ctx, path, dir)
	})
	if err != nil {
		var xe *domain.ExtractionError
		if errors.As(err, &xe) {
			err = xe.Err
		}
		return failed(source, &domain.ExtractionError{Path: source, Err: err})
	}
	if reused {
		logger.Debug("%s already extracted into %s", source, dir)
	}

	found, err := s.staging.Scan(dir, s.importSettings().SkipHidden)
	if err != nil {
		if !reused {
			_ = os.RemoveAll(dir)
		}
		return failed(source, &domain.ExtractionError{Path: source, Err: err})
	}

	fresh := make([]string, 0, len(found))
	for _, p := range found {
		if _, dup := batch[p]; dup || s.list.Contains(p) {
			continue
		}
		fresh = append(fresh, p)
	}
	SortPaths(fresh, domain.SortNatural)

	added := make([]domain.PageRef, len(fresh))
	for i, p := range fresh {
		batch[p] = struct{}{}
		added[i] = domain.NewPageRef(p)
	}
	return domain.ImportResult{Path: source, Outcome: domain.OutcomeExtracted, Added: added}
}

func failed(path string, err error) domain.ImportResult {
	return domain.ImportResult{Path: path, Outcome: domain.OutcomeFailed, Err: err}
}

// detect returns the sniffed MIME type of path, or "" when unknown.
func (s *Session) detect(path string) string {
	if s.deps.Detector == nil {
		return ""
	}
	mime, err := s.deps.Detector.Detect(path)
	if err != nil {
		logger.Debug("Detect %s: %v", path, err)
		return ""
	}
	return mime
}

// archiveExtFor picks the extension given to an extension-less archive.
func (s *Session) archiveExtFor(path string) string {
	if s.deps.Detector != nil && s.deps.Detector.IsSevenZip(path) {
		return ".7z"
	}
	return ".zip"
}

// Generate writes the current pages as a PDF to outPath.
func (s *Session) Generate(ctx context.Context, outPath string) error {
	if s.list.Len() == 0 {
		return domain.ErrNoPages
	}
	if s.deps.Generator == nil {
		return &domain.GenerationError{Err: errors.New("no pdf generator configured")}
	}

	opts := s.pdfSettings()
	logger.Section("Generate")
	logger.Debug("Writing %d page(s) to %s (%s %s, margin %gmm)",
		s.list.Len(), outPath, opts.PageSize, opts.Orientation, opts.MarginMM)

	if err := s.deps.Generator.Generate(ctx, s.list.Pages(), outPath, opts); err != nil {
		return fmt.Errorf("generate %s: %w", outPath, err)
	}
	logger.Info("Saved %s", outPath)
	return nil
}

// Preview generates the current pages into the staging area and returns
// the file path.
func (s *Session) Preview(ctx context.Context) (string, error) {
	if s.staging.Closed() {
		return "", domain.ErrSessionClosed
	}
	out := filepath.Join(s.staging.Dir(), PreviewFileName)
	if err := s.Generate(ctx, out); err != nil {
		return "", err
	}
	return out, nil
}

// State returns the persistable form of the session.
func (s *Session) State() *domain.SessionState {
	pages, past, future := s.list.State()
	return &domain.SessionState{
		ID:         s.id,
		Name:       s.name,
		StagingDir: s.staging.Dir(),
		Pages:      pages,
		Past:       past,
		Future:     future,
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}

// touch records a save time.
func (s *Session) touch(t time.Time) { s.updatedAt = t }

// Close removes the staging area.
func (s *Session) Close() error {
	logger.Debug("Closing session %s, removing %s", s.name, s.staging.Dir())
	return s.staging.Close()
}

func (s *Session) settings() domain.AppSettings {
	if s.deps.Settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.deps.Settings.Get()
	if err != nil || settings == nil {
		logger.Warn("Using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

func (s *Session) pdfSettings() domain.PDFSettings { return s.settings().PDF }

func (s *Session) importSettings() domain.ImportSettings { return s.settings().Import }
