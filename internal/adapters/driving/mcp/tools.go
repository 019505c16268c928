package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// sortNone keeps pages in import order.
const sortNone = "none"

// BuildInput is the input schema for the build_pdf tool.
type BuildInput struct {
	Inputs                []string `json:"inputs" jsonschema:"absolute paths of archives (.zip .7z), images (.jpg .jpeg .png .webp) and text files (.txt), in page order"`
	Output                string   `json:"output" jsonschema:"absolute path of the PDF to write"`
	Sort                  string   `json:"sort,omitempty" jsonschema:"page order: natural, asc, desc or none (default: the configured default sort)"`
	TreatUnknownAsArchive bool     `json:"treat_unknown_as_archive,omitempty" jsonschema:"treat files without an extension as ZIP or 7Z archives"`
}

// BuildOutput is the output schema for the build_pdf tool.
type BuildOutput struct {
	Output  string         `json:"output"`
	Pages   int            `json:"pages"`
	Results []ImportOutput `json:"results"`
	// PDFs lists inputs that are PDFs; combine them with merge_pdfs.
	PDFs []string `json:"pdfs,omitempty"`
}

// ImportOutput reports what happened to one input.
type ImportOutput struct {
	Path    string `json:"path"`
	Outcome string `json:"outcome"`
	Pages   int    `json:"pages"`
	Error   string `json:"error,omitempty"`
}

// MergeInput is the input schema for the merge_pdfs tool.
type MergeInput struct {
	Inputs []string `json:"inputs" jsonschema:"absolute paths of at least two PDF files, in order"`
	Output string   `json:"output" jsonschema:"absolute path of the merged PDF to write"`
}

// MergeOutput is the output schema for the merge_pdfs tool.
type MergeOutput struct {
	Output string           `json:"output"`
	Files  []MergeFileOutput `json:"files"`
	Pages  int              `json:"pages"`
}

// MergeFileOutput is one merged input with its page count.
type MergeFileOutput struct {
	Path  string `json:"path"`
	Pages int    `json:"pages"`
}

// ClassifyInput is the input schema for the classify_file tool.
type ClassifyInput struct {
	Path string `json:"path" jsonschema:"path of the file to classify"`
}

// ClassifyOutput is the output schema for the classify_file tool.
type ClassifyOutput struct {
	Path          string `json:"path"`
	Action        string `json:"action"`
	NeedsDecision bool   `json:"needs_decision"`
	Question      string `json:"question,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_pdf",
		Description: "Build one PDF from archives, images and text files",
	}, s.handleBuild)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merge_pdfs",
		Description: "Merge two or more PDF files into one",
	}, s.handleMerge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_file",
		Description: "Report how build_pdf would treat a file, without reading it",
	}, s.handleClassify)
}

// handleBuild handles the build_pdf tool invocation.
func (s *Server) handleBuild(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildInput,
) (*mcp.CallToolResult, BuildOutput, error) {
	if len(input.Inputs) == 0 {
		return nil, BuildOutput{}, fmt.Errorf("inputs: %w", domain.ErrInvalidInput)
	}
	if input.Output == "" {
		return nil, BuildOutput{}, fmt.Errorf("output: %w", domain.ErrInvalidInput)
	}
	mode, err := s.resolveSort(input.Sort)
	if err != nil {
		return nil, BuildOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.ports.Sessions.Transient(ctx)
	if err != nil {
		return nil, BuildOutput{}, fmt.Errorf("starting session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("mcp: cleaning up staging area: %v", err)
		}
	}()

	// PDFs are reported back rather than skipped, so the caller can merge them.
	decider := driving.DeciderFunc(func(q domain.Question) bool {
		if q.Kind == domain.QuestionTreatAsArchive {
			return input.TreatUnknownAsArchive
		}
		return true
	})

	results, importErr := session.Import(ctx, input.Inputs, decider)
	output := BuildOutput{
		Output:  input.Output,
		Results: importOutputs(results),
		PDFs:    domain.MergeRequests(results),
	}

	if session.Len() == 0 {
		if importErr != nil {
			return nil, output, fmt.Errorf("importing inputs: %w", importErr)
		}
		return nil, output, domain.ErrNoPages
	}

	if mode != "" {
		if err := session.Sort(mode); err != nil {
			return nil, output, err
		}
	}

	if err := session.Generate(ctx, input.Output); err != nil {
		return nil, output, fmt.Errorf("generating pdf: %w", err)
	}
	output.Pages = session.Len()

	return nil, output, nil
}

// handleMerge handles the merge_pdfs tool invocation.
func (s *Server) handleMerge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeInput,
) (*mcp.CallToolResult, MergeOutput, error) {
	if s.ports.Merge == nil {
		return nil, MergeOutput{}, ErrMissingMergeService
	}
	if input.Output == "" {
		return nil, MergeOutput{}, fmt.Errorf("output: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merge := s.ports.Merge
	merge.Clear()
	defer merge.Clear()

	if err := merge.Add(input.Inputs...); err != nil {
		return nil, MergeOutput{}, err
	}
	if err := merge.Merge(ctx, input.Output); err != nil {
		return nil, MergeOutput{}, err
	}

	summaries := merge.Summaries(ctx)
	output := MergeOutput{
		Output: input.Output,
		Files:  make([]MergeFileOutput, len(summaries)),
		Pages:  domain.TotalPages(summaries),
	}
	for i, in := range summaries {
		output.Files[i] = MergeFileOutput{Path: in.Path, Pages: in.PageCount}
	}

	return nil, output, nil
}

// handleClassify handles the classify_file tool invocation.
func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	if s.ports.Classifier == nil {
		return nil, ClassifyOutput{}, errors.New("mcp: classifier is not configured")
	}
	if input.Path == "" {
		return nil, ClassifyOutput{}, fmt.Errorf("path: %w", domain.ErrInvalidInput)
	}

	c := s.ports.Classifier.Classify(input.Path)
	output := ClassifyOutput{
		Path:          c.Path,
		Action:        c.Action.String(),
		NeedsDecision: c.Action.NeedsDecision(),
	}
	if q, ok := c.Question(); ok {
		output.Question = q.Prompt()
	}

	return nil, output, nil
}

// resolveSort maps the sort argument to a mode; empty means the configured
// default and "none" means no sort.
func (s *Server) resolveSort(value string) (domain.SortMode, error) {
	switch value {
	case sortNone:
		return "", nil
	case "":
		if s.ports.Settings == nil {
			return domain.DefaultAppSettings().Import.DefaultSort, nil
		}
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return "", fmt.Errorf("getting settings: %w", err)
		}
		return settings.Import.DefaultSort, nil
	}
	return domain.ParseSortMode(value)
}

func importOutputs(results []domain.ImportResult) []ImportOutput {
	out := make([]ImportOutput, len(results))
	for i, r := range results {
		out[i] = ImportOutput{
			Path:    r.Path,
			Outcome: string(r.Outcome),
			Pages:   len(r.Added),
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}
