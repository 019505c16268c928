package domain

import "path/filepath"

// ImportAction is what the classifier decided to do with one input path.
type ImportAction string

const (
	// ActionAskArchive means the file has no extension and the user must
	// decide whether it is an archive.
	ActionAskArchive ImportAction = "ask_archive"

	// ActionExtract means the file is an archive to unpack into the staging area.
	ActionExtract ImportAction = "extract"

	// ActionAskMerge means the file is a PDF and the user may open the merge tool.
	ActionAskMerge ImportAction = "ask_merge"

	// ActionAppend means the file is a page source appended directly.
	ActionAppend ImportAction = "append"

	// ActionUnsupported means the file cannot be imported.
	ActionUnsupported ImportAction = "unsupported"
)

// String returns the string representation.
func (a ImportAction) String() string {
	return string(a)
}

// NeedsDecision reports whether the presentation layer must be asked first.
func (a ImportAction) NeedsDecision() bool {
	return a == ActionAskArchive || a == ActionAskMerge
}

// Classification is the pure decision for one input path.
type Classification struct {
	Path   string
	Action ImportAction
}

// Question returns the yes/no question this classification requires,
// or false when the action needs no decision.
func (c Classification) Question() (Question, bool) {
	switch c.Action {
	case ActionAskArchive:
		return Question{Kind: QuestionTreatAsArchive, Path: c.Path}, true
	case ActionAskMerge:
		return Question{Kind: QuestionOpenMerge, Path: c.Path}, true
	default:
		return Question{}, false
	}
}

// QuestionKind identifies a decision delegated to the user.
type QuestionKind string

const (
	// QuestionTreatAsArchive asks whether an extension-less file is an archive.
	QuestionTreatAsArchive QuestionKind = "treat_as_archive"

	// QuestionOpenMerge asks whether a PDF should open the merge tool.
	QuestionOpenMerge QuestionKind = "open_merge"
)

// Question is a yes/no query for the presentation layer.
type Question struct {
	Kind QuestionKind
	Path string
	// Hint carries the sniffed MIME type when known.
	Hint string
}

// Prompt returns a human readable wording of the question.
func (q Question) Prompt() string {
	switch q.Kind {
	case QuestionTreatAsArchive:
		if q.Hint != "" {
			return "'" + filepath.Base(q.Path) + "' has no extension (detected " + q.Hint + "). Treat it as an archive?"
		}
		return "'" + filepath.Base(q.Path) + "' has no extension. Treat it as an archive?"
	case QuestionOpenMerge:
		return "'" + filepath.Base(q.Path) + "' is a PDF. Open the PDF merge tool?"
	default:
		return q.Path
	}
}

// ImportOutcome describes what happened to one input path.
type ImportOutcome string

const (
	// OutcomeExtracted means an archive was unpacked and its pages collected.
	OutcomeExtracted ImportOutcome = "extracted"
	// OutcomeAppended means a single page was collected.
	OutcomeAppended ImportOutcome = "appended"
	// OutcomeRouteToMerge means the caller should open the merge tool with Path.
	OutcomeRouteToMerge ImportOutcome = "route_to_merge"
	// OutcomeSkipped means the user declined and nothing changed.
	OutcomeSkipped ImportOutcome = "skipped"
	// OutcomeFailed means the path produced an error.
	OutcomeFailed ImportOutcome = "failed"
)

// ImportResult reports the outcome of one input path.
type ImportResult struct {
	Path    string
	Outcome ImportOutcome
	// Added lists the pages collected from this path, in append order.
	Added []PageRef
	Err   error
}

// MergeRequests returns the paths whose outcome routes to the merge tool.
func MergeRequests(results []ImportResult) []string {
	var paths []string
	for _, r := range results {
		if r.Outcome == OutcomeRouteToMerge {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// AddedCount returns the total number of pages collected across results.
func AddedCount(results []ImportResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Added)
	}
	return n
}
