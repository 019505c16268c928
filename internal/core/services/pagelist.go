package services

import (
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// PageList is an ordered list of page sources with undo/redo history.
//
// Every mutating method records the previous order before applying its
// change, so a mutation can always be undone. Mutations that would leave
// the list as it is record nothing. A new mutation discards the redo stack.
//
// The zero value is an empty list ready to use. PageList is not safe for
// concurrent use.
type PageList struct {
	pages  []domain.PageRef
	past   [][]domain.PageRef
	future [][]domain.PageRef
}

// NewPageList creates a list holding pages, with empty history.
func NewPageList(pages ...domain.PageRef) *PageList {
	return &PageList{pages: domain.CopyPages(pages)}
}

// checkpoint pushes the current order onto the undo stack and clears redo.
func (l *PageList) checkpoint() {
	l.past = append(l.past, domain.CopyPages(l.pages))
	l.future = nil
}

// Append adds refs to the end in the given order.
func (l *PageList) Append(refs ...domain.PageRef) {
	if len(refs) == 0 {
		return
	}
	l.checkpoint()
	l.pages = append(l.pages, refs...)
}

// Remove deletes the entries at indices and returns how many were removed.
// Indices outside [0, Len) are ignored and duplicates count once.
func (l *PageList) Remove(indices ...int) int {
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(l.pages) {
			drop[i] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	l.checkpoint()
	kept := make([]domain.PageRef, 0, len(l.pages)-len(drop))
	for i, p := range l.pages {
		if _, ok := drop[i]; !ok {
			kept = append(kept, p)
		}
	}
	l.pages = kept
	return len(drop)
}

// Sort orders the list by case-insensitive file name. Entries with equal
// names keep their relative order in every mode.
func (l *PageList) Sort(mode domain.SortMode) error {
	if !mode.IsValid() {
		return &domain.InvalidValueError{Field: "sort mode", Value: string(mode), Err: domain.ErrInvalidSortMode}
	}

	sorted := domain.CopyPages(l.pages)
	SortPages(sorted, mode)
	if slices.Equal(sorted, l.pages) {
		return nil
	}

	l.checkpoint()
	l.pages = sorted
	return nil
}

// Move relocates the entry at from so that it ends up at position to.
// It reports false, recording nothing, when either index is out of range
// or the order would not change.
func (l *PageList) Move(from, to int) bool {
	n := len(l.pages)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}

	moved := domain.CopyPages(l.pages)
	ref := moved[from]
	moved = slices.Delete(moved, from, from+1)
	moved = slices.Insert(moved, to, ref)
	if slices.Equal(moved, l.pages) {
		return false
	}

	l.checkpoint()
	l.pages = moved
	return true
}

// Clear removes every entry.
func (l *PageList) Clear() {
	if len(l.pages) == 0 {
		return
	}
	l.checkpoint()
	l.pages = []domain.PageRef{}
}

// Undo restores the order before the last mutation.
// It reports false when there is nothing to undo.
func (l *PageList) Undo() bool {
	if len(l.past) == 0 {
		return false
	}
	l.future = append(l.future, domain.CopyPages(l.pages))
	last := len(l.past) - 1
	l.pages = l.past[last]
	l.past = l.past[:last]
	return true
}

// Redo reapplies the last undone mutation.
// It reports false when there is nothing to redo.
func (l *PageList) Redo() bool {
	if len(l.future) == 0 {
		return false
	}
	l.past = append(l.past, domain.CopyPages(l.pages))
	last := len(l.future) - 1
	l.pages = l.future[last]
	l.future = l.future[:last]
	return true
}

// CanUndo reports whether Undo would change anything.
func (l *PageList) CanUndo() bool { return len(l.past) > 0 }

// CanRedo reports whether Redo would change anything.
func (l *PageList) CanRedo() bool { return len(l.future) > 0 }

// Pages returns a copy of the current order.
func (l *PageList) Pages() []domain.PageRef {
	return domain.CopyPages(l.pages)
}

// Len returns the number of entries.
func (l *PageList) Len() int { return len(l.pages) }

// Contains reports whether path is already in the list.
func (l *PageList) Contains(path string) bool {
	for _, p := range l.pages {
		if p.Path == path {
			return true
		}
	}
	return false
}

// State returns copies of the current order and both history stacks.
func (l *PageList) State() (pages []domain.PageRef, past, future [][]domain.PageRef) {
	return domain.CopyPages(l.pages), copyStack(l.past), copyStack(l.future)
}

// Restore replaces the list and its history, e.g. after loading a session.
func (l *PageList) Restore(pages []domain.PageRef, past, future [][]domain.PageRef) {
	l.pages = domain.CopyPages(pages)
	l.past = copyStack(past)
	l.future = copyStack(future)
}

func copyStack(stack [][]domain.PageRef) [][]domain.PageRef {
	if len(stack) == 0 {
		return nil
	}
	out := make([][]domain.PageRef, len(stack))
	for i, s := range stack {
		out[i] = domain.CopyPages(s)
	}
	return out
}

// SortPages orders pages in place by case-insensitive file name.
// The sort is stable; an unknown mode leaves pages untouched.
func SortPages(pages []domain.PageRef, mode domain.SortMode) {
	if cmp := comparer(mode); cmp != nil {
		slices.SortStableFunc(pages, cmp)
	}
}

// SortPaths orders file paths by case-insensitive base name.
func SortPaths(paths []string, mode domain.SortMode) {
	cmp := comparer(mode)
	if cmp == nil {
		return
	}
	slices.SortStableFunc(paths, func(a, b string) int {
		return cmp(domain.NewPageRef(a), domain.NewPageRef(b))
	})
}

func comparer(mode domain.SortMode) func(a, b domain.PageRef) int {
	switch mode {
	case domain.SortNatural:
		return func(a, b domain.PageRef) int {
			return naturalCompare(a.SortKey(), b.SortKey())
		}
	case domain.SortAscending:
		return func(a, b domain.PageRef) int {
			return strings.Compare(a.SortKey(), b.SortKey())
		}
	case domain.SortDescending:
		return func(a, b domain.PageRef) int {
			return strings.Compare(b.SortKey(), a.SortKey())
		}
	default:
		return nil
	}
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}
