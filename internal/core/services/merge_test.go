package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

func TestMergeSet(t *testing.T) {
	var set MergeSet
	set.Add("a.pdf", "b.pdf", "c.pdf")

	assert.True(t, set.Move(2, 0))
	assert.Equal(t, []string{"c.pdf", "a.pdf", "b.pdf"}, set.Paths())
	assert.False(t, set.Move(1, 1))
	assert.False(t, set.Move(0, 3))

	assert.True(t, set.Remove(1))
	assert.False(t, set.Remove(5))
	assert.Equal(t, []string{"c.pdf", "b.pdf"}, set.Paths())

	set.Clear()
	assert.Equal(t, 0, set.Len())
}

func TestMergeService_AddRejectsNonPDF(t *testing.T) {
	svc := NewMergeService(&mockMerger{})

	err := svc.Add("a.pdf", "b.png")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
	assert.Equal(t, 0, svc.Len())
}

func TestMergeService_Merge(t *testing.T) {
	merger := &mockMerger{}
	svc := NewMergeService(merger)
	require.NoError(t, svc.Add("a.pdf", "b.pdf"))
	require.NoError(t, svc.Add("c.PDF"))
	require.True(t, svc.Move(2, 0))
	out := filepath.Join(t.TempDir(), "merged.pdf")

	require.NoError(t, svc.Merge(context.Background(), out))

	require.Len(t, merger.calls, 1)
	assert.Equal(t, []string{domain.AbsPath("c.PDF"), domain.AbsPath("a.pdf"), domain.AbsPath("b.pdf")}, merger.calls[0])
	assert.FileExists(t, out)
}

func TestMergeService_TooFewInputs(t *testing.T) {
	merger := &mockMerger{}
	svc := NewMergeService(merger)
	require.NoError(t, svc.Add("a.pdf"))
	out := filepath.Join(t.TempDir(), "merged.pdf")

	err := svc.Merge(context.Background(), out)

	assert.ErrorIs(t, err, domain.ErrTooFewInputs)
	assert.ErrorIs(t, err, domain.ErrMerge)
	assert.Empty(t, merger.calls)
	assert.NoFileExists(t, out)
}

func TestMergeService_MergeFilesLeavesSetAlone(t *testing.T) {
	merger := &mockMerger{}
	svc := NewMergeService(merger)
	require.NoError(t, svc.Add("queued.pdf"))

	err := svc.MergeFiles(context.Background(), []string{"x.pdf", "y.pdf"}, filepath.Join(t.TempDir(), "o.pdf"))

	require.NoError(t, err)
	assert.Equal(t, []string{domain.AbsPath("queued.pdf")}, svc.Paths())
}

func TestMergeService_AddStoresAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	svc := NewMergeService(&mockMerger{})

	require.NoError(t, svc.Add("a.pdf", "./sub/b.pdf"))

	t.Chdir(t.TempDir())
	assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "sub", "b.pdf")}, svc.Paths())
}

func TestMergeService_MergerError(t *testing.T) {
	merger := &mockMerger{err: &domain.MergeError{Path: "b.pdf", Err: errors.New("corrupt xref")}}
	svc := NewMergeService(merger)

	err := svc.MergeFiles(context.Background(), []string{"a.pdf", "b.pdf"}, filepath.Join(t.TempDir(), "o.pdf"))

	var me *domain.MergeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "b.pdf", me.Path)
}

func TestMergeService_Summaries(t *testing.T) {
	merger := &mockMerger{counts: map[string]int{"a.pdf": 3, "b.pdf": 2}}
	svc := NewMergeService(merger)
	require.NoError(t, svc.Add("a.pdf", "broken.pdf", "b.pdf"))

	got := svc.Summaries(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].PageCount)
	assert.Error(t, got[1].Err)
	assert.Equal(t, "b.pdf", got[2].Name())
	assert.Equal(t, 5, domain.TotalPages(got))
}
