package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

func TestNew(t *testing.T) {
	d := New(nil, nil)

	require.NotNil(t, d)
	assert.False(t, d.Open())
	assert.Equal(t, "", d.View())
}

func TestDialog_Ask(t *testing.T) {
	d := New(nil, nil)
	q := domain.Question{Kind: domain.QuestionOpenMerge, Path: "/in/report.pdf"}

	d.Ask(q)

	assert.True(t, d.Open())
	assert.Equal(t, q, d.Question())
	assert.Contains(t, d.View(), "report.pdf")
}

func TestDialog_HandleKey(t *testing.T) {
	tests := []struct {
		key  string
		want Answer
		open bool
	}{
		{"y", AnsweredYes, false},
		{"Y", AnsweredYes, false},
		{"n", AnsweredNo, false},
		{"esc", AnsweredNo, false},
		{"q", Unanswered, true},
		{"enter", Unanswered, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := New(nil, nil)
			d.Ask(domain.Question{Kind: domain.QuestionTreatAsArchive, Path: "/in/scan"})

			assert.Equal(t, tt.want, d.HandleKey(tt.key))
			assert.Equal(t, tt.open, d.Open())
		})
	}
}

func TestDialog_HandleKeyWhenClosed(t *testing.T) {
	d := New(nil, nil)

	assert.Equal(t, Unanswered, d.HandleKey("y"))
}
