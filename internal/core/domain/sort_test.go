package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortMode_IsValid(t *testing.T) {
	for _, m := range AllSortModes() {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, SortMode("shuffle").IsValid())
	assert.False(t, SortMode("").IsValid())
}

func TestSortMode_Description(t *testing.T) {
	assert.Equal(t, "Natural", SortNatural.Description())
	assert.Equal(t, "A-Z", SortAscending.Description())
	assert.Equal(t, "Z-A", SortDescending.Description())
	assert.Equal(t, "Unknown", SortMode("x").Description())
}

func TestSortMode_Next(t *testing.T) {
	assert.Equal(t, SortAscending, SortNatural.Next())
	assert.Equal(t, SortDescending, SortAscending.Next())
	assert.Equal(t, SortNatural, SortDescending.Next())
	assert.Equal(t, SortNatural, SortMode("bogus").Next())
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input    string
		expected SortMode
	}{
		{"natural", SortNatural},
		{"Natural", SortNatural},
		{"asc", SortAscending},
		{"A-Z", SortAscending},
		{"ascending", SortAscending},
		{" desc ", SortDescending},
		{"Z-A", SortDescending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseSortMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestParseSortMode_Invalid(t *testing.T) {
	_, err := ParseSortMode("random")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSortMode))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
