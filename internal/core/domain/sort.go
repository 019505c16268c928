package domain

import "strings"

// SortMode selects how the page list is ordered by file name.
type SortMode string

const (
	// SortNatural compares digit runs by numeric value ("page2" before "page10").
	SortNatural SortMode = "natural"

	// SortAscending is plain case-insensitive lexicographic order (A-Z).
	SortAscending SortMode = "asc"

	// SortDescending is the reverse of SortAscending (Z-A).
	SortDescending SortMode = "desc"
)

// AllSortModes returns the sort modes in the order they are offered to users.
func AllSortModes() []SortMode {
	return []SortMode{SortNatural, SortAscending, SortDescending}
}

// IsValid returns true if the sort mode is recognised.
func (m SortMode) IsValid() bool {
	switch m {
	case SortNatural, SortAscending, SortDescending:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SortMode) String() string {
	return string(m)
}

// Description returns the label shown in menus.
func (m SortMode) Description() string {
	switch m {
	case SortNatural:
		return "Natural"
	case SortAscending:
		return "A-Z"
	case SortDescending:
		return "Z-A"
	default:
		return unknownDescription
	}
}

// Next cycles to the following mode, wrapping around.
func (m SortMode) Next() SortMode {
	modes := AllSortModes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return SortNatural
}

// ParseSortMode accepts a mode name or its menu label, case-insensitively.
func ParseSortMode(s string) (SortMode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "natural", "nat":
		return SortNatural, nil
	case "asc", "ascending", "a-z", "az":
		return SortAscending, nil
	case "desc", "descending", "z-a", "za":
		return SortDescending, nil
	}
	return "", &InvalidValueError{Field: "sort mode", Value: s, Err: ErrInvalidSortMode}
}
