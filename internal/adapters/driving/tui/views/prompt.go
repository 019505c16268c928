// Package views holds helpers shared by the TUI views.
package views

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
)

// SplitPaths splits a line of typed, pasted or dragged paths. Quotes and
// backslash escapes follow shell rules and a leading ~ is the home directory.
func SplitPaths(line string) ([]string, error) {
	words, err := shellwords.Parse(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		paths = append(paths, expandHome(w))
	}
	return paths, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
