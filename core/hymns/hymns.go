// Package hymns finds hymn lyrics by file name.
package hymns

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/internal/validation"
)

// NoHymns is shown when a query matches no file.
const NoHymns = "찬송가 없음"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Hymn is one lyrics file.
type Hymn struct {
	ID   string // file name without ".txt"
	Text string
}

// String renders the hymn as "[ID]" followed by its lyrics.
func (h Hymn) String() string {
	return "[" + h.ID + "]\n" + h.Text
}

// Search returns every regular file in dir whose name contains query,
// sorted by name. An empty query or a missing directory yields nothing.
func Search(dir, query string) ([]Hymn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if err := validation.ValidateQuery(query); err != nil {
		return nil, &errors.ValidationError{Field: "hymn query", Value: query, Message: err.Error()}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIO("list", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.Contains(e.Name(), query) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]Hymn, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.NewIO("read", filepath.Join(dir, name), err)
		}
		out = append(out, Hymn{
			ID:   strings.TrimSuffix(name, ".txt"),
			Text: string(bytes.TrimPrefix(data, utf8BOM)),
		})
	}
	return out, nil
}

// Format joins hymns for display, separated by blank lines, or returns
// NoHymns when there are none.
func Format(hs []Hymn) string {
	if len(hs) == 0 {
		return NoHymns
	}
	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = h.String()
	}
	return strings.Join(parts, "\n\n")
}
