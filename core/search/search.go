// Package search runs scoped keyword searches over a loaded corpus.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/worshipdesk/core/corpus"
	"github.com/FocuswithJustin/worshipdesk/core/taxonomy"
)

// NoResults is the single line shown when a search matches nothing.
// Data lines always contain " <chapter>:<verse>  ", so it cannot collide.
const NoResults = "결과 없음"

// Scope restricts a search to a category or a single book.
type Scope struct {
	// Category names a taxonomy category. Empty or unknown means all books.
	Category string

	// Book, when set and not taxonomy.All, wins over Category.
	// Abbreviations are accepted.
	Book string
}

// Books resolves the scope to an ordered list of full book names.
func (s Scope) Books(tax *taxonomy.Taxonomy) []string {
	if tax == nil {
		tax = taxonomy.Default
	}
	if book := strings.TrimSpace(s.Book); book != "" && book != taxonomy.All {
		return []string{tax.FullName(book)}
	}
	return tax.CategoryOrAll(s.Category)
}

// Span is a half-open highlight range [Start, End) in runes of Result.Text.
type Span struct {
	Start int
	End   int
}

// Result is the outcome of one search.
type Result struct {
	Keyword string
	Books   []string
	Matches []corpus.Verse

	// Lines holds one formatted line per match, or just NoResults.
	Lines []string

	// Spans marks case-insensitive keyword occurrences in Text. It is nil
	// when nothing matched.
	Spans []Span
}

// Empty reports whether the search matched nothing.
func (r *Result) Empty() bool {
	return len(r.Matches) == 0
}

// Text joins the result lines for display.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Search finds verses whose text contains keyword, case-sensitively.
//
// Books are visited in scope order and verses in the order they were loaded.
// Books in scope that are absent from the corpus are skipped. An empty
// keyword (after trimming) returns nil and no search is run.
func Search(c *corpus.Corpus, tax *taxonomy.Taxonomy, keyword string, scope Scope) *Result {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	res := &Result{Keyword: keyword, Books: scope.Books(tax)}
	for _, name := range res.Books {
		book, ok := c.Book(name)
		if !ok {
			continue
		}
		book.Each(func(v corpus.Verse) bool {
			if strings.Contains(v.Text, keyword) {
				res.Matches = append(res.Matches, v)
				res.Lines = append(res.Lines, v.Format())
			}
			return true
		})
	}

	if res.Empty() {
		res.Lines = []string{NoResults}
		return res
	}
	res.Spans = Highlight(res.Text(), keyword)
	return res
}

// Highlight returns the non-overlapping case-insensitive occurrences of
// keyword in text, scanning left to right and resuming after each match.
func Highlight(text, keyword string) []Span {
	if keyword == "" {
		return nil
	}
	tr := []rune(text)
	n := utf8.RuneCountInString(keyword)

	var spans []Span
	for i := 0; i+n <= len(tr); {
		if strings.EqualFold(string(tr[i:i+n]), keyword) {
			spans = append(spans, Span{Start: i, End: i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}
