// Package ref parses Korean scripture references such as "창 1", "시 23:1"
// or "요 3:16-18" into structured queries.
package ref

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/core/taxonomy"
)

// Query is a parsed reference.
type Query struct {
	// Book is the full book name after abbreviation expansion. Tokens the
	// taxonomy does not know are kept as typed.
	Book string

	// Token is the book token exactly as it appeared in the input.
	Token string

	// Chapter is the requested chapter.
	Chapter int

	// VerseStart is nil for a whole-chapter query.
	VerseStart *int

	// VerseEnd is nil for a single verse or whole chapter.
	VerseEnd *int
}

// IsChapter reports whether the query asks for a whole chapter.
func (q *Query) IsChapter() bool {
	return q.VerseStart == nil
}

// Range returns the inclusive verse bounds of a verse query. For a single
// verse start == end. The range is empty when end < start.
func (q *Query) Range() (start, end int) {
	if q.VerseStart == nil {
		return 0, -1
	}
	start = *q.VerseStart
	end = start
	if q.VerseEnd != nil {
		end = *q.VerseEnd
	}
	return start, end
}

// String renders the heading shown above a reference listing,
// e.g. "[창세기 1장 1-3절]".
func (q *Query) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s %d장", q.Book, q.Chapter)
	switch {
	case q.VerseStart != nil && q.VerseEnd != nil:
		fmt.Fprintf(&sb, " %d-%d절", *q.VerseStart, *q.VerseEnd)
	case q.VerseStart != nil:
		fmt.Fprintf(&sb, " %d절", *q.VerseStart)
	}
	sb.WriteString("]")
	return sb.String()
}

// refGrammar is the participle grammar for Korean references.
// Examples: "창1", "창 1", "창 1:1", "요 3:16-18", "요일 4:8"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Book    string `@Hangul`
	Chapter int    `Whitespace? @Int`
	Verse   *int   `( ":" @Int? )?`
	End     *int   `( "-" @Int )?`
}

// refLexer tokenizes reference input. Other swallows any character the
// grammar does not use so that trailing text never fails the lexer.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hangul", Pattern: `[가-힣]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `[\s\p{Zs}]+`},
	{Name: "Other", Pattern: `.`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// Parse parses a reference string. Abbreviated book tokens are expanded
// through tax; a nil tax uses taxonomy.Default.
//
// Supported forms:
//   - "창 1" (whole chapter)
//   - "창1:1" (single verse)
//   - "요 3:16-18" (inclusive range)
//
// Input that does not start with a Hangul book token followed by a chapter
// number fails with an error wrapping errors.ErrInvalidReference.
func Parse(s string, tax *taxonomy.Taxonomy) (*Query, error) {
	if tax == nil {
		tax = taxonomy.Default
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewInvalidReference(s, fmt.Errorf("empty reference"))
	}

	// Only a prefix has to match; anything after the reference is ignored.
	parsed, err := refParser.ParseString("", s, participle.AllowTrailing(true))
	if err != nil {
		return nil, errors.NewInvalidReference(s, err)
	}

	q := &Query{
		Book:    tax.FullName(parsed.Book),
		Token:   parsed.Book,
		Chapter: parsed.Chapter,
	}
	if parsed.Verse != nil {
		q.VerseStart = parsed.Verse
		// An end verse only means something after a start verse.
		q.VerseEnd = parsed.End
	}
	return q, nil
}
