package corpus

import "github.com/FocuswithJustin/worshipdesk/core/ref"

// Lookup executes a parsed reference against the corpus.
//
// A whole-chapter query returns the chapter's verses in ascending verse
// order. A verse query returns the verses of the inclusive range that exist,
// in ascending order; a reversed range selects nothing. An unknown book
// yields an empty result rather than an error.
func (c *Corpus) Lookup(q *ref.Query) []Verse {
	if q == nil {
		return nil
	}
	book, ok := c.books[q.Book]
	if !ok {
		return nil
	}

	if q.IsChapter() {
		return book.Chapter(q.Chapter)
	}

	start, end := q.Range()
	if end < start {
		return nil
	}

	// Probe keys directly while the range is no wider than the chapter;
	// otherwise filter the chapter so a huge end verse stays cheap.
	if end-start < len(book.chapters[q.Chapter]) {
		var out []Verse
		for v := start; v <= end; v++ {
			key := VerseKey{Chapter: q.Chapter, Verse: v}
			if _, ok := book.text[key]; ok {
				out = append(out, book.verse(key))
			}
		}
		return out
	}

	var out []Verse
	for _, v := range book.Chapter(q.Chapter) {
		if v.Verse >= start && v.Verse <= end {
			out = append(out, v)
		}
	}
	return out
}

// Lines renders verses in reference-listing form, one per element.
func Lines(verses []Verse) []string {
	out := make([]string, len(verses))
	for i, v := range verses {
		out[i] = v.Line()
	}
	return out
}
