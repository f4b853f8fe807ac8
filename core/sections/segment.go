// Package sections splits the responsive-reading document into titled
// sections and loads the fixed liturgical texts.
package sections

import "strings"

// Section is one numbered reading.
type Section struct {
	Title string
	Body  string
}

// IsHeading reports whether a paragraph starts a new section: it begins
// with an ASCII digit and contains a '.' somewhere.
func IsHeading(p string) bool {
	return p != "" && p[0] >= '0' && p[0] <= '9' && strings.Contains(p, ".")
}

// Segment groups paragraphs into sections. Each heading paragraph opens a
// section whose body is the following non-heading paragraphs joined by
// newlines and trimmed. Paragraphs before the first heading are dropped.
func Segment(paragraphs []string) []Section {
	var (
		out     []Section
		current *Section
		body    []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		out = append(out, *current)
	}

	for _, p := range paragraphs {
		if IsHeading(p) {
			flush()
			current = &Section{Title: p}
			body = body[:0]
			continue
		}
		body = append(body, p)
	}
	flush()
	return out
}

// Titles lists section titles in document order.
func Titles(secs []Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.Title
	}
	return out
}

// Find returns the section whose title is key. Failing that, key is
// compared with the numbering before the first '.' of each title, so
// "3" finds "3. 시편 23편".
func Find(secs []Section, key string) (Section, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Section{}, false
	}
	for _, s := range secs {
		if s.Title == key {
			return s, true
		}
	}
	for _, s := range secs {
		num, _, _ := strings.Cut(s.Title, ".")
		if strings.TrimSpace(num) == key {
			return s, true
		}
	}
	return Section{}, false
}

// String renders the section as it is displayed: title, blank line, body.
func (s Section) String() string {
	return s.Title + "\n\n" + s.Body
}
