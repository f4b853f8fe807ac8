// Package notes reads and updates tagged sections of a flat notes file.
//
// A section is stored as
//
//	＃tag
//	content
//	＃tag
//
// where ＃ is U+FF03 FULLWIDTH NUMBER SIGN. Everything outside sections is
// left as it is.
package notes

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/internal/logging"
	"github.com/FocuswithJustin/worshipdesk/internal/validation"
)

// Marker opens and closes a section.
const Marker = validation.TagMarker

// DefaultTags are the sections offered by the presentation layer.
var DefaultTags = []string{"기도제목", "나라", "공주", "회원"}

// DefaultSaveTag is the section written when no tag is given.
const DefaultSaveTag = "기도제목"

const filePerms = 0o644

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store is a notes file. It holds no state besides the path; every call
// reads the file again. A single writer is assumed.
type Store struct {
	path string
}

// Open returns a store for path. The file need not exist yet.
func Open(path string) (*Store, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, &errors.ValidationError{Field: "notes path", Value: path, Message: err.Error()}
	}
	return &Store{path: path}, nil
}

// Path returns the notes file path.
func (s *Store) Path() string { return s.path }

// Content returns the whole file with CRLF line endings normalised.
// A missing file reads as empty.
func (s *Store) Content() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewIO("read", s.path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// blockPattern matches the first section for tag, shortest content first.
func blockPattern(tag string) *regexp.Regexp {
	delim := regexp.QuoteMeta(Marker + tag)
	return regexp.MustCompile(`(?s)` + delim + `\n(.*?)\n` + delim)
}

func block(tag, content string) string {
	return Marker + tag + "\n" + content + "\n" + Marker + tag
}

func checkTag(tag string) error {
	if err := validation.ValidateTag(tag); err != nil {
		return &errors.ValidationError{Field: "tag", Value: tag, Message: err.Error()}
	}
	return nil
}

// Read returns the content of the first section for tag. It fails with
// errors.ErrSectionNotFound when the file has no such section.
func (s *Store) Read(tag string) (string, error) {
	if err := checkTag(tag); err != nil {
		return "", err
	}
	raw, err := s.Content()
	if err != nil {
		return "", err
	}
	m := blockPattern(tag).FindStringSubmatch(raw)
	if m == nil {
		return "", errors.NewSectionNotFound(tag)
	}
	return m[1], nil
}

// Upsert stores content under tag. Every existing section for tag is
// replaced by the new one; without one, the section is appended after a
// newline. The file is trimmed and replaced atomically. Content is stored
// as given, so Read returns it unchanged.
func (s *Store) Upsert(tag, content string) error {
	if err := checkTag(tag); err != nil {
		return err
	}

	old, err := s.Content()
	if err != nil {
		return err
	}

	re := blockPattern(tag)
	next := block(tag, content)
	replaced := re.MatchString(old)
	if replaced {
		next = re.ReplaceAllLiteralString(old, next)
	} else {
		next = old + "\n" + next
	}

	if err := s.write(strings.TrimSpace(next)); err != nil {
		return err
	}
	logging.NotesWritten(context.Background(), s.path, tag, replaced)
	return nil
}

func (s *Store) write(content string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewIO("mkdir", dir, err)
		}
	}
	_, statErr := os.Stat(s.path)
	if err := atomic.WriteFile(s.path, strings.NewReader(content)); err != nil {
		return errors.NewIO("write", s.path, err)
	}
	// atomic.WriteFile leaves new files with the temp file's mode.
	if os.IsNotExist(statErr) {
		if err := os.Chmod(s.path, filePerms); err != nil {
			return errors.NewIO("chmod", s.path, err)
		}
	}
	return nil
}

// Tags lists the tags that have a readable section, in order of first
// appearance.
func (s *Store) Tags() ([]string, error) {
	raw, err := s.Content()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tags []string
	for _, line := range strings.Split(raw, "\n") {
		tag, ok := strings.CutPrefix(line, Marker)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		if validation.ValidateTag(tag) != nil {
			continue
		}
		if blockPattern(tag).MatchString(raw) {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
