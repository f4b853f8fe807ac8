// Package validation checks user-supplied note tags, hymn queries and
// configured paths before they reach the file system or a regular expression.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on user input.
const (
	// MaxTagLength is the maximum tag length in runes.
	MaxTagLength = 64
	// MaxFilenameLength is the maximum allowed filename length in bytes.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// TagMarker delimits tagged sections in the notes file (U+FF03 FULLWIDTH NUMBER SIGN).
const TagMarker = "＃"

// Common validation errors.
var (
	ErrEmptyTag         = errors.New("tag cannot be empty")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrTagTooLong       = errors.New("tag too long")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// ValidateTag checks a notes section tag. A tag is one line of text that
// does not contain the section marker, so it cannot open or close a block.
func ValidateTag(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return ErrEmptyTag
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return ErrTagTooLong
	}
	if strings.Contains(tag, TagMarker) {
		return fmt.Errorf("%w: %s not allowed", ErrInvalidTag, TagMarker)
	}
	for _, r := range tag {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidTag)
		}
	}
	if tag != strings.TrimSpace(tag) {
		return fmt.Errorf("%w: leading or trailing space", ErrInvalidTag)
	}
	return nil
}

// ValidateQuery checks a file name fragment used to search a directory.
// It rejects path separators, control characters and reserved names.
func ValidateQuery(q string) error {
	if q == "" {
		return ErrInvalidQuery
	}
	if len(q) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	if q == "." || q == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidQuery)
	}
	if strings.ContainsAny(q, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidQuery)
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidQuery)
		}
	}
	return nil
}

// ValidatePath performs path validation without requiring a base directory.
// It checks length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}
