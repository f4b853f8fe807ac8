package corpus

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ordinalPrefix matches the "01-01" style sort prefix of corpus file names.
	ordinalPrefix = regexp.MustCompile(`^\d+-\d+`)
	// trailingDigits matches a numeric suffix such as an edition number.
	trailingDigits = regexp.MustCompile(`\d+$`)
)

// BookKey derives the book key from a corpus file name: the directory part
// and extension are dropped, then a leading "digits-digits" ordinal and a
// trailing run of digits are stripped and surrounding whitespace trimmed.
//
//	"01-01창세기.txt"      -> "창세기"
//	"19-01 시편 2.txt"     -> "시편"
//	"bible/40-01마태복음.txt" -> "마태복음"
func BookKey(filename string) string {
	base := path.Base(filepath.ToSlash(filename))
	name := strings.TrimSuffix(base, path.Ext(base))
	name = ordinalPrefix.ReplaceAllString(name, "")
	name = trailingDigits.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}
