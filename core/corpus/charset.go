package corpus

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultCharset is used when detection fails or names a charset we cannot decode.
const DefaultCharset = "utf-8"

// AutoCharset asks the loader to sniff each file.
const AutoCharset = "auto"

// detectorAliases maps chardet's charset names to WHATWG labels where they differ.
var detectorAliases = map[string]string{
	"GB-18030": "gb18030",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ResolveCharset validates a charset label and returns its canonical name.
// An empty label or "auto" resolves to AutoCharset.
func ResolveCharset(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, AutoCharset) {
		return AutoCharset, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", label, err)
	}
	return name, nil
}

// decodeText converts raw file bytes to UTF-8. charset is a name returned by
// ResolveCharset. It returns the text and the charset actually used, and
// reports detected=false when sniffing gave up and the default was used.
func decodeText(raw []byte, charset string) (text, used string, detected bool, err error) {
	if charset != AutoCharset {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return "", "", false, err
		}
		text, err := decodeWith(enc, raw)
		return text, charset, true, err
	}

	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), DefaultCharset, true, nil
	}
	if name, ok := utf16ByBOM(raw); ok {
		text, err := decodeWith(unicode.UTF8, raw)
		return text, name, true, err
	}

	if name, ok := sniffCharset(raw); ok {
		if enc, err := htmlindex.Get(name); err == nil {
			canonical, _ := htmlindex.Name(enc)
			text, err := decodeWith(enc, raw)
			if err == nil {
				return text, canonical, true, nil
			}
		}
	}

	// Undetected: keep what is valid UTF-8 and replace the rest.
	return string(bytes.ToValidUTF8(raw, []byte("�"))), DefaultCharset, false, nil
}

// utf16ByBOM reports a UTF-16 byte order mark at the start of raw.
func utf16ByBOM(raw []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "utf-16le", true
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "utf-16be", true
	}
	return "", false
}

// sniffCharset asks chardet for its best guess.
func sniffCharset(raw []byte) (string, bool) {
	res, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || res == nil || res.Charset == "" {
		return "", false
	}
	if alias, ok := detectorAliases[res.Charset]; ok {
		return alias, true
	}
	return res.Charset, true
}

// decodeWith decodes raw with enc, honouring a byte order mark when present.
func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
