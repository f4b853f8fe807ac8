package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tailscale/hujson"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/internal/validation"
)

// Default file and directory names, relative to Config.BaseDir.
const (
	DefaultBibleDir = "성경66권_파이션_자료"
	DefaultHymnDir  = "찬송가-가사TXT"
	DefaultNotes    = "prayer.txt"
	DefaultReadings = "교독문.docx"
	DefaultCreed    = "사도신경.txt"
	DefaultPrayer   = "주기도문.txt"
)

// ConfigFileName is the per-directory config file.
const ConfigFileName = "worshipdesk.json"

// Config locates the data files. Relative paths are resolved against BaseDir.
type Config struct {
	BaseDir  string
	BibleDir string
	HymnDir  string
	Notes    string
	Readings string
	Creed    string
	Prayer   string

	// Encoding forces the corpus charset; empty sniffs each file.
	Encoding string
	// Pattern selects corpus files; empty uses the loader default.
	Pattern string

	BannerHeading string
}

// WithDefaults fills empty fields with the default names.
func (c Config) WithDefaults() Config {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&c.BaseDir, ".")
	def(&c.BibleDir, DefaultBibleDir)
	def(&c.HymnDir, DefaultHymnDir)
	def(&c.Notes, DefaultNotes)
	def(&c.Readings, DefaultReadings)
	def(&c.Creed, DefaultCreed)
	def(&c.Prayer, DefaultPrayer)
	def(&c.BannerHeading, DefaultBannerHeading)
	return c
}

// Path resolves p against BaseDir unless it is absolute.
func (c Config) Path(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Validate checks every configured path.
func (c Config) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"base-dir", c.BaseDir},
		{"bible-dir", c.BibleDir},
		{"hymn-dir", c.HymnDir},
		{"notes", c.Notes},
		{"readings", c.Readings},
		{"creed", c.Creed},
		{"prayer", c.Prayer},
	}
	for _, f := range fields {
		if err := validation.ValidatePath(f.value); err != nil {
			return &errors.ValidationError{Field: f.name, Value: f.value, Message: err.Error()}
		}
	}
	return nil
}

// ConfigPaths lists the config files handed to kong: the user config
// file, then the one in the working directory.
func ConfigPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "worshipdesk", "config.json"))
	}
	return append(paths, ConfigFileName)
}

// HuJSON is a kong configuration loader for JSON files that may contain
// comments and trailing commas. Keys are flag names in snake_case
// ("bible_dir").
func HuJSON(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	return kong.JSON(bytes.NewReader(standardized))
}
