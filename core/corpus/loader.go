package corpus

import (
	"archive/tar"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/internal/archive"
	"github.com/FocuswithJustin/worshipdesk/internal/logging"
)

// DefaultPattern selects the corpus files inside a directory or archive.
const DefaultPattern = "*.txt"

// versePattern matches one verse line: a Hangul book fragment glued to
// "chapter:verse", whitespace, then the verse text. The fragment is
// ignored; the book comes from the file name.
var versePattern = regexp.MustCompile(`^[가-힣]+(\d+):(\d+)\s+(.*)`)

// Options controls how a corpus is loaded.
type Options struct {
	// Pattern is a doublestar glob matched against each file's base name.
	// Empty means DefaultPattern.
	Pattern string

	// Charset forces a decoding for every file ("euc-kr", "utf-8", ...).
	// Empty or "auto" sniffs each file.
	Charset string
}

// Load builds a corpus from path, which may be a directory of book files,
// a compressed tar archive of them, or a single book file.
//
// A missing path yields an empty corpus and no error. Lines that do not look
// like verses are skipped. A file that cannot be read or decoded is logged
// and skipped; only failure to enumerate path itself is returned.
func Load(ctx context.Context, root string, opts Options) (*Corpus, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.NewValidation("pattern", "invalid glob "+strconv.Quote(pattern))
	}
	charset, err := ResolveCharset(opts.Charset)
	if err != nil {
		return nil, &errors.ValidationError{Field: "charset", Value: opts.Charset, Message: err.Error()}
	}

	l := &loader{ctx: ctx, pattern: pattern, charset: charset, corpus: New()}
	start := time.Now()

	info, err := os.Stat(root)
	switch {
	case err != nil && os.IsNotExist(err):
		logging.DebugContext(ctx, "corpus_missing", "path", root)
		return l.corpus, nil
	case err != nil:
		return nil, errors.NewIO("stat", root, err)
	case info.IsDir():
		err = l.loadDir(root)
	case archive.IsArchive(root):
		err = l.loadArchive(root)
	case l.matches(root):
		err = l.loadFile(root, filepath.Base(root))
	default:
		return nil, errors.NewUnsupported("corpus source", root)
	}
	if err != nil {
		return nil, err
	}

	logging.CorpusLoaded(ctx, root, l.corpus.Len(), l.corpus.VerseCount(), time.Since(start))
	return l.corpus, nil
}

type loader struct {
	ctx     context.Context
	pattern string
	charset string
	corpus  *Corpus
}

func (l *loader) matches(name string) bool {
	ok, err := doublestar.Match(l.pattern, path.Base(name))
	return err == nil && ok
}

// loadDir reads matching files in name order so that later files win key collisions deterministically.
func (l *loader) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.NewIO("list", dir, err)
	}
	for _, e := range entries {
		if err := l.ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || !l.matches(e.Name()) {
			continue
		}
		if err := l.loadFile(filepath.Join(dir, e.Name()), e.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadFile(p, name string) error {
	raw, err := os.ReadFile(p)
	if err != nil {
		logging.FileSkipped(l.ctx, name, err)
		return nil
	}
	l.addBook(name, raw)
	return nil
}

type archiveEntry struct {
	name string
	raw  []byte
}

func (l *loader) loadArchive(p string) error {
	var entries []archiveEntry
	err := archive.IterateFiles(p, func(h *tar.Header, r io.Reader) (bool, error) {
		if err := l.ctx.Err(); err != nil {
			return true, err
		}
		if !l.matches(h.Name) {
			return false, nil
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			return true, err
		}
		entries = append(entries, archiveEntry{name: h.Name, raw: raw})
		return false, nil
	})
	if err != nil {
		if ctxErr := l.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.NewIO("read archive", p, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return path.Base(entries[i].name) < path.Base(entries[j].name)
	})
	for _, e := range entries {
		l.addBook(e.name, e.raw)
	}
	return nil
}

func (l *loader) addBook(name string, raw []byte) {
	text, used, detected, err := decodeText(raw, l.charset)
	if err != nil {
		logging.FileSkipped(l.ctx, name, err, "charset", used)
		return
	}
	if !detected {
		logging.DebugContext(l.ctx, "encoding_undetected", "file", name, "fallback", DefaultCharset)
	}

	sum := blake3.Sum256(raw)
	book := NewBook(BookKey(name))
	book.source = Source{Name: name, Charset: used, Digest: hex.EncodeToString(sum[:])}
	parseVerses(book, text)
	l.corpus.Add(book)
}

// parseVerses adds every verse line of text to book, skipping anything else.
func parseVerses(book *Book, text string) {
	for _, line := range strings.Split(text, "\n") {
		m := versePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		chapter, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		verse, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		book.Put(chapter, verse, m[3])
	}
}
