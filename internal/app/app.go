// Package app wires configuration, the scripture corpus and the text stores
// together for the command line and the interactive shell.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/FocuswithJustin/worshipdesk/core/corpus"
	"github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/core/hymns"
	"github.com/FocuswithJustin/worshipdesk/core/notes"
	"github.com/FocuswithJustin/worshipdesk/core/ref"
	"github.com/FocuswithJustin/worshipdesk/core/search"
	"github.com/FocuswithJustin/worshipdesk/core/sections"
	"github.com/FocuswithJustin/worshipdesk/core/taxonomy"
	"github.com/FocuswithJustin/worshipdesk/internal/logging"
)

// App loads data on first use and keeps it for the life of the process.
type App struct {
	cfg   Config
	tax   *taxonomy.Taxonomy
	notes *notes.Store

	mu             sync.Mutex
	corpus         *corpus.Corpus
	readings       []sections.Section
	readingsLoaded bool
}

// New validates cfg (after defaults are applied) and returns an App.
// Nothing is read from disk yet.
func New(cfg Config) (*App, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := notes.Open(cfg.Path(cfg.Notes))
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, tax: taxonomy.Default, notes: store}, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// Taxonomy returns the book tables.
func (a *App) Taxonomy() *taxonomy.Taxonomy { return a.tax }

// Notes returns the tagged-note store.
func (a *App) Notes() *notes.Store { return a.notes }

// Corpus loads the scripture corpus once.
func (a *App) Corpus(ctx context.Context) (*corpus.Corpus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.corpus != nil {
		return a.corpus, nil
	}
	c, err := corpus.Load(ctx, a.cfg.Path(a.cfg.BibleDir), corpus.Options{
		Pattern: a.cfg.Pattern,
		Charset: a.cfg.Encoding,
	})
	if err != nil {
		return nil, errors.Wrap(err, "load scripture")
	}
	a.corpus = c
	return c, nil
}

// Passage is the result of a reference lookup.
type Passage struct {
	Query  *ref.Query
	Verses []corpus.Verse
}

// String renders the heading followed by one line per verse.
func (p *Passage) String() string {
	lines := append([]string{p.Query.String()}, corpus.Lines(p.Verses)...)
	return strings.Join(lines, "\n")
}

// Reference parses and executes a reference such as "요 3:16-18".
func (a *App) Reference(ctx context.Context, s string) (*Passage, error) {
	q, err := ref.Parse(s, a.tax)
	if err != nil {
		return nil, err
	}
	c, err := a.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return &Passage{Query: q, Verses: c.Lookup(q)}, nil
}

// Search runs a keyword search. It returns nil for a blank keyword.
func (a *App) Search(ctx context.Context, keyword string, scope search.Scope) (*search.Result, error) {
	c, err := a.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return search.Search(c, a.tax, keyword, scope), nil
}

// Hymns finds hymn files by name fragment.
func (a *App) Hymns(query string) ([]hymns.Hymn, error) {
	return hymns.Search(a.cfg.Path(a.cfg.HymnDir), query)
}

// Readings loads and segments the responsive-reading document once. A
// document that cannot be read is logged and treated as empty.
func (a *App) Readings(ctx context.Context) []sections.Section {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.readingsLoaded {
		return a.readings
	}
	path := a.cfg.Path(a.cfg.Readings)
	paras, err := sections.ReadParagraphs(path)
	if err != nil {
		logging.FileSkipped(ctx, path, err)
	}
	a.readings = sections.Segment(paras)
	a.readingsLoaded = true
	return a.readings
}

// Reading finds a reading by exact title or by its number.
func (a *App) Reading(ctx context.Context, key string) (sections.Section, error) {
	sec, ok := sections.Find(a.Readings(ctx), key)
	if !ok {
		return sections.Section{}, errors.NewNotFound("reading", key)
	}
	return sec, nil
}

// Creed returns the Apostles' Creed text, or "" when the file is missing.
func (a *App) Creed() (string, error) {
	return sections.LoadText(a.cfg.Path(a.cfg.Creed))
}

// Prayer returns the Lord's Prayer text, or "" when the file is missing.
func (a *App) Prayer() (string, error) {
	return sections.LoadText(a.cfg.Path(a.cfg.Prayer))
}

// Banner renders the service banner with the configured heading.
func (a *App) Banner(b Banner) string {
	return b.Render(a.cfg.BannerHeading)
}

// Stats summarises what is loaded.
type Stats struct {
	Books    int
	Verses   int
	Digest   string
	Sources  []corpus.Source
	Missing  []string
	Readings int
	Tags     []string
}

// Stats loads everything and reports counts. Canonical books absent from
// the corpus are listed in Missing.
func (a *App) Stats(ctx context.Context) (*Stats, error) {
	c, err := a.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := a.notes.Tags()
	if err != nil {
		return nil, errors.Wrap(err, "read notes "+a.notes.Path())
	}

	st := &Stats{
		Books:    c.Len(),
		Verses:   c.VerseCount(),
		Digest:   c.Digest(),
		Readings: len(a.Readings(ctx)),
		Tags:     tags,
	}
	for _, key := range c.Keys() {
		b, _ := c.Book(key)
		st.Sources = append(st.Sources, b.Source())
	}
	for _, name := range a.tax.Order() {
		if _, ok := c.Book(name); !ok {
			st.Missing = append(st.Missing, name)
		}
	}
	return st, nil
}
