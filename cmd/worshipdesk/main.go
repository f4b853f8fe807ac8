// Command worshipdesk looks up scripture, hymns, responsive readings and
// prayer notes for a worship service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/FocuswithJustin/worshipdesk/core/corpus"
	werrors "github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/core/hymns"
	"github.com/FocuswithJustin/worshipdesk/core/notes"
	"github.com/FocuswithJustin/worshipdesk/core/search"
	"github.com/FocuswithJustin/worshipdesk/core/sections"
	"github.com/FocuswithJustin/worshipdesk/core/taxonomy"
	"github.com/FocuswithJustin/worshipdesk/internal/app"
	"github.com/FocuswithJustin/worshipdesk/internal/archive"
	"github.com/FocuswithJustin/worshipdesk/internal/logging"
	"github.com/FocuswithJustin/worshipdesk/internal/shell"
	"github.com/FocuswithJustin/worshipdesk/internal/validation"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	BaseDir      string `name:"base-dir" help:"Directory the data paths are relative to" default:"." env:"WORSHIPDESK_BASE_DIR" type:"path"`
	BibleDir     string `name:"bible-dir" help:"Scripture directory or .tar.gz/.tar.xz/.tar.zst archive" env:"WORSHIPDESK_BIBLE_DIR"`
	HymnDir      string `name:"hymn-dir" help:"Hymn lyrics directory" env:"WORSHIPDESK_HYMN_DIR"`
	NotesFile    string `name:"notes" help:"Prayer notes file" env:"WORSHIPDESK_NOTES"`
	ReadingsFile string `name:"readings" help:"Responsive readings (.docx or .txt)" env:"WORSHIPDESK_READINGS"`
	CreedFile    string `name:"creed" help:"Apostles' Creed text file" env:"WORSHIPDESK_CREED"`
	PrayerFile   string `name:"prayer" help:"Lord's Prayer text file" env:"WORSHIPDESK_PRAYER"`
	Encoding     string `name:"encoding" help:"Force the scripture charset (e.g. euc-kr); default sniffs each file" env:"WORSHIPDESK_ENCODING"`
	Pattern      string `name:"pattern" help:"Glob selecting scripture files" default:"${pattern}" env:"WORSHIPDESK_PATTERN"`
	Heading      string `name:"banner-heading" help:"Gathering name shown on the banner" env:"WORSHIPDESK_BANNER_HEADING"`

	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error" env:"WORSHIPDESK_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json" env:"WORSHIPDESK_LOG_FORMAT"`

	Config kong.ConfigFlag `name:"config" help:"Load flags from a JSON (comments allowed) file"`

	ctx context.Context
	out io.Writer
	in  io.Reader
	app *app.App
}

// CLI defines the command-line interface for worshipdesk.
type CLI struct {
	Globals

	Ref        RefCmd        `cmd:"" help:"Show a scripture passage, e.g. '요 3:16-18'"`
	Search     SearchCmd     `cmd:"" help:"Search verses for a keyword"`
	Hymn       HymnCmd       `cmd:"" help:"Find hymns by number or title"`
	Notes      NotesGroup    `cmd:"" help:"Tagged prayer notes"`
	Readings   ReadingsGroup `cmd:"" help:"Responsive readings"`
	Creed      CreedCmd      `cmd:"" help:"Print the Apostles' Creed"`
	Prayer     PrayerCmd     `cmd:"" help:"Print the Lord's Prayer"`
	Banner     BannerCmd     `cmd:"" help:"Print the service banner"`
	Categories CategoriesCmd `cmd:"" help:"List search categories and their books"`
	Info       InfoCmd       `cmd:"" help:"Summarise the loaded data"`
	Pack       PackCmd       `cmd:"" help:"Pack the scripture directory into a compressed archive"`
	Shell      ShellCmd      `cmd:"" help:"Start the interactive shell"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// NotesGroup contains note operations.
type NotesGroup struct {
	Show NotesShowCmd `cmd:"" help:"Print a tagged section"`
	Save NotesSaveCmd `cmd:"" help:"Replace or append a tagged section"`
	List NotesListCmd `cmd:"" help:"List tags with a section"`
}

// ReadingsGroup contains responsive reading operations.
type ReadingsGroup struct {
	List ReadingsListCmd `cmd:"" help:"List reading titles"`
	Show ReadingsShowCmd `cmd:"" help:"Print a reading by title or number"`
}

func (g *Globals) config() app.Config {
	return app.Config{
		BaseDir:       g.BaseDir,
		BibleDir:      g.BibleDir,
		HymnDir:       g.HymnDir,
		Notes:         g.NotesFile,
		Readings:      g.ReadingsFile,
		Creed:         g.CreedFile,
		Prayer:        g.PrayerFile,
		Encoding:      g.Encoding,
		Pattern:       g.Pattern,
		BannerHeading: g.Heading,
	}
}

// App builds the application facade on first use.
func (g *Globals) App() (*app.App, error) {
	if g.app != nil {
		return g.app, nil
	}
	a, err := app.New(g.config())
	if err != nil {
		return nil, err
	}
	g.app = a
	return a, nil
}

func (g *Globals) context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

func (g *Globals) stdin() io.Reader {
	if g.in == nil {
		return os.Stdin
	}
	return g.in
}

func (g *Globals) println(s string) {
	fmt.Fprintln(g.stdout(), s)
}

// initLogging configures the global logger from the flags.
func (g *Globals) initLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// RefCmd prints a scripture passage.
type RefCmd struct {
	Reference []string `arg:"" help:"Reference such as '창 1', '시 23:1' or '요 3:16-18'"`
}

func (c *RefCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	p, err := a.Reference(g.context(), strings.Join(c.Reference, " "))
	if err != nil {
		return err
	}
	g.println(p.String())
	return nil
}

// SearchCmd searches verses.
type SearchCmd struct {
	Keyword  string `arg:"" help:"Keyword (case-sensitive)"`
	Category string `short:"c" help:"Category (전체, 구약, 신약, 모세오경, 4복음서)" default:"전체"`
	Book     string `short:"b" help:"Single book, full name or abbreviation"`
	Color    bool   `help:"Highlight matches with ANSI colors"`
}

func (c *SearchCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	res, err := a.Search(g.context(), c.Keyword, search.Scope{Category: c.Category, Book: c.Book})
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	text := res.Text()
	if c.Color {
		text = highlight(text, res.Spans)
	}
	g.println(text)
	return nil
}

// highlight wraps each span of text in ANSI reverse-video colors.
func highlight(text string, spans []search.Span) string {
	runes := []rune(text)
	var sb strings.Builder
	prev := 0
	for _, sp := range spans {
		sb.WriteString(string(runes[prev:sp.Start]))
		sb.WriteString("\033[30;43m")
		sb.WriteString(string(runes[sp.Start:sp.End]))
		sb.WriteString("\033[0m")
		prev = sp.End
	}
	sb.WriteString(string(runes[prev:]))
	return sb.String()
}

// HymnCmd prints matching hymns.
type HymnCmd struct {
	Query string `arg:"" help:"Part of the hymn file name, e.g. the number"`
}

func (c *HymnCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	hs, err := a.Hymns(c.Query)
	if err != nil {
		return err
	}
	g.println(hymns.Format(hs))
	return nil
}

// NotesShowCmd prints a tagged section.
type NotesShowCmd struct {
	Tag string `arg:"" help:"Section tag (기도제목, 나라, 공주, 회원, ...)"`
}

func (c *NotesShowCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	text, err := a.Notes().Read(c.Tag)
	if err != nil {
		return err
	}
	g.println(text)
	return nil
}

// NotesSaveCmd stores a tagged section.
type NotesSaveCmd struct {
	Tag     string   `arg:"" optional:"" help:"Section tag" default:"${save_tag}"`
	Content []string `arg:"" optional:"" help:"Section text; read from stdin when absent or '-'"`
}

func (c *NotesSaveCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	content := strings.Join(c.Content, " ")
	if content == "" || content == "-" {
		data, err := io.ReadAll(g.stdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		content = string(data)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return werrors.NewValidation("content", "nothing to save")
	}
	if err := a.Notes().Upsert(c.Tag, content); err != nil {
		return err
	}
	g.println(c.Tag + " 저장됨")
	return nil
}

// NotesListCmd lists saved tags.
type NotesListCmd struct{}

func (c *NotesListCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	tags, err := a.Notes().Tags()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		g.println(tag)
	}
	return nil
}

// ReadingsListCmd lists reading titles.
type ReadingsListCmd struct{}

func (c *ReadingsListCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	for _, title := range sections.Titles(a.Readings(g.context())) {
		g.println(title)
	}
	return nil
}

// ReadingsShowCmd prints one reading.
type ReadingsShowCmd struct {
	Key []string `arg:"" help:"Reading title or number"`
}

func (c *ReadingsShowCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	sec, err := a.Reading(g.context(), strings.Join(c.Key, " "))
	if err != nil {
		return err
	}
	g.println(sec.String())
	return nil
}

// CreedCmd prints the creed.
type CreedCmd struct{}

func (c *CreedCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	text, err := a.Creed()
	if err != nil {
		return err
	}
	g.println(text)
	return nil
}

// PrayerCmd prints the Lord's Prayer.
type PrayerCmd struct{}

func (c *PrayerCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	text, err := a.Prayer()
	if err != nil {
		return err
	}
	g.println(text)
	return nil
}

// BannerCmd prints the service banner.
type BannerCmd struct {
	Round   string `short:"n" help:"Meeting number"`
	Speaker string `short:"s" help:"Speaker"`
	Passage string `short:"p" help:"Scripture passage"`
	Title   string `short:"t" help:"Sermon title"`
}

func (c *BannerCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	g.println(a.Banner(app.Banner{Round: c.Round, Speaker: c.Speaker, Passage: c.Passage, Title: c.Title}))
	return nil
}

// CategoriesCmd lists categories.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(g *Globals) error {
	tax := taxonomy.Default
	for _, name := range tax.Categories() {
		books, _ := tax.Category(name)
		short := make([]string, len(books))
		for i, b := range books {
			short[i] = tax.ShortName(b)
		}
		fmt.Fprintf(g.stdout(), "%s (%d): %s\n", name, len(books), strings.Join(short, " "))
	}
	return nil
}

// InfoCmd summarises the loaded data.
type InfoCmd struct {
	Sources bool `help:"List each scripture file with its charset and digest"`
}

func (c *InfoCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	st, err := a.Stats(g.context())
	if err != nil {
		return err
	}
	cfg := a.Config()
	w := g.stdout()
	fmt.Fprintf(w, "Scripture:  %s\n", cfg.Path(cfg.BibleDir))
	fmt.Fprintf(w, "Books:      %d (missing %d)\n", st.Books, len(st.Missing))
	fmt.Fprintf(w, "Verses:     %d\n", st.Verses)
	fmt.Fprintf(w, "Digest:     %s\n", st.Digest)
	fmt.Fprintf(w, "Readings:   %d\n", st.Readings)
	fmt.Fprintf(w, "Note tags:  %s\n", strings.Join(st.Tags, ", "))
	if c.Sources {
		for _, src := range st.Sources {
			fmt.Fprintf(w, "  %s  %s  %s\n", src.Digest[:12], src.Charset, src.Name)
		}
	}
	return nil
}

// PackCmd archives the scripture directory.
type PackCmd struct {
	Out  string `arg:"" help:"Output archive (.tar.gz, .tar.xz or .tar.zst)" type:"path"`
	Base string `help:"Directory name inside the archive" default:"${bible_dir}"`
}

func (c *PackCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if !archive.IsArchive(c.Out) {
		return fmt.Errorf("unsupported archive type: %s", filepath.Base(c.Out))
	}
	cfg := a.Config()
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = corpus.DefaultPattern
	}
	n, err := archive.Create(cfg.Path(cfg.BibleDir), c.Out, c.Base, func(name string) bool {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "packed %d files into %s\n", n, c.Out)
	return nil
}

// ShellCmd starts the interactive shell.
type ShellCmd struct{}

func (c *ShellCmd) Run(g *Globals) error {
	a, err := g.App()
	if err != nil {
		return err
	}
	return shell.New(a, g.stdout()).Run(g.context())
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout(), "worshipdesk version %s\n", version)
	return nil
}

// vars are interpolated into flag defaults and help.
var vars = kong.Vars{
	"pattern":   corpus.DefaultPattern,
	"save_tag":  notes.DefaultSaveTag,
	"bible_dir": app.DefaultBibleDir,
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("worshipdesk"),
		kong.Description("Scripture, hymn, reading and prayer-note lookup for worship services"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(app.HuJSON, app.ConfigPaths()...),
		vars,
	)
	kctx.FatalIfErrorf(cli.initLogging())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.ctx = logging.NewSession(ctx)

	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
