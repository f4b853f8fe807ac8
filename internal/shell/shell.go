// Package shell is the interactive front end: a line-editing prompt whose
// commands mirror the worshipdesk subcommands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	werrors "github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/core/hymns"
	"github.com/FocuswithJustin/worshipdesk/core/notes"
	"github.com/FocuswithJustin/worshipdesk/core/ref"
	"github.com/FocuswithJustin/worshipdesk/core/search"
	"github.com/FocuswithJustin/worshipdesk/core/sections"
	"github.com/FocuswithJustin/worshipdesk/core/taxonomy"
	"github.com/FocuswithJustin/worshipdesk/internal/app"
	"github.com/FocuswithJustin/worshipdesk/internal/logging"
)

const prompt = "worship> "

// errQuit ends the loop.
var errQuit = errors.New("quit")

// Shell holds the session state: the search scope and the last text shown,
// which a bare "save" stores as a note.
type Shell struct {
	app   *app.App
	out   io.Writer
	scope search.Scope
	last  string
	state *liner.State
}

// New returns a shell writing to out.
func New(a *app.App, out io.Writer) *Shell {
	return &Shell{app: a, out: out, scope: search.Scope{Category: taxonomy.All}}
}

type command struct {
	usage string
	help  string
	run   func(s *Shell, ctx context.Context, args string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"ref":        {"ref <참조>", "성경 본문 (예: 요 3:16-18)", (*Shell).cmdRef},
		"search":     {"search <키워드>", "현재 범위에서 키워드 검색", (*Shell).cmdSearch},
		"scope":      {"scope [분류] [책]", "검색 범위 보기/설정", (*Shell).cmdScope},
		"hymn":       {"hymn <번호|제목>", "찬송가 찾기", (*Shell).cmdHymn},
		"tag":        {"tag <태그>", "기도 노트 보기", (*Shell).cmdTag},
		"save":       {"save [태그] [내용]", "기도 노트 저장 (내용이 없으면 마지막 화면)", (*Shell).cmdSave},
		"reading":    {"reading [번호|제목]", "교독문 목록/본문", (*Shell).cmdReading},
		"creed":      {"creed", "사도신경", (*Shell).cmdCreed},
		"prayer":     {"prayer", "주기도문", (*Shell).cmdPrayer},
		"banner":     {"banner 차수|강사|성경|제목", "집회 안내 화면", (*Shell).cmdBanner},
		"categories": {"categories", "분류와 책 목록", (*Shell).cmdCategories},
		"clear":      {"clear", "화면 지우기", (*Shell).cmdClear},
		"help":       {"help", "도움말", (*Shell).cmdHelp},
		"quit":       {"quit", "종료", func(*Shell, context.Context, string) error { return errQuit }},
	}
}

// commandNames lists command names in sorted order.
func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// show prints text and remembers it for a later bare "save".
func (s *Shell) show(text string) {
	s.last = text
	fmt.Fprintln(s.out, text)
}

// Exec runs one input line. It reports quit=true when the session should
// end. Errors are for the caller to print; the session continues.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	name, args, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	switch name {
	case "exit", "q":
		name = "quit"
	case "?":
		name = "help"
	}

	cmd, ok := commands[name]
	if !ok {
		// A bare reference such as "창 1:1" needs no command word.
		if _, perr := ref.Parse(line, s.app.Taxonomy()); perr == nil {
			return false, s.cmdRef(ctx, line)
		}
		return false, fmt.Errorf("unknown command: %s (type 'help' for commands)", name)
	}

	err = cmd.run(s, ctx, strings.TrimSpace(args))
	if errors.Is(err, errQuit) {
		return true, nil
	}
	return false, err
}

func (s *Shell) cmdRef(ctx context.Context, args string) error {
	p, err := s.app.Reference(ctx, args)
	if err != nil {
		return err
	}
	s.show(p.String())
	return nil
}

func (s *Shell) cmdSearch(ctx context.Context, args string) error {
	res, err := s.app.Search(ctx, args, s.scope)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("usage: %s", commands["search"].usage)
	}
	s.show(res.Text())
	return nil
}

func (s *Shell) cmdScope(_ context.Context, args string) error {
	fields := strings.Fields(args)
	tax := s.app.Taxonomy()
	switch len(fields) {
	case 0:
	case 1, 2:
		if _, ok := tax.Category(fields[0]); !ok {
			return werrors.NewNotFound("category", fields[0])
		}
		s.scope = search.Scope{Category: fields[0], Book: taxonomy.All}
		if len(fields) == 2 {
			s.scope.Book = tax.FullName(fields[1])
		}
	default:
		return fmt.Errorf("usage: %s", commands["scope"].usage)
	}
	fmt.Fprintf(s.out, "범위: %s / %s\n", s.scope.Category, orAll(s.scope.Book))
	return nil
}

func orAll(book string) string {
	if book == "" {
		return taxonomy.All
	}
	return book
}

func (s *Shell) cmdHymn(_ context.Context, args string) error {
	if args == "" {
		return fmt.Errorf("usage: %s", commands["hymn"].usage)
	}
	hs, err := s.app.Hymns(args)
	if err != nil {
		return err
	}
	s.show(hymns.Format(hs))
	return nil
}

func (s *Shell) cmdTag(_ context.Context, args string) error {
	if args == "" {
		return fmt.Errorf("usage: %s (tags: %s)", commands["tag"].usage, strings.Join(notes.DefaultTags, ", "))
	}
	text, err := s.app.Notes().Read(args)
	if errors.Is(err, werrors.ErrSectionNotFound) {
		fmt.Fprintln(s.out, "내용 없음")
		return nil
	}
	if err != nil {
		return err
	}
	s.show(text)
	return nil
}

// cmdSave stores a note. "save" saves the last shown text under the
// default tag; "save <tag>" saves it under tag; "save <tag> <text>" saves text.
func (s *Shell) cmdSave(_ context.Context, args string) error {
	tag, content, hasContent := strings.Cut(args, " ")
	if tag == "" {
		tag = notes.DefaultSaveTag
	}
	if !hasContent {
		content = s.last
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return werrors.NewValidation("content", "nothing to save")
	}
	if err := s.app.Notes().Upsert(tag, content); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s 저장됨\n", tag)
	return nil
}

func (s *Shell) cmdReading(ctx context.Context, args string) error {
	if args == "" {
		titles := sections.Titles(s.app.Readings(ctx))
		if len(titles) == 0 {
			fmt.Fprintln(s.out, "없음")
			return nil
		}
		fmt.Fprintln(s.out, strings.Join(titles, "\n"))
		return nil
	}
	sec, err := s.app.Reading(ctx, args)
	if err != nil {
		return err
	}
	s.show(sec.String())
	return nil
}

func (s *Shell) cmdCreed(context.Context, string) error {
	text, err := s.app.Creed()
	if err != nil {
		return err
	}
	s.show(text)
	return nil
}

func (s *Shell) cmdPrayer(context.Context, string) error {
	text, err := s.app.Prayer()
	if err != nil {
		return err
	}
	s.show(text)
	return nil
}

func (s *Shell) cmdBanner(_ context.Context, args string) error {
	var f [4]string
	for i, part := range strings.SplitN(args, "|", 4) {
		f[i] = part
	}
	s.show(s.app.Banner(app.Banner{Round: f[0], Speaker: f[1], Passage: f[2], Title: f[3]}))
	return nil
}

func (s *Shell) cmdCategories(context.Context, string) error {
	tax := s.app.Taxonomy()
	for _, name := range tax.Categories() {
		books, _ := tax.Category(name)
		fmt.Fprintf(s.out, "%s (%d): %s\n", name, len(books), strings.Join(books, " "))
	}
	return nil
}

func (s *Shell) cmdClear(context.Context, string) error {
	s.last = ""
	fmt.Fprint(s.out, "\033[H\033[2J")
	return nil
}

func (s *Shell) cmdHelp(context.Context, string) error {
	fmt.Fprintln(s.out, "Commands:")
	for _, name := range commandNames() {
		c := commands[name]
		fmt.Fprintf(s.out, "  %-28s %s\n", c.usage, c.help)
	}
	fmt.Fprintln(s.out, "  A line such as '시 23:1' is looked up directly.")
	return nil
}

// completer completes command names at the start of the line.
func (s *Shell) completer(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}
	var out []string
	for _, name := range commandNames() {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			out = append(out, name)
		}
	}
	return out
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".worshipdesk_history")
}

// Run starts the prompt loop. It returns when the user quits, presses
// Ctrl-C or Ctrl-D, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.state = liner.NewLiner()
	defer s.state.Close()

	s.state.SetCtrlCAborts(true)
	s.state.SetCompleter(s.completer)

	if f, err := os.Open(historyFile()); err == nil {
		s.state.ReadHistory(f)
		f.Close()
	}
	defer s.saveHistory()

	fmt.Fprintln(s.out, "worshipdesk - type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := s.state.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.state.AppendHistory(line)

		quit, err := s.Exec(ctx, line)
		if err != nil {
			logging.CommandFailed(ctx, line, err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// saveHistory persists command history to disk.
func (s *Shell) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			s.state.WriteHistory(f)
			f.Close()
		}
	}
}
