package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/FocuswithJustin/worshipdesk/core/errors"
	"github.com/FocuswithJustin/worshipdesk/internal/app"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer, string) {
	t.Helper()
	base := t.TempDir()
	files := map[string]string{
		filepath.Join(app.DefaultBibleDir, "19-01시편.txt"):   "시23:1 여호와는 나의 목자시니\n시23:2 그가 나를 푸른 풀밭에 누이시며\n",
		filepath.Join(app.DefaultBibleDir, "43-01요한복음.txt"): "요3:16 하나님이 세상을 이처럼 사랑하사\n",
		filepath.Join(app.DefaultHymnDir, "405 주 하나님.txt"):  "주 하나님 지으신 모든 세계",
		"교독문.txt":     "1. 아침\n내용1\n2. 저녁\n내용2\n",
		app.DefaultCreed: "나는 전능하사 천지를 만드신 하나님 아버지를 믿사오며",
	}
	for name, body := range files {
		path := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	a, err := app.New(app.Config{BaseDir: base, Readings: "교독문.txt"})
	require.NoError(t, err)
	var out bytes.Buffer
	return New(a, &out), &out, base
}

func exec(t *testing.T, s *Shell, line string) {
	t.Helper()
	quit, err := s.Exec(context.Background(), line)
	require.NoError(t, err, "Exec(%q)", line)
	require.False(t, quit)
}

func TestExecReference(t *testing.T) {
	s, out, _ := newShell(t)

	exec(t, s, "ref 시 23:1")
	assert.Equal(t, "[시편 23장 1절]\n23:1 여호와는 나의 목자시니\n", out.String())

	out.Reset()
	exec(t, s, "시 23")
	assert.Contains(t, out.String(), "23:2 그가 나를 푸른 풀밭에 누이시며")
}

func TestExecSearchWithScope(t *testing.T) {
	s, out, _ := newShell(t)

	exec(t, s, "search 사랑")
	assert.Equal(t, "요한복음 3:16  하나님이 세상을 이처럼 사랑하사\n", out.String())

	out.Reset()
	exec(t, s, "scope 구약")
	assert.Equal(t, "범위: 구약 / 전체\n", out.String())

	out.Reset()
	exec(t, s, "search 사랑")
	assert.Equal(t, "결과 없음\n", out.String())

	out.Reset()
	exec(t, s, "scope 전체 시")
	assert.Equal(t, "범위: 전체 / 시편\n", out.String())

	_, err := s.Exec(context.Background(), "scope 외경")
	assert.ErrorIs(t, err, werrors.ErrNotFound)

	_, err = s.Exec(context.Background(), "search")
	assert.Error(t, err)
}

func TestExecSaveAndTag(t *testing.T) {
	s, out, base := newShell(t)

	exec(t, s, "creed")
	out.Reset()

	// A bare save stores the last shown text under the default tag.
	exec(t, s, "save")
	assert.Equal(t, "기도제목 저장됨\n", out.String())

	out.Reset()
	exec(t, s, "tag 기도제목")
	assert.Equal(t, "나는 전능하사 천지를 만드신 하나님 아버지를 믿사오며\n", out.String())

	out.Reset()
	exec(t, s, "save 나라 평화와 통일")
	exec(t, s, "tag 나라")
	assert.Equal(t, "나라 저장됨\n평화와 통일\n", out.String())

	out.Reset()
	exec(t, s, "tag 회원")
	assert.Equal(t, "내용 없음\n", out.String())

	raw, err := os.ReadFile(filepath.Join(base, app.DefaultNotes))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "＃나라"))
}

func TestExecSaveNothing(t *testing.T) {
	s, _, _ := newShell(t)
	_, err := s.Exec(context.Background(), "save")
	assert.ErrorIs(t, err, werrors.ErrInvalidInput)

	_, err = s.Exec(context.Background(), "save 나라 \t ")
	assert.ErrorIs(t, err, werrors.ErrInvalidInput)
}

func TestExecSaveTrimsContent(t *testing.T) {
	s, out, _ := newShell(t)

	exec(t, s, "save 회원   새 가족 환영  ")
	out.Reset()
	exec(t, s, "tag 회원")
	assert.Equal(t, "새 가족 환영\n", out.String())
}

func TestExecReadingsHymnsBanner(t *testing.T) {
	s, out, _ := newShell(t)

	exec(t, s, "reading")
	assert.Equal(t, "1. 아침\n2. 저녁\n", out.String())

	out.Reset()
	exec(t, s, "reading 2")
	assert.Equal(t, "2. 저녁\n\n내용2\n", out.String())

	out.Reset()
	exec(t, s, "hymn 405")
	assert.Equal(t, "[405 주 하나님]\n주 하나님 지으신 모든 세계\n", out.String())

	out.Reset()
	exec(t, s, "hymn 999")
	assert.Equal(t, "찬송가 없음\n", out.String())

	out.Reset()
	exec(t, s, "banner 7|김목사|요 3:16|사랑")
	assert.Equal(t, "제 7 차\n공주사랑중보기도회\n\n강사: 김목사\n성경: 요 3:16\n제목: 사랑\n", out.String())

	out.Reset()
	exec(t, s, "prayer")
	assert.Equal(t, "\n", out.String(), "a missing prayer file shows an empty screen")
}

func TestExecQuitAndUnknown(t *testing.T) {
	s, _, _ := newShell(t)

	for _, line := range []string{"quit", "exit", "q", "QUIT"} {
		quit, err := s.Exec(context.Background(), line)
		require.NoError(t, err)
		assert.True(t, quit, "Exec(%q)", line)
	}

	_, err := s.Exec(context.Background(), "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	quit, err := s.Exec(context.Background(), "   ")
	assert.NoError(t, err)
	assert.False(t, quit)
}

func TestHelpAndCompleter(t *testing.T) {
	s, out, _ := newShell(t)

	exec(t, s, "help")
	for _, name := range commandNames() {
		assert.Contains(t, out.String(), commands[name].usage)
	}

	assert.Equal(t, []string{"save", "scope", "search"}, s.completer("s"))
	assert.Empty(t, s.completer("ref 시"))
}

func TestExecCategories(t *testing.T) {
	s, out, _ := newShell(t)
	exec(t, s, "categories")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "전체 (66): 창세기 출애굽기"))
	assert.Equal(t, "4복음서 (4): 마태복음 마가복음 누가복음 요한복음", lines[4])
}
