package hymns

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	werrors "github.com/FocuswithJustin/worshipdesk/core/errors"
)

func hymnDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"405 주 하나님 지으신 모든 세계.txt": "주 하나님 지으신 모든 세계\n내 마음 속에 그리어 볼 때",
		"40 찬송으로 보답할 수 없는.txt":    "찬송으로 보답할 수 없는",
		"305 나 같은 죄인 살리신.txt":     "\xEF\xBB\xBF나 같은 죄인 살리신",
		"readme":                   "색인 없음",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "405 폴더"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSearch(t *testing.T) {
	dir := hymnDir(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"405", []string{"405 주 하나님 지으신 모든 세계"}},
		{"40", []string{"40 찬송으로 보답할 수 없는", "405 주 하나님 지으신 모든 세계"}},
		{"죄인", []string{"305 나 같은 죄인 살리신"}},
		{"readme", []string{"readme"}},
		{"999", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Search(dir, tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			var ids []string
			for _, h := range got {
				ids = append(ids, h.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestSearchContent(t *testing.T) {
	got, err := Search(hymnDir(t), "305")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d hymns, want 1", len(got))
	}
	if want := "[305 나 같은 죄인 살리신]\n나 같은 죄인 살리신"; got[0].String() != want {
		t.Errorf("String() = %q, want %q", got[0].String(), want)
	}
}

func TestSearchEmptyAndMissing(t *testing.T) {
	if got, err := Search(hymnDir(t), "  "); got != nil || err != nil {
		t.Errorf("Search(blank) = %v, %v; want nil, nil", got, err)
	}
	if got, err := Search(filepath.Join(t.TempDir(), "없음"), "405"); got != nil || err != nil {
		t.Errorf("Search(missing dir) = %v, %v; want nil, nil", got, err)
	}
}

func TestSearchRejectsPaths(t *testing.T) {
	for _, q := range []string{"../prayer", "a/b", ".."} {
		_, err := Search(hymnDir(t), q)
		if !errors.Is(err, werrors.ErrInvalidInput) {
			t.Errorf("Search(%q) error = %v, want ErrInvalidInput", q, err)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != NoHymns {
		t.Errorf("Format(nil) = %q, want %q", got, NoHymns)
	}
	hs := []Hymn{{ID: "1", Text: "가"}, {ID: "2", Text: "나"}}
	if got, want := Format(hs), "[1]\n가\n\n[2]\n나"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}
