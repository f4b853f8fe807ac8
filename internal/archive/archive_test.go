package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"bible.tar.gz", true},
		{"bible.TGZ", true},
		{"bible.tar.xz", true},
		{"bible.txz", true},
		{"bible.tar.zst", true},
		{"bible.zip", false},
		{"성경66권_파이션_자료", false},
	}
	for _, tt := range tests {
		if got := IsArchive(tt.path); got != tt.want {
			t.Errorf("IsArchive(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCreateAndIterateRoundTrip(t *testing.T) {
	src := writeSource(t, map[string]string{
		"01-01창세기.txt": "창1:1 태초에 하나님이 천지를 창조하시니라\n",
		"19-01시편.txt":  "시23:1 여호와는 나의 목자시니\n",
		"readme.md":     "not a book",
	})

	for _, suffix := range []string{".tar.gz", ".tar.xz", ".tar.zst"} {
		t.Run(suffix, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out", "bible"+suffix)
			n, err := Create(src, dst, "bible", func(name string) bool {
				return strings.HasSuffix(name, ".txt")
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if n != 2 {
				t.Fatalf("Create packed %d files, want 2", n)
			}

			var names []string
			contents := map[string]string{}
			err = IterateFiles(dst, func(h *tar.Header, r io.Reader) (bool, error) {
				data, err := io.ReadAll(r)
				if err != nil {
					return true, err
				}
				names = append(names, h.Name)
				contents[h.Name] = string(data)
				return false, nil
			})
			if err != nil {
				t.Fatalf("IterateFiles failed: %v", err)
			}

			want := []string{"bible/01-01창세기.txt", "bible/19-01시편.txt"}
			if strings.Join(names, ",") != strings.Join(want, ",") {
				t.Errorf("entries = %v, want %v", names, want)
			}
			if got := contents["bible/19-01시편.txt"]; got != "시23:1 여호와는 나의 목자시니\n" {
				t.Errorf("content = %q", got)
			}
		})
	}
}

func TestCreateIsDeterministic(t *testing.T) {
	src := writeSource(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	dir := t.TempDir()
	first := filepath.Join(dir, "one.tar.gz")
	second := filepath.Join(dir, "two.tar.gz")

	if _, err := Create(src, first, "x", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(src, second, "x", nil); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("packing the same directory twice produced different archives")
	}
}

func TestIterateStopsEarly(t *testing.T) {
	src := writeSource(t, map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})
	dst := filepath.Join(t.TempDir(), "abc.tar.gz")
	if _, err := Create(src, dst, "abc", nil); err != nil {
		t.Fatal(err)
	}

	visited := 0
	err := IterateFiles(dst, func(*tar.Header, io.Reader) (bool, error) {
		visited++
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if visited != 1 {
		t.Errorf("visited %d entries, want 1", visited)
	}
}

func TestUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bible.zip")
	if err := os.WriteFile(zipPath, []byte("PK"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(zipPath); err == nil {
		t.Error("NewReader should reject .zip")
	}
	if _, err := Create(dir, filepath.Join(dir, "out.rar"), "x", nil); err == nil {
		t.Error("Create should reject .rar")
	}
	if _, err := NewReader(filepath.Join(dir, "absent.tar.gz")); err == nil {
		t.Error("NewReader should fail for a missing file")
	}
}

func TestCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tar.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(path); err == nil {
		t.Error("expected gzip header error")
	}
}
