package taxonomy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonSize(t *testing.T) {
	tax := New()
	if got := len(tax.Order()); got != 66 {
		t.Fatalf("len(Order()) = %d, want 66", got)
	}
	for i, b := range Books() {
		if b.Order != i+1 {
			t.Errorf("book %s has Order %d, want %d", b.Full, b.Order, i+1)
		}
	}
}

func TestShortFullBijective(t *testing.T) {
	tax := New()
	seenShort := map[string]bool{}
	seenFull := map[string]bool{}
	for _, b := range Books() {
		if seenShort[b.Short] {
			t.Errorf("duplicate abbreviation %q", b.Short)
		}
		if seenFull[b.Full] {
			t.Errorf("duplicate full name %q", b.Full)
		}
		seenShort[b.Short] = true
		seenFull[b.Full] = true

		if got := tax.FullName(b.Short); got != b.Full {
			t.Errorf("FullName(%q) = %q, want %q", b.Short, got, b.Full)
		}
		if got := tax.ShortName(b.Full); got != b.Short {
			t.Errorf("ShortName(%q) = %q, want %q", b.Full, got, b.Short)
		}
	}
}

func TestFullNamePassThrough(t *testing.T) {
	tax := New()
	tests := []struct {
		in   string
		want string
	}{
		{"창", "창세기"},
		{"요일", "요한일서"},
		{"창세기", "창세기"},
		{"토빗", "토빗"},
	}
	for _, tt := range tests {
		if got := tax.FullName(tt.in); got != tt.want {
			t.Errorf("FullName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoriesAreSubsequences(t *testing.T) {
	tax := New()
	order := tax.Order()
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	for _, name := range tax.Categories() {
		list, ok := tax.Category(name)
		if !ok {
			t.Fatalf("Category(%q) not found", name)
		}
		last := -1
		for _, book := range list {
			p, ok := pos[book]
			if !ok {
				t.Errorf("category %q lists unknown book %q", name, book)
				continue
			}
			if p <= last {
				t.Errorf("category %q is not in canonical order at %q", name, book)
			}
			last = p
		}
	}
}

func TestCategoryContents(t *testing.T) {
	tax := New()

	all, _ := tax.Category(All)
	if diff := cmp.Diff(tax.Order(), all); diff != "" {
		t.Errorf("전체 differs from canonical order (-want +got):\n%s", diff)
	}

	old, _ := tax.Category(CategoryOld)
	if len(old) != 39 || old[0] != "창세기" || old[38] != "말라기" {
		t.Errorf("구약 = %d books (%q..%q)", len(old), old[0], old[len(old)-1])
	}

	nt, _ := tax.Category(CategoryNew)
	if len(nt) != 27 || nt[0] != "마태복음" || nt[26] != "요한계시록" {
		t.Errorf("신약 = %d books (%q..%q)", len(nt), nt[0], nt[len(nt)-1])
	}

	gospels, _ := tax.Category(CategoryGospels)
	want := []string{"마태복음", "마가복음", "누가복음", "요한복음"}
	if diff := cmp.Diff(want, gospels); diff != "" {
		t.Errorf("4복음서 mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryOrAll(t *testing.T) {
	tax := New()
	if got := tax.CategoryOrAll("외경"); len(got) != 66 {
		t.Errorf("unknown category should fall back to all books, got %d", len(got))
	}
	if got := tax.CategoryOrAll(CategoryPentateuch); len(got) != 5 {
		t.Errorf("모세오경 = %d books, want 5", len(got))
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	tax := New()
	order := tax.Order()
	order[0] = "변경됨"
	if tax.Order()[0] != "창세기" {
		t.Error("Order() exposed internal state")
	}
	nt, _ := tax.Category(CategoryNew)
	nt[0] = "변경됨"
	if again, _ := tax.Category(CategoryNew); again[0] != "마태복음" {
		t.Error("Category() exposed internal state")
	}
}
