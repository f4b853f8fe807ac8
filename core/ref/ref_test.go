package ref

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	werrors "github.com/FocuswithJustin/worshipdesk/core/errors"
)

func intPtr(n int) *int { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  *Query
	}{
		{
			input: "창 1",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1},
		},
		{
			input: "창1",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1},
		},
		{
			input: "시 23:1",
			want:  &Query{Book: "시편", Token: "시", Chapter: 23, VerseStart: intPtr(1)},
		},
		{
			input: "요 3:16-18",
			want:  &Query{Book: "요한복음", Token: "요", Chapter: 3, VerseStart: intPtr(16), VerseEnd: intPtr(18)},
		},
		{
			input: "요일 4:8",
			want:  &Query{Book: "요한일서", Token: "요일", Chapter: 4, VerseStart: intPtr(8)},
		},
		{
			input: "  롬   8:28  ",
			want:  &Query{Book: "로마서", Token: "롬", Chapter: 8, VerseStart: intPtr(28)},
		},
		// Full names pass through the abbreviation table unchanged.
		{
			input: "창세기 50:26",
			want:  &Query{Book: "창세기", Token: "창세기", Chapter: 50, VerseStart: intPtr(26)},
		},
		// Unknown tokens are kept and simply miss in the corpus.
		{
			input: "토빗 1:1",
			want:  &Query{Book: "토빗", Token: "토빗", Chapter: 1, VerseStart: intPtr(1)},
		},
		// A dangling colon is a whole-chapter query.
		{
			input: "창 2:",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 2},
		},
		// An end verse without a start verse is ignored.
		{
			input: "창 1-5",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1},
		},
		// Trailing text after a valid prefix is ignored.
		{
			input: "시 23:1 말씀",
			want:  &Query{Book: "시편", Token: "시", Chapter: 23, VerseStart: intPtr(1)},
		},
		{
			input: "시 23 : 1",
			want:  &Query{Book: "시편", Token: "시", Chapter: 23},
		},
		// A dangling dash is ignored.
		{
			input: "창 1:2-",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1, VerseStart: intPtr(2)},
		},
		{
			input: "창 1-",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1},
		},
		{
			input: "요 3:16-18절",
			want:  &Query{Book: "요한복음", Token: "요", Chapter: 3, VerseStart: intPtr(16), VerseEnd: intPtr(18)},
		},
		// Pasted text often carries a no-break space.
		{
			input: "창\u00a01:1",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1, VerseStart: intPtr(1)},
		},
		{
			input: "요\u3000 3:16",
			want:  &Query{Book: "요한복음", Token: "요", Chapter: 3, VerseStart: intPtr(16)},
		},
		// Reversed ranges parse; they select nothing.
		{
			input: "창 1:5-3",
			want:  &Query{Book: "창세기", Token: "창", Chapter: 1, VerseStart: intPtr(5), VerseEnd: intPtr(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, nil)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"창",
		"창 :1",
		"1창 1",
		"Gen 1:1",
		"23:1",
		"창 가",
		"창 99999999999999999999",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			q, err := Parse(input, nil)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", input, q)
			}
			if !errors.Is(err, werrors.ErrInvalidReference) {
				t.Errorf("Parse(%q) error %v does not wrap ErrInvalidReference", input, err)
			}
		})
	}
}

func TestQueryRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart int
		wantEnd   int
		chapter   bool
	}{
		{"창 1", 0, -1, true},
		{"창 1:3", 3, 3, false},
		{"창 1:3-7", 3, 7, false},
		{"창 1:7-3", 7, 3, false},
	}
	for _, tt := range tests {
		q, err := Parse(tt.input, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if q.IsChapter() != tt.chapter {
			t.Errorf("%q IsChapter = %v, want %v", tt.input, q.IsChapter(), tt.chapter)
		}
		start, end := q.Range()
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("%q Range = (%d, %d), want (%d, %d)", tt.input, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestQueryString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"창 1", "[창세기 1장]"},
		{"시 23:1", "[시편 23장 1절]"},
		{"요 3:16-18", "[요한복음 3장 16-18절]"},
	}
	for _, tt := range tests {
		q, err := Parse(tt.input, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if got := q.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
