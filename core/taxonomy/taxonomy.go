// Package taxonomy holds the static book tables for the 66-book Korean
// Protestant canon: abbreviation to full name, canonical order, and the
// named category groupings offered to keyword search.
package taxonomy

// All is the category (and book filter value) that selects everything.
const All = "전체"

// Category names in display order.
const (
	CategoryOld        = "구약"
	CategoryNew        = "신약"
	CategoryPentateuch = "모세오경"
	CategoryGospels    = "4복음서"
)

// oldTestamentCount is the number of leading canonical books that form the Old Testament.
const oldTestamentCount = 39

// Book is one entry of the canon.
type Book struct {
	Short string // abbreviation, e.g. "창"
	Full  string // full name, e.g. "창세기"
	Order int    // 1-based canonical position
}

// books lists the canon in order. The abbreviations follow the common
// Korean reference style ("창 1:1", "요일 4:8").
var books = []Book{
	{"창", "창세기", 1},
	{"출", "출애굽기", 2},
	{"레", "레위기", 3},
	{"민", "민수기", 4},
	{"신", "신명기", 5},
	{"수", "여호수아", 6},
	{"삿", "사사기", 7},
	{"룻", "룻기", 8},
	{"삼상", "사무엘상", 9},
	{"삼하", "사무엘하", 10},
	{"왕상", "열왕기상", 11},
	{"왕하", "열왕기하", 12},
	{"대상", "역대상", 13},
	{"대하", "역대하", 14},
	{"스", "에스라", 15},
	{"느", "느헤미야", 16},
	{"에", "에스더", 17},
	{"욥", "욥기", 18},
	{"시", "시편", 19},
	{"잠", "잠언", 20},
	{"전", "전도서", 21},
	{"아", "아가", 22},
	{"사", "이사야", 23},
	{"렘", "예레미야", 24},
	{"애", "예레미야애가", 25},
	{"겔", "에스겔", 26},
	{"단", "다니엘", 27},
	{"호", "호세아", 28},
	{"욜", "요엘", 29},
	{"암", "아모스", 30},
	{"옵", "오바댜", 31},
	{"욘", "요나", 32},
	{"미", "미가", 33},
	{"나", "나훔", 34},
	{"합", "하박국", 35},
	{"습", "스바냐", 36},
	{"학", "학개", 37},
	{"슥", "스가랴", 38},
	{"말", "말라기", 39},
	{"마", "마태복음", 40},
	{"막", "마가복음", 41},
	{"눅", "누가복음", 42},
	{"요", "요한복음", 43},
	{"행", "사도행전", 44},
	{"롬", "로마서", 45},
	{"고전", "고린도전서", 46},
	{"고후", "고린도후서", 47},
	{"갈", "갈라디아서", 48},
	{"엡", "에베소서", 49},
	{"빌", "빌립보서", 50},
	{"골", "골로새서", 51},
	{"살전", "데살로니가전서", 52},
	{"살후", "데살로니가후서", 53},
	{"딤전", "디모데전서", 54},
	{"딤후", "디모데후서", 55},
	{"딛", "디도서", 56},
	{"몬", "빌레몬서", 57},
	{"히", "히브리서", 58},
	{"약", "야고보서", 59},
	{"벧전", "베드로전서", 60},
	{"벧후", "베드로후서", 61},
	{"요일", "요한일서", 62},
	{"요이", "요한이서", 63},
	{"요삼", "요한삼서", 64},
	{"유", "유다서", 65},
	{"계", "요한계시록", 66},
}

// Taxonomy is the immutable lookup view over the canon.
type Taxonomy struct {
	shortToFull map[string]string
	fullToShort map[string]string
	order       []string
	categories  map[string][]string
	names       []string
}

// Default is built once from the static tables. It is never mutated.
var Default = New()

// New builds a Taxonomy from the static tables.
func New() *Taxonomy {
	t := &Taxonomy{
		shortToFull: make(map[string]string, len(books)),
		fullToShort: make(map[string]string, len(books)),
		order:       make([]string, 0, len(books)),
	}
	for _, b := range books {
		t.shortToFull[b.Short] = b.Full
		t.fullToShort[b.Full] = b.Short
		t.order = append(t.order, b.Full)
	}

	t.names = []string{All, CategoryOld, CategoryNew, CategoryPentateuch, CategoryGospels}
	t.categories = map[string][]string{
		All:                t.order,
		CategoryOld:        t.order[:oldTestamentCount],
		CategoryNew:        t.order[oldTestamentCount:],
		CategoryPentateuch: {"창세기", "출애굽기", "레위기", "민수기", "신명기"},
		CategoryGospels:    {"마태복음", "마가복음", "누가복음", "요한복음"},
	}
	return t
}

// Books returns a copy of the canon.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// FullName maps an abbreviation to its full name. Unknown input is returned
// unchanged so that a full name, or a book the tables do not know, passes
// straight through to the corpus lookup.
func (t *Taxonomy) FullName(short string) string {
	if full, ok := t.shortToFull[short]; ok {
		return full
	}
	return short
}

// ShortName maps a full name to its abbreviation, returning the input when unknown.
func (t *Taxonomy) ShortName(full string) string {
	if short, ok := t.fullToShort[full]; ok {
		return short
	}
	return full
}

// IsBook reports whether name is a full canonical book name.
func (t *Taxonomy) IsBook(name string) bool {
	_, ok := t.fullToShort[name]
	return ok
}

// Order returns the canonical list of full names.
func (t *Taxonomy) Order() []string {
	return clone(t.order)
}

// Categories returns the category names in display order.
func (t *Taxonomy) Categories() []string {
	return clone(t.names)
}

// Category returns the ordered books of a category and whether it exists.
func (t *Taxonomy) Category(name string) ([]string, bool) {
	list, ok := t.categories[name]
	if !ok {
		return nil, false
	}
	return clone(list), true
}

// CategoryOrAll returns the books of a category, or the whole canon when the
// category is not recognised.
func (t *Taxonomy) CategoryOrAll(name string) []string {
	if list, ok := t.Category(name); ok {
		return list
	}
	return t.Order()
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
