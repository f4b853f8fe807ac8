// Package corpus holds the in-memory verse store and the loader that builds it
// from one text file per book.
//
// A Corpus is built once by Load and is read-only afterwards; any number of
// goroutines may query it without synchronization.
package corpus

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"github.com/zeebo/blake3"
)

// VerseKey addresses one verse within a book.
type VerseKey struct {
	Chapter int
	Verse   int
}

// String renders the key as "chapter:verse".
func (k VerseKey) String() string {
	return strconv.Itoa(k.Chapter) + ":" + strconv.Itoa(k.Verse)
}

// Verse is a single verse with its location.
type Verse struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// Key returns the verse's chapter:verse key.
func (v Verse) Key() VerseKey {
	return VerseKey{Chapter: v.Chapter, Verse: v.Verse}
}

// Line renders the verse for a reference listing: "chapter:verse text".
func (v Verse) Line() string {
	return fmt.Sprintf("%d:%d %s", v.Chapter, v.Verse, v.Text)
}

// Format renders the verse for search results: "book chapter:verse  text".
func (v Verse) Format() string {
	return fmt.Sprintf("%s %d:%d  %s", v.Book, v.Chapter, v.Verse, v.Text)
}

// Source describes the file a book was loaded from.
type Source struct {
	Name    string // file or archive entry name
	Charset string // charset the bytes were decoded with
	Digest  string // BLAKE3-256 of the raw bytes, hex
}

// Book is the ordered verse mapping of one book.
type Book struct {
	name     string
	text     map[VerseKey]string
	order    []VerseKey
	chapters map[int][]int
	source   Source
}

// NewBook returns an empty book.
func NewBook(name string) *Book {
	return &Book{
		name:     name,
		text:     make(map[VerseKey]string),
		chapters: make(map[int][]int),
	}
}

// Name returns the book key.
func (b *Book) Name() string { return b.name }

// Source returns where the book was loaded from.
func (b *Book) Source() Source { return b.source }

// Len returns the number of distinct verses.
func (b *Book) Len() int { return len(b.order) }

// Put stores a verse. Storing an existing key replaces its text but keeps the
// key at its first position in loader order.
func (b *Book) Put(chapter, verse int, text string) {
	key := VerseKey{Chapter: chapter, Verse: verse}
	if _, exists := b.text[key]; !exists {
		b.order = append(b.order, key)
		b.chapters[chapter] = append(b.chapters[chapter], verse)
	}
	b.text[key] = text
}

// Get returns the text stored for chapter:verse.
func (b *Book) Get(chapter, verse int) (string, bool) {
	text, ok := b.text[VerseKey{Chapter: chapter, Verse: verse}]
	return text, ok
}

// Chapter returns every verse of a chapter in ascending verse order.
// Verses absent from the source are simply absent here.
func (b *Book) Chapter(chapter int) []Verse {
	nums := b.chapters[chapter]
	if len(nums) == 0 {
		return nil
	}
	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)

	out := make([]Verse, 0, len(sorted))
	for _, v := range sorted {
		out = append(out, b.verse(VerseKey{Chapter: chapter, Verse: v}))
	}
	return out
}

// Chapters returns the chapter numbers present, ascending.
func (b *Book) Chapters() []int {
	out := make([]int, 0, len(b.chapters))
	for ch := range b.chapters {
		out = append(out, ch)
	}
	sort.Ints(out)
	return out
}

// Each calls fn for every verse in loader order until fn returns false.
func (b *Book) Each(fn func(Verse) bool) {
	for _, key := range b.order {
		if !fn(b.verse(key)) {
			return
		}
	}
}

func (b *Book) verse(key VerseKey) Verse {
	return Verse{Book: b.name, Chapter: key.Chapter, Verse: key.Verse, Text: b.text[key]}
}

// Corpus maps book keys to books.
type Corpus struct {
	books map[string]*Book
}

// New returns an empty corpus.
func New() *Corpus {
	return &Corpus{books: make(map[string]*Book)}
}

// Add stores a book, replacing any previous book with the same key.
func (c *Corpus) Add(b *Book) {
	c.books[b.name] = b
}

// Book returns the book stored under key.
func (c *Corpus) Book(key string) (*Book, bool) {
	b, ok := c.books[key]
	return b, ok
}

// Len returns the number of books.
func (c *Corpus) Len() int { return len(c.books) }

// VerseCount returns the total number of verses across all books.
func (c *Corpus) VerseCount() int {
	n := 0
	for _, b := range c.books {
		n += b.Len()
	}
	return n
}

// Keys returns the book keys in lexical order.
func (c *Corpus) Keys() []string {
	keys := make([]string, 0, len(c.books))
	for k := range c.books {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Digest combines the per-book source digests in key order. Two corpora
// loaded from byte-identical files share a digest.
func (c *Corpus) Digest() string {
	h := blake3.New()
	for _, k := range c.Keys() {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(c.books[k].source.Digest))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
