// Package corpus holds the parsed book, chapter and verse tree of a scripture
// volume, together with the addressing types used to look verses up in it.
//
// A Corpus is built once by a parser and never mutated afterwards, so a single
// value may be shared by any number of concurrent readers.
package corpus

import (
	"fmt"
	"html"
	"strings"
)

// Corpus is an ordered sequence of books plus the front matter that precedes them.
type Corpus struct {
	FrontMatter FrontMatter `json:"front_matter"`
	Work        Work        `json:"work"`
	Books       []Book      `json:"books"`
}

// FrontMatter carries the strings printed ahead of the first book. None of it
// is addressable by a reference.
type FrontMatter struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Translator  string      `json:"translator,omitempty"`
	LastUpdated string      `json:"last_updated,omitempty"`
	Language    string      `json:"language,omitempty"`
	TitlePage   string      `json:"title_page,omitempty"`
	Testimonies []Testimony `json:"testimonies,omitempty"`
}

// Testimony is a signed witness statement from the front matter.
type Testimony struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Witnesses []string `json:"witnesses"`
}

// Book is one book of the corpus. ShortTitle is the running head seen on the
// book's verse lines and is empty until the first verse has been read.
type Book struct {
	Title       string    `json:"title"`
	ShortTitle  string    `json:"short_title,omitempty"`
	Description string    `json:"description,omitempty"`
	Chapters    []Chapter `json:"chapters"`
}

// DisplayTitle returns the short title when known, else the long title.
func (b *Book) DisplayTitle() string {
	if b.ShortTitle != "" {
		return b.ShortTitle
	}
	return b.Title
}

// Chapter is an ordered run of verses numbered 1..N.
type Chapter struct {
	Verses []Verse `json:"verses"`
}

// Verse holds only its text; the verse number is its position in the chapter.
type Verse struct {
	Text string `json:"text"`
}

// VerseCount returns the number of verses in the whole corpus.
func (c *Corpus) VerseCount() int {
	n := 0
	for i := range c.Books {
		for j := range c.Books[i].Chapters {
			n += len(c.Books[i].Chapters[j].Verses)
		}
	}
	return n
}

// Nth returns the verse at 0-based position n in document order.
func (c *Corpus) Nth(n int) (VerseWithReference, bool) {
	if c == nil || n < 0 {
		return VerseWithReference{}, false
	}
	for b := range c.Books {
		for ch := range c.Books[b].Chapters {
			count := len(c.Books[b].Chapters[ch].Verses)
			if n < count {
				return c.VerseAt(NewVerseReference(c.Work, b, ch+1, n+1))
			}
			n -= count
		}
	}
	return VerseWithReference{}, false
}

// VerseAt resolves a single reference. It reports false for any reference that
// does not index a real verse, including one whose chapter or verse is zero.
func (c *Corpus) VerseAt(ref VerseReference) (VerseWithReference, bool) {
	v, ok := c.lookup(ref)
	if !ok {
		return VerseWithReference{}, false
	}
	return VerseWithReference{
		BookTitle: c.Books[ref.Book].DisplayTitle(),
		Reference: ref,
		Text:      v.Text,
	}, true
}

func (c *Corpus) lookup(ref VerseReference) (*Verse, bool) {
	if ref.Book < 0 || ref.Chapter < 1 || ref.Verse < 1 {
		return nil, false
	}
	if c == nil || ref.Book >= len(c.Books) {
		return nil, false
	}
	book := &c.Books[ref.Book]
	if ref.Chapter > len(book.Chapters) {
		return nil, false
	}
	chapter := &book.Chapters[ref.Chapter-1]
	if ref.Verse > len(chapter.Verses) {
		return nil, false
	}
	return &chapter.Verses[ref.Verse-1], true
}

// VerseWithReference is a resolved verse. Text is an owned copy, so the value
// stays usable independently of the Corpus it came from.
type VerseWithReference struct {
	BookTitle string         `json:"book_title"`
	Reference VerseReference `json:"reference"`
	Text      string         `json:"text"`
}

// Citation renders the verse address, e.g. "1 Nephi 2:15".
func (v VerseWithReference) Citation() string {
	return fmt.Sprintf("%s %d:%d", v.BookTitle, v.Reference.Chapter, v.Reference.Verse)
}

func (v VerseWithReference) String() string {
	return v.Citation() + "\n" + v.Text
}

// HTML renders the verse as an escaped HTML fragment.
func (v VerseWithReference) HTML() string {
	var b strings.Builder
	b.WriteString("<p><strong>")
	b.WriteString(html.EscapeString(v.Citation()))
	b.WriteString("</strong></p>\n<p>")
	b.WriteString(html.EscapeString(v.Text))
	b.WriteString("</p>\n")
	return b.String()
}
