// Package corpustest renders synthetic corpora in the Gutenberg source format
// for use in tests.
package corpustest

import (
	"fmt"
	"strings"
)

// Book describes one book to render. Verses holds the verse count of each
// chapter. Books with a single chapter are rendered without a chapter heading.
type Book struct {
	Title       string
	ShortTitle  string
	Description string
	Verses      []int
}

// Key addresses a verse by 0-based book and 1-based chapter and verse.
type Key struct {
	Book, Chapter, Verse int
}

// wrapWidth matches the line length of the Gutenberg edition.
const wrapWidth = 70

// DefaultText is the text rendered for any verse without an override.
func DefaultText(shortTitle string, chapter, verse int) string {
	return fmt.Sprintf("Synthetic text of %s chapter %d verse %d.", shortTitle, chapter, verse)
}

// Render produces Gutenberg-format source text for books. Verses listed in
// texts use that text; all others use DefaultText. Long verse text is wrapped
// onto several physical lines.
func Render(books []Book, texts map[Key]string) string {
	var b strings.Builder
	for bi, book := range books {
		b.WriteString(book.Title)
		b.WriteString("\n\n")
		if book.Description != "" {
			b.WriteString(book.Description)
			b.WriteString("\n\n")
		}
		for ci, count := range book.Verses {
			chapter := ci + 1
			if len(book.Verses) > 1 {
				fmt.Fprintf(&b, "%s %d\nChapter %d\n\n", book.ShortTitle, chapter, chapter)
			}
			for verse := 1; verse <= count; verse++ {
				text, ok := texts[Key{Book: bi, Chapter: chapter, Verse: verse}]
				if !ok {
					text = DefaultText(book.ShortTitle, chapter, verse)
				}
				fmt.Fprintf(&b, "%s %d:%d\n  %d %s\n\n", book.ShortTitle, chapter, verse, verse, wrap(text))
			}
		}
	}
	return b.String()
}

func wrap(text string) string {
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > wrapWidth {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

// chapterCounts is the number of chapters in each book of the Book of Mormon.
var chapterCounts = []struct {
	title, short string
	chapters     int
}{
	{"THE FIRST BOOK OF NEPHI", "1 Nephi", 22},
	{"THE SECOND BOOK OF NEPHI", "2 Nephi", 33},
	{"THE BOOK OF JACOB", "Jacob", 7},
	{"THE BOOK OF ENOS", "Enos", 1},
	{"THE BOOK OF JAROM", "Jarom", 1},
	{"THE BOOK OF OMNI", "Omni", 1},
	{"THE WORDS OF MORMON", "Words of Mormon", 1},
	{"THE BOOK OF MOSIAH", "Mosiah", 29},
	{"THE BOOK OF ALMA", "Alma", 63},
	{"THE BOOK OF HELAMAN", "Helaman", 16},
	{"THIRD NEPHI", "3 Nephi", 30},
	{"FOURTH NEPHI", "4 Nephi", 1},
	{"THE BOOK OF MORMON", "Mormon", 9},
	{"THE BOOK OF ETHER", "Ether", 15},
	{"THE BOOK OF MORONI", "Moroni", 10},
}

// firstNephiVerses holds the verse counts of 1 Nephi.
var firstNephiVerses = []int{20, 24, 31, 38, 22, 6, 22, 38, 6, 22, 36, 23, 42, 30, 36, 39, 55, 25, 24, 22, 26, 31}

// defaultVerses is the verse count used for chapters without a known count.
const defaultVerses = 20

// BookOfMormon returns the book skeleton of the Book of Mormon. Chapter counts
// are real; verse counts are real for 1 Nephi and for Alma 63 and
// defaultVerses elsewhere.
func BookOfMormon() []Book {
	books := make([]Book, 0, len(chapterCounts))
	for _, cc := range chapterCounts {
		book := Book{Title: cc.title, ShortTitle: cc.short}
		switch cc.short {
		case "1 Nephi":
			book.Description = "His reign and ministry."
			book.Verses = append([]int(nil), firstNephiVerses...)
		default:
			book.Verses = make([]int, cc.chapters)
			for i := range book.Verses {
				book.Verses[i] = defaultVerses
			}
			if cc.short == "Alma" {
				book.Verses[62] = 17
			}
		}
		books = append(books, book)
	}
	return books
}

// KnownTexts holds real verse texts used by lookups in tests.
var KnownTexts = map[Key]string{
	{0, 2, 15}: "And my father dwelt in a tent.",
	{0, 3, 1}:  "And it came to pass that I, Nephi, returned from speaking with the Lord, to the tent of my father.",
	{0, 3, 3}:  "For behold, Laban hath the record of the Jews and also a genealogy of my forefathers, and they are engraven upon plates of brass.",
	{0, 3, 4}:  "Wherefore, the Lord hath commanded me that thou and thy brothers should go unto the house of Laban, and seek the records, and bring them down hither into the wilderness.",
	{0, 3, 5}:  "And now, behold thy brothers murmur, saying it is a hard thing which I have required of them; but behold I have not required it of them, but it is a commandment of the Lord.",
}

// BookOfMormonText renders BookOfMormon with KnownTexts.
func BookOfMormonText() string {
	return Render(BookOfMormon(), KnownTexts)
}
