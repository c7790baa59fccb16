package corpus

import (
	"fmt"
	"iter"
)

// Work identifies a scripture volume. It discriminates book indices between
// volumes; a Corpus holds exactly one Work.
type Work int

const (
	OldTestament Work = iota
	NewTestament
	BookOfMormon
)

// Works lists every known volume in canonical order.
var Works = []Work{OldTestament, NewTestament, BookOfMormon}

func (w Work) String() string {
	switch w {
	case OldTestament:
		return "Old Testament"
	case NewTestament:
		return "New Testament"
	case BookOfMormon:
		return "Book of Mormon"
	default:
		return fmt.Sprintf("Work(%d)", int(w))
	}
}

// URLName returns the path segment used for the volume in study URLs.
func (w Work) URLName() string {
	switch w {
	case OldTestament:
		return "ot"
	case NewTestament:
		return "nt"
	case BookOfMormon:
		return "bofm"
	default:
		return ""
	}
}

// ParseWork is the inverse of URLName.
func ParseWork(s string) (Work, error) {
	for _, w := range Works {
		if w.URLName() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown work %q", s)
}

func (w Work) MarshalText() ([]byte, error) {
	name := w.URLName()
	if name == "" {
		return nil, fmt.Errorf("unknown work %d", int(w))
	}
	return []byte(name), nil
}

func (w *Work) UnmarshalText(text []byte) error {
	parsed, err := ParseWork(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// VerseReference addresses a single verse. Book is 0-based; Chapter and Verse
// are 1-based, and 0 in either means "absent" and is never valid.
type VerseReference struct {
	Work    Work `json:"work"`
	Book    int  `json:"book_index"`
	Chapter int  `json:"chapter_index"`
	Verse   int  `json:"verse_index"`
}

// NewVerseReference builds a reference from its parts.
func NewVerseReference(work Work, book, chapter, verse int) VerseReference {
	return VerseReference{Work: work, Book: book, Chapter: chapter, Verse: verse}
}

// IsValid reports whether the reference indexes a real verse in c. Work is not
// consulted.
func (r VerseReference) IsValid(c *Corpus) bool {
	_, ok := c.lookup(r)
	return ok
}

func (r VerseReference) String() string {
	return fmt.Sprintf("%s/%d/%d/%d", r.Work.URLName(), r.Book, r.Chapter, r.Verse)
}

// VerseIter walks a corpus in document order. It is single use; call
// Corpus.Verses again to start over.
type VerseIter struct {
	corpus  *Corpus
	book    int
	chapter int
	verse   int
}

// Verses returns an iterator positioned before the first verse.
func (c *Corpus) Verses() *VerseIter {
	return &VerseIter{corpus: c, book: 0, chapter: 1, verse: 1}
}

// Next returns the verse under the cursor and advances. It reports false once
// the cursor no longer resolves.
func (it *VerseIter) Next() (VerseWithReference, bool) {
	ref := VerseReference{Book: it.book, Chapter: it.chapter, Verse: it.verse}
	if it.corpus != nil {
		ref.Work = it.corpus.Work
	}
	v, ok := it.corpus.VerseAt(ref)
	if !ok {
		return VerseWithReference{}, false
	}

	book := &it.corpus.Books[it.book]
	it.verse++
	if it.verse > len(book.Chapters[it.chapter-1].Verses) {
		it.verse = 1
		it.chapter++
		if it.chapter > len(book.Chapters) {
			it.chapter = 1
			it.book++
		}
	}
	return v, true
}

// All yields every verse of the corpus in document order.
func (c *Corpus) All() iter.Seq[VerseWithReference] {
	return func(yield func(VerseWithReference) bool) {
		it := c.Verses()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// RefSource produces the references a citation covers against a corpus.
type RefSource interface {
	VerseRefs(c *Corpus) iter.Seq[VerseReference]
}

// VersesMatching resolves every reference from src, silently skipping the ones
// that do not resolve.
func (c *Corpus) VersesMatching(src RefSource) iter.Seq[VerseWithReference] {
	return func(yield func(VerseWithReference) bool) {
		for ref := range src.VerseRefs(c) {
			v, ok := c.VerseAt(ref)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
