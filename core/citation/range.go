package citation

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/errors"
)

// RangeKind distinguishes whole-chapter ranges from verse ranges.
type RangeKind int

const (
	// ChapterRange covers chapters Start..End in full.
	ChapterRange RangeKind = iota
	// VerseRange covers verses Start..End of Chapter.
	VerseRange
)

func (k RangeKind) String() string {
	switch k {
	case ChapterRange:
		return "chapters"
	case VerseRange:
		return "verses"
	default:
		return fmt.Sprintf("RangeKind(%d)", int(k))
	}
}

// RangeType is an inclusive span of chapters, or of verses within one chapter.
// Chapter is unused for ChapterRange. Start <= End always holds for values
// built by the constructors.
type RangeType struct {
	Kind    RangeKind `json:"kind"`
	Chapter int       `json:"chapter,omitempty"`
	Start   int       `json:"start"`
	End     int       `json:"end"`
}

// NewChapterRange builds a chapter range. Equal bounds are a single chapter.
func NewChapterRange(start, end int) (RangeType, error) {
	if start > end {
		return RangeType{}, errors.NewReference(errors.DegenerateRange, fmt.Sprintf("%d-%d", start, end))
	}
	return RangeType{Kind: ChapterRange, Start: start, End: end}, nil
}

// NewVerseRange builds a verse range within chapter.
func NewVerseRange(chapter, start, end int) (RangeType, error) {
	if start > end {
		return RangeType{}, errors.NewReference(errors.DegenerateRange, fmt.Sprintf("%d:%d-%d", chapter, start, end))
	}
	return RangeType{Kind: VerseRange, Chapter: chapter, Start: start, End: end}, nil
}

// ChapterSpan returns the chapters covered. A verse range covers one chapter.
func (r RangeType) ChapterSpan() (start, end int) {
	if r.Kind == VerseRange {
		return r.Chapter, r.Chapter
	}
	return r.Start, r.End
}

// VerseSpan returns the verses covered, or false for a chapter range.
func (r RangeType) VerseSpan() (start, end int, ok bool) {
	if r.Kind != VerseRange {
		return 0, 0, false
	}
	return r.Start, r.End, true
}

// compareRange orders two ranges of the same book. A chapter range compared
// with a verse range uses the chapter range's bounds against the verse
// range's chapter, so a verse range and the single chapter containing it
// compare equal.
func compareRange(a, b RangeType) int {
	switch {
	case a.Kind == VerseRange && b.Kind == VerseRange:
		return cmp.Or(
			cmp.Compare(a.Chapter, b.Chapter),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.End, b.End),
		)
	case a.Kind == VerseRange:
		return cmp.Or(cmp.Compare(a.Chapter, b.Start), cmp.Compare(a.Chapter, b.End))
	case b.Kind == VerseRange:
		return cmp.Or(cmp.Compare(a.Start, b.Chapter), cmp.Compare(a.End, b.Chapter))
	default:
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	}
}

// VerseRangeReference is one clause of a citation: a range within one book.
type VerseRangeReference struct {
	Work  corpus.Work `json:"work"`
	Book  int         `json:"book_index"`
	Range RangeType   `json:"range"`
}

// Compare orders references by book index, then by range. Work is not part
// of the order.
func Compare(a, b VerseRangeReference) int {
	return cmp.Or(cmp.Compare(a.Book, b.Book), compareRange(a.Range, b.Range))
}

// IsValid reports whether both ends of the range index real chapters, or real
// verses, of the named book in c.
func (r VerseRangeReference) IsValid(c *corpus.Corpus) bool {
	if c == nil || r.Book < 0 || r.Book >= len(c.Books) {
		return false
	}
	book := &c.Books[r.Book]
	switch r.Range.Kind {
	case ChapterRange:
		return validIndex(r.Range.Start, len(book.Chapters)) && validIndex(r.Range.End, len(book.Chapters))
	case VerseRange:
		if !validIndex(r.Range.Chapter, len(book.Chapters)) {
			return false
		}
		n := len(book.Chapters[r.Range.Chapter-1].Verses)
		return validIndex(r.Range.Start, n) && validIndex(r.Range.End, n)
	default:
		return false
	}
}

func validIndex(i, n int) bool {
	return i >= 1 && i <= n
}

// VerseRefs expands the clause into single verse references in order. An
// invalid clause yields nothing.
func (r VerseRangeReference) VerseRefs(c *corpus.Corpus) iter.Seq[corpus.VerseReference] {
	return func(yield func(corpus.VerseReference) bool) {
		if !r.IsValid(c) {
			return
		}
		book := &c.Books[r.Book]
		switch r.Range.Kind {
		case ChapterRange:
			for ch := r.Range.Start; ch <= r.Range.End; ch++ {
				for v := 1; v <= len(book.Chapters[ch-1].Verses); v++ {
					if !yield(corpus.NewVerseReference(r.Work, r.Book, ch, v)) {
						return
					}
				}
			}
		case VerseRange:
			for v := r.Range.Start; v <= r.Range.End; v++ {
				if !yield(corpus.NewVerseReference(r.Work, r.Book, r.Range.Chapter, v)) {
					return
				}
			}
		}
	}
}
