// Package citation parses human-written scripture citations into ranges that
// can be validated against a corpus, expanded into single verses, and
// rewritten in a canonical form.
//
// A citation is a ';'-separated list of clauses. A clause without ':' lists
// whole chapters ("Alma 5–8, 10"); a clause with one ':' lists verses of a
// single chapter ("Alma 3:16, 18–20"). A clause without a book name reuses
// the book of the clause before it.
package citation

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
)

// RangeCollection is a parsed citation. It is not safe for concurrent use
// while Canonicalize runs; Clone it first if readers share it.
type RangeCollection struct {
	refs []VerseRangeReference
}

// NewRangeCollection builds a collection from clauses in the given order.
func NewRangeCollection(refs ...VerseRangeReference) *RangeCollection {
	return &RangeCollection{refs: slices.Clone(refs)}
}

// Refs returns a copy of the clauses.
func (rc *RangeCollection) Refs() []VerseRangeReference {
	return slices.Clone(rc.refs)
}

// Len returns the number of clauses.
func (rc *RangeCollection) Len() int {
	return len(rc.refs)
}

// Clone returns an independent copy.
func (rc *RangeCollection) Clone() *RangeCollection {
	return &RangeCollection{refs: slices.Clone(rc.refs)}
}

// IsValid reports whether every clause addresses real chapters or verses in c.
func (rc *RangeCollection) IsValid(c *corpus.Corpus) bool {
	for _, r := range rc.refs {
		if !r.IsValid(c) {
			return false
		}
	}
	return true
}

// VerseRefs concatenates the expansion of each clause in clause order.
func (rc *RangeCollection) VerseRefs(c *corpus.Corpus) iter.Seq[corpus.VerseReference] {
	return func(yield func(corpus.VerseReference) bool) {
		for _, r := range rc.refs {
			for ref := range r.VerseRefs(c) {
				if !yield(ref) {
					return
				}
			}
		}
	}
}

// Canonicalize sorts the clauses and merges adjacent or overlapping ranges
// in place. It panics on an empty collection, which Parse never returns.
func (rc *RangeCollection) Canonicalize() {
	if len(rc.refs) == 0 {
		panic("citation: Canonicalize called on an empty RangeCollection")
	}

	slices.SortStableFunc(rc.refs, Compare)

	merged := make([]VerseRangeReference, 1, len(rc.refs))
	merged[0] = rc.refs[0]
	for _, r := range rc.refs[1:] {
		cur := &merged[len(merged)-1]
		if !collapse(cur, r) {
			merged = append(merged, r)
			continue
		}
		// A chapter range that grew may now cover clauses emitted before it.
		for len(merged) > 1 {
			last := merged[len(merged)-1]
			if last.Range.Kind != ChapterRange || !collapse(&merged[len(merged)-2], last) {
				break
			}
			merged = merged[:len(merged)-1]
		}
	}
	rc.refs = merged
}

// collapse folds r into cur when the two cover adjacent or overlapping text
// and reports whether it did.
func collapse(cur *VerseRangeReference, r VerseRangeReference) bool {
	if cur.Work != r.Work || cur.Book != r.Book {
		return false
	}
	cs, ce := cur.Range.ChapterSpan()
	rs, re := r.Range.ChapterSpan()
	if rs < cs || rs > ce+1 {
		return false
	}

	curVerses := cur.Range.Kind == VerseRange
	rVerses := r.Range.Kind == VerseRange
	switch {
	case !curVerses && !rVerses:
		cur.Range = RangeType{Kind: ChapterRange, Start: min(cs, rs), End: max(ce, re)}
		return true

	case curVerses && rVerses:
		if r.Range.Chapter != cur.Range.Chapter {
			return false
		}
		if r.Range.Start < cur.Range.Start || r.Range.Start > cur.Range.End+1 {
			return false
		}
		cur.Range.Start = min(cur.Range.Start, r.Range.Start)
		cur.Range.End = max(cur.Range.End, r.Range.End)
		return true

	default:
		// A whole chapter covers any verse range inside it.
		if rs > ce || cs > re {
			return false
		}
		if !rVerses {
			cur.Range = r.Range
		}
		return true
	}
}

// String renders the collection in citation syntax using short book names and
// the en dash. Output parses back to the same clauses.
func (rc *RangeCollection) String() string {
	var b strings.Builder
	var (
		prevBook    int
		prevWork    corpus.Work
		prevChapter int
		prevVerses  bool
	)

	for i, r := range rc.refs {
		newTitle := i == 0 || r.Book != prevBook || r.Work != prevWork
		if newTitle {
			if i != 0 {
				b.WriteString(citationDelim + " ")
			}
			b.WriteString(shortName(r.Work, r.Book))
			b.WriteByte(' ')
			prevBook, prevWork = r.Book, r.Work
			prevChapter = 0
		}

		switch r.Range.Kind {
		case ChapterRange:
			if !newTitle {
				if prevVerses {
					// ", n" after a verse clause would read as a verse.
					b.WriteString(citationDelim + " ")
				} else {
					b.WriteString(chunkDelim + " ")
				}
			}
			writeSpan(&b, r.Range.Start, r.Range.End)
			prevChapter = 0
			prevVerses = false

		case VerseRange:
			if !newTitle && prevVerses && r.Range.Chapter == prevChapter {
				b.WriteString(chunkDelim + " ")
			} else {
				if !newTitle {
					b.WriteString(citationDelim + " ")
				}
				b.WriteString(strconv.Itoa(r.Range.Chapter))
				b.WriteString(chapterVerseDelim)
				prevChapter = r.Range.Chapter
			}
			writeSpan(&b, r.Range.Start, r.Range.End)
			prevVerses = true
		}
	}
	return b.String()
}

func writeSpan(b *strings.Builder, start, end int) {
	b.WriteString(strconv.Itoa(start))
	if start != end {
		b.WriteRune(CanonicalDash)
		b.WriteString(strconv.Itoa(end))
	}
}

func shortName(work corpus.Work, index int) string {
	if info, ok := BookAt(work, index); ok {
		return info.ShortName
	}
	return fmt.Sprintf("%s#%d", work.URLName(), index)
}

// MarshalText renders the collection with String.
func (rc *RangeCollection) MarshalText() ([]byte, error) {
	return []byte(rc.String()), nil
}

// UnmarshalText parses text with Parse.
func (rc *RangeCollection) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	rc.refs = parsed.refs
	return nil
}

const studyURL = "https://www.churchofjesuschrist.org/study/scriptures/%s/%s/%d?lang=eng&id=p%d-p%d#p%d"

// URL links the first clause to its page in the online study edition. Only a
// verse-range first clause has a URL.
func (rc *RangeCollection) URL() (string, bool) {
	if len(rc.refs) == 0 {
		return "", false
	}
	r := rc.refs[0]
	if r.Range.Kind != VerseRange {
		return "", false
	}
	info, ok := BookAt(r.Work, r.Book)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(studyURL, r.Work.URLName(), info.URLName, r.Range.Chapter, r.Range.Start, r.Range.End, r.Range.Start), true
}

// VerseURL links a single verse to the online study edition.
func VerseURL(ref corpus.VerseReference) (string, bool) {
	return FromVerseRef(ref).URL()
}
