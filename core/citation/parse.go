package citation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/errors"
)

const (
	citationDelim     = ";"
	chunkDelim        = ","
	chapterVerseDelim = ":"

	// CanonicalDash is the only range separator written on output.
	CanonicalDash = '–'
)

// isDash accepts the en dash, the hyphen-minus and the em dash.
func isDash(r rune) bool {
	return r == CanonicalDash || r == '-' || r == '—'
}

// spanGrammar is a bare number or a dashed pair of numbers.
//
//nolint:govet // participle grammar tags are not standard struct tags
type spanGrammar struct {
	Start string  `@Int`
	End   *string `( Dash @Int )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type numberGrammar struct {
	Value string `@Int`
}

var spanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Dash", Pattern: `[-–—]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	spanParser = participle.MustBuild[spanGrammar](
		participle.Lexer(spanLexer),
		participle.Elide("Whitespace"),
	)
	numberParser = participle.MustBuild[numberGrammar](
		participle.Lexer(spanLexer),
		participle.Elide("Whitespace"),
	)
)

// bookNamePattern picks out a candidate name at the start of a clause; the
// candidate must still match the book table exactly.
var bookNamePattern = regexp.MustCompile(`^(?P<name>(\d\s)?[A-Za-z ]+\.?)\s+`)

// Parse reads a citation such as "Alma 3:16–17, 18; Mosiah 1:1". Clauses keep
// their citation order. Parsing is all or nothing; a nil error guarantees at
// least one clause.
func Parse(s string) (*RangeCollection, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.NewReference(errors.EmptyCitation, s)
	}

	var refs []VerseRangeReference
	for _, clause := range strings.Split(s, citationDelim) {
		parsed, err := parseClause(clause, refs)
		if err != nil {
			return nil, err
		}
		refs = append(refs, parsed...)
	}
	if len(refs) == 0 {
		return nil, errors.NewReference(errors.EmptyCitation, s)
	}
	return &RangeCollection{refs: refs}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *RangeCollection {
	rc, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rc
}

func parseClause(clause string, prev []VerseRangeReference) ([]VerseRangeReference, error) {
	parts := strings.Split(clause, chapterVerseDelim)
	if len(parts) > 2 {
		return nil, errors.NewReference(errors.TooManyColons, strings.TrimSpace(clause))
	}

	head := parts[0]
	if len(parts) == 1 {
		head = strings.SplitN(clause, chunkDelim, 2)[0]
	}
	book, rest, err := resolveBook(head, prev)
	if err != nil {
		return nil, err
	}

	var out []VerseRangeReference
	if len(parts) == 1 {
		chunks := strings.Split(clause, chunkDelim)
		chunks[0] = rest
		for _, chunk := range chunks {
			start, end, err := parseSpan(chunk)
			if err != nil {
				return nil, bookOrNumberError(err, head, book)
			}
			rt, err := NewChapterRange(start, end)
			if err != nil {
				return nil, err
			}
			out = append(out, VerseRangeReference{Work: book.Work, Book: book.Index, Range: rt})
		}
		return out, nil
	}

	chapter, err := parseNumber(rest)
	if err != nil {
		return nil, bookOrNumberError(err, head, book)
	}
	for _, chunk := range strings.Split(parts[1], chunkDelim) {
		start, end, err := parseSpan(chunk)
		if err != nil {
			return nil, err
		}
		rt, err := NewVerseRange(chapter, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, VerseRangeReference{Work: book.Work, Book: book.Index, Range: rt})
	}
	return out, nil
}

// resolvedBook is a book and whether it was inherited from the previous clause.
type resolvedBook struct {
	BookInfo
	carried bool
}

// resolveBook finds the book named at the start of head and returns the text
// that follows the name. Without a recognized name the previous clause's book
// is reused and head is returned whole.
func resolveBook(head string, prev []VerseRangeReference) (resolvedBook, string, error) {
	if info, end, ok := extractBookName(head); ok {
		return resolvedBook{BookInfo: info}, head[end:], nil
	}
	if len(prev) == 0 {
		return resolvedBook{}, "", errors.NewReference(errors.UnknownBook, strings.TrimSpace(head))
	}
	last := prev[len(prev)-1]
	info, _ := BookAt(last.Work, last.Book)
	return resolvedBook{BookInfo: info, carried: true}, head, nil
}

// extractBookName returns the book named at the start of s and the byte
// offset in s just past the name.
func extractBookName(s string) (BookInfo, int, bool) {
	m := bookNamePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return BookInfo{}, 0, false
	}
	name := strings.TrimSpace(m[bookNamePattern.SubexpIndex("name")])
	info, ok := LookupBook(name)
	if !ok {
		return BookInfo{}, 0, false
	}
	return info, strings.Index(s, name) + len(name), true
}

// bookOrNumberError reports a carried-over clause that starts with letters as
// an unknown book rather than a bad number.
func bookOrNumberError(err error, head string, book resolvedBook) error {
	if book.carried && strings.IndexFunc(head, unicode.IsLetter) >= 0 {
		return errors.NewReference(errors.UnknownBook, strings.TrimSpace(head))
	}
	return err
}

// parseSpan reads "n" or "a<dash>b". A dashed pair needs a < b.
func parseSpan(s string) (int, int, error) {
	dashes := 0
	for _, r := range s {
		if isDash(r) {
			dashes++
		}
	}
	if dashes > 1 {
		return 0, 0, errors.NewReference(errors.TooManyDashes, strings.TrimSpace(s))
	}

	g, err := spanParser.ParseString("", s)
	if err != nil {
		return 0, 0, errors.NewReference(errors.BadNumber, strings.TrimSpace(s))
	}
	start, err := atoi(g.Start)
	if err != nil {
		return 0, 0, errors.NewReference(errors.BadNumber, strings.TrimSpace(s))
	}
	if g.End == nil {
		return start, start, nil
	}
	end, err := atoi(*g.End)
	if err != nil {
		return 0, 0, errors.NewReference(errors.BadNumber, strings.TrimSpace(s))
	}
	if start >= end {
		return 0, 0, errors.NewReference(errors.DegenerateRange, strings.TrimSpace(s))
	}
	return start, end, nil
}

func parseNumber(s string) (int, error) {
	g, err := numberParser.ParseString("", s)
	if err != nil {
		return 0, errors.NewReference(errors.BadNumber, strings.TrimSpace(s))
	}
	n, err := atoi(g.Value)
	if err != nil {
		return 0, errors.NewReference(errors.BadNumber, strings.TrimSpace(s))
	}
	return n, nil
}

// atoi parses decimal digits. Values are capped at 31 bits so that range
// arithmetic cannot overflow.
func atoi(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// FromVerseRef builds a one-clause collection covering exactly ref.
func FromVerseRef(ref corpus.VerseReference) *RangeCollection {
	return &RangeCollection{refs: []VerseRangeReference{{
		Work:  ref.Work,
		Book:  ref.Book,
		Range: RangeType{Kind: VerseRange, Chapter: ref.Chapter, Start: ref.Verse, End: ref.Verse},
	}}}
}
