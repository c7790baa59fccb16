// Package gutenberg rebuilds a corpus from the Project Gutenberg plain-text
// edition.
//
// The source is a sequence of blocks separated by blank lines. Each block is
// classified on its own, then the parser checks that the blocks arrive in a
// legal order and that verse numbers run 1..N within every chapter.
package gutenberg

import (
	"regexp"
	"strconv"
	"strings"
)

// ChunkKind is the classification of one source block.
type ChunkKind int

const (
	// BookTitle is a single all-caps line.
	BookTitle ChunkKind = iota
	// BookDescription is any block that is not another kind.
	BookDescription
	// ChapterStart is a running head followed by "Chapter N".
	ChapterStart
	// VerseLine is a running head "Name C:V" followed by the numbered verse text.
	VerseLine
	// Unrecognized has the shape of a verse but no usable verse number.
	Unrecognized
)

func (k ChunkKind) String() string {
	switch k {
	case BookTitle:
		return "book title"
	case BookDescription:
		return "book description"
	case ChapterStart:
		return "chapter start"
	case VerseLine:
		return "verse"
	case Unrecognized:
		return "unrecognized"
	default:
		return "ChunkKind(" + strconv.Itoa(int(k)) + ")"
	}
}

var (
	chapterStartPattern = regexp.MustCompile(`^(\d+\s+)?[A-Za-z]+\s+\d+\nChapter\s+(?P<num>\d+)$`)
	versePattern        = regexp.MustCompile(`^(?P<short_title>.+)\s+\d+:\d+\n\s+(?P<num>\d+)\s+(?P<text>[\S\s]+)$`)

	verseTitleIdx = versePattern.SubexpIndex("short_title")
	verseNumIdx   = versePattern.SubexpIndex("num")
	verseTextIdx  = versePattern.SubexpIndex("text")
)

// Chunk is a classified block. ShortTitle, Number and Text are set only for
// VerseLine chunks.
type Chunk struct {
	Kind       ChunkKind
	ShortTitle string
	Number     int
	Text       string
}

// Classify decides what kind of block s is. It is a pure function of s.
func Classify(s string) Chunk {
	if !strings.Contains(s, "\n") && strings.ToUpper(s) == s {
		return Chunk{Kind: BookTitle}
	}
	if chapterStartPattern.MatchString(s) {
		return Chunk{Kind: ChapterStart}
	}
	m := versePattern.FindStringSubmatch(s)
	if m == nil {
		return Chunk{Kind: BookDescription}
	}
	n, err := strconv.Atoi(m[verseNumIdx])
	if err != nil || n < 1 {
		return Chunk{Kind: Unrecognized}
	}
	return Chunk{
		Kind:       VerseLine,
		ShortTitle: m[verseTitleIdx],
		Number:     n,
		Text:       m[verseTextIdx],
	}
}

// Blocks splits source text on blank lines, dropping empty blocks and
// trimming newlines from both ends of each one. CRLF line endings are
// normalized first.
func Blocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n\n")
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		b := strings.Trim(p, "\n")
		if b == "" {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}
