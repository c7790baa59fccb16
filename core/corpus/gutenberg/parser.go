package gutenberg

import (
	"io"
	"os"
	"strings"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/errors"
)

// Parse rebuilds a corpus from the full source text.
func Parse(text string) (*corpus.Corpus, error) {
	p := newParser()
	for _, block := range Blocks(text) {
		if err := p.feed(block); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

// ParseReader reads the whole of r and parses it. Read failures are reported
// as *errors.SourceError.
func ParseReader(r io.Reader) (*corpus.Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewSource("", err)
	}
	return Parse(string(data))
}

// ParseFile parses the source text stored at path.
func ParseFile(path string) (*corpus.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSource(path, err)
	}
	return Parse(string(data))
}

type parser struct {
	c    *corpus.Corpus
	prev ChunkKind
}

func newParser() *parser {
	return &parser{
		c: &corpus.Corpus{
			FrontMatter: FrontMatter(),
			Work:        corpus.BookOfMormon,
		},
		// The first block must be a title, and titles follow verses.
		prev: VerseLine,
	}
}

func (p *parser) lastBook() *corpus.Book {
	if len(p.c.Books) == 0 {
		return nil
	}
	return &p.c.Books[len(p.c.Books)-1]
}

func (p *parser) feed(block string) error {
	chunk := Classify(block)

	switch chunk.Kind {
	case BookTitle:
		if p.prev != VerseLine {
			return errors.NewCorpus(errors.MisplacedTitle, block)
		}
		p.c.Books = append(p.c.Books, corpus.Book{Title: block})

	case BookDescription:
		if p.prev != BookTitle {
			return errors.NewCorpus(errors.MisplacedDescription, block)
		}
		p.lastBook().Description = block

	case ChapterStart:
		book := p.lastBook()
		if book == nil || (p.prev != BookTitle && p.prev != BookDescription && p.prev != VerseLine) {
			return errors.NewCorpus(errors.MisplacedChapter, block)
		}
		book.Chapters = append(book.Chapters, corpus.Chapter{})

	case VerseLine:
		book := p.lastBook()
		if book == nil {
			return errors.NewCorpus(errors.MisplacedVerse, block)
		}
		switch p.prev {
		case BookTitle, BookDescription:
			// Single-chapter books have no chapter heading.
			book.Chapters = append(book.Chapters, corpus.Chapter{})
		case ChapterStart, VerseLine:
		default:
			return errors.NewCorpus(errors.MisplacedVerse, block)
		}
		if len(book.Chapters) == 0 {
			return errors.NewCorpus(errors.MisplacedVerse, block)
		}
		book.ShortTitle = chunk.ShortTitle

		chapter := &book.Chapters[len(book.Chapters)-1]
		expected := len(chapter.Verses) + 1
		if chunk.Number != expected {
			return errors.NewVerseMismatch(expected, chunk.Number, block)
		}
		chapter.Verses = append(chapter.Verses, corpus.Verse{
			Text: strings.ReplaceAll(chunk.Text, "\n", " "),
		})

	default:
		return errors.NewCorpus(errors.UnrecognizedBlock, block)
	}

	p.prev = chunk.Kind
	return nil
}

func (p *parser) finish() (*corpus.Corpus, error) {
	if len(p.c.Books) == 0 {
		return nil, errors.NewCorpus(errors.NoBooks, "")
	}
	// Every earlier book was closed by a verse before the next title.
	if p.prev != VerseLine {
		return nil, errors.NewCorpus(errors.EmptyBook, p.lastBook().Title)
	}
	return p.c, nil
}
