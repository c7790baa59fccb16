package citation

import (
	"github.com/FocuswithJustin/scriptorium/core/corpus"
)

// BookInfo describes one book of a scripture volume. Index is the book's
// 0-based position within its Work.
type BookInfo struct {
	Work      corpus.Work
	Name      string
	ShortName string
	URLName   string
	Index     int
}

var books = []BookInfo{
	// Old Testament
	{corpus.OldTestament, "Genesis", "Gen.", "gen", 0},
	{corpus.OldTestament, "Exodus", "Ex.", "ex", 1},
	{corpus.OldTestament, "Leviticus", "Lev.", "lev", 2},
	{corpus.OldTestament, "Numbers", "Num.", "num", 3},
	{corpus.OldTestament, "Deuteronomy", "Deut.", "deut", 4},
	{corpus.OldTestament, "Joshua", "Josh.", "josh", 5},
	{corpus.OldTestament, "Judges", "Judg.", "judg", 6},
	{corpus.OldTestament, "Ruth", "Ruth", "ruth", 7},
	{corpus.OldTestament, "1 Samuel", "1 Sam.", "1-sam", 8},
	{corpus.OldTestament, "2 Samuel", "2 Sam.", "2-sam", 9},
	{corpus.OldTestament, "1 Kings", "1 Kgs.", "1-kgs", 10},
	{corpus.OldTestament, "2 Kings", "2 Kgs.", "2-kgs", 11},
	{corpus.OldTestament, "1 Chronicles", "1 Chron.", "1-chron", 12},
	{corpus.OldTestament, "2 Chronicles", "2 Chron.", "2-chron", 13},
	{corpus.OldTestament, "Ezra", "Ezra", "ezra", 14},
	{corpus.OldTestament, "Nehemiah", "Neh.", "neh", 15},
	{corpus.OldTestament, "Esther", "Esth.", "esth", 16},
	{corpus.OldTestament, "Job", "Job", "job", 17},
	{corpus.OldTestament, "Psalms", "Ps.", "ps", 18},
	{corpus.OldTestament, "Proverbs", "Prov.", "prov", 19},
	{corpus.OldTestament, "Ecclesiastes", "Eccl.", "eccl", 20},
	{corpus.OldTestament, "Song of Solomon", "Song.", "song", 21},
	{corpus.OldTestament, "Isaiah", "Isa.", "isa", 22},
	{corpus.OldTestament, "Jeremiah", "Jer.", "jer", 23},
	{corpus.OldTestament, "Lamentations", "Lam.", "lam", 24},
	{corpus.OldTestament, "Ezekiel", "Ezek.", "ezek", 25},
	{corpus.OldTestament, "Daniel", "Dan.", "dan", 26},
	{corpus.OldTestament, "Hosea", "Hosea", "hosea", 27},
	{corpus.OldTestament, "Joel", "Joel", "joel", 28},
	{corpus.OldTestament, "Amos", "Amos", "amos", 29},
	{corpus.OldTestament, "Obadiah", "Obad.", "obad", 30},
	{corpus.OldTestament, "Jonah", "Jonah", "jonah", 31},
	{corpus.OldTestament, "Micah", "Micah", "micah", 32},
	{corpus.OldTestament, "Nahum", "Nahum", "nahum", 33},
	{corpus.OldTestament, "Habakkuk", "Hab.", "hab", 34},
	{corpus.OldTestament, "Zephaniah", "Zeph.", "zeph", 35},
	{corpus.OldTestament, "Haggai", "Hag.", "hag", 36},
	{corpus.OldTestament, "Zechariah", "Zech.", "zech", 37},
	{corpus.OldTestament, "Malachi", "Mal.", "mal", 38},

	// New Testament
	{corpus.NewTestament, "Matthew", "Matt.", "matt", 0},
	{corpus.NewTestament, "Mark", "Mark", "mark", 1},
	{corpus.NewTestament, "Luke", "Luke", "luke", 2},
	{corpus.NewTestament, "John", "John", "john", 3},
	{corpus.NewTestament, "Acts", "Acts", "acts", 4},
	{corpus.NewTestament, "Romans", "Rom.", "rom", 5},
	{corpus.NewTestament, "1 Corinthians", "1 Cor.", "1-cor", 6},
	{corpus.NewTestament, "2 Corinthians", "2 Cor.", "2-cor", 7},
	{corpus.NewTestament, "Galatians", "Gal.", "gal", 8},
	{corpus.NewTestament, "Ephesians", "Eph.", "eph", 9},
	{corpus.NewTestament, "Philippians", "Philip.", "philip", 10},
	{corpus.NewTestament, "Colossians", "Col.", "col", 11},
	{corpus.NewTestament, "1 Thessalonians", "1 Thes.", "1-thes", 12},
	{corpus.NewTestament, "2 Thessalonians", "2 Thes.", "2-thes", 13},
	{corpus.NewTestament, "1 Timothy", "1 Tim.", "1-tim", 14},
	{corpus.NewTestament, "2 Timothy", "2 Tim.", "2-tim", 15},
	{corpus.NewTestament, "Titus", "Titus", "titus", 16},
	{corpus.NewTestament, "Philemon", "Philem.", "philem", 17},
	{corpus.NewTestament, "Hebrews", "Heb.", "heb", 18},
	{corpus.NewTestament, "James", "James", "james", 19},
	{corpus.NewTestament, "1 Peter", "1 Pet.", "1-pet", 20},
	{corpus.NewTestament, "2 Peter", "2 Pet.", "2-pet", 21},
	{corpus.NewTestament, "1 John", "1 Jn.", "1-jn", 22},
	{corpus.NewTestament, "2 John", "2 Jn.", "2-jn", 23},
	{corpus.NewTestament, "3 John", "3 Jn.", "3-jn", 24},
	{corpus.NewTestament, "Jude", "Jude", "jude", 25},
	{corpus.NewTestament, "Revelation", "Rev.", "rev", 26},

	// Book of Mormon
	{corpus.BookOfMormon, "1 Nephi", "1 Ne.", "1-ne", 0},
	{corpus.BookOfMormon, "2 Nephi", "2 Ne.", "2-ne", 1},
	{corpus.BookOfMormon, "Jacob", "Jacob", "jacob", 2},
	{corpus.BookOfMormon, "Enos", "Enos", "enos", 3},
	{corpus.BookOfMormon, "Jarom", "Jarom", "jarom", 4},
	{corpus.BookOfMormon, "Omni", "Omni", "omni", 5},
	{corpus.BookOfMormon, "Words of Mormon", "W of M", "w-of-m", 6},
	{corpus.BookOfMormon, "Mosiah", "Mosiah", "mosiah", 7},
	{corpus.BookOfMormon, "Alma", "Alma", "alma", 8},
	{corpus.BookOfMormon, "Helaman", "Hel.", "hel", 9},
	{corpus.BookOfMormon, "3 Nephi", "3 Ne.", "3-ne", 10},
	{corpus.BookOfMormon, "4 Nephi", "4 Ne.", "4-ne", 11},
	{corpus.BookOfMormon, "Mormon", "Morm.", "morm", 12},
	{corpus.BookOfMormon, "Ether", "Ether", "ether", 13},
	{corpus.BookOfMormon, "Moroni", "Moro.", "moro", 14},
}

var (
	booksByName = make(map[string]BookInfo, 2*len(books))
	booksByKey  = make(map[bookKey]BookInfo, len(books))
)

type bookKey struct {
	work  corpus.Work
	index int
}

func init() {
	for _, b := range books {
		booksByName[b.Name] = b
		booksByName[b.ShortName] = b
		booksByKey[bookKey{b.Work, b.Index}] = b
	}
}

// LookupBook finds a book by its exact long or short name. Matching is
// case-sensitive.
func LookupBook(name string) (BookInfo, bool) {
	b, ok := booksByName[name]
	return b, ok
}

// BookAt returns the book at index within work.
func BookAt(work corpus.Work, index int) (BookInfo, bool) {
	b, ok := booksByKey[bookKey{work, index}]
	return b, ok
}

// Books returns the books of work in canonical order.
func Books(work corpus.Work) []BookInfo {
	var out []BookInfo
	for _, b := range books {
		if b.Work == work {
			out = append(out, b)
		}
	}
	return out
}
