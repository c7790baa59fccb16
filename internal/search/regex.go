// Package search finds verses by free text, either by scanning the corpus
// with a regular expression or through a SQLite full-text index.
package search

import (
	"fmt"
	"regexp"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/errors"
)

// Regex scans every verse of c for a case-insensitive match of pattern. It
// returns at most limit matches in document order (all of them if limit <= 0)
// and the total number of matching verses.
func Regex(c *corpus.Corpus, pattern string, limit int) ([]corpus.VerseWithReference, int, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, 0, errors.NewValidation("pattern", fmt.Sprintf("%q is not a valid regular expression: %v", pattern, err))
	}

	var matches []corpus.VerseWithReference
	total := 0
	for v := range c.All() {
		if !re.MatchString(v.Text) {
			continue
		}
		total++
		if limit <= 0 || len(matches) < limit {
			matches = append(matches, v)
		}
	}
	return matches, total, nil
}
