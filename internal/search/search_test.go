package search

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/corpus/corpustest"
	"github.com/FocuswithJustin/scriptorium/core/corpus/gutenberg"
	"github.com/FocuswithJustin/scriptorium/core/errors"
	"github.com/FocuswithJustin/scriptorium/core/sqlite"
)

var (
	fixtureOnce sync.Once
	fixture     *corpus.Corpus
	fixtureErr  error
)

func bookOfMormon(t testing.TB) *corpus.Corpus {
	t.Helper()
	fixtureOnce.Do(func() {
		fixture, fixtureErr = gutenberg.Parse(corpustest.BookOfMormonText())
	})
	require.NoError(t, fixtureErr)
	return fixture
}

func ref(chapter, verse int) corpus.VerseReference {
	return corpus.NewVerseReference(corpus.BookOfMormon, 0, chapter, verse)
}

func TestRegex(t *testing.T) {
	c := bookOfMormon(t)

	tests := []struct {
		name    string
		pattern string
		limit   int
		want    []corpus.VerseReference
		total   int
	}{
		{"case insensitive", "TENT", 0, []corpus.VerseReference{ref(2, 15), ref(3, 1)}, 2},
		{"limit keeps total", "tent", 1, []corpus.VerseReference{ref(2, 15)}, 2},
		{"alternation", "brass|hither", 0, []corpus.VerseReference{ref(3, 3), ref(3, 4)}, 2},
		{"no match", "zarahemla", 5, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := Regex(c, tt.pattern, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)

			var refs []corpus.VerseReference
			for _, v := range got {
				refs = append(refs, v.Reference)
			}
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestRegexCountsEveryVerse(t *testing.T) {
	c := bookOfMormon(t)
	got, total, err := Regex(c, ".", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, c.VerseCount(), total)
}

func TestRegexInvalidPattern(t *testing.T) {
	_, _, err := Regex(bookOfMormon(t), "(unclosed", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"laban", "s", "records"}, Terms(`Laban's "records"!`))
	assert.Empty(t, Terms(` -- "" `))
}

func newIndex(t *testing.T, fts bool) *Index {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open("")
	require.NoError(t, err)
	ix, err := NewIndex(ctx, db)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	if !fts {
		ix.fts = false
	} else if !ix.FTS() {
		t.Skip("SQLite build lacks FTS5")
	}
	require.NoError(t, ix.Build(ctx, bookOfMormon(t)))
	return ix
}

func TestIndexSearch(t *testing.T) {
	for _, mode := range []struct {
		name string
		fts  bool
	}{{"fts5", true}, {"like", false}} {
		t.Run(mode.name, func(t *testing.T) {
			ix := newIndex(t, mode.fts)
			ctx := context.Background()

			got, total, err := ix.Search(ctx, "tent", 0)
			require.NoError(t, err)
			assert.Equal(t, 2, total)
			assert.Equal(t, []corpus.VerseReference{ref(2, 15), ref(3, 1)}, got)

			got, total, err = ix.Search(ctx, "LABAN records", 10)
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			assert.Equal(t, []corpus.VerseReference{ref(3, 4)}, got)

			got, total, err = ix.Search(ctx, "synthetic", 4)
			require.NoError(t, err)
			assert.Len(t, got, 4)
			assert.Equal(t, bookOfMormon(t).VerseCount()-len(corpustest.KnownTexts), total)

			got, total, err = ix.Search(ctx, `"; DROP TABLE verses; --`, 0)
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, got)
		})
	}
}

func TestIndexSearchEmptyQuery(t *testing.T) {
	ix := newIndex(t, false)
	got, total, err := ix.Search(context.Background(), "  ?! ", 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Nil(t, got)
}

func TestIndexRebuildReplaces(t *testing.T) {
	ix := newIndex(t, false)
	ctx := context.Background()

	require.NoError(t, ix.Build(ctx, bookOfMormon(t)))
	_, total, err := ix.Search(ctx, "tent", 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	small, err := gutenberg.Parse(corpustest.Render([]corpustest.Book{
		{Title: "THE BOOK OF ENOS", ShortTitle: "Enos", Verses: []int{2}},
	}, map[corpustest.Key]string{
		{Book: 0, Chapter: 1, Verse: 1}: "Behold, it came to pass that I knew my father.",
		{Book: 0, Chapter: 1, Verse: 2}: "And I, Enos, will tell you of the wrestle.",
	}))
	require.NoError(t, err)
	require.NoError(t, ix.Build(ctx, small))

	_, total, err = ix.Search(ctx, "tent", 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	got, total, err := ix.Search(ctx, "enos", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []corpus.VerseReference{corpus.NewVerseReference(corpus.BookOfMormon, 0, 1, 2)}, got)
}

func TestOpen(t *testing.T) {
	ix, err := Open(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, ix.Close())
}
