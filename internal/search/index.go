package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS verses (
	id      INTEGER PRIMARY KEY,
	work    TEXT    NOT NULL,
	book    INTEGER NOT NULL,
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT    NOT NULL
)`

const ftsSchema = `CREATE VIRTUAL TABLE IF NOT EXISTS verses_fts USING fts5(text)`

// Index is a full-text index of one corpus. It uses FTS5 when the SQLite
// build provides it and LIKE matching otherwise.
type Index struct {
	db  *sql.DB
	fts bool
}

// Open opens dsn with the build's SQLite driver and prepares an index in it.
func Open(ctx context.Context, dsn string) (*Index, error) {
	db, err := sqlite.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open search database: %w", err)
	}
	ix, err := NewIndex(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ix, nil
}

// NewIndex creates the index tables in db. The index owns db from here on.
func NewIndex(ctx context.Context, db *sql.DB) (*Index, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create verses table: %w", err)
	}

	ix := &Index{db: db, fts: true}
	if _, err := db.ExecContext(ctx, ftsSchema); err != nil {
		if !strings.Contains(err.Error(), "no such module") {
			return nil, fmt.Errorf("create fts table: %w", err)
		}
		ix.fts = false
	}
	return ix, nil
}

// FTS reports whether the index uses FTS5.
func (ix *Index) FTS() bool {
	return ix.fts
}

// Build replaces the index content with every verse of c, in one transaction.
func (ix *Index) Build(ctx context.Context, c *corpus.Corpus) (err error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM verses`); err != nil {
		return fmt.Errorf("clear verses: %w", err)
	}
	if ix.fts {
		if _, err = tx.ExecContext(ctx, `DELETE FROM verses_fts`); err != nil {
			return fmt.Errorf("clear fts: %w", err)
		}
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO verses (id, work, book, chapter, verse, text) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	var insertFTS *sql.Stmt
	if ix.fts {
		if insertFTS, err = tx.PrepareContext(ctx, `INSERT INTO verses_fts (rowid, text) VALUES (?, ?)`); err != nil {
			return fmt.Errorf("prepare fts insert: %w", err)
		}
		defer insertFTS.Close()
	}

	id := 0
	for v := range c.All() {
		id++
		r := v.Reference
		if _, err = insert.ExecContext(ctx, id, r.Work.URLName(), r.Book, r.Chapter, r.Verse, v.Text); err != nil {
			return fmt.Errorf("insert %s: %w", r, err)
		}
		if insertFTS != nil {
			if _, err = insertFTS.ExecContext(ctx, id, v.Text); err != nil {
				return fmt.Errorf("index %s: %w", r, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Search returns verses containing every word of query, in document order,
// at most limit of them (all if limit <= 0), and the total number of matches.
// Punctuation in query is ignored; a query without words matches nothing.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]corpus.VerseReference, int, error) {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil, 0, nil
	}

	from, where, args := ix.filter(terms)

	var total int
	if err := ix.db.QueryRowContext(ctx, "SELECT count(*) FROM "+from+" WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	q := "SELECT v.work, v.book, v.chapter, v.verse FROM " + from + " WHERE " + where + " ORDER BY v.id"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := ix.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var refs []corpus.VerseReference
	for rows.Next() {
		var (
			work string
			ref  corpus.VerseReference
		)
		if err := rows.Scan(&work, &ref.Book, &ref.Chapter, &ref.Verse); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		if ref.Work, err = corpus.ParseWork(work); err != nil {
			return nil, 0, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}
	return refs, total, nil
}

func (ix *Index) filter(terms []string) (from, where string, args []any) {
	if ix.fts {
		quoted := make([]string, len(terms))
		for i, t := range terms {
			quoted[i] = `"` + t + `"`
		}
		return "verses_fts JOIN verses v ON v.id = verses_fts.rowid", "verses_fts MATCH ?", []any{strings.Join(quoted, " ")}
	}

	conds := make([]string, len(terms))
	args = make([]any, len(terms))
	for i, t := range terms {
		conds[i] = "v.text LIKE ?"
		args[i] = "%" + t + "%"
	}
	return "verses v", strings.Join(conds, " AND "), args
}

// Terms splits query into lower-cased words of letters and digits.
func Terms(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
