// Package sqliteexternal links the optional CGO SQLite driver.
//
// To use github.com/mattn/go-sqlite3 instead of the default pure Go driver:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/scriptorium
//
// Add -tags "cgo_sqlite sqlite_fts5" to get FTS5 full-text search. The
// default modernc.org/sqlite build already includes FTS5.
package sqliteexternal
