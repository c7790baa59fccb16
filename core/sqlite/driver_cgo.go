//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3, selected with the cgo_sqlite
// build tag. Full-text search needs the sqlite_fts5 tag as well; without it
// the search index falls back to LIKE queries.
package sqlite

import (
	sqliteexternal "github.com/FocuswithJustin/scriptorium/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = sqliteexternal.DriverType
	driverPackage = sqliteexternal.DriverPackage + " (via contrib/sqlite-external)"
)
