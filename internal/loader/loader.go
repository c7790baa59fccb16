// Package loader turns a source file into a Corpus, using the snapshot store
// to skip parsing when the source has not changed.
package loader

import (
	"fmt"
	"os"
	"time"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/corpus/gutenberg"
	"github.com/FocuswithJustin/scriptorium/core/errors"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/snapshot"
)

// Options controls a load.
type Options struct {
	// Path is the Gutenberg source file.
	Path string

	// Snapshots, when non-nil, is consulted before parsing and updated after.
	Snapshots *snapshot.Store
}

// Result is a loaded corpus and how it was obtained.
type Result struct {
	Corpus       *corpus.Corpus
	SourceHash   string
	FromSnapshot bool
	Duration     time.Duration
}

// Load reads opts.Path and returns its corpus. An unreadable source is a
// SourceError and a malformed one a CorpusError. Snapshot problems never fail
// a load; they are logged and the source is parsed instead.
func Load(opts Options) (*Result, error) {
	start := time.Now()

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, errors.NewSource(opts.Path, err)
	}
	hash := snapshot.HashSource(data)

	if opts.Snapshots != nil {
		path := opts.Snapshots.Path(hash)
		c, err := opts.Snapshots.Load(hash)
		if err == nil {
			res := &Result{Corpus: c, SourceHash: hash, FromSnapshot: true, Duration: time.Since(start)}
			logging.SnapshotEvent("hit", path)
			logLoaded(opts.Path, res)
			return res, nil
		}
		if errors.Is(err, errors.ErrNotFound) {
			logging.SnapshotEvent("miss", path)
		} else {
			logging.SnapshotEvent("unusable", path, "error", err.Error())
		}
	}

	c, err := gutenberg.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", opts.Path, err)
	}

	if opts.Snapshots != nil {
		path := opts.Snapshots.Path(hash)
		if err := opts.Snapshots.Save(hash, c); err != nil {
			logging.SnapshotEvent("save_failed", path, "error", err.Error())
		} else {
			logging.SnapshotEvent("saved", path)
		}
	}

	res := &Result{Corpus: c, SourceHash: hash, Duration: time.Since(start)}
	logLoaded(opts.Path, res)
	return res, nil
}

func logLoaded(path string, res *Result) {
	logging.CorpusLoaded(path, len(res.Corpus.Books), res.Corpus.VerseCount(), res.FromSnapshot, res.Duration)
}
