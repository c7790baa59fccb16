// Package snapshot stores parsed corpora on disk so that later runs can skip
// parsing. A snapshot is xz-compressed JSON keyed by the BLAKE3 hash of the
// source text it was parsed from.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/core/errors"
)

// FormatVersion changes whenever the payload layout changes. Snapshots of
// another version are ignored.
const FormatVersion = 1

const (
	filePrefix = "scriptorium-"
	fileSuffix = ".snap.xz"
	keyLen     = 16
)

// Injectable for tests.
var (
	xzNewWriter = xz.NewWriter
	xzNewReader = xz.NewReader
	osRename    = os.Rename
)

// payload is the decoded file content.
type payload struct {
	FormatVersion int            `json:"format_version"`
	SourceHash    string         `json:"source_hash"`
	Corpus        *corpus.Corpus `json:"corpus"`
}

// HashSource returns the hex BLAKE3 hash of source text.
func HashSource(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Store keeps snapshots in one directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the snapshot file for hash.
func (s *Store) Path(hash string) string {
	key := hash
	if len(key) > keyLen {
		key = key[:keyLen]
	}
	return filepath.Join(s.Dir, filePrefix+key+fileSuffix)
}

// Load returns the corpus stored for hash. A missing file yields an error
// matching errors.ErrNotFound; a file that cannot be decoded, or that was
// written for other source text or another format version, yields another
// error. Callers treat every error as a miss.
func (s *Store) Load(hash string) (*corpus.Corpus, error) {
	path := s.Path(hash)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("snapshot", path)
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	r, err := xzNewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %s: %w", path, err)
	}

	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	switch {
	case p.FormatVersion != FormatVersion:
		return nil, fmt.Errorf("snapshot %s: format version %d, want %d", path, p.FormatVersion, FormatVersion)
	case p.SourceHash != hash:
		return nil, fmt.Errorf("snapshot %s: written for another source", path)
	case p.Corpus == nil || len(p.Corpus.Books) == 0:
		return nil, fmt.Errorf("snapshot %s: empty corpus", path)
	}
	return p.Corpus, nil
}

// Save writes c as the snapshot for hash. The file is written to a temporary
// name and renamed into place, so readers never see a partial snapshot.
func (s *Store) Save(hash string, c *corpus.Corpus) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, payload{FormatVersion: FormatVersion, SourceHash: hash, Corpus: c}); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := osRename(tmpPath, s.Path(hash)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func encode(w io.Writer, p payload) error {
	xw, err := xzNewWriter(w)
	if err != nil {
		return fmt.Errorf("create xz writer: %w", err)
	}
	if err := json.NewEncoder(xw).Encode(p); err != nil {
		xw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("flush xz writer: %w", err)
	}
	return nil
}

// Purge removes every snapshot in the directory and returns how many were
// removed. A missing directory is not an error.
func (s *Store) Purge() (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read snapshot directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove snapshot: %w", err)
		}
		removed++
	}
	return removed, nil
}
