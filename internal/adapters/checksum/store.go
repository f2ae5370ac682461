// Package checksum persists per-source-file content hashes under the build
// directory, one record file per distinct source base name.
package checksum

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChecksumStore = (*Store)(nil)

// Store implements ports.ChecksumStore on a directory of record files.
// A record file holds three lines: absolute source path, hex content hash,
// and the last-modified timestamp in RFC 3339 form.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates the checksum store for a build directory, creating the
// store directory if needed.
func NewStore(buildDir string) (*Store, error) {
	dir := domain.ChecksumsPath(buildDir)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create checksum store"), "dir", dir)
	}
	return &Store{dir: dir}, nil
}

// Get retrieves the record persisted for the source file's base name.
// A missing or malformed record reads as "no prior checksum": nil, nil.
func (s *Store) Get(sourcePath string) (*domain.ChecksumRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(sourcePath)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the store dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read checksum record"), "path", path)
	}

	rec, ok := parseRecord(data)
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// Put persists the record atomically (temp file + rename).
func (s *Store) Put(rec domain.ChecksumRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(rec.FilePath)
	content := rec.FilePath + "\n" + rec.ContentHash + "\n" + rec.LastModified.UTC().Format(time.RFC3339) + "\n"

	tmp, err := os.CreateTemp(s.dir, ".record-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create checksum temp file")
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write checksum record")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close checksum temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to persist checksum record"), "path", path)
	}
	return nil
}

// Clean removes the whole store directory.
func (s *Store) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove checksum store"), "dir", s.dir)
	}
	return nil
}

func (s *Store) recordPath(sourcePath string) string {
	return filepath.Join(s.dir, filepath.Base(sourcePath))
}

func parseRecord(data []byte) (*domain.ChecksumRecord, bool) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		return nil, false
	}
	ts, err := time.Parse(time.RFC3339, lines[2])
	if err != nil {
		return nil, false
	}
	if lines[0] == "" || lines[1] == "" {
		return nil, false
	}
	return &domain.ChecksumRecord{
		FilePath:     lines[0],
		ContentHash:  lines[1],
		LastModified: ts,
	}, true
}
