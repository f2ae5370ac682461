// Package fs provides file system adapters: content hashing, source
// resolution, and output verification.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// memoSize bounds the per-process hash memo.
const memoSize = 4096

type memoKey struct {
	path    string
	modTime int64
	size    int64
}

// Hasher computes hex content digests with a bounded memo, so one run never
// hashes the same unchanged file twice. Entries are keyed by path, mtime,
// and size: a rewritten file misses the memo and is re-read.
type Hasher struct {
	memo *lru.Cache[memoKey, string]
}

// NewHasher creates a new Hasher.
func NewHasher() (*Hasher, error) {
	memo, err := lru.New[memoKey, string](memoSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create hash memo")
	}
	return &Hasher{memo: memo}, nil
}

// HashFile returns the xxhash64 of the file content as 16 hex digits.
func (h *Hasher) HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	key := memoKey{path: path, modTime: info.ModTime().UnixNano(), size: info.Size()}
	if digest, ok := h.memo.Get(key); ok {
		return digest, nil
	}

	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	digest := fmt.Sprintf("%016x", hasher.Sum64())
	h.memo.Add(key, digest)
	return digest, nil
}
