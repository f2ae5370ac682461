package orchestrator

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Decision is the rebuild verdict for one target.
type Decision struct {
	Rebuild bool
	Reason  string
}

// Decider implements the incremental rebuild policy. It consults the
// checksum store and the session's rebuilt set, in this order: force
// override, missing output, changed source hash, rebuilt dependency.
type Decider struct {
	store    ports.ChecksumStore
	hasher   ports.Hasher
	verifier ports.Verifier
}

// NewDecider creates a Decider over a session-scoped checksum store.
func NewDecider(store ports.ChecksumStore, hasher ports.Hasher, verifier ports.Verifier) *Decider {
	return &Decider{store: store, hasher: hasher, verifier: verifier}
}

// MustRebuild decides whether the target is stale. The dependency check
// relies on targets being visited in dependency order: every dependency that
// rebuilt this run is already in the session's rebuilt set.
func (d *Decider) MustRebuild(session *domain.Session, target *domain.Target, force bool) (Decision, error) {
	if force {
		return Decision{Rebuild: true, Reason: "forced"}, nil
	}

	if target.Output == "" {
		// Nothing witnesses a previous run.
		return Decision{Rebuild: true, Reason: "no declared output"}, nil
	}
	exists, err := d.verifier.OutputExists(target.Output)
	if err != nil {
		return Decision{}, err
	}
	if !exists {
		return Decision{Rebuild: true, Reason: "output missing"}, nil
	}

	for _, src := range target.Sources {
		digest, err := d.hasher.HashFile(src)
		if err != nil {
			return Decision{}, zerr.With(zerr.Wrap(err, "failed to hash source"), "target", target.Name)
		}
		rec, err := d.store.Get(src)
		if err != nil {
			return Decision{}, err
		}
		if rec == nil || rec.ContentHash != digest {
			return Decision{Rebuild: true, Reason: "source changed"}, nil
		}
	}

	for _, dep := range target.Dependencies {
		if session.WasRebuilt(dep) {
			return Decision{Rebuild: true, Reason: "dependency rebuilt"}, nil
		}
	}

	return Decision{}, nil
}

// PersistChecksums records a fresh checksum for every source file of a
// target that just rebuilt successfully.
func (d *Decider) PersistChecksums(target *domain.Target) error {
	for _, src := range target.Sources {
		digest, err := d.hasher.HashFile(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to hash source"), "target", target.Name)
		}
		abs, err := filepath.Abs(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", src)
		}
		modTime := time.Now()
		if info, err := os.Stat(src); err == nil {
			modTime = info.ModTime()
		}
		rec := domain.ChecksumRecord{
			FilePath:     abs,
			ContentHash:  digest,
			LastModified: modTime,
		}
		if err := d.store.Put(rec); err != nil {
			return err
		}
	}
	return nil
}
