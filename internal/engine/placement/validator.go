// Package placement implements the artifact placement validator: after a
// successful invocation, every (library, ABI) pair must exist where the
// packager will search for it.
package placement

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pair names one expected (library, ABI) artifact.
type Pair struct {
	Library domain.Library
	ABI     domain.ABI
}

// String returns the pair in the packager's search layout, abi/libname.so.
func (p Pair) String() string {
	return string(p.ABI) + "/" + p.Library.FileName()
}

// Validator checks that every expected artifact exists and records its
// fingerprint in the build ledger.
type Validator struct {
	verifier ports.Verifier
	hasher   ports.Hasher
	store    ports.ArtifactStore
	logger   ports.Logger
}

// NewValidator creates a new Validator.
func NewValidator(verifier ports.Verifier, hasher ports.Hasher, store ports.ArtifactStore, logger ports.Logger) *Validator {
	return &Validator{
		verifier: verifier,
		hasher:   hasher,
		store:    store,
		logger:   logger,
	}
}

// Validate confirms that for every (library, ABI) pair declared by the
// project a file exists under <OutputRoot>/<abi>/. All missing pairs are
// collected and reported together in a single ErrMissingArtifact; a
// missing artifact is a structural bug, never retried.
//
// Artifacts that are present get fingerprinted and recorded in the
// ledger; a re-run that reproduced an identical artifact is logged.
func (v *Validator) Validate(variant domain.Variant, project *domain.Project) error {
	var missing []string

	for _, abi := range project.ABIs {
		for _, lib := range project.Libraries {
			pair := Pair{Library: lib, ABI: abi}
			path := filepath.Join(project.OutputRoot, string(abi), lib.FileName())

			exists, err := v.verifier.Exists(path)
			if err != nil {
				return err
			}
			if !exists {
				missing = append(missing, pair.String())
				continue
			}

			if err := v.record(variant, pair, path); err != nil {
				return err
			}
		}
	}

	if len(missing) > 0 {
		err := zerr.With(domain.ErrMissingArtifact, "variant", string(variant))
		return zerr.With(err, "missing", strings.Join(missing, ", "))
	}

	return nil
}

// record fingerprints one artifact and updates its ledger entry.
func (v *Validator) record(variant domain.Variant, pair Pair, path string) error {
	sum, err := v.hasher.ComputeFileHash(path)
	if err != nil {
		return err
	}
	hash := fmt.Sprintf("%016x", sum)

	record := domain.ArtifactRecord{
		Variant:   string(variant),
		ABI:       string(pair.ABI),
		Library:   pair.Library.Name.String(),
		Hash:      hash,
		Timestamp: time.Now(),
	}

	previous, err := v.store.Get(record.Key())
	if err != nil {
		return err
	}
	if previous != nil && previous.Hash == hash {
		v.logger.Info("artifact reproduced unchanged: " + record.Key())
	}

	return v.store.Put(record)
}
