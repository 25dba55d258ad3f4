package fs

import (
	"os"

	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks artifact placement on the filesystem.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Exists reports whether a regular file exists at the given path.
// Directories do not count: the packager embeds files only.
func (v *Verifier) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}
	return info.Mode().IsRegular(), nil
}
