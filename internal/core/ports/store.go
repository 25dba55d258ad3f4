package ports

import "go.spelunk.dev/ndkbridge/internal/core/domain"

// ArtifactStore defines the interface for the build ledger recording
// produced artifacts across runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get retrieves the record for a ledger key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.ArtifactRecord, error)

	// Put stores the record.
	Put(record domain.ArtifactRecord) error
}
