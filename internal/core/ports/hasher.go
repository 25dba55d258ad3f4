package ports

// Hasher defines the interface for fingerprinting artifact files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash computes the content hash of a file.
	ComputeFileHash(path string) (uint64, error)
}
