package ports

// Verifier defines the interface for checking artifact placement.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Exists reports whether a regular file exists at the given path.
	Exists(path string) (bool, error)
}
