package ports

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashFile returns the digest of the file contents at path.
	HashFile(path string) (string, error)
	// HashStrings returns the digest of parts, in order.
	HashStrings(parts ...string) string
}
