package utils

import (
	"crypto/rand"
	"fmt"
)

// SecureRandomBytes returns n cryptographically secure random bytes. It backs every
// credential-adjacent value this service mints, such as company codes.
func SecureRandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
