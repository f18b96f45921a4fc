package random

import (
	"crypto/rand"
	"fmt"
)

// CollisionResistantLength is a byte length suitable for identifiers (lock
// payload nonces, database session salts) that need to be practically
// unique without being tracked against any other identifier space.
const CollisionResistantLength = 32

// New returns a byte slice of the specified length with cryptographically
// random conents.
func New(length int) ([]byte, error) {
	// Create the buffer.
	result := make([]byte, length)

	// Read random data.
	if _, err := rand.Read(result[:]); err != nil {
		return nil, fmt.Errorf("unable to read random data: %w", err)
	}

	// Success.
	return result, nil
}
