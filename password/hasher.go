// Package password provides password hashing and verification.
package password

import (
	"errors"
	"fmt"
)

// Algorithm names accepted by New.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// ErrPasswordTooLong is returned by Hash when the algorithm cannot accept the input.
var ErrPasswordTooLong = errors.New("password exceeds the maximum length supported by the hash algorithm")

// Hasher defines the interface for password hashing algorithms.
type Hasher interface {
	// Hash creates a salted hash from a password. Two calls with the same
	// password return different strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Malformed hashes and
	// hashes produced by another algorithm verify as false.
	Verify(password, hash string) bool

	// NeedsRehash checks if a hash needs to be regenerated.
	// Returns true if the hash was created with different parameters.
	NeedsRehash(hash string) bool
}

// New returns a hasher that hashes with the named algorithm and still
// verifies hashes produced by the other supported algorithm.
func New(algorithm string, bcryptCost int) (Hasher, error) {
	bc := NewBcryptHasher(bcryptCost)
	a2 := NewArgon2Hasher(nil)

	switch algorithm {
	case "", AlgorithmBcrypt:
		return NewMigratingHasher(bc, a2), nil
	case AlgorithmArgon2id:
		return NewMigratingHasher(a2, bc), nil
	default:
		return nil, fmt.Errorf("unsupported password algorithm: %s", algorithm)
	}
}
