// Package crypto provides cryptographic utilities.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultSecretBytes is the entropy of a generated signing secret.
// Its encoding is well above the 32 characters the service requires.
const DefaultSecretBytes = 48

// GenerateRandomBytes generates n cryptographically secure random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateSecret returns a URL-safe, unpadded base64 encoding of byteLength
// random bytes, suitable as a JWT signing secret.
func GenerateSecret(byteLength int) (string, error) {
	if byteLength < 24 {
		return "", fmt.Errorf("secret must have at least 24 bytes of entropy, got %d", byteLength)
	}
	b, err := GenerateRandomBytes(byteLength)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
