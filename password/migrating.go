package password

// MigratingHasher hashes with a primary algorithm while still accepting
// hashes produced by legacy algorithms. NeedsRehash reports true for any
// hash the primary would not have produced, so callers can upgrade stored
// hashes after a successful login.
type MigratingHasher struct {
	primary Hasher
	legacy  []Hasher
}

// NewMigratingHasher creates a hasher that hashes with primary and verifies
// against primary first, then each legacy hasher in order.
func NewMigratingHasher(primary Hasher, legacy ...Hasher) *MigratingHasher {
	return &MigratingHasher{primary: primary, legacy: legacy}
}

// Hash hashes with the primary algorithm.
func (m *MigratingHasher) Hash(password string) (string, error) {
	return m.primary.Hash(password)
}

// Verify reports whether any configured algorithm accepts the hash.
func (m *MigratingHasher) Verify(password, hash string) bool {
	if m.primary.Verify(password, hash) {
		return true
	}
	for _, h := range m.legacy {
		if h.Verify(password, hash) {
			return true
		}
	}
	return false
}

// NeedsRehash delegates to the primary hasher.
func (m *MigratingHasher) NeedsRehash(hash string) bool {
	return m.primary.NeedsRehash(hash)
}

// Primary returns the hasher used for new hashes.
func (m *MigratingHasher) Primary() Hasher {
	return m.primary
}

var _ Hasher = (*MigratingHasher)(nil)
