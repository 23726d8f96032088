package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	errArgon2Format    = errors.New("argon2: invalid hash format")
	errArgon2Algorithm = errors.New("argon2: unsupported algorithm")
	errArgon2Version   = errors.New("argon2: incompatible version")
	errArgon2Params    = errors.New("argon2: parameters out of range")
)

// maxArgon2Memory bounds the memory parameter accepted from a stored hash (KiB).
const maxArgon2Memory = 1 << 20

// Argon2Config holds the configuration for Argon2id hashing.
type Argon2Config struct {
	// Memory is the amount of memory used in KiB.
	Memory uint32

	// Iterations is the number of passes over the memory.
	Iterations uint32

	// Parallelism is the number of threads to use.
	Parallelism uint8

	// SaltLength is the length of the random salt in bytes.
	SaltLength uint32

	// KeyLength is the length of the generated key in bytes.
	KeyLength uint32
}

// DefaultArgon2Config returns the OWASP-recommended Argon2id parameters.
func DefaultArgon2Config() *Argon2Config {
	return &Argon2Config{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2Hasher implements the Hasher interface using Argon2id.
type Argon2Hasher struct {
	config *Argon2Config
}

// NewArgon2Hasher creates a new Argon2id hasher with the given configuration.
// If config is nil, DefaultArgon2Config is used.
func NewArgon2Hasher(config *Argon2Config) *Argon2Hasher {
	if config == nil {
		config = DefaultArgon2Config()
	}
	return &Argon2Hasher{config: config}
}

// phcHash is a decoded $argon2id$ string.
type phcHash struct {
	params Argon2Config
	salt   []byte
	key    []byte
}

func (p *phcHash) derive(password string) []byte {
	return argon2.IDKey([]byte(password), p.salt,
		p.params.Iterations, p.params.Memory, p.params.Parallelism, p.params.KeyLength)
}

func (p *phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.params.Memory, p.params.Iterations, p.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

// Hash creates an Argon2id hash in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func (h *Argon2Hasher) Hash(password string) (string, error) {
	p := &phcHash{params: *h.config, salt: make([]byte, h.config.SaltLength)}
	if _, err := rand.Read(p.salt); err != nil {
		return "", err
	}
	p.key = p.derive(password)
	return p.String(), nil
}

// Verify checks if a password matches an Argon2id hash.
// Hashes that do not decode as Argon2id never match.
func (h *Argon2Hasher) Verify(password, encodedHash string) bool {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(p.key, p.derive(password)) == 1
}

// NeedsRehash checks if a hash was created with different parameters.
func (h *Argon2Hasher) NeedsRehash(encodedHash string) bool {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return true
	}

	return p.params.Memory != h.config.Memory ||
		p.params.Iterations != h.config.Iterations ||
		p.params.Parallelism != h.config.Parallelism ||
		p.params.KeyLength != h.config.KeyLength
}

func parsePHC(encoded string) (*phcHash, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" {
		return nil, errArgon2Format
	}
	if fields[1] != "argon2id" {
		return nil, errArgon2Algorithm
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return nil, errArgon2Format
	}
	if version != argon2.Version {
		return nil, errArgon2Version
	}

	p := &phcHash{}
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d",
		&p.params.Memory, &p.params.Iterations, &p.params.Parallelism); err != nil {
		return nil, errArgon2Format
	}
	if p.params.Memory == 0 || p.params.Memory > maxArgon2Memory ||
		p.params.Iterations == 0 || p.params.Parallelism == 0 {
		return nil, errArgon2Params
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return nil, errArgon2Format
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil || len(p.key) == 0 {
		return nil, errArgon2Format
	}
	p.params.SaltLength = uint32(len(p.salt)) //nolint:gosec // bounded by the encoded string
	p.params.KeyLength = uint32(len(p.key))   //nolint:gosec // bounded by the encoded string

	return p, nil
}

// Ensure Argon2Hasher implements Hasher.
var _ Hasher = (*Argon2Hasher)(nil)
