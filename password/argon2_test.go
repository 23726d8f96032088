package password

import (
	"strings"
	"testing"
)

func fastArgon2Config() *Argon2Config {
	return &Argon2Config{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgon2Hasher_Hash(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("unexpected hash format: %s", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("expected 6 fields, got %d", len(parts))
	}
}

func TestArgon2Hasher_HashUnique(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash1, _ := h.Hash("pw123")
	hash2, _ := h.Hash("pw123")

	if hash1 == hash2 {
		t.Error("hashes should be unique due to random salt")
	}
	if !h.Verify("pw123", hash1) || !h.Verify("pw123", hash2) {
		t.Error("both hashes should verify the original password")
	}
}

func TestArgon2Hasher_Verify(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "pw123", true},
		{"wrong password", "pw124", false},
		{"empty password", "", false},
		{"unicode", "pw123é", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Verify(tt.password, hash); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestArgon2Hasher_VerifyWithOtherParams(t *testing.T) {
	weak := NewArgon2Hasher(fastArgon2Config())
	strong := NewArgon2Hasher(&Argon2Config{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	hash, err := weak.Hash("pw123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// parameters come from the encoded hash, not the verifier
	if !strong.Verify("pw123", hash) {
		t.Error("hash should verify under a hasher with different parameters")
	}
	if !strong.NeedsRehash(hash) {
		t.Error("hash with weaker parameters should need rehash")
	}
	if weak.NeedsRehash(hash) {
		t.Error("hash with matching parameters should not need rehash")
	}
}

func TestArgon2Hasher_VerifyMalformedHash(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"no fields", "argon2id"},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA"},
		{"huge memory", "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA"},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
		{"bcrypt hash", "$2a$04$KqR6PfwXq1QRoXcWvSY3Ou3Cd7tnmAhIBk1wF3HcGQ4fS3mq5yxpW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h.Verify("password", tt.hash) {
				t.Errorf("Verify should be false for %q", tt.hash)
			}
			if !h.NeedsRehash(tt.hash) {
				t.Errorf("NeedsRehash should be true for %q", tt.hash)
			}
		})
	}
}

func TestNewArgon2Hasher_Defaults(t *testing.T) {
	h := NewArgon2Hasher(nil)
	want := DefaultArgon2Config()

	if *h.config != *want {
		t.Errorf("config = %+v, want %+v", *h.config, *want)
	}
}
