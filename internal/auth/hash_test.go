package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashKey_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashKey("rk_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b")
	if err != nil {
		t.Fatalf("HashKey failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("hash should have 6 parts, got %d: %s", len(parts), hash)
	}
	if parts[1] != "argon2id" || parts[2] != "v=19" || parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("unexpected PHC header: %s", hash)
	}
}

func TestVerifyKey(t *testing.T) {
	t.Parallel()

	const key = "rk_live_abc123_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	hash, err := HashKey(key)
	if err != nil {
		t.Fatalf("HashKey failed: %v", err)
	}
	other, err := HashKey(key)
	if err != nil {
		t.Fatalf("HashKey failed: %v", err)
	}
	if hash == other {
		t.Error("hashes of the same key should differ by salt")
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"correct", key, true},
		{"wrong secret", "rk_live_abc123_00000000000000000000000000000000", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := VerifyKey(tt.input, hash)
			if err != nil {
				t.Fatalf("VerifyKey failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyKey_InvalidHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"not phc", "not-a-hash", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"missing parts", "$argon2id$v=19$m=65536", ErrInvalidHash},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"bad salt", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA", ErrInvalidHash},
		{"empty hash", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$", ErrInvalidHash},
		{"old version", "$argon2id$v=16$m=65536,t=3,p=4$c2FsdA$aGFzaA", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := VerifyKey("anything", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyKey error = %v, want %v", err, tt.wantErr)
			}
			if ok {
				t.Error("invalid hash must not verify")
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := CacheKey("rk_live_abc123_secret")
	if a != CacheKey("rk_live_abc123_secret") {
		t.Error("CacheKey should be deterministic")
	}
	if len(a) != 32 {
		t.Errorf("CacheKey length = %d, want 32", len(a))
	}
	if a == CacheKey("rk_live_abc123_other") {
		t.Error("different keys should not share a cache key")
	}
}
