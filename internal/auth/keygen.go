package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Host key format: rk_{env}_{prefix}_{secret}
// Example: rk_live_7a9f3c_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	KeyPrefixLen = 6  // hex, 3 bytes
	KeySecretLen = 32 // hex, 16 bytes
)

// Environment markers embedded in host keys.
const (
	EnvLive = "live"
	EnvTest = "test"
)

// ErrInvalidKeyFormat indicates the key format is invalid.
var ErrInvalidKeyFormat = errors.New("invalid host key format")

var keyFormatRegex = regexp.MustCompile(`^rk_(live|test)_([a-f0-9]{6})_([a-f0-9]{32})$`)

// GeneratedKey holds a freshly minted key. Plaintext is shown once and never stored.
type GeneratedKey struct {
	Plaintext string
	Hash      string
	Prefix    string
}

// GenerateHostKey mints a key for env, defaulting to live.
func GenerateHostKey(env string) (*GeneratedKey, error) {
	if env != EnvLive && env != EnvTest {
		env = EnvLive
	}

	prefix, err := randomHex(KeyPrefixLen / 2)
	if err != nil {
		return nil, fmt.Errorf("generate prefix: %w", err)
	}
	secret, err := randomHex(KeySecretLen / 2)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	plaintext := fmt.Sprintf("rk_%s_%s_%s", env, prefix, secret)

	hash, err := HashKey(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash key: %w", err)
	}

	return &GeneratedKey{
		Plaintext: plaintext,
		Hash:      hash,
		Prefix:    prefix,
	}, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ParsedKey holds the parts of a host key.
type ParsedKey struct {
	Env    string
	Prefix string
	Secret string
}

// ParseHostKey splits a plaintext key into its parts.
func ParseHostKey(key string) (*ParsedKey, error) {
	m := keyFormatRegex.FindStringSubmatch(key)
	if m == nil {
		return nil, ErrInvalidKeyFormat
	}
	return &ParsedKey{Env: m[1], Prefix: m[2], Secret: m[3]}, nil
}
