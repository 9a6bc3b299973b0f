package otp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

// SecretSize is the number of random bytes in a generated secret.
// 160 bits is the RFC 4226 recommended minimum for HMAC-SHA1.
const SecretSize = 20

var ErrDecode = errors.New("malformed base32 secret")

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret returns a fresh random shared secret, Base32 encoded
// without padding.
func GenerateSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return EncodeSecret(buf), nil
}

// EncodeSecret encodes raw secret bytes as uppercase RFC 4648 Base32
// without padding.
func EncodeSecret(secret []byte) string {
	return b32.EncodeToString(secret)
}

// DecodeSecret decodes a Base32 secret. Input is accepted with or without
// trailing '=' padding and in either case. Characters outside the Base32
// alphabet yield ErrDecode.
func DecodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimSpace(secret))
	normalized = strings.TrimRight(normalized, "=")

	key, err := b32.DecodeString(normalized)
	if err != nil {
		return nil, ErrDecode
	}
	return key, nil
}
