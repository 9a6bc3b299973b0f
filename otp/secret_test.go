package otp

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	first, err := GenerateSecret()
	require.NoError(t, err)
	second, err := GenerateSecret()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "=")

	raw, err := DecodeSecret(first)
	require.NoError(t, err)
	assert.Len(t, raw, SecretSize)
}

func TestSecretRoundTrip(t *testing.T) {
	for length := 10; length <= 64; length++ {
		t.Run(fmt.Sprintf("%d bytes", length), func(t *testing.T) {
			raw := make([]byte, length)
			_, err := rand.Read(raw)
			require.NoError(t, err)

			decoded, err := DecodeSecret(EncodeSecret(raw))
			require.NoError(t, err)
			assert.Equal(t, raw, decoded)
		})
	}
}

func TestDecodeSecret(t *testing.T) {
	t.Run("accepts padded input", func(t *testing.T) {
		decoded, err := DecodeSecret("MZXW6YTBOI======")
		require.NoError(t, err)
		assert.Equal(t, []byte("foobar"), decoded)
	})

	t.Run("accepts lowercase input", func(t *testing.T) {
		decoded, err := DecodeSecret("mzxw6ytboi")
		require.NoError(t, err)
		assert.Equal(t, []byte("foobar"), decoded)
	})

	t.Run("rejects characters outside the alphabet", func(t *testing.T) {
		_, err := DecodeSecret("MZXW6YT1") // '1' is not in the base32 alphabet
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("rejects interior padding", func(t *testing.T) {
		_, err := DecodeSecret("MZXW=6YTBOI")
		assert.ErrorIs(t, err, ErrDecode)
	})
}
