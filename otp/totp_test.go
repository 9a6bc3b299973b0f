package otp

import (
	"fmt"
	"testing"
	"time"

	pquerna "github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_RFC6238Vectors(t *testing.T) {
	// RFC 6238 Appendix B, SHA1 rows. The reference secret is the ASCII
	// string "12345678901234567890".
	secret := EncodeSecret([]byte("12345678901234567890"))

	vectors := []struct {
		unix int64
		code string
	}{
		{59, "94287082"},
		{1111111109, "07081804"},
		{1111111111, "14050471"},
		{1234567890, "89005924"},
		{2000000000, "69279037"},
		{20000000000, "65353130"},
	}

	for _, v := range vectors {
		t.Run(fmt.Sprintf("t=%d", v.unix), func(t *testing.T) {
			code, err := GenerateCode(secret, time.Unix(v.unix, 0), Options{Digits: 8})
			require.NoError(t, err)
			assert.Equal(t, v.code, code)
		})
	}
}

func TestGenerateCode(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	at := time.Unix(1700000000, 0)

	t.Run("deterministic", func(t *testing.T) {
		first, err := GenerateCode(secret, at, Options{})
		require.NoError(t, err)
		second, err := GenerateCode(secret, at, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, first, 6)
	})

	t.Run("stable within a time step", func(t *testing.T) {
		stepStart := time.Unix(1700000010-1700000010%30, 0)
		a, err := GenerateCode(secret, stepStart, Options{})
		require.NoError(t, err)
		b, err := GenerateCode(secret, stepStart.Add(29*time.Second), Options{})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("malformed secret", func(t *testing.T) {
		_, err := GenerateCode("not base32!", at, Options{})
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestValidate_Window(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	at := time.Unix(1700000015, 0)
	code, err := GenerateCode(secret, at, Options{})
	require.NoError(t, err)

	t.Run("accepts current and adjacent steps", func(t *testing.T) {
		for _, skewed := range []time.Time{
			at.Add(-DefaultPeriod * time.Second),
			at,
			at.Add(DefaultPeriod * time.Second),
		} {
			ok, err := Validate(secret, code, skewed, Options{})
			require.NoError(t, err)
			assert.True(t, ok, "code should verify at %v", skewed)
		}
	})

	t.Run("rejects steps outside the window", func(t *testing.T) {
		for _, skewed := range []time.Time{
			at.Add(-2 * DefaultPeriod * time.Second),
			at.Add(2 * DefaultPeriod * time.Second),
		} {
			ok, err := Validate(secret, code, skewed, Options{})
			require.NoError(t, err)
			assert.False(t, ok, "code should not verify at %v", skewed)
		}
	})

	t.Run("rejects wrong code", func(t *testing.T) {
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		ok, err := Validate(secret, wrong, at, Options{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed secret", func(t *testing.T) {
		_, err := Validate("not base32!", code, at, Options{})
		assert.ErrorIs(t, err, ErrDecode)
	})
}

// The generator and validator must agree with an independent RFC 6238
// implementation, not just with each other.
func TestInterop_PquernaOTP(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	at := time.Unix(1700003600, 0)

	t.Run("our codes validate elsewhere", func(t *testing.T) {
		code, err := GenerateCode(secret, at, Options{})
		require.NoError(t, err)

		ok, err := pqtotp.ValidateCustom(code, secret, at, pqtotp.ValidateOpts{
			Period:    DefaultPeriod,
			Digits:    pquerna.DigitsSix,
			Algorithm: pquerna.AlgorithmSHA1,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("their codes validate here", func(t *testing.T) {
		code, err := pqtotp.GenerateCode(secret, at)
		require.NoError(t, err)

		ok, err := Validate(secret, code, at, Options{})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
