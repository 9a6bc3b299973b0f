package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tech-arch1tect/mfakit/testutils"
)

func newTestService(t *testing.T) *Service {
	cfg := testutils.GetTestConfig()
	db := testutils.SetupTestDB(t, &RecoveryCode{})
	return NewService(cfg, db, nil)
}

func TestService_Issue(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Recovery.Enabled = false
		service := NewService(cfg, testutils.SetupTestDB(t, &RecoveryCode{}), nil)

		codes, err := service.Issue("u1")

		assert.Nil(t, codes)
		testutils.AssertErrorType(t, ErrDisabled, err)
	})

	t.Run("issues formatted codes", func(t *testing.T) {
		service := newTestService(t)

		codes, err := service.Issue("u1")

		require.NoError(t, err)
		require.Len(t, codes, 10)
		for _, code := range codes {
			assert.Len(t, code, 9)
			assert.Equal(t, byte('-'), code[4])
			assert.True(t, IsRecoveryCodeFormat(code), "code %q should look like a recovery code", code)
		}

		remaining, err := service.Remaining("u1")
		require.NoError(t, err)
		assert.Equal(t, 10, remaining)
	})

	t.Run("re-issue invalidates previous codes", func(t *testing.T) {
		service := newTestService(t)

		first, err := service.Issue("u1")
		require.NoError(t, err)
		_, err = service.Issue("u1")
		require.NoError(t, err)

		err = service.Consume("u1", first[0])
		testutils.AssertErrorType(t, ErrInvalidCode, err)

		remaining, err := service.Remaining("u1")
		require.NoError(t, err)
		assert.Equal(t, 10, remaining)
	})
}

func TestService_Consume(t *testing.T) {
	service := newTestService(t)

	codes, err := service.Issue("u1")
	require.NoError(t, err)

	t.Run("accepts a valid code once", func(t *testing.T) {
		require.NoError(t, service.Consume("u1", codes[0]))

		err := service.Consume("u1", codes[0])
		testutils.AssertErrorType(t, ErrInvalidCode, err)

		remaining, err := service.Remaining("u1")
		require.NoError(t, err)
		assert.Equal(t, 9, remaining)
	})

	t.Run("normalizes case and hyphen", func(t *testing.T) {
		mangled := strings.ToLower(strings.ReplaceAll(codes[1], "-", ""))
		assert.NoError(t, service.Consume("u1", mangled))
	})

	t.Run("rejects codes from another identity", func(t *testing.T) {
		err := service.Consume("u2", codes[2])
		testutils.AssertErrorType(t, ErrInvalidCode, err)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		err := service.Consume("u1", "123456")
		testutils.AssertErrorType(t, ErrInvalidCode, err)
	})
}

func TestIsRecoveryCodeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"ABCD-EFGH", true},
		{"abcdefgh", true},
		{"ABCDEFGH", false}, // interior space survives normalization
		{"123456", false},   // TOTP-shaped
		{"ABCD-EFG1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoveryCodeFormat(tt.input))
		})
	}
}
