package otp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisioningURI(t *testing.T) {
	t.Run("exact format", func(t *testing.T) {
		uri := ProvisioningURI("Example", "alice@example.com", "JBSWY3DPEHPK3PXP", 6, 30)
		assert.Equal(t,
			"otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&digits=6&period=30",
			uri)
	})

	t.Run("percent-encodes issuer and account", func(t *testing.T) {
		uri := ProvisioningURI("Acme Corp", "alice smith@example.com", "JBSWY3DPEHPK3PXP", 6, 30)
		assert.Equal(t,
			"otpauth://totp/Acme%20Corp:alice%20smith@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme+Corp&digits=6&period=30",
			uri)

		parsed, err := url.Parse(uri)
		require.NoError(t, err)
		assert.Equal(t, "otpauth", parsed.Scheme)
		assert.Equal(t, "Acme Corp", parsed.Query().Get("issuer"))
		assert.Equal(t, "JBSWY3DPEHPK3PXP", parsed.Query().Get("secret"))
	})

	t.Run("zero parameters fall back to defaults", func(t *testing.T) {
		uri := ProvisioningURI("Example", "alice", "JBSWY3DPEHPK3PXP", 0, 0)
		assert.Contains(t, uri, "digits=6")
		assert.Contains(t, uri, "period=30")
	})
}
