package otp

import (
	"fmt"
	"net/url"
)

// ProvisioningURI builds the otpauth:// URI consumed by authenticator apps
// (Google Authenticator, Authy, Microsoft Authenticator). The format is a
// compatibility contract: label and issuer are percent-encoded, the secret
// is already Base32 and passed through untouched.
func ProvisioningURI(issuer, accountName, secret string, digits, period int) string {
	if digits <= 0 {
		digits = DefaultDigits
	}
	if period <= 0 {
		period = DefaultPeriod
	}

	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s&digits=%d&period=%d",
		url.PathEscape(issuer),
		url.PathEscape(accountName),
		secret,
		url.QueryEscape(issuer),
		digits,
		period,
	)
}
