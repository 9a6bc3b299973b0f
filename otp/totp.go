// Package otp implements the RFC 4226 (HOTP) and RFC 6238 (TOTP) one-time
// password algorithms, Base32 secret handling, and otpauth:// provisioning
// URIs for authenticator apps.
package otp

import (
	"crypto/subtle"
	"time"
)

const (
	// DefaultDigits is the standard code length.
	DefaultDigits = 6
	// DefaultPeriod is the RFC 6238 time step in seconds.
	DefaultPeriod = 30
	// DefaultSkew is the number of adjacent time steps tolerated on either
	// side of the current one.
	DefaultSkew = 1
)

// Options controls code generation and validation. Zero values fall back to
// the RFC 6238 standard parameters.
type Options struct {
	Digits int
	Period int
	Skew   int
}

func (o Options) withDefaults() Options {
	if o.Digits <= 0 {
		o.Digits = DefaultDigits
	}
	if o.Period <= 0 {
		o.Period = DefaultPeriod
	}
	if o.Skew <= 0 {
		o.Skew = DefaultSkew
	}
	return o
}

// GenerateCode computes the TOTP code for the time step containing at.
func GenerateCode(secret string, at time.Time, opts Options) (string, error) {
	opts = opts.withDefaults()

	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}

	counter := at.Unix() / int64(opts.Period)
	return HOTP(key, uint64(counter), opts.Digits), nil
}

// Validate reports whether candidate matches the secret's code at any time
// step within ±Skew of the step containing at. Each comparison is
// constant-time and the window loop never exits early, so timing does not
// distinguish near from far mismatches.
func Validate(secret, candidate string, at time.Time, opts Options) (bool, error) {
	opts = opts.withDefaults()

	key, err := DecodeSecret(secret)
	if err != nil {
		return false, err
	}

	counter := at.Unix() / int64(opts.Period)

	match := 0
	for delta := -opts.Skew; delta <= opts.Skew; delta++ {
		step := counter + int64(delta)
		if step < 0 {
			continue
		}
		expected := HOTP(key, uint64(step), opts.Digits)
		match |= subtle.ConstantTimeCompare([]byte(expected), []byte(candidate))
	}

	return match == 1, nil
}
