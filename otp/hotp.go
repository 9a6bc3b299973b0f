package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// HOTP computes an RFC 4226 HMAC-based one-time password for the given key
// and counter. The counter is serialized big-endian into 8 bytes, the
// HMAC-SHA1 digest is dynamically truncated to a 31-bit integer and reduced
// modulo 10^digits, then left-padded with zeros.
func HOTP(key []byte, counter uint64, digits int) string {
	if digits <= 0 {
		digits = DefaultDigits
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(buf)
	sum := mac.Sum(nil)

	// Dynamic truncation: the low 4 bits of the last digest byte select the
	// offset of a 4-byte window, read big-endian with the sign bit masked.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", digits, code%mod)
}
