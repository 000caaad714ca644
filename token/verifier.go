package token

import "crypto/hmac"

// Verify checks whether the given signature matches the expected
// HMAC-SHA256 signature for the payload, secret, and issue time.
func Verify(payload []byte, secret string, issuedAt int64, sig string) bool {
	expected := Sign(payload, secret, issuedAt)
	return hmac.Equal([]byte(expected), []byte(sig))
}
