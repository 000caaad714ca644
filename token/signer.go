// Package token issues and verifies HMAC-SHA256 signed API tokens.
//
// A token carries the caller identity as signed claims, so the HTTP
// layer can authenticate requests without a session store. Tokens are
// bearer credentials: possession grants the embedded scope.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Sign generates the HMAC-SHA256 signature for the given payload.
// The content to sign is "{issuedAt}.{payload}".
// Returns a versioned signature in the format "v1=<hex>".
func Sign(payload []byte, secret string, issuedAt int64) string {
	content := fmt.Sprintf("%d.%s", issuedAt, payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(content))
	return "v1=" + hex.EncodeToString(mac.Sum(nil))
}
