package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/xraph/faultline/scope"
)

// ErrInvalidToken is returned when a token is malformed or its
// signature does not match.
var ErrInvalidToken = errors.New("faultline: invalid token")

// prefix marks faultline API tokens.
const prefix = "flt_"

// Claims is the identity a token carries.
type Claims struct {
	// UserID identifies the user or API client.
	UserID string `json:"user_id"`

	// OrganizationIDs is the set of organizations the caller belongs to.
	OrganizationIDs []string `json:"organization_ids,omitempty"`

	// DefaultOrganizationID is used when a submission names no project.
	DefaultOrganizationID string `json:"default_organization_id,omitempty"`

	// IssuedAt is the unix issue time, part of the signed content.
	IssuedAt int64 `json:"iat"`
}

// Caller converts the claims into a request scope.
func (c Claims) Caller() scope.Caller {
	return scope.Caller{
		UserID:                c.UserID,
		OrganizationIDs:       c.OrganizationIDs,
		DefaultOrganizationID: c.DefaultOrganizationID,
	}
}

// Mint encodes and signs the claims into a bearer token.
// Format: "flt_" + base64url(claims JSON) + "." + "v1=<hex>".
func Mint(secret string, claims Claims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return prefix + encoded + "." + Sign(payload, secret, claims.IssuedAt), nil
}

// Parse verifies a token and returns its claims. Any malformation or
// signature mismatch yields ErrInvalidToken; callers learn nothing
// about which check failed.
func Parse(secret, tok string) (Claims, error) {
	rest, ok := strings.CutPrefix(tok, prefix)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	encoded, sig, ok := strings.Cut(rest, ".")
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if !Verify(payload, secret, claims.IssuedAt, sig) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
