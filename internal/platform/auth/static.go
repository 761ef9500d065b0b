package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidToken is returned when a presented token does not match.
var ErrInvalidToken = errors.New("auth: invalid token")

// StaticVerifier authorises a single pre-shared operations token. It backs
// the internal endpoints in deployments without a session store.
type StaticVerifier struct {
	Token    string
	Identity Identity
}

// Verify compares the presented token against the configured one.
func (v StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	expected := strings.TrimSpace(v.Token)
	if expected == "" {
		return Identity{}, ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) != 1 {
		return Identity{}, ErrInvalidToken
	}

	identity := v.Identity
	if strings.TrimSpace(identity.UID) == "" {
		identity.UID = "internal-ops"
	}
	if strings.TrimSpace(identity.Role) == "" {
		identity.Role = "admin"
	}
	return identity, nil
}
