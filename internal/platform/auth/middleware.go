package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/seva-intake/api/internal/platform/httpx"
)

// SessionVerifier validates an opaque session token and resolves the
// operator identity behind it. The session store itself lives outside this
// service; hosts wire in their implementation at startup.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// RequireSession rejects requests without a verifiable session token. The
// token travels as a bearer Authorization header or the session cookie set
// by the host login flow.
func RequireSession(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if verifier == nil {
				httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "session verification not configured", http.StatusUnauthorized))
				return
			}

			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie("intake_session"); err == nil {
					token = strings.TrimSpace(cookie.Value)
				}
			}
			if token == "" {
				httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "session token required", http.StatusUnauthorized))
				return
			}

			identity, err := verifier.Verify(ctx, token)
			if err != nil || strings.TrimSpace(identity.UID) == "" {
				httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "invalid or expired session", http.StatusUnauthorized))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, &identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
