package httpapi

import (
	"net/http"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/application"
)

// bearerToken extracts the token from an Authorization: Bearer header,
// empty when absent.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate verifies a bearer token when one is present and stores
// the identity in the request context. Requests without a token pass
// through anonymous; requests with a bad token are rejected outright.
// Handlers that require a caller use requireIdentity. The /auth/
// endpoints are exempt: they carry credentials of their own, including
// refresh tokens that must not be verified as access tokens here.
func Authenticate(auth *application.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/auth/") {
				next.ServeHTTP(w, r)
				return
			}
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := auth.Verify(r.Context(), token)
			if err != nil {
				writeAuthError(w, "Could not validate credentials")
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// requireIdentity returns the caller or writes a 401 and reports false.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*application.Identity, bool) {
	id := identityFrom(r.Context())
	if id == nil {
		writeAuthError(w, "Authentication required")
		return nil, false
	}
	return id, true
}
