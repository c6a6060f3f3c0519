package utils

import (
	"net/http"
	"strings"

	"github.com/hilthontt/tripsync/internal/infrastructure/auth"
)

// CookieSession carries the signed session token for browser clients
// that cannot set an Authorization header.
const CookieSession = "tripsync_session"

// AccessToken returns the caller's token from the Authorization header,
// the ?token= query parameter or the session cookie, in that order.
func AccessToken(r *http.Request) string {
	if raw := auth.BearerToken(r.Header.Get("Authorization")); raw != "" {
		return raw
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("token")); raw != "" {
		return raw
	}
	return sessionToken(r)
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(CookieSession)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
