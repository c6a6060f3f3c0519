package utils

import (
	"context"
	"net/http"
	"strings"

	"github.com/hilthontt/tripsync/internal/domain"
)

// HeaderConnectionID binds an HTTP call to the caller's realtime connection.
const HeaderConnectionID = "X-Connection-ID"

type identityKey struct{}

func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok && identity.UserID != ""
}

func ConnectionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderConnectionID))
}
