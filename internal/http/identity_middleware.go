package httpx

import (
	"context"
	"net/http"

	"github.com/paulita842/uptaskgraphql/internal/domain"
)

type identityContextKey string

const contextKeyIdentity identityContextKey = "uptask-identity"

// withIdentity resolves the Authorization header into the request context
// on every request. Resolution is total: an absent or invalid credential
// leaves the request anonymous, and the services decide whether anonymous
// is acceptable for the operation.
func (r *Router) withIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		identity := r.auth.Identify(req.Header.Get("Authorization"))
		ctx := context.WithValue(req.Context(), contextKeyIdentity, identity)
		next(w, req.WithContext(ctx))
	}
}

// identityFromContext extracts the resolved identity; nil means anonymous.
func identityFromContext(ctx context.Context) *domain.Identity {
	value := ctx.Value(contextKeyIdentity)
	if value == nil {
		return nil
	}
	identity, ok := value.(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}
