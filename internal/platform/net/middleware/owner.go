package middleware

import (
	"net/http"

	pnet "github.com/predator4hack/gitscout/internal/platform/net"
)

// Owner reads the X-Owner header into the request context
//
// There is no authentication; the header scopes saved searches and nothing else.
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o := r.Header.Get(pnet.OwnerHeader); o != "" {
			r = r.WithContext(pnet.WithOwner(r.Context(), o))
		}
		next.ServeHTTP(w, r)
	})
}
