package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	pnet "github.com/predator4hack/gitscout/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope with code panic and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.Error(perr.PanicErrf("internal error"), reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
