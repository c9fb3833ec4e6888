package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// RequireAuth rejects requests without a valid bearer token before they
// reach the handler, and stores the user id in the request context.
func RequireAuth(guard *auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(strings.TrimSpace(r.Header.Get("Authorization")))
			if !ok {
				respondWithJSON(w, http.StatusUnauthorized, messageResponse{Message: common.ErrAuthentication.Error()})
				return
			}

			ctx, err := guard.Authenticate(r.Context(), token)
			if err != nil {
				respondWithJSON(w, http.StatusUnauthorized, messageResponse{Message: common.ErrAuthentication.Error()})
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs one line per request with the chi request id.
func RequestLogger(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			l.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
