package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// authMiddleware resolves the caller's identity from the Authorization
// header before any handler runs. Authentication failures reject the
// request without touching the codec, classifier or store.
func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.provider.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				s.logger.Error(r.Context(), "identity provider failure", "error", err.Error())
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header; empty string if absent.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// identityFrom returns the identity stashed by authMiddleware. Handlers
// behind the middleware can rely on it being present.
func identityFrom(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityKey).(*auth.Identity)
	return ident
}

// corsMiddleware allows the configured browser origin to call the API.
func (s *HTTPServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
