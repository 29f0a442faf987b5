package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/okian/assetlens/pkg/logger"
)

const bearerPrefix = "Bearer "

// authMiddleware rejects requests without the configured bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	if s.token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			s.logger.Warn(r.Context(), "unauthorized request",
				logger.String("path", r.URL.Path),
				logger.String("remote", r.RemoteAddr))
			writeFail(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
