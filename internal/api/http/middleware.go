package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/logger"
	"academyhub-backend/internal/security"
)

// Authenticate validates the bearer login token and stores the caller as
// the request Principal. The Bearer prefix is optional and matched
// case-insensitively.
func Authenticate(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				writeError(w, r, domain.E(domain.CodeUnauthorized, "authorization token is not provided"))
				return
			}
			if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
				raw = raw[7:]
			}

			claims, err := tm.Verify(security.PurposeLogin, raw)
			if err != nil {
				if errors.Is(err, security.ErrExpiredToken) {
					writeError(w, r, domain.E(domain.CodeUnauthorized, "token has expired"))
					return
				}
				writeError(w, r, domain.E(domain.CodeUnauthorized, "invalid token"))
				return
			}

			p := Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

// RequireRoles rejects callers whose role is not in the allow-list.
// Finer-grained ownership checks stay in the services.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, r, domain.E(domain.CodeUnauthorized, "not authenticated"))
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, r, domain.E(domain.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and stamps the allowed origin on every
// response. An empty allow-list permits nothing cross-origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
