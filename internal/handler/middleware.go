package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/msomdec/weeklist/internal/domain"
	"github.com/msomdec/weeklist/internal/service"
)

type contextKey string

const (
	userIDContextKey   contextKey = "userID"
	weekListContextKey contextKey = "weekList"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "token"

// UserIDFromContext returns the authenticated user id, or "" if the request
// did not pass RequireAuth.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}

// WeekListFromContext returns the week list resolved by RequireOpenWeekList.
func WeekListFromContext(ctx context.Context) *domain.WeekList {
	weekList, _ := ctx.Value(weekListContextKey).(*domain.WeekList)
	return weekList
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the token header, verifies it and injects the user id into the
// request context. Returns 401 for unauthenticated requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized - Missing token")
			return
		}

		userID, err := auth.Authenticate(token)
		if err != nil {
			slog.Warn("rejected token", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOpenWeekList is middleware for the mark-done routes. It resolves the
// caller's week list named by the {weekListId} path value and refuses the
// request once the week list's deadline has passed. Must run inside
// RequireAuth.
func RequireOpenWeekList(weekLists *service.WeekListService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireOwner(w, r)
		if !ok {
			return
		}

		weekList, err := weekLists.CheckDeadline(r.Context(), userID, r.PathValue("weekListId"))
		if err != nil {
			writeServiceError(w, "check week list deadline", err)
			return
		}

		ctx := context.WithValue(r.Context(), weekListContextKey, weekList)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimit is middleware that limits requests per client IP.
func RateLimit(limiter *service.TokenBucket, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders adds standard security headers to every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LogRequests logs method, path, status and duration of every request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// requireOwner checks that the {userId} path value names the authenticated
// user, writing 403 otherwise.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := UserIDFromContext(r.Context())
	if userID == "" || r.PathValue("userId") != userID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return userID, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
