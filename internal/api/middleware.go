package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"connectrealm/internal/common"
	"connectrealm/internal/store"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticate rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func Authenticate(tokens *common.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := bearerUserID(r, tokens)
			if !ok {
				respondError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuthenticate resolves a bearer token when one is present but lets
// anonymous requests through. Read endpoints use it so public content stays
// reachable while signed-in callers still get personalized results.
func MaybeAuthenticate(tokens *common.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := bearerUserID(r, tokens); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerUserID(r *http.Request, tokens *common.TokenManager) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	claims, err := tokens.Validate(parts[1])
	if err != nil {
		return "", false
	}
	return claims.UserID, true
}

// CallerID extracts the authenticated user id from the context. Empty means
// anonymous.
func CallerID(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func pageFromQuery(r *http.Request) store.Page {
	q := r.URL.Query()
	page := store.Page{Size: store.DefaultPageSize}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 0 {
		page.Number = n
	}
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 && s <= 100 {
		page.Size = s
	}
	return page
}
