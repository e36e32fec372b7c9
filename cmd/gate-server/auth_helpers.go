package main

import (
	"context"
	"net/http"

	"german-gate/internal/store"
)

type callerContextKey struct{}

// callerAuthMiddleware resolves the X-Api-Key header against the caller
// registry. Disabled callers are rejected the same way as unknown keys.
func callerAuthMiddleware(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Api-Key")
			if key == "" {
				writeHTTPError(w, http.StatusUnauthorized, "unauthorized (api key missing)")
				return
			}
			user, ok := st.UserByKey(key)
			if !ok || user.Disabled {
				writeHTTPError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), callerContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerFrom(ctx context.Context) *store.User {
	user, _ := ctx.Value(callerContextKey{}).(*store.User)
	return user
}

func requirePerm(needed string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := callerFrom(r.Context())
			if user == nil || !user.HasPerm(needed) {
				writeHTTPError(w, http.StatusForbidden, "forbidden "+needed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func adminAuthMiddleware(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" || !checkAdminAuth(r, adminKey) {
				writeHTTPError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkAdminAuth(r *http.Request, adminKey string) bool {
	if v := r.Header.Get("X-Admin-Key"); v == adminKey {
		return true
	}
	auth := r.Header.Get("Authorization")
	prefix := "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):] == adminKey
	}
	return false
}
