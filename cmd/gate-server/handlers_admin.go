package main

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"

	"german-gate/internal/store"
)

func listUsersHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := st.Users()
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, map[string]any{
				"name":        u.Name,
				"permissions": u.Perms,
				"group":       u.Group,
				"disabled":    u.Disabled,
				"stats":       statsBlock(u.Stats.Snapshot()),
			})
		}
		writeJSON(w, map[string]any{"items": out})
	}
}

func createUserHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string   `json:"name"`
			Permissions []string `json:"permissions"`
			Group       string   `json:"group"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid request")
			return
		}

		user := store.NewUser(req.Name, store.NewAPIKey(), req.Permissions, req.Group)
		if err := st.AddUser(user); err != nil {
			if errors.Is(err, store.ErrDuplicateUser) {
				writeHTTPError(w, http.StatusConflict, "user exists")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal error")
			return
		}
		// The key is shown exactly once, at creation.
		writeJSON(w, map[string]any{"name": user.Name, "key": user.Key})
	}
}

func debugVarsHandler() http.HandlerFunc {
	return expvar.Handler().ServeHTTP
}
