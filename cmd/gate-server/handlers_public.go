package main

import (
	"net/http"

	"german-gate/internal/ledger"
	"german-gate/internal/store"
)

func indexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("german-gate\n"))
	}
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "players": st.PlayerCount()})
	}
}

func whoamiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := callerFrom(r.Context())
		writeJSON(w, map[string]any{
			"name":        user.Name,
			"permissions": user.Perms,
			"group":       user.Group,
			"stats":       statsBlock(user.Stats.Snapshot()),
		})
	}
}

func statsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := callerFrom(r.Context())
		writeJSON(w, map[string]any{
			"personal": statsBlock(user.Stats.Snapshot()),
			"global":   statsBlock(st.Global.Snapshot()),
		})
	}
}

func statsBlock(sn ledger.Snapshot) map[string]any {
	return map[string]any{
		"checks": map[string]any{
			"total":  sn.Checks,
			"german": sn.German,
			"banned": sn.Banned,
		},
		"cost": sn.Cost,
	}
}
