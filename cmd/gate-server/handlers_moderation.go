package main

import (
	"errors"
	"io"
	"net/http"

	"german-gate/internal/app/moderation"

	"github.com/go-chi/chi/v5"
)

const maxReasonBodyBytes = 4096

func pinHandler(mod *moderation.Service, allow bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reason, err := io.ReadAll(io.LimitReader(r.Body, maxReasonBodyBytes))
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid body")
			return
		}

		uuid := chi.URLParam(r, "uuid")
		username := chi.URLParam(r, "username")
		if allow {
			err = mod.Allowlist(r.Context(), uuid, username, string(reason))
		} else {
			err = mod.Blocklist(r.Context(), uuid, username, string(reason))
		}
		if err != nil {
			if errors.Is(err, moderation.ErrInvalidInput) {
				writeHTTPError(w, http.StatusBadRequest, "invalid uuid/username")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func playerInfoHandler(mod *moderation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := mod.PlayerInfo(r.Context(), chi.URLParam(r, "uuid"))
		if err != nil {
			switch {
			case errors.Is(err, moderation.ErrInvalidInput):
				writeHTTPError(w, http.StatusBadRequest, "invalid uuid")
			case errors.Is(err, moderation.ErrPlayerNotFound):
				writeHTTPError(w, http.StatusNotFound, "player not found")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		writeJSON(w, info)
	}
}
