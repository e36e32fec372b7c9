package main

import (
	"errors"
	"expvar"
	"net/http"

	"german-gate/internal/app/check"

	"github.com/go-chi/chi/v5"
)

var (
	checkTotal       = expvar.NewInt("check_total")
	checkInvalid     = expvar.NewInt("check_invalid_total")
	inferErrorsTotal = expvar.NewInt("infer_errors_total")
	banErrorsTotal   = expvar.NewInt("ban_errors_total")
)

func checkHandler(svc *check.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFrom(r.Context())
		out, err := svc.Verify(r.Context(), chi.URLParam(r, "uuid"), chi.URLParam(r, "username"), caller)
		if err != nil {
			switch {
			case errors.Is(err, check.ErrInvalidInput):
				checkInvalid.Add(1)
				writeHTTPError(w, http.StatusBadRequest, "invalid uuid/username")
			case errors.Is(err, check.ErrClassificationUnavailable):
				inferErrorsTotal.Add(1)
				writeHTTPError(w, http.StatusBadGateway, "could not infer language")
			case errors.Is(err, check.ErrBanCheckUnavailable):
				banErrorsTotal.Add(1)
				writeHTTPError(w, http.StatusBadGateway, "could not check ban status")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		checkTotal.Add(1)

		resp := map[string]any{
			"language": map[string]any{
				"verdict": out.Verdict,
				"source":  out.Source,
				"reason":  out.Reason,
			},
		}
		if out.FirstCheck {
			resp["first_check"] = true
		}
		if !out.Terminal {
			resp["banned"] = out.Banned
			if !out.Banned {
				resp["cooldown"] = out.CooldownRemaining
			}
		}
		writeJSON(w, resp)
	}
}
