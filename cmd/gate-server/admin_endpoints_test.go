package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"german-gate/internal/config"
	"german-gate/internal/store"
)

func adminRequest(t *testing.T, router http.Handler, method, path, adminKey, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuthRequired(t *testing.T) {
	st := store.New(t.TempDir())
	cfg := config.ServerConfig{AdminAPIKey: "topsecret"}
	router := newTestRouter(t, st, cfg, "http://unused", "http://unused/")

	if w := adminRequest(t, router, http.MethodGet, "/admin/users", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no key: status = %d, want 401", w.Code)
	}
	if w := adminRequest(t, router, http.MethodGet, "/admin/users", "wrong", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad key: status = %d, want 401", w.Code)
	}

	// Bearer form also accepted.
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer key: status = %d, want 200", w.Code)
	}
}

func TestAdminDisabledWithoutKey(t *testing.T) {
	st := store.New(t.TempDir())
	router := newTestRouter(t, st, config.ServerConfig{}, "http://unused", "http://unused/")

	if w := adminRequest(t, router, http.MethodGet, "/admin/users", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("unconfigured admin key must reject: status = %d", w.Code)
	}
}

func TestAdminCreateAndListUsers(t *testing.T) {
	st := store.New(t.TempDir())
	cfg := config.ServerConfig{AdminAPIKey: "topsecret"}
	router := newTestRouter(t, st, cfg, "http://unused", "http://unused/")

	w := adminRequest(t, router, http.MethodPost, "/admin/users", "topsecret",
		`{"name":"plugin","permissions":["check"],"group":"minecraft"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	key, _ := body["key"].(string)
	if !strings.HasPrefix(key, "gda_") {
		t.Fatalf("key = %q", key)
	}

	u, ok := st.UserByKey(key)
	if !ok || !u.HasPerm("check") || u.Group != "minecraft" {
		t.Fatalf("user = %+v, %v", u, ok)
	}

	// Duplicate name conflicts.
	w = adminRequest(t, router, http.MethodPost, "/admin/users", "topsecret", `{"name":"plugin"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}

	w = adminRequest(t, router, http.MethodGet, "/admin/users", "topsecret", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := decodeBody(t, w)
	items := list["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	if _, ok := items[0].(map[string]any)["key"]; ok {
		t.Fatalf("list leaks keys: %v", items)
	}

	// Malformed body.
	w = adminRequest(t, router, http.MethodPost, "/admin/users", "topsecret", `{"name":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty name status = %d, want 400", w.Code)
	}
}

func TestAdminDebugVars(t *testing.T) {
	st := store.New(t.TempDir())
	cfg := config.ServerConfig{AdminAPIKey: "topsecret"}
	router := newTestRouter(t, st, cfg, "http://unused", "http://unused/")

	w := adminRequest(t, router, http.MethodGet, "/admin/debug/vars", "topsecret", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "check_total") {
		t.Fatalf("expvar output missing counters: %s", w.Body.String())
	}
}
