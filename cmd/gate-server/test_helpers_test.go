package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"german-gate/internal/app/check"
	"german-gate/internal/app/moderation"
	"german-gate/internal/banlist"
	"german-gate/internal/config"
	"german-gate/internal/infer"
	"german-gate/internal/store"

	"github.com/go-chi/chi/v5"
)

const testUUID = "0123456789abcdef0123456789abcdef"

func newTestRouter(t *testing.T, st *store.Store, cfg config.ServerConfig, providerURL, banURL string) *chi.Mux {
	t.Helper()
	classifier := infer.NewClient(config.ServerConfig{
		OpenAIBaseURL:       providerURL,
		OpenAIAPIKey:        "sk-test",
		OpenAIModel:         "gpt-4.1-nano",
		PricePer1MInputUSD:  0.1,
		PricePer1MOutputUSD: 0.4,
	})
	checker := check.NewService(st, classifier, banlist.NewClient(banURL), 600)
	return newRouter(st, cfg, checker, moderation.NewService(st))
}

func createTestUser(t *testing.T, st *store.Store, name string, perms ...string) *store.User {
	t.Helper()
	u := store.NewUser(name, "gda_test_"+name, perms, "tests")
	if err := st.AddUser(u); err != nil {
		t.Fatalf("add user %q: %v", name, err)
	}
	return u
}

// fakeProvider answers every chat completion with the given reply text.
func fakeProvider(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": reply}}},
			"usage":   map[string]any{"prompt_tokens": 100, "completion_tokens": 10},
		})
	}))
}

func failingProvider(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
}

// fakeBanAPI answers every lookup with the given JSON body.
func fakeBanAPI(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
}

func doRequest(t *testing.T, router *chi.Mux, method, path, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
