package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"german-gate/internal/app/check"
	"german-gate/internal/app/moderation"
	"german-gate/internal/banlist"
	"german-gate/internal/config"
	"german-gate/internal/infer"
	"german-gate/internal/logging"
	"german-gate/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	st := store.New(cfg.DataDir)
	if err := st.Load(); err != nil {
		log.Fatal().Err(err).Msg("snapshot load failed")
	}
	seedUser(st, cfg.SeedUserName, cfg.SeedUserKey)
	if len(st.Users()) == 0 {
		log.Warn().Msg("no callers configured; every request will be unauthorized")
	}
	log.Info().Int("players", st.PlayerCount()).Int("users", len(st.Users())).Msg("snapshot loaded")

	checker := check.NewService(st, infer.NewClient(cfg), banlist.NewClient(cfg.BanAPIURL), cfg.CooldownSeconds)
	mod := moderation.NewService(st)
	r := newRouter(st, cfg, checker, mod)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")

	if cfg.SnapshotIntervalMins > 0 {
		go snapshotLoop(ctx, st, time.Duration(cfg.SnapshotIntervalMins)*time.Minute)
	}

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	if err := st.Save(); err != nil {
		log.Error().Err(err).Msg("snapshot save failed")
	} else {
		log.Info().Msg("snapshot saved")
	}
	_ = logging.Close()
}

func newRouter(st *store.Store, cfg config.ServerConfig, checker *check.Service, mod *moderation.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", indexHandler())
	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Group(func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(bodyCaptureMiddleware(4096))
		r.Use(callerAuthMiddleware(st))

		r.Get("/whoami", whoamiHandler())
		r.Get("/stats", statsHandler(st))

		r.With(requirePerm("check")).Get("/check/{uuid}/{username}", checkHandler(checker))

		r.Group(func(r chi.Router) {
			r.Use(requirePerm("moderate"))
			r.Get("/players/{uuid}", playerInfoHandler(mod))
			r.Post("/allowlist/{uuid}/{username}", pinHandler(mod, true))
			r.Post("/blocklist/{uuid}/{username}", pinHandler(mod, false))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(adminAuthMiddleware(cfg.AdminAPIKey))
		r.Get("/users", listUsersHandler(st))
		r.Post("/users", createUserHandler(st))
		r.Get("/debug/vars", debugVarsHandler())
	})

	return r
}

func seedUser(st *store.Store, name, key string) {
	if name == "" || key == "" {
		return
	}
	if _, ok := st.UserByKey(key); ok {
		return
	}
	u := store.NewUser(name, key, []string{"check", "moderate"}, "seed")
	if err := st.AddUser(u); err != nil {
		log.Warn().Err(err).Str("name", name).Msg("seed user skipped")
		return
	}
	log.Info().Str("name", name).Msg("seed user created")
}

func snapshotLoop(ctx context.Context, st *store.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := st.Save(); err != nil {
				log.Error().Err(err).Msg("periodic snapshot failed")
			} else {
				log.Debug().Msg("periodic snapshot written")
			}
		}
	}
}
