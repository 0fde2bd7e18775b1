package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gametracker/internal/auth"
	"gametracker/internal/cache"
	"gametracker/internal/comment"
	"gametracker/internal/config"
	"gametracker/internal/game"
	"gametracker/internal/list"
	"gametracker/internal/platform/httpclient"
	"gametracker/internal/platform/igdb"
	"gametracker/internal/platform/logging"
	"gametracker/internal/platform/postgres"
	"gametracker/internal/review"
	"gametracker/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newGameService(ctx context.Context, cfg config.Config) (*game.Service, func(), error) {
	httpClient := httpclient.New(httpclient.ClientConfig{Timeout: cfg.IGDB.Timeout})
	tokens := igdb.NewTokenManager(httpClient, cfg.IGDB.TokenURL, cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
	catalog := igdb.NewClient(httpClient, cfg.IGDB.BaseURL, cfg.IGDB.ClientID, tokens, cfg.IGDB.RequestsPerSecond)

	opts := game.Options{
		CacheTTL:    cfg.Cache.TTL,
		MaxGames:    cfg.Cache.MaxGames,
		MaxSearches: cfg.Cache.MaxSearches,
	}
	closeFn := func() {}
	if cfg.Cache.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.Cache.RedisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		opts.Remote = store
		closeFn = func() { _ = store.Close() }
		slog.Info("shared catalog cache enabled")
	}

	svc, err := game.NewService(catalog, opts)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	games, closeCache, err := newGameService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	users := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout))

	h := handlers{
		auth:    auth.NewHTTPHandler(auth.NewService(cfg.JWTSecret, cfg.JWTTTL, users)),
		users:   user.NewHTTPHandler(users),
		games:   game.NewHTTPHandler(games),
		lists:   list.NewHTTPHandler(list.NewService(list.NewPostgresRepo(pool, cfg.DBTimeout))),
		reviews: review.NewHTTPHandler(review.NewService(review.NewPostgresRepo(pool, cfg.DBTimeout))),
		comment: comment.NewHTTPHandler(comment.NewService(comment.NewPostgresRepo(pool, cfg.DBTimeout), games)),
	}

	router := newRouter(routerConfig{
		jwtSecret:      cfg.JWTSecret,
		allowedOrigins: cfg.AllowedOrigins,
		maxBodyBytes:   cfg.MaxBodyBytes,
		ready:          pool.Ping,
	}, h, defaultLimits())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
