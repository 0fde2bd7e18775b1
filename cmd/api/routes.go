package main

import (
	"context"
	"net/http"
	"time"

	"gametracker/internal/auth"
	"gametracker/internal/comment"
	"gametracker/internal/game"
	"gametracker/internal/httpx"
	"gametracker/internal/list"
	"gametracker/internal/review"
	"gametracker/internal/user"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type handlers struct {
	auth    *auth.HTTPHandler
	users   *user.HTTPHandler
	games   *game.HTTPHandler
	lists   *list.HTTPHandler
	reviews *review.HTTPHandler
	comment *comment.HTTPHandler
}

type limits struct {
	general  *httpx.RateLimitMiddleware
	register *httpx.RateLimitMiddleware
	login    *httpx.RateLimitMiddleware
	content  *httpx.RateLimitMiddleware
	search   *httpx.RateLimitMiddleware
}

func defaultLimits() limits {
	return limits{
		general:  httpx.NewRateLimitMiddleware(100, 15*time.Minute, "Too many requests, please try again later"),
		register: httpx.NewRateLimitMiddleware(5, time.Hour, "Too many accounts created, please try again later"),
		login:    httpx.NewRateLimitMiddleware(10, 15*time.Minute, "Too many login attempts, please try again later").SkipSuccessful(),
		content:  httpx.NewRateLimitMiddleware(30, time.Hour, "Too many submissions, please slow down"),
		search:   httpx.NewRateLimitMiddleware(20, time.Minute, "Too many searches, please slow down"),
	}
}

type routerConfig struct {
	jwtSecret      string
	allowedOrigins []string
	maxBodyBytes   int64
	ready          func(ctx context.Context) error
}

func newRouter(cfg routerConfig, h handlers, lim limits) http.Handler {
	requireAuth := httpx.AuthMiddleware(cfg.jwtSecret)
	optionalAuth := httpx.OptionalAuthMiddleware(cfg.jwtSecret)
	authed := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}
	// content creation is limited per client before the token is checked
	creating := func(fn http.HandlerFunc) http.Handler {
		return lim.content.Middleware(requireAuth(fn))
	}

	api := http.NewServeMux()

	api.Handle("POST /api/auth/register", lim.register.Wrap(h.auth.Register))
	api.Handle("POST /api/auth/login", lim.login.Wrap(h.auth.Login))
	api.Handle("GET /api/auth/me", authed(h.auth.Me))

	api.HandleFunc("GET /api/users/{id}", h.users.GetProfile)
	api.Handle("PUT /api/users/me", authed(h.users.UpdateMe))

	api.Handle("GET /api/games/search", lim.search.Wrap(h.games.Search))
	api.HandleFunc("GET /api/games/trending", h.games.Trending)
	api.HandleFunc("GET /api/games/recent", h.games.Recent)
	api.HandleFunc("GET /api/games/{id}", h.games.GetByID)

	api.HandleFunc("GET /api/lists", h.lists.ListPublic)
	api.Handle("GET /api/lists/my", authed(h.lists.ListMine))
	api.Handle("GET /api/lists/{id}", optionalAuth(http.HandlerFunc(h.lists.Get)))
	api.Handle("POST /api/lists", creating(h.lists.Create))
	api.Handle("PUT /api/lists/{id}", authed(h.lists.Update))
	api.Handle("DELETE /api/lists/{id}", authed(h.lists.Delete))
	api.Handle("POST /api/lists/{id}/games", creating(h.lists.AddGame))
	api.Handle("DELETE /api/lists/{id}/games/{gameId}", authed(h.lists.RemoveGame))

	api.HandleFunc("GET /api/reviews/game/{gameId}", h.reviews.ListByGame)
	api.HandleFunc("GET /api/reviews/user/{userId}", h.reviews.ListByUser)
	api.Handle("POST /api/reviews", creating(h.reviews.Save))
	api.Handle("DELETE /api/reviews/{id}", authed(h.reviews.Delete))

	api.HandleFunc("GET /api/comments/game/{gameId}", h.comment.ListByGame)
	api.Handle("POST /api/comments", creating(h.comment.Create))
	api.Handle("DELETE /api/comments/{id}", authed(h.comment.Delete))

	root := http.NewServeMux()
	root.Handle("/api/", lim.general.Middleware(api))
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := cfg.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	root.Handle("GET /metrics", promhttp.Handler())

	return httpx.Chain(root,
		httpx.AccessLogMiddleware,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.allowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.maxBodyBytes),
	)
}
