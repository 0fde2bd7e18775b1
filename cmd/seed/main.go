package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gametracker/internal/auth"
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

const demoPassword = "password123"

var demoUsers = []struct{ email, username string }{
	{"ana@example.com", "ana_plays"},
	{"bruno@example.com", "bruno_gg"},
	{"carla@example.com", "carla_rpg"},
}

func main() {
	games := flag.Int("games", 10, "number of trending games to seed from")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))

	if err := run(context.Background(), cfg, *games); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, gameCount int) error {
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	httpClient := httpclient.New(httpclient.ClientConfig{Timeout: cfg.IGDB.Timeout})
	tokens := igdb.NewTokenManager(httpClient, cfg.IGDB.TokenURL, cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
	catalog, err := game.NewService(
		igdb.NewClient(httpClient, cfg.IGDB.BaseURL, cfg.IGDB.ClientID, tokens, cfg.IGDB.RequestsPerSecond),
		game.Options{CacheTTL: cfg.Cache.TTL, MaxGames: cfg.Cache.MaxGames, MaxSearches: cfg.Cache.MaxSearches},
	)
	if err != nil {
		return err
	}

	trending, err := catalog.GetTrendingGames(ctx, gameCount)
	if err != nil {
		return fmt.Errorf("fetch trending games: %w", err)
	}
	if len(trending) == 0 {
		return errors.New("catalog returned no trending games")
	}
	slog.Info("fetched trending games", "count", len(trending))

	users := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout))
	accounts := auth.NewService(cfg.JWTSecret, cfg.JWTTTL, users)
	lists := list.NewService(list.NewPostgresRepo(pool, cfg.DBTimeout))
	reviews := review.NewService(review.NewPostgresRepo(pool, cfg.DBTimeout))

	for i, du := range demoUsers {
		session, err := accounts.Register(ctx, du.email, du.username, demoPassword)
		if errors.Is(err, user.ErrAlreadyExists) {
			session, err = accounts.Login(ctx, du.email, demoPassword)
		}
		if err != nil {
			return fmt.Errorf("account %s: %w", du.username, err)
		}
		u := session.User

		desc := "Picked from this week's trending games"
		l, err := lists.Create(ctx, u.ID, list.NewList{
			Name:        fmt.Sprintf("%s's favourites", u.Username),
			Description: &desc,
			IsPublic:    i%2 == 0,
		})
		if err != nil {
			return fmt.Errorf("create list for %s: %w", u.Username, err)
		}

		for j, g := range trending {
			if (j+i)%2 == 0 {
				if _, err := lists.AddGame(ctx, l.ID, u.ID, g.ID); err != nil && !errors.Is(err, list.ErrAlreadyInList) {
					return fmt.Errorf("add game %d: %w", g.ID, err)
				}
			}
			if j%len(demoUsers) == i {
				if _, err := reviews.Save(ctx, u.ID, review.NewReview{GameID: g.ID, Rating: demoRating(g, i)}); err != nil {
					return fmt.Errorf("review game %d: %w", g.ID, err)
				}
			}
		}
		slog.Info("seeded user", "username", u.Username, "list_id", l.ID)
	}

	slog.Info("seed complete", "users", len(demoUsers), "games", len(trending))
	return nil
}

// demoRating spreads reviews around the catalog rating.
func demoRating(g game.Game, offset int) float64 {
	base := 7.0
	if g.Rating != nil {
		base = *g.Rating
	}
	r := base - float64(offset)*0.5
	if r < 0 {
		r = 0
	}
	return r
}
