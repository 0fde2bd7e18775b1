package game

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gametracker/internal/cache"
	"gametracker/internal/platform/igdb"
)

// Catalog is satisfied by *igdb.Client.
type Catalog interface {
	Query(ctx context.Context, endpoint, body string) ([]igdb.RawGame, error)
}

type Options struct {
	CacheTTL    time.Duration
	MaxGames    int
	MaxSearches int
	// Remote enables the shared cache tier when non-nil.
	Remote cache.Remote
	Now    func() time.Time
}

type Service struct {
	catalog  Catalog
	games    *cache.Cache[int64, Game]
	searches *cache.Cache[SearchKey, []Game]
	now      func() time.Time
}

func NewService(catalog Catalog, opts Options) (*Service, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	games, err := cache.New[int64, Game](cache.Config{
		Name:       "game",
		TTL:        opts.CacheTTL,
		MaxEntries: opts.MaxGames,
		Remote:     opts.Remote,
		Now:        opts.Now,
	})
	if err != nil {
		return nil, err
	}
	searches, err := cache.New[SearchKey, []Game](cache.Config{
		Name:       "search",
		TTL:        opts.CacheTTL,
		MaxEntries: opts.MaxSearches,
		Remote:     opts.Remote,
		Now:        opts.Now,
	})
	if err != nil {
		return nil, err
	}
	return &Service{catalog: catalog, games: games, searches: searches, now: opts.Now}, nil
}

func (s *Service) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	query = strings.TrimSpace(query)
	return s.searches.GetOrFetch(ctx, NewSearchKey(query, limit), func(ctx context.Context) ([]Game, error) {
		raws, err := s.catalog.Query(ctx, igdb.EndpointGames, igdb.SearchGamesQuery(query, limit))
		if err != nil {
			return nil, err
		}
		return NormalizeAll(raws), nil
	})
}

func (s *Service) GetGameByID(ctx context.Context, id int64) (Game, error) {
	return s.games.GetOrFetch(ctx, id, func(ctx context.Context) (Game, error) {
		raws, err := s.catalog.Query(ctx, igdb.EndpointGames, igdb.GameByIDQuery(id))
		if err != nil {
			return Game{}, err
		}
		if len(raws) == 0 {
			return Game{}, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return Normalize(raws[0]), nil
	})
}

// GetTrendingGames and GetRecentReleases always go to the catalog; only
// id and search lookups are cached.
func (s *Service) GetTrendingGames(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	raws, err := s.catalog.Query(ctx, igdb.EndpointGames, igdb.TrendingGamesQuery(limit))
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raws), nil
}

func (s *Service) GetRecentReleases(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	raws, err := s.catalog.Query(ctx, igdb.EndpointGames, igdb.RecentReleasesQuery(s.now(), limit))
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raws), nil
}

// ErrorStatus maps catalog errors to an HTTP status, error code and message.
func ErrorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Game not found"
	case errors.Is(err, igdb.ErrRateLimited):
		return http.StatusTooManyRequests, "CATALOG_RATE_LIMITED", "Game catalog is busy, try again shortly"
	case errors.Is(err, igdb.ErrAuthFailure):
		return http.StatusBadGateway, "CATALOG_AUTH_FAILED", "Game catalog authentication failed"
	case errors.Is(err, igdb.ErrCatalogUnavailable):
		return http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Game catalog is unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
