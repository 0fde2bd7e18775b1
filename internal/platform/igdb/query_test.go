package igdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const base = "fields name, summary, storyline, cover.url, rating, first_release_date, platforms.name, involved_companies.company.name, involved_companies.developer, genres.name;"

func TestSearchGamesQuery(t *testing.T) {
	assert.Equal(t, base+` search "zelda"; limit 10;`, SearchGamesQuery("zelda", 10))
}

func TestSearchGamesQuery_Escapes(t *testing.T) {
	got := SearchGamesQuery(`a "b" \c`, 5)
	assert.Contains(t, got, `search "a \"b\" \\c";`)
}

func TestGameByIDQuery(t *testing.T) {
	want := "fields name, summary, storyline, cover.url, rating, first_release_date, platforms.name, involved_companies.company.name, involved_companies.developer, genres.name, rating_count, screenshots.url; where id = 1942;"
	assert.Equal(t, want, GameByIDQuery(1942))
}

func TestGameByIDQuery_DoesNotMutateBaseFields(t *testing.T) {
	_ = GameByIDQuery(1)
	assert.Equal(t, base+" limit 3;", NewQuery(baseGameFields...).Limit(3).String())
}

func TestTrendingGamesQuery(t *testing.T) {
	assert.Equal(t, base+" where rating > 80 & rating_count > 100; sort rating desc; limit 20;", TrendingGamesQuery(20))
}

func TestRecentReleasesQuery(t *testing.T) {
	now := time.Unix(1700000000, 0)

	got := RecentReleasesQuery(now, 15)

	assert.Equal(t, base+" where first_release_date >= 1692224000 & first_release_date <= 1700000000; sort first_release_date desc; limit 15;", got)
}
