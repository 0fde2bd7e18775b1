package game

import (
	"math"
	"strings"
	"time"

	"gametracker/internal/platform/igdb"
)

const releaseDateLayout = "2006-01-02T15:04:05.000Z"

// Normalize maps a provider record to a Game. Missing optional fields stay
// empty; list fields are never nil.
func Normalize(raw igdb.RawGame) Game {
	g := Game{
		ID:         raw.ID,
		Name:       raw.Name,
		Summary:    raw.Summary,
		Platforms:  names(raw.Platforms),
		Genres:     names(raw.Genres),
		Developers: developers(raw.InvolvedCompanies),
	}
	if g.Summary == "" {
		g.Summary = raw.Storyline
	}
	if raw.Cover != nil && raw.Cover.URL != "" {
		g.Cover = coverURL(raw.Cover.URL)
	}
	if raw.Rating != nil {
		r := math.Round(*raw.Rating) / 10
		g.Rating = &r
	}
	// The provider sends 0 for unknown dates.
	if raw.FirstReleaseDate != nil && *raw.FirstReleaseDate != 0 {
		g.ReleaseDate = time.Unix(*raw.FirstReleaseDate, 0).UTC().Format(releaseDateLayout)
	}
	return g
}

func NormalizeAll(raws []igdb.RawGame) []Game {
	games := make([]Game, 0, len(raws))
	for _, raw := range raws {
		games = append(games, Normalize(raw))
	}
	return games
}

// coverURL turns the provider's protocol-relative thumbnail path into an
// https URL for the large cover size.
func coverURL(path string) string {
	return "https:" + strings.Replace(path, "t_thumb", "t_cover_big", 1)
}

func names(in []igdb.RawNamed) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}

func developers(in []igdb.RawInvolvedCompany) []string {
	out := make([]string, 0, len(in))
	for _, ic := range in {
		if ic.Developer && ic.Company != nil {
			out = append(out, ic.Company.Name)
		}
	}
	return out
}
