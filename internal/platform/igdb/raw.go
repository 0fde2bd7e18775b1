package igdb

// RawGame is a game record as returned by the catalog provider. It never
// leaves the catalog boundary; see game.Normalize.
type RawGame struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	Summary           string               `json:"summary,omitempty"`
	Storyline         string               `json:"storyline,omitempty"`
	Cover             *RawImage            `json:"cover,omitempty"`
	Rating            *float64             `json:"rating,omitempty"`
	RatingCount       *int                 `json:"rating_count,omitempty"`
	FirstReleaseDate  *int64               `json:"first_release_date,omitempty"`
	Platforms         []RawNamed           `json:"platforms,omitempty"`
	Genres            []RawNamed           `json:"genres,omitempty"`
	InvolvedCompanies []RawInvolvedCompany `json:"involved_companies,omitempty"`
	Screenshots       []RawImage           `json:"screenshots,omitempty"`
}

type RawImage struct {
	ID  int64  `json:"id"`
	URL string `json:"url,omitempty"`
}

type RawNamed struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RawInvolvedCompany struct {
	ID        int64     `json:"id"`
	Company   *RawNamed `json:"company,omitempty"`
	Developer bool      `json:"developer"`
}
