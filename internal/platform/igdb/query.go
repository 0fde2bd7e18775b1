package igdb

import (
	"fmt"
	"strings"
	"time"
)

const EndpointGames = "games"

var baseGameFields = []string{
	"name", "summary", "storyline", "cover.url", "rating", "first_release_date",
	"platforms.name", "involved_companies.company.name", "involved_companies.developer", "genres.name",
}

const recentWindow = 90 * 24 * time.Hour

// Query builds a request body in the provider's query language.
type Query struct {
	fields []string
	search string
	where  string
	sort   string
	limit  int
}

func NewQuery(fields ...string) *Query {
	return &Query{fields: fields}
}

func (q *Query) Search(text string) *Query {
	q.search = text
	return q
}

func (q *Query) Where(cond string) *Query {
	q.where = cond
	return q
}

func (q *Query) Sort(field, direction string) *Query {
	q.sort = field + " " + direction
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("fields ")
	b.WriteString(strings.Join(q.fields, ", "))
	b.WriteString(";")
	if q.search != "" {
		fmt.Fprintf(&b, " search \"%s\";", escape(q.search))
	}
	if q.where != "" {
		fmt.Fprintf(&b, " where %s;", q.where)
	}
	if q.sort != "" {
		fmt.Fprintf(&b, " sort %s;", q.sort)
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " limit %d;", q.limit)
	}
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func SearchGamesQuery(text string, limit int) string {
	return NewQuery(baseGameFields...).Search(text).Limit(limit).String()
}

func GameByIDQuery(id int64) string {
	fields := append(append([]string{}, baseGameFields...), "rating_count", "screenshots.url")
	return NewQuery(fields...).Where(fmt.Sprintf("id = %d", id)).String()
}

func TrendingGamesQuery(limit int) string {
	return NewQuery(baseGameFields...).
		Where("rating > 80 & rating_count > 100").
		Sort("rating", "desc").
		Limit(limit).
		String()
}

// RecentReleasesQuery selects games released in the 90 days up to now.
func RecentReleasesQuery(now time.Time, limit int) string {
	to := now.Unix()
	from := now.Add(-recentWindow).Unix()
	return NewQuery(baseGameFields...).
		Where(fmt.Sprintf("first_release_date >= %d & first_release_date <= %d", from, to)).
		Sort("first_release_date", "desc").
		Limit(limit).
		String()
}
