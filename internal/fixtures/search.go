package fixtures

import (
	"strings"

	"github.com/varoOP/matchday/internal/domain"
)

// DefaultSearchLimit bounds the listing when no query is given
const DefaultSearchLimit = 60

// SearchTeams filters teams by a case-insensitive substring of their name
// or short name. An empty query returns the first DefaultSearchLimit teams.
func SearchTeams(teams []domain.Team, query string) []domain.Team {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if len(teams) > DefaultSearchLimit {
			return teams[:DefaultSearchLimit]
		}
		return teams
	}

	out := []domain.Team{}
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), query) || strings.Contains(strings.ToLower(t.ShortName), query) {
			out = append(out, t)
		}
	}
	return out
}
