package footballdata

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/varoOP/matchday/internal/domain"
)

// ValidationError describes a record that was rejected during parsing
type ValidationError struct {
	Index  int
	ID     int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("record %d (id %d): %s", e.Index, e.ID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

type wireTeam struct {
	ID        *int   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

func (t *wireTeam) valid() bool {
	return t != nil && t.ID != nil
}

func (t *wireTeam) toDomain() domain.Team {
	return domain.Team{ID: *t.ID, Name: t.Name, ShortName: t.ShortName, TLA: t.TLA, Crest: t.Crest}
}

type wireMatch struct {
	ID          *int          `json:"id"`
	UTCDate     string        `json:"utcDate"`
	Status      string        `json:"status"`
	HomeTeam    *wireTeam     `json:"homeTeam"`
	AwayTeam    *wireTeam     `json:"awayTeam"`
	Score       *domain.Score `json:"score"`
	Competition *struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"competition"`
}

type matchesResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

// ParseMatches decodes a /matches response. Fixtures without an id or
// without identifiable home and away teams are dropped and returned as
// validation errors. A response that is not JSON fails as a whole.
func ParseMatches(body []byte) ([]domain.RawFixture, []error, error) {
	var resp matchesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode matches")
	}

	fixtures := make([]domain.RawFixture, 0, len(resp.Matches))
	var invalid []error
	for i, raw := range resp.Matches {
		f, err := parseMatch(i, raw)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		fixtures = append(fixtures, f)
	}

	return fixtures, invalid, nil
}

func parseMatch(i int, raw json.RawMessage) (domain.RawFixture, error) {
	var m wireMatch
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.RawFixture{}, &ValidationError{Index: i, Reason: "not a match object"}
	}

	if m.ID == nil {
		return domain.RawFixture{}, &ValidationError{Index: i, Reason: "missing id"}
	}
	if !m.HomeTeam.valid() || !m.AwayTeam.valid() {
		return domain.RawFixture{}, &ValidationError{Index: i, ID: *m.ID, Reason: "missing home or away team"}
	}

	home, away := m.HomeTeam.toDomain(), m.AwayTeam.toDomain()
	f := domain.RawFixture{
		ID:       *m.ID,
		Status:   domain.FixtureStatus(m.Status),
		HomeTeam: &home,
		AwayTeam: &away,
	}

	// an unparseable date is kept as the zero time
	if t, err := time.Parse(time.RFC3339, m.UTCDate); err == nil {
		f.UTCDate = t.UTC()
	}
	if m.Score != nil {
		f.Score = *m.Score
	}
	if m.Competition != nil {
		f.Competition = &domain.Competition{Code: m.Competition.Code, Name: m.Competition.Name}
	}

	return f, nil
}

type standingsResponse struct {
	Standings []struct {
		Type  string `json:"type"`
		Table []struct {
			Position       int      `json:"position"`
			Team           wireTeam `json:"team"`
			PlayedGames    int      `json:"playedGames"`
			Won            int      `json:"won"`
			Draw           int      `json:"draw"`
			Lost           int      `json:"lost"`
			Points         int      `json:"points"`
			GoalsFor       int      `json:"goalsFor"`
			GoalsAgainst   int      `json:"goalsAgainst"`
			GoalDifference int      `json:"goalDifference"`
			Form           *string  `json:"form"`
		} `json:"table"`
	} `json:"standings"`
}

// ParseStandings returns the first table of a standings response
func ParseStandings(body []byte) ([]domain.StandingRow, error) {
	var resp standingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode standings")
	}

	rows := []domain.StandingRow{}
	if len(resp.Standings) == 0 {
		return rows, nil
	}

	for _, r := range resp.Standings[0].Table {
		if !r.Team.valid() {
			continue
		}
		row := domain.StandingRow{
			Position:       r.Position,
			Team:           r.Team.toDomain(),
			PlayedGames:    r.PlayedGames,
			Won:            r.Won,
			Draw:           r.Draw,
			Lost:           r.Lost,
			Points:         r.Points,
			GoalsFor:       r.GoalsFor,
			GoalsAgainst:   r.GoalsAgainst,
			GoalDifference: r.GoalDifference,
		}
		if r.Form != nil {
			row.Form = *r.Form
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type teamsResponse struct {
	Teams []*wireTeam `json:"teams"`
}

// ParseTeams decodes a competition teams response, dropping teams without an id
func ParseTeams(body []byte) ([]domain.Team, []error, error) {
	var resp teamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode teams")
	}

	teams := make([]domain.Team, 0, len(resp.Teams))
	var invalid []error
	for i, t := range resp.Teams {
		if !t.valid() {
			invalid = append(invalid, &ValidationError{Index: i, Reason: "missing team id"})
			continue
		}
		teams = append(teams, t.toDomain())
	}

	return teams, invalid, nil
}

type teamResponse struct {
	wireTeam
	Venue   string `json:"venue"`
	Founded *int   `json:"founded"`
	Website string `json:"website"`
	Squad   []struct {
		ID          *int   `json:"id"`
		Name        string `json:"name"`
		Position    string `json:"position"`
		Nationality string `json:"nationality"`
		DateOfBirth string `json:"dateOfBirth"`
	} `json:"squad"`
}

// ParseTeam decodes a single team profile
func ParseTeam(body []byte) (*domain.TeamProfile, error) {
	var resp teamResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode team")
	}

	if !resp.wireTeam.valid() {
		return nil, &ValidationError{Reason: "missing team id"}
	}

	p := &domain.TeamProfile{
		Team:    resp.wireTeam.toDomain(),
		Venue:   resp.Venue,
		Website: resp.Website,
		Squad:   make([]domain.Player, 0, len(resp.Squad)),
	}
	if resp.Founded != nil {
		p.Founded = *resp.Founded
	}

	for _, pl := range resp.Squad {
		if pl.ID == nil {
			continue
		}
		p.Squad = append(p.Squad, domain.Player{
			ID:          *pl.ID,
			Name:        pl.Name,
			Position:    pl.Position,
			Nationality: pl.Nationality,
			DateOfBirth: pl.DateOfBirth,
		})
	}

	return p, nil
}
