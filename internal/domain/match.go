package domain

const (
	MatchStatusLive     = "Live"
	MatchStatusFullTime = "Full-Time"
)

// ClassifiedMatch is the display-ready view of a fixture.
// Non-live upcoming fixtures carry Date and Time, live and finished
// fixtures carry Score and Status.
type ClassifiedMatch struct {
	ID       int    `json:"id" yaml:"id"`
	Home     string `json:"home" yaml:"home"`
	Away     string `json:"away" yaml:"away"`
	HomeLogo string `json:"homeLogo" yaml:"homeLogo"`
	AwayLogo string `json:"awayLogo" yaml:"awayLogo"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Time     string `json:"time,omitempty" yaml:"time,omitempty"`
	Score    string `json:"score,omitempty" yaml:"score,omitempty"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
}

// MatchBoard holds the three partitions shown on the matches view
type MatchBoard struct {
	Live      []ClassifiedMatch `json:"live" yaml:"live"`
	Completed []ClassifiedMatch `json:"completed" yaml:"completed"`
	Upcoming  []ClassifiedMatch `json:"upcoming" yaml:"upcoming"`
}

// NewMatchBoard returns a board with empty, non-nil partitions
func NewMatchBoard() *MatchBoard {
	return &MatchBoard{
		Live:      []ClassifiedMatch{},
		Completed: []ClassifiedMatch{},
		Upcoming:  []ClassifiedMatch{},
	}
}

// Len returns the total number of matches on the board
func (b *MatchBoard) Len() int {
	return len(b.Live) + len(b.Completed) + len(b.Upcoming)
}

// CompetitionGroup is one team's fixtures in a single competition
type CompetitionGroup struct {
	Code    string       `json:"code" yaml:"code"`
	Name    string       `json:"name" yaml:"name"`
	Matches []RawFixture `json:"matches" yaml:"matches"`
}
