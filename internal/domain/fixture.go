package domain

import "time"

// FixtureStatus is the upstream status code of a fixture
type FixtureStatus string

const (
	StatusScheduled       FixtureStatus = "SCHEDULED"
	StatusTimed           FixtureStatus = "TIMED"
	StatusInPlay          FixtureStatus = "IN_PLAY"
	StatusPaused          FixtureStatus = "PAUSED"
	StatusLive            FixtureStatus = "LIVE"
	StatusExtraTime       FixtureStatus = "EXTRA_TIME"
	StatusPenaltyShootout FixtureStatus = "PENALTY_SHOOTOUT"
	StatusFinished        FixtureStatus = "FINISHED"
)

// IsLive reports whether the status means the fixture is in progress.
// The same set is used for classification and for team grouping.
func (s FixtureStatus) IsLive() bool {
	switch s {
	case StatusInPlay, StatusPaused, StatusLive, StatusExtraTime, StatusPenaltyShootout:
		return true
	}
	return false
}

// IsPending reports whether the fixture has not kicked off yet
func (s FixtureStatus) IsPending() bool {
	return s == StatusScheduled || s == StatusTimed
}

// Team is the team object embedded in fixtures, standings and team lists
type Team struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ShortName string `json:"shortName,omitempty" yaml:"shortName,omitempty"`
	TLA       string `json:"tla,omitempty" yaml:"tla,omitempty"`
	Crest     string `json:"crest,omitempty" yaml:"crest,omitempty"`
}

// DisplayName prefers the short name over the full name
func (t *Team) DisplayName() string {
	if t == nil {
		return ""
	}
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}

// Goals holds a nullable home/away score pair
type Goals struct {
	Home *int `json:"home" yaml:"home"`
	Away *int `json:"away" yaml:"away"`
}

type Score struct {
	FullTime Goals `json:"fullTime" yaml:"fullTime"`
}

type Competition struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// RawFixture is a validated fixture record as returned by the fixtures API.
// It is cached verbatim in the raw fixture pool.
type RawFixture struct {
	ID          int           `json:"id" yaml:"id"`
	UTCDate     time.Time     `json:"utcDate" yaml:"utcDate"`
	Status      FixtureStatus `json:"status" yaml:"status"`
	HomeTeam    *Team         `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam    *Team         `json:"awayTeam" yaml:"awayTeam"`
	Score       Score         `json:"score" yaml:"score"`
	Competition *Competition  `json:"competition,omitempty" yaml:"competition,omitempty"`
}

// RawPool is the unclassified union of the upcoming and completed fetches
type RawPool struct {
	Upcoming  []RawFixture `json:"upcoming" yaml:"upcoming"`
	Completed []RawFixture `json:"completed" yaml:"completed"`
}

// Fixtures returns the upcoming fixtures followed by the completed ones
func (p RawPool) Fixtures() []RawFixture {
	all := make([]RawFixture, 0, len(p.Upcoming)+len(p.Completed))
	all = append(all, p.Upcoming...)
	all = append(all, p.Completed...)
	return all
}

// IntPtr is a convenience for building scores
func IntPtr(v int) *int {
	return &v
}
