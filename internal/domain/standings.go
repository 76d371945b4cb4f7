package domain

type StandingRow struct {
	Position       int    `json:"position" yaml:"position"`
	Team           Team   `json:"team" yaml:"team"`
	PlayedGames    int    `json:"playedGames" yaml:"playedGames"`
	Won            int    `json:"won" yaml:"won"`
	Draw           int    `json:"draw" yaml:"draw"`
	Lost           int    `json:"lost" yaml:"lost"`
	Points         int    `json:"points" yaml:"points"`
	GoalsFor       int    `json:"goalsFor" yaml:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst" yaml:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference" yaml:"goalDifference"`
	Form           string `json:"form,omitempty" yaml:"form,omitempty"`
}

type Player struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Position    string `json:"position,omitempty" yaml:"position,omitempty"`
	Nationality string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
}

// TeamProfile is a team with its venue details and squad
type TeamProfile struct {
	Team    `yaml:",inline"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Founded int      `json:"founded,omitempty" yaml:"founded,omitempty"`
	Website string   `json:"website,omitempty" yaml:"website,omitempty"`
	Squad   []Player `json:"squad" yaml:"squad"`
}
