package classify

import (
	"fmt"
	"sort"
	"time"

	"github.com/varoOP/matchday/internal/domain"
)

// Aggregate partitions the two upstream fetches into the live, completed and
// upcoming collections. Fixtures from upcoming are live when their status is
// in the live set and upcoming otherwise; every fixture from completed is
// completed. Display dates and times are rendered in loc.
func Aggregate(upcoming, completed []domain.RawFixture, loc *time.Location) *domain.MatchBoard {
	if loc == nil {
		loc = time.Local
	}

	board := domain.NewMatchBoard()

	for _, f := range upcoming {
		m := baseMatch(f)
		if f.Status.IsLive() {
			m.Score = fmt.Sprintf("%d - %d", goals(f.Score.FullTime.Home), goals(f.Score.FullTime.Away))
			m.Status = domain.MatchStatusLive
			board.Live = append(board.Live, m)
			continue
		}

		m.Date, m.Time = DisplayDateTime(f.UTCDate, loc)
		board.Upcoming = append(board.Upcoming, m)
	}

	finished := make([]domain.RawFixture, len(completed))
	copy(finished, completed)
	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].UTCDate.After(finished[j].UTCDate)
	})

	for _, f := range finished {
		m := baseMatch(f)
		// a finished fixture without a recorded score is shown as 0 - 0
		m.Score = fmt.Sprintf("%d - %d", goals(f.Score.FullTime.Home), goals(f.Score.FullTime.Away))
		m.Status = domain.MatchStatusFullTime
		m.Date = ISODate(f.UTCDate)
		board.Completed = append(board.Completed, m)
	}

	return board
}

func baseMatch(f domain.RawFixture) domain.ClassifiedMatch {
	m := domain.ClassifiedMatch{
		ID:   f.ID,
		Home: f.HomeTeam.DisplayName(),
		Away: f.AwayTeam.DisplayName(),
	}
	if f.HomeTeam != nil {
		m.HomeLogo = f.HomeTeam.Crest
	}
	if f.AwayTeam != nil {
		m.AwayLogo = f.AwayTeam.Crest
	}
	return m
}

func goals(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
