package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/matchday/internal/domain"
)

var now = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func team(id int, name string) *domain.Team {
	return &domain.Team{ID: id, Name: name + " FC", ShortName: name, Crest: "https://crests.example/" + name + ".png"}
}

func fixture(id int, status domain.FixtureStatus, date time.Time, home, away *domain.Team, h, a *int) domain.RawFixture {
	return domain.RawFixture{
		ID:          id,
		UTCDate:     date,
		Status:      status,
		HomeTeam:    home,
		AwayTeam:    away,
		Score:       domain.Score{FullTime: domain.Goals{Home: h, Away: a}},
		Competition: &domain.Competition{Code: "PL", Name: "Premier League"},
	}
}

func TestAggregateScenario(t *testing.T) {
	upcoming := []domain.RawFixture{
		fixture(1, domain.StatusInPlay, now.Add(-time.Hour), team(1, "TeamA"), team(2, "TeamB"), domain.IntPtr(1), domain.IntPtr(0)),
		fixture(2, domain.StatusScheduled, time.Date(2026, 10, 21, 19, 5, 0, 0, time.UTC), team(3, "TeamC"), team(4, "TeamD"), nil, nil),
	}
	completed := []domain.RawFixture{
		fixture(3, domain.StatusFinished, now.AddDate(0, 0, -1), team(5, "TeamE"), team(6, "TeamF"), domain.IntPtr(3), domain.IntPtr(2)),
	}

	board := Aggregate(upcoming, completed, time.UTC)

	assert.Equal(t, []domain.ClassifiedMatch{{
		ID: 1, Home: "TeamA", Away: "TeamB",
		HomeLogo: "https://crests.example/TeamA.png", AwayLogo: "https://crests.example/TeamB.png",
		Score: "1 - 0", Status: "Live",
	}}, board.Live)

	assert.Equal(t, []domain.ClassifiedMatch{{
		ID: 2, Home: "TeamC", Away: "TeamD",
		HomeLogo: "https://crests.example/TeamC.png", AwayLogo: "https://crests.example/TeamD.png",
		Date: "21/10/2026", Time: "7:05 PM",
	}}, board.Upcoming)

	assert.Equal(t, []domain.ClassifiedMatch{{
		ID: 3, Home: "TeamE", Away: "TeamF",
		HomeLogo: "https://crests.example/TeamE.png", AwayLogo: "https://crests.example/TeamF.png",
		Score: "3 - 2", Status: "Full-Time", Date: "2026-10-18",
	}}, board.Completed)
}

func TestAggregateStatusMapping(t *testing.T) {
	live := fixture(1, domain.StatusInPlay, now, team(1, "A"), team(2, "B"), domain.IntPtr(2), domain.IntPtr(1))
	done := fixture(2, domain.StatusFinished, now, team(3, "C"), team(4, "D"), domain.IntPtr(0), domain.IntPtr(0))

	board := Aggregate([]domain.RawFixture{live}, []domain.RawFixture{done}, time.UTC)

	require.Len(t, board.Live, 1)
	assert.Equal(t, "2 - 1", board.Live[0].Score)
	assert.Equal(t, "Live", board.Live[0].Status)

	require.Len(t, board.Completed, 1)
	assert.Equal(t, "0 - 0", board.Completed[0].Score)
	assert.Equal(t, "Full-Time", board.Completed[0].Status)
}

func TestAggregateLiveSet(t *testing.T) {
	for _, status := range []domain.FixtureStatus{
		domain.StatusInPlay, domain.StatusPaused, domain.StatusLive, domain.StatusExtraTime, domain.StatusPenaltyShootout,
	} {
		board := Aggregate([]domain.RawFixture{fixture(1, status, now, team(1, "A"), team(2, "B"), nil, nil)}, nil, time.UTC)
		assert.Len(t, board.Live, 1, status)
		assert.Equal(t, "0 - 0", board.Live[0].Score, "missing live scores default to zero")
	}

	for _, status := range []domain.FixtureStatus{domain.StatusScheduled, domain.StatusTimed, domain.StatusFinished, "POSTPONED"} {
		board := Aggregate([]domain.RawFixture{fixture(1, status, now, team(1, "A"), team(2, "B"), nil, nil)}, nil, time.UTC)
		assert.Len(t, board.Upcoming, 1, status)
		assert.Empty(t, board.Upcoming[0].Score)
	}
}

func TestAggregateCompletedOrderingAndDefaults(t *testing.T) {
	completed := []domain.RawFixture{
		fixture(1, domain.StatusFinished, now.AddDate(0, 0, -5), team(1, "A"), team(2, "B"), domain.IntPtr(1), domain.IntPtr(1)),
		fixture(2, domain.StatusFinished, now.AddDate(0, 0, -1), team(3, "C"), team(4, "D"), nil, nil),
		fixture(3, domain.StatusFinished, now.AddDate(0, 0, -3), team(5, "E"), team(6, "F"), domain.IntPtr(4), domain.IntPtr(0)),
	}

	board := Aggregate(nil, completed, time.UTC)

	ids := []int{}
	for _, m := range board.Completed {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{2, 3, 1}, ids)
	assert.Equal(t, "0 - 0", board.Completed[0].Score)
	assert.Equal(t, 1, completed[0].ID, "input must not be reordered")
}

func TestAggregatePartitionIsComplete(t *testing.T) {
	statuses := []domain.FixtureStatus{
		domain.StatusScheduled, domain.StatusInPlay, domain.StatusTimed, domain.StatusPaused, domain.StatusExtraTime, domain.StatusFinished,
	}

	var upcoming, completed []domain.RawFixture
	for i, s := range statuses {
		upcoming = append(upcoming, fixture(i+1, s, now.Add(time.Duration(i)*time.Hour), team(1, "A"), team(2, "B"), nil, nil))
		completed = append(completed, fixture(100+i, domain.StatusFinished, now.Add(-time.Duration(i)*time.Hour), team(1, "A"), team(2, "B"), domain.IntPtr(1), domain.IntPtr(2)))
	}

	board := Aggregate(upcoming, completed, time.UTC)
	assert.Equal(t, len(upcoming)+len(completed), board.Len())

	seen := map[int]int{}
	for _, part := range [][]domain.ClassifiedMatch{board.Live, board.Completed, board.Upcoming} {
		for _, m := range part {
			seen[m.ID]++
		}
	}
	for _, f := range append(upcoming, completed...) {
		assert.Equal(t, 1, seen[f.ID], "fixture %d", f.ID)
	}
}

func TestAggregateEmptyBoardHasNonNilPartitions(t *testing.T) {
	board := Aggregate(nil, nil, nil)
	assert.NotNil(t, board.Live)
	assert.NotNil(t, board.Completed)
	assert.NotNil(t, board.Upcoming)
	assert.Zero(t, board.Len())
}

func TestAggregatePrefersShortName(t *testing.T) {
	home := &domain.Team{ID: 1, Name: "Manchester United FC"}
	away := &domain.Team{ID: 2, Name: "Chelsea FC", ShortName: "Chelsea"}

	board := Aggregate([]domain.RawFixture{fixture(1, domain.StatusTimed, now, home, away, nil, nil)}, nil, time.UTC)
	require.Len(t, board.Upcoming, 1)
	assert.Equal(t, "Manchester United FC", board.Upcoming[0].Home)
	assert.Equal(t, "Chelsea", board.Upcoming[0].Away)
}

func TestDisplayDateTime(t *testing.T) {
	tests := []struct {
		in         time.Time
		loc        *time.Location
		date, time string
	}{
		{time.Date(2026, 3, 7, 0, 5, 0, 0, time.UTC), time.UTC, "7/3/2026", "12:05 AM"},
		{time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), time.UTC, "7/3/2026", "12:00 PM"},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), time.UTC, "31/12/2026", "11:59 PM"},
		{time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC), time.FixedZone("CET", 3600), "1/1/2027", "12:30 AM"},
		{time.Time{}, time.UTC, "", ""},
	}

	for _, tt := range tests {
		d, tm := DisplayDateTime(tt.in, tt.loc)
		assert.Equal(t, tt.date, d)
		assert.Equal(t, tt.time, tm)
	}
}

func TestGroupByCompetitionFilters(t *testing.T) {
	us, them, other := team(10, "Us"), team(20, "Them"), team(30, "Other")

	pool := []domain.RawFixture{
		fixture(1, domain.StatusFinished, now, us, them, domain.IntPtr(1), domain.IntPtr(0)),
		fixture(2, domain.StatusScheduled, now, them, other, nil, nil),
		fixture(3, domain.StatusScheduled, now, them, us, nil, nil),
		{ID: 4, Status: domain.StatusScheduled, HomeTeam: us},
		{ID: 5, Status: domain.StatusScheduled, HomeTeam: us, AwayTeam: them},
		{ID: 6, Status: domain.StatusScheduled, HomeTeam: us, AwayTeam: them, Competition: &domain.Competition{Code: "CL"}},
	}

	groups := GroupByCompetition(pool, 10, now)
	require.Len(t, groups, 1)
	assert.Equal(t, "PL", groups[0].Code)
	assert.Equal(t, "Premier League", groups[0].Name)

	ids := []int{}
	for _, f := range groups[0].Matches {
		ids = append(ids, f.ID)
		assert.True(t, f.HomeTeam.ID == 10 || f.AwayTeam.ID == 10)
	}
	assert.ElementsMatch(t, []int{1, 3}, ids)

	assert.Empty(t, GroupByCompetition(pool, 99, now))
}

func TestGroupByCompetitionSortOrder(t *testing.T) {
	us, them := team(10, "Us"), team(20, "Them")
	tomorrow, yesterday := now.AddDate(0, 0, 1), now.AddDate(0, 0, -1)

	pool := []domain.RawFixture{
		fixture(1, domain.StatusFinished, yesterday, us, them, domain.IntPtr(2), domain.IntPtr(2)),
		fixture(2, domain.StatusScheduled, tomorrow.AddDate(0, 0, 7), us, them, nil, nil),
		fixture(3, domain.StatusInPlay, now, them, us, domain.IntPtr(0), domain.IntPtr(1)),
		fixture(4, domain.StatusScheduled, tomorrow, them, us, nil, nil),
		fixture(5, "AWARDED", yesterday.AddDate(0, 0, -3), us, them, nil, nil),
		fixture(6, "", time.Time{}, us, them, nil, nil),
		fixture(7, domain.StatusTimed, time.Time{}, us, them, nil, nil),
	}

	groups := GroupByCompetition(pool, 10, now)
	require.Len(t, groups, 1)

	ids := []int{}
	for _, f := range groups[0].Matches {
		ids = append(ids, f.ID)
	}
	// pending (undated counts as now), live, then finished/unknown by date
	assert.Equal(t, []int{7, 4, 2, 3, 5, 1, 6}, ids)
}

func TestGroupByCompetitionKeepsFirstSeenOrder(t *testing.T) {
	us, them := team(10, "Us"), team(20, "Them")

	cl := fixture(1, domain.StatusScheduled, now, us, them, nil, nil)
	cl.Competition = &domain.Competition{Code: "CL", Name: "UEFA Champions League"}
	pl := fixture(2, domain.StatusScheduled, now, us, them, nil, nil)
	cl2 := fixture(3, domain.StatusFinished, now, them, us, nil, nil)
	cl2.Competition = cl.Competition

	groups := GroupByCompetition([]domain.RawFixture{cl, pl, cl2}, 10, now)
	require.Len(t, groups, 2)
	assert.Equal(t, "CL", groups[0].Code)
	assert.Len(t, groups[0].Matches, 2)
	assert.Equal(t, "PL", groups[1].Code)
}
