package classify

import (
	"sort"
	"time"

	"github.com/varoOP/matchday/internal/domain"
)

const (
	bucketPending = 1
	bucketLive    = 2
	bucketDone    = 3
)

// statusBucket orders fixtures inside a competition group: not yet started,
// then in progress, then finished. Unknown and missing statuses count as
// finished.
func statusBucket(s domain.FixtureStatus) int {
	switch {
	case s.IsPending():
		return bucketPending
	case s.IsLive():
		return bucketLive
	default:
		return bucketDone
	}
}

// GroupByCompetition selects the fixtures of teamID from pool and groups them
// per competition code. Groups keep the order in which their competition was
// first seen. Within a group fixtures are sorted by status bucket and then by
// kickoff, with undated fixtures treated as kicking off at now.
func GroupByCompetition(pool []domain.RawFixture, teamID int, now time.Time) []domain.CompetitionGroup {
	var (
		groups []domain.CompetitionGroup
		index  = make(map[string]int)
	)

	for _, f := range pool {
		if f.HomeTeam == nil || f.AwayTeam == nil {
			continue
		}
		if f.HomeTeam.ID != teamID && f.AwayTeam.ID != teamID {
			continue
		}
		if f.Competition == nil || f.Competition.Code == "" || f.Competition.Name == "" {
			continue
		}

		i, ok := index[f.Competition.Code]
		if !ok {
			i = len(groups)
			index[f.Competition.Code] = i
			groups = append(groups, domain.CompetitionGroup{
				Code: f.Competition.Code,
				Name: f.Competition.Name,
			})
		}
		groups[i].Matches = append(groups[i].Matches, f)
	}

	for i := range groups {
		sortGroup(groups[i].Matches, now)
	}

	return groups
}

func sortGroup(matches []domain.RawFixture, now time.Time) {
	kickoff := func(f domain.RawFixture) time.Time {
		if f.UTCDate.IsZero() {
			return now
		}
		return f.UTCDate
	}

	sort.SliceStable(matches, func(i, j int) bool {
		bi, bj := statusBucket(matches[i].Status), statusBucket(matches[j].Status)
		if bi != bj {
			return bi < bj
		}
		return kickoff(matches[i]).Before(kickoff(matches[j]))
	})
}
