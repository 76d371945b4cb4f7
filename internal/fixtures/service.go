package fixtures

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/cache"
	"github.com/varoOP/matchday/internal/classify"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/footballdata"
	"github.com/varoOP/matchday/internal/report"
	"golang.org/x/sync/singleflight"
)

const (
	KeyBoard = "all_matches"
	KeyRaw   = "raw_matches"
	KeyTeams = "all_teams"
)

func standingsKey(code string) string { return "standings_" + code }

func teamKey(id int) string { return "team_" + strconv.Itoa(id) }

// Upstream is the subset of the fixtures API the service needs
type Upstream interface {
	Matches(ctx context.Context, q footballdata.MatchQuery) ([]domain.RawFixture, error)
	Standings(ctx context.Context, code string) ([]domain.StandingRow, error)
	CompetitionTeams(ctx context.Context, code string) ([]domain.Team, error)
	Team(ctx context.Context, id int) (*domain.TeamProfile, error)
}

type Service interface {
	Board(ctx context.Context) (*domain.MatchBoard, error)
	Refresh(ctx context.Context) (*domain.MatchBoard, error)
	TeamMatches(ctx context.Context, teamID int) ([]domain.CompetitionGroup, error)
	Standings(ctx context.Context, code string) ([]domain.StandingRow, error)
	Teams(ctx context.Context) ([]domain.Team, error)
	Team(ctx context.Context, id int) (*domain.TeamProfile, error)
}

type Options struct {
	Competitions  []string
	LookbackDays  int
	LookaheadDays int
	Location      *time.Location
	// Teams is used for the per-competition team listing, which runs on its
	// own pacing. Defaults to the main upstream.
	Teams    Upstream
	Reporter domain.Reporter
	Now      func() time.Time
}

type service struct {
	log      zerolog.Logger
	cache    *cache.Cache
	api      Upstream
	teamsAPI Upstream
	reporter domain.Reporter
	opts     Options

	group singleflight.Group
}

func NewService(log zerolog.Logger, c *cache.Cache, api Upstream, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Nop{}
	}
	teamsAPI := opts.Teams
	if teamsAPI == nil {
		teamsAPI = api
	}

	return &service{
		log:      log.With().Str("module", "fixtures").Logger(),
		cache:    c,
		api:      api,
		teamsAPI: teamsAPI,
		reporter: opts.Reporter,
		opts:     opts,
	}
}

// Board returns the classified match board, fetching it when the cache
// has no fresh copy of both the board and the raw pool behind it.
// Concurrent callers share a single fetch.
func (s *service) Board(ctx context.Context) (*domain.MatchBoard, error) {
	board := domain.NewMatchBoard()
	if s.cache.Get(ctx, KeyBoard, board) {
		var pool domain.RawPool
		if s.cache.Get(ctx, KeyRaw, &pool) {
			s.log.Debug().Msg("match board served from cache")
			return board, nil
		}
		s.log.Debug().Msg("raw pool missing, refetching match board")
		board = domain.NewMatchBoard()
	}

	v, err, _ := s.group.Do(KeyBoard, func() (any, error) {
		return s.fetchBoard(ctx)
	})

	return v.(*domain.MatchBoard), err
}

func (s *service) Refresh(ctx context.Context) (*domain.MatchBoard, error) {
	for _, key := range []string{KeyBoard, KeyRaw} {
		if err := s.cache.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache entry")
		}
	}

	return s.Board(ctx)
}

func (s *service) fetchBoard(ctx context.Context) (*domain.MatchBoard, error) {
	today := s.opts.Now().In(s.opts.Location)

	upcoming, upErr := s.api.Matches(ctx, footballdata.MatchQuery{
		Competitions: s.opts.Competitions,
		DateFrom:     today,
		DateTo:       today.AddDate(0, 0, s.opts.LookaheadDays),
	})
	if upErr != nil {
		s.legFailed(ctx, "upcoming", upErr)
	}

	completed, doneErr := s.api.Matches(ctx, footballdata.MatchQuery{
		Competitions: s.opts.Competitions,
		DateFrom:     today.AddDate(0, 0, -s.opts.LookbackDays),
		DateTo:       today,
		Status:       domain.StatusFinished,
	})
	if doneErr != nil {
		s.legFailed(ctx, "completed", doneErr)
	}

	board := classify.Aggregate(upcoming, completed, s.opts.Location)

	if err := ctx.Err(); err != nil {
		return board, err
	}

	switch {
	case upErr != nil && doneErr != nil:
		return board, domain.ErrUpstreamUnavailable
	case upErr != nil || doneErr != nil:
		s.log.Warn().Int("matches", board.Len()).Msg("serving partial match board, not caching")
		s.reporter.Report(ctx, domain.Event{Kind: domain.EventPartialResult, Module: "fixtures", Key: KeyBoard})
		return board, nil
	}

	s.cache.Set(ctx, KeyBoard, board)
	s.cache.Set(ctx, KeyRaw, domain.RawPool{Upcoming: nonNil(upcoming), Completed: nonNil(completed)})

	s.log.Debug().Int("live", len(board.Live)).Int("completed", len(board.Completed)).Int("upcoming", len(board.Upcoming)).Msg("match board fetched")
	return board, nil
}

func (s *service) legFailed(ctx context.Context, leg string, err error) {
	s.log.Error().Err(err).Str("leg", leg).Msg("failed to fetch matches")
	s.reporter.Report(ctx, domain.Event{Kind: domain.EventUpstreamFailed, Module: "fixtures", Key: leg, Err: err})
}

// TeamMatches groups the cached fixture pool for one team by competition.
// It never fetches; ErrRawPoolMissing tells the caller to load the board.
func (s *service) TeamMatches(ctx context.Context, teamID int) ([]domain.CompetitionGroup, error) {
	if teamID <= 0 {
		return nil, domain.ErrInvalidTeam
	}

	var pool domain.RawPool
	if !s.cache.Get(ctx, KeyRaw, &pool) {
		return nil, domain.ErrRawPoolMissing
	}

	return classify.GroupByCompetition(pool.Fixtures(), teamID, s.opts.Now()), nil
}

func (s *service) Standings(ctx context.Context, code string) ([]domain.StandingRow, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !s.known(code) {
		return nil, domain.ErrUnknownCompetition
	}

	var rows []domain.StandingRow
	if s.cache.Get(ctx, standingsKey(code), &rows) {
		return rows, nil
	}

	rows, err := s.api.Standings(ctx, code)
	if err != nil {
		s.reporter.Report(ctx, domain.Event{Kind: domain.EventUpstreamFailed, Module: "fixtures", Key: standingsKey(code), Err: err})
		return nil, err
	}

	s.cache.Set(ctx, standingsKey(code), rows)
	return rows, nil
}

func (s *service) known(code string) bool {
	for _, c := range s.opts.Competitions {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// Teams lists the teams of every configured competition, deduplicated by id
// in first-seen order. A league that fails is skipped; the result is only
// cached when every league answered.
func (s *service) Teams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if s.cache.Get(ctx, KeyTeams, &teams) {
		return teams, nil
	}

	teams = []domain.Team{}
	seen := map[int]struct{}{}
	failed := 0

	for _, code := range s.opts.Competitions {
		list, err := s.teamsAPI.CompetitionTeams(ctx, code)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed++
			s.log.Error().Err(err).Str("competition", code).Msg("failed to fetch teams")
			s.reporter.Report(ctx, domain.Event{Kind: domain.EventUpstreamFailed, Module: "fixtures", Key: code, Err: err})
			continue
		}

		for _, t := range list {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			teams = append(teams, t)
		}
	}

	switch {
	case failed > 0 && failed == len(s.opts.Competitions):
		return teams, domain.ErrUpstreamUnavailable
	case failed > 0:
		s.reporter.Report(ctx, domain.Event{Kind: domain.EventPartialResult, Module: "fixtures", Key: KeyTeams, Fields: map[string]any{"failed": failed}})
	default:
		s.cache.Set(ctx, KeyTeams, teams)
	}

	return teams, nil
}

func (s *service) Team(ctx context.Context, id int) (*domain.TeamProfile, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidTeam
	}

	var p domain.TeamProfile
	if s.cache.Get(ctx, teamKey(id), &p) {
		return &p, nil
	}

	profile, err := s.api.Team(ctx, id)
	if err != nil {
		s.reporter.Report(ctx, domain.Event{Kind: domain.EventUpstreamFailed, Module: "fixtures", Key: teamKey(id), Err: err})
		return nil, err
	}

	s.cache.Set(ctx, teamKey(id), profile)
	return profile, nil
}

func nonNil(f []domain.RawFixture) []domain.RawFixture {
	if f == nil {
		return []domain.RawFixture{}
	}
	return f
}
