package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/ratelimit"
	"github.com/varoOP/matchday/internal/report"
)

var start = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixtureFile(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return b
}

func newTestClient(srv *httptest.Server, policy ratelimit.Policy) (*Client, *ratelimit.ManualClock, *report.Recorder) {
	clk := ratelimit.NewManualClock(start)
	rec := report.NewRecorder()
	return NewClient(zerolog.Nop(), srv.URL, "secret", ratelimit.NewPacer(policy, clk), rec), clk, rec
}

func TestParseMatchesDropsInvalidFixtures(t *testing.T) {
	fixtures, invalid, err := ParseMatches(fixtureFile(t, "matches.json"))
	require.NoError(t, err)

	require.Len(t, fixtures, 2)
	require.Len(t, invalid, 2)

	live := fixtures[0]
	assert.Equal(t, 101, live.ID)
	assert.Equal(t, domain.StatusInPlay, live.Status)
	assert.Equal(t, time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC), live.UTCDate)
	assert.Equal(t, "Arsenal", live.HomeTeam.ShortName)
	assert.Equal(t, 61, live.AwayTeam.ID)
	require.NotNil(t, live.Score.FullTime.Home)
	assert.Equal(t, 1, *live.Score.FullTime.Home)
	assert.Equal(t, &domain.Competition{Code: "PL", Name: "Premier League"}, live.Competition)

	assert.Nil(t, fixtures[1].Score.FullTime.Home)

	var ve *ValidationError
	require.ErrorAs(t, invalid[0], &ve)
	assert.Equal(t, "missing id", ve.Reason)
	require.ErrorAs(t, invalid[1], &ve)
	assert.Equal(t, 104, ve.ID)
}

func TestParseMatchesMalformed(t *testing.T) {
	_, _, err := ParseMatches([]byte(`{"matches": [`))
	assert.Error(t, err)

	fixtures, invalid, err := ParseMatches([]byte(`{"matches": [42, "x", {"id": 1, "homeTeam": {"id": 1}, "awayTeam": {"id": 2}, "utcDate": "soon"}]}`))
	require.NoError(t, err)
	assert.Len(t, invalid, 2)
	require.Len(t, fixtures, 1)
	assert.True(t, fixtures[0].UTCDate.IsZero())

	fixtures, invalid, err = ParseMatches([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, fixtures)
	assert.Empty(t, invalid)
}

func TestParseStandings(t *testing.T) {
	rows, err := ParseStandings(fixtureFile(t, "standings.json"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Arsenal", rows[0].Team.ShortName)
	assert.Equal(t, 20, rows[0].Points)
	assert.Equal(t, "W,W,D", rows[0].Form)
	assert.Empty(t, rows[1].Form)

	rows, err = ParseStandings([]byte(`{"standings": []}`))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestParseTeam(t *testing.T) {
	p, err := ParseTeam(fixtureFile(t, "team.json"))
	require.NoError(t, err)

	assert.Equal(t, 57, p.ID)
	assert.Equal(t, "Emirates Stadium", p.Venue)
	assert.Equal(t, 1886, p.Founded)
	require.Len(t, p.Squad, 2)
	assert.Equal(t, "Bukayo Saka", p.Squad[1].Name)

	_, err = ParseTeam([]byte(`{"name": "nobody"}`))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestParseTeams(t *testing.T) {
	teams, invalid, err := ParseTeams([]byte(`{"teams": [{"id": 1, "name": "A"}, {"name": "B"}, null, {"id": 3, "name": "C"}]}`))
	require.NoError(t, err)
	assert.Len(t, invalid, 2)
	assert.Equal(t, []domain.Team{{ID: 1, Name: "A"}, {ID: 3, Name: "C"}}, teams)
}

func TestMatchesSendsQueryAndToken(t *testing.T) {
	body := fixtureFile(t, "matches.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "/matches", r.URL.Path)
		assert.Equal(t, "PL,PD", r.URL.Query().Get("competitions"))
		assert.Equal(t, "2026-10-12", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "2026-10-19", r.URL.Query().Get("dateTo"))
		assert.Equal(t, "FINISHED", r.URL.Query().Get("status"))
		w.Write(body)
	}))
	defer srv.Close()

	c, _, rec := newTestClient(srv, ratelimit.DefaultPolicy())

	fixtures, err := c.Matches(context.Background(), MatchQuery{
		Competitions: []string{"PL", "PD"},
		DateFrom:     start.AddDate(0, 0, -7),
		DateTo:       start,
		Status:       domain.StatusFinished,
	})
	require.NoError(t, err)
	assert.Len(t, fixtures, 2)
	assert.Equal(t, 2, rec.Count(domain.EventInvalidPayload))
}

func TestSharedTransportUnderConcurrentRequests(t *testing.T) {
	var tokens atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") == "secret" {
			tokens.Add(1)
		}
		w.Write([]byte(`{"teams": []}`))
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, "secret", ratelimit.NewPacer(ratelimit.Policy{}, nil), nil)
	teams := c.WithPacer(ratelimit.NewPacer(ratelimit.Policy{}, nil))

	at, ok := c.http.Transport.(*authTransport)
	require.True(t, ok)
	require.NotNil(t, at.Transport, "base transport is set up front")

	var wg sync.WaitGroup
	for _, client := range []*Client{c, teams, c, teams} {
		wg.Add(1)
		go func(client *Client) {
			defer wg.Done()
			_, err := client.CompetitionTeams(context.Background(), "PL")
			assert.NoError(t, err)
		}(client)
	}
	wg.Wait()

	assert.EqualValues(t, 4, tokens.Load())
}

func TestRequestsArePaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams": []}`))
	}))
	defer srv.Close()

	c, clk, _ := newTestClient(srv, ratelimit.Policy{Delay: 3 * time.Second})

	for _, code := range []string{"PL", "PD", "BL1"} {
		_, err := c.CompetitionTeams(context.Background(), code)
		require.NoError(t, err)
	}

	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, clk.Sleeps())
}

func TestRetriesTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(fixtureFile(t, "standings.json"))
	}))
	defer srv.Close()

	c, clk, rec := newTestClient(srv, ratelimit.Policy{MaxRetries: 2, BaseBackoff: time.Second, MaxBackoff: time.Minute})

	rows, err := c.Standings(context.Background(), "PL")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, []time.Duration{7 * time.Second}, clk.Sleeps())
	assert.Equal(t, 1, rec.Count(domain.EventUpstreamRetry))
}

func TestRetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _, _ := newTestClient(srv, ratelimit.Policy{MaxRetries: 2, BaseBackoff: time.Second, MaxBackoff: time.Minute})

	_, err := c.Team(context.Background(), 57)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, _, _ := newTestClient(srv, ratelimit.DefaultPolicy())

	_, err := c.Standings(context.Background(), "XX")
	assert.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCancelledContextStopsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	c, _, _ := newTestClient(srv, ratelimit.DefaultPolicy())
	require.NoError(t, c.pacer.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Matches(ctx, MatchQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}
