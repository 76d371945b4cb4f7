package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/ratelimit"
	"github.com/varoOP/matchday/internal/report"
)

const DefaultBaseURL = "https://api.football-data.org/v4"

// Client talks to the football-data.org v4 API. Every request goes through
// the pacer, so a single Client must be shared by all callers.
type Client struct {
	log      zerolog.Logger
	baseURL  string
	http     *http.Client
	pacer    *ratelimit.Pacer
	reporter domain.Reporter
}

type authTransport struct {
	Transport http.RoundTripper
	Token     string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("X-Auth-Token", t.Token)
	return t.Transport.RoundTrip(r)
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

func NewClient(log zerolog.Logger, baseURL, token string, pacer *ratelimit.Pacer, reporter domain.Reporter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if reporter == nil {
		reporter = report.Nop{}
	}

	return &Client{
		log:     log.With().Str("module", "footballdata").Logger(),
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   20 * time.Second,
			Transport: &authTransport{Transport: http.DefaultTransport, Token: token},
		},
		pacer:    pacer,
		reporter: reporter,
	}
}

// WithPacer returns a client sharing the transport of c but spacing its
// requests with pacer
func (c *Client) WithPacer(pacer *ratelimit.Pacer) *Client {
	cp := *c
	cp.pacer = pacer
	return &cp
}

// MatchQuery selects fixtures from the /matches endpoint
type MatchQuery struct {
	Competitions []string
	DateFrom     time.Time
	DateTo       time.Time
	Status       domain.FixtureStatus
}

func (q MatchQuery) values() url.Values {
	v := url.Values{}
	if len(q.Competitions) > 0 {
		v.Set("competitions", strings.Join(q.Competitions, ","))
	}
	if !q.DateFrom.IsZero() {
		v.Set("dateFrom", q.DateFrom.Format("2006-01-02"))
	}
	if !q.DateTo.IsZero() {
		v.Set("dateTo", q.DateTo.Format("2006-01-02"))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}

// Matches returns the validated fixtures matching q. Invalid fixtures are
// dropped and reported.
func (c *Client) Matches(ctx context.Context, q MatchQuery) ([]domain.RawFixture, error) {
	body, err := c.get(ctx, "/matches", q.values())
	if err != nil {
		return nil, err
	}

	fixtures, invalid, err := ParseMatches(body)
	if err != nil {
		return nil, err
	}

	c.reportInvalid(ctx, "matches", invalid)
	return fixtures, nil
}

// Standings returns the first (total) table of a competition
func (c *Client) Standings(ctx context.Context, code string) ([]domain.StandingRow, error) {
	body, err := c.get(ctx, "/competitions/"+url.PathEscape(code)+"/standings", nil)
	if err != nil {
		return nil, err
	}

	return ParseStandings(body)
}

// CompetitionTeams returns the teams registered in a competition
func (c *Client) CompetitionTeams(ctx context.Context, code string) ([]domain.Team, error) {
	body, err := c.get(ctx, "/competitions/"+url.PathEscape(code)+"/teams", nil)
	if err != nil {
		return nil, err
	}

	teams, invalid, err := ParseTeams(body)
	if err != nil {
		return nil, err
	}

	c.reportInvalid(ctx, "teams", invalid)
	return teams, nil
}

// Team returns a team profile including its squad
func (c *Client) Team(ctx context.Context, id int) (*domain.TeamProfile, error) {
	body, err := c.get(ctx, "/teams/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	return ParseTeam(body)
}

func (c *Client) reportInvalid(ctx context.Context, key string, invalid []error) {
	for _, err := range invalid {
		c.log.Debug().Err(err).Str("resource", key).Msg("dropped invalid record")
		c.reporter.Report(ctx, domain.Event{Kind: domain.EventInvalidPayload, Module: "footballdata", Key: key, Err: err})
	}
}

// get performs a paced GET and retries retryable statuses with backoff
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	policy := c.pacer.Policy()
	for attempt := 0; ; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "waiting for rate limit")
		}

		body, retryAfter, err := c.do(ctx, target)
		if err == nil {
			return body, nil
		}

		var se *StatusError
		if !errors.As(err, &se) || !ratelimit.Retryable(se.StatusCode) || attempt >= policy.MaxRetries {
			return nil, err
		}

		wait := c.pacer.Backoff(attempt, retryAfter)
		c.log.Warn().Int("status", se.StatusCode).Int("attempt", attempt+1).Dur("backoff", wait).Str("path", path).Msg("retrying request")
		c.reporter.Report(ctx, domain.Event{
			Kind:   domain.EventUpstreamRetry,
			Module: "footballdata",
			Key:    path,
			Err:    err,
			Fields: map[string]any{"attempt": attempt + 1, "backoff": wait.String()},
		})

		if err := c.pacer.Sleep(ctx, wait); err != nil {
			return nil, errors.Wrap(err, "waiting for backoff")
		}
	}
}

func (c *Client) do(ctx context.Context, target string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Trace().Str("url", target).Msg("GET")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, ratelimit.RetryAfter(resp.Header), &StatusError{StatusCode: resp.StatusCode, URL: req.URL.Path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response body")
	}

	return body, 0, nil
}
