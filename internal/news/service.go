package news

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/cache"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/report"
)

const (
	DefaultBaseURL = "https://gnews.io/api/v4"
	DefaultQuery   = "football OR soccer OR premier league OR la liga OR bundesliga"

	// KeyNews is the cache key of the processed article list
	KeyNews = "football_news"

	maxArticles = 30
)

var ErrNoAPIKey = errors.New("news api key not configured")

type Service interface {
	// Latest returns the cached articles, fetching them on a miss
	Latest(ctx context.Context) ([]domain.Article, error)
	// Refresh fetches fresh articles and falls back to the cache on failure
	Refresh(ctx context.Context) ([]domain.Article, error)
}

type Options struct {
	BaseURL  string
	APIKey   string
	Query    string
	Delay    time.Duration
	Reporter domain.Reporter
}

type service struct {
	log      zerolog.Logger
	cache    *cache.Cache
	reporter domain.Reporter
	opts     Options

	// the collector is not safe for overlapping visits
	mu   sync.Mutex
	cc   *colly.Collector
	rt   *contextTransport
	body []byte
}

// contextTransport binds the requests of one Visit to the caller's context,
// which colly itself does not carry. ctx is only set while mu is held.
type contextTransport struct {
	base http.RoundTripper
	ctx  context.Context
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ctx == nil {
		return t.base.RoundTrip(req)
	}
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func NewService(log zerolog.Logger, c *cache.Cache, opts Options) (Service, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Query == "" {
		opts.Query = DefaultQuery
	}
	if opts.Reporter == nil {
		opts.Reporter = report.Nop{}
	}

	s := &service{
		log:      log.With().Str("module", "news").Logger(),
		cache:    c,
		reporter: opts.Reporter,
		opts:     opts,
	}

	s.rt = &contextTransport{base: http.DefaultTransport}
	s.cc = colly.NewCollector(colly.AllowURLRevisit())
	s.cc.WithTransport(s.rt)
	s.cc.SetRequestTimeout(20 * time.Second)
	extensions.RandomUserAgent(s.cc)

	if err := s.cc.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       opts.Delay,
		Parallelism: 1,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to set news rate limit")
	}

	s.cc.OnRequest(func(r *colly.Request) {
		s.log.Debug().Str("host", r.URL.Host).Msg("visiting")
	})
	s.cc.OnResponse(func(r *colly.Response) {
		s.body = r.Body
	})

	return s, nil
}

func (s *service) Latest(ctx context.Context) ([]domain.Article, error) {
	var articles []domain.Article
	if s.cache.Get(ctx, KeyNews, &articles) {
		return articles, nil
	}

	return s.Refresh(ctx)
}

func (s *service) Refresh(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.fetch(ctx)
	if err == nil {
		s.cache.Set(ctx, KeyNews, articles)
		return articles, nil
	}

	s.log.Error().Err(err).Msg("failed to fetch news")
	s.reporter.Report(ctx, domain.Event{Kind: domain.EventUpstreamFailed, Module: "news", Key: KeyNews, Err: err})

	var cached []domain.Article
	if ctx.Err() == nil && s.cache.Get(ctx, KeyNews, &cached) {
		s.log.Warn().Int("articles", len(cached)).Msg("serving cached news")
		return cached, nil
	}

	return nil, err
}

func (s *service) searchURL() string {
	v := url.Values{}
	v.Set("q", s.opts.Query)
	v.Set("lang", "en")
	v.Set("country", "gb")
	v.Set("max", strconv.Itoa(maxArticles))
	v.Set("apikey", s.opts.APIKey)
	return s.opts.BaseURL + "/search?" + v.Encode()
}

func (s *service) fetch(ctx context.Context) ([]domain.Article, error) {
	if s.opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.body = nil
	s.rt.ctx = ctx
	err := s.cc.Visit(s.searchURL())
	s.rt.ctx = nil

	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, errors.Wrap(err, "news request failed")
	}

	return Process(s.body)
}

type searchResponse struct {
	Articles *[]struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		URL         string  `json:"url"`
		Image       string  `json:"image"`
		PublishedAt string  `json:"publishedAt"`
		Source      *struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
	Errors []string `json:"errors"`
}

// Process turns a search response into display-ready articles. Articles
// without a link are skipped.
func Process(body []byte) ([]domain.Article, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode news")
	}

	if resp.Articles == nil {
		if len(resp.Errors) > 0 {
			return nil, errors.Errorf("news api error: %s", resp.Errors[0])
		}
		return nil, errors.New("news response has no articles")
	}

	articles := make([]domain.Article, 0, len(*resp.Articles))
	for _, a := range *resp.Articles {
		if a.URL == "" {
			continue
		}

		art := domain.Article{
			Title:       a.Title,
			URL:         a.URL,
			Image:       a.Image,
			Source:      "Unknown",
			PublishedAt: formatDate(a.PublishedAt),
		}
		if a.Description != nil {
			art.Description = StripHTML(*a.Description)
		}
		if a.Source != nil && a.Source.Name != "" {
			art.Source = a.Source.Name
		}

		articles = append(articles, art)
	}

	return articles, nil
}

func formatDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ""
	}
	return t.UTC().Format("Jan 2, 2006")
}
