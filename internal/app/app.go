package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/cache"
	"github.com/varoOP/matchday/internal/database"
	"github.com/varoOP/matchday/internal/domain"
	"github.com/varoOP/matchday/internal/fixtures"
	"github.com/varoOP/matchday/internal/footballdata"
	"github.com/varoOP/matchday/internal/news"
	"github.com/varoOP/matchday/internal/notification"
	"github.com/varoOP/matchday/internal/ratelimit"
	"github.com/varoOP/matchday/internal/report"
	"github.com/varoOP/matchday/internal/scheduler"
	"github.com/varoOP/matchday/internal/storage"
)

// App holds every service built from one configuration. It is created once
// per process and passed explicitly to the commands that need it.
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	store               domain.Storage
	cache               *cache.Cache
	reporter            domain.Reporter
	fixturesService     fixtures.Service
	newsService         news.Service
	notificationService domain.NotificationService
}

func New(ctx context.Context, cfg *domain.Config, log zerolog.Logger) (*App, error) {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	reporter := report.NewLog(log)
	c := cache.New(log, store, cache.WithReporter(reporter))

	policy := ratelimit.DefaultPolicy()
	policy.Delay = cfg.RequestDelay
	policy.Jitter = cfg.RequestJitter
	policy.MaxRetries = cfg.MaxRetries

	teamsPolicy := policy
	teamsPolicy.Delay = cfg.TeamsDelay

	client := footballdata.NewClient(log, cfg.APIBaseURL, cfg.APIToken, ratelimit.NewPacer(policy, nil), reporter)

	fixturesService := fixtures.NewService(log, c, client, fixtures.Options{
		Competitions:  cfg.Competitions,
		LookbackDays:  cfg.LookbackDays,
		LookaheadDays: cfg.LookaheadDays,
		Location:      cfg.Location,
		Teams:         client.WithPacer(ratelimit.NewPacer(teamsPolicy, nil)),
		Reporter:      reporter,
	})

	newsService, err := news.NewService(log, c, news.Options{
		BaseURL:  cfg.NewsBaseURL,
		APIKey:   cfg.NewsAPIKey,
		Delay:    cfg.RequestDelay,
		Reporter: reporter,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		log:                 log,
		config:              cfg,
		store:               store,
		cache:               c,
		reporter:            reporter,
		fixturesService:     fixturesService,
		newsService:         newsService,
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}, nil
}

func openStorage(ctx context.Context, cfg *domain.Config, log zerolog.Logger) (domain.Storage, error) {
	switch cfg.StorageBackend {
	case domain.StorageMemory, "":
		return storage.NewMemory(), nil
	case domain.StorageFile:
		return storage.NewFile(log, cfg.StoragePath)
	case domain.StorageSQLite:
		db, err := database.NewDB(cfg.StoragePath, log)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize database")
		}
		return database.NewStore(log, db), nil
	case domain.StorageRedis:
		return storage.NewRedis(ctx, log, cfg.RedisAddr)
	}
	return nil, errors.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
}

func (a *App) Config() *domain.Config { return a.config }

func (a *App) Fixtures() fixtures.Service { return a.fixturesService }

func (a *App) News() news.Service { return a.newsService }

// ClearCache removes every cached entry and leaves the rest of the store alone
func (a *App) ClearCache(ctx context.Context) error {
	return a.cache.Clear(ctx)
}

// Close releases the storage backend
func (a *App) Close() error {
	if err := a.store.Close(); err != nil {
		return errors.Wrap(err, "failed to close storage")
	}
	return nil
}

// Logout clears the cache namespace and then releases the storage backend.
// The App must not be used afterwards.
func (a *App) Logout(ctx context.Context) error {
	if err := a.cache.Clear(ctx); err != nil {
		a.log.Warn().Str("module", "app").Err(err).Msg("failed to clear cache on logout")
	}
	return a.Close()
}

// NewScheduler registers the match and news refresh jobs
func (a *App) NewScheduler() (*scheduler.Scheduler, error) {
	s := scheduler.New(a.log, a.notificationService)

	if err := s.Add(notification.JobMatches, a.config.MatchRefreshCron, a.refreshMatches); err != nil {
		return nil, err
	}

	if a.config.NewsAPIKey != "" {
		if err := s.Add(notification.JobNews, a.config.NewsRefreshCron, a.refreshNews); err != nil {
			return nil, err
		}
	} else {
		a.log.Info().Str("module", "app").Msg("news_api_key not set, news refresh disabled")
	}

	return s, nil
}

func (a *App) refreshMatches(ctx context.Context) (domain.RefreshStatistics, error) {
	board, err := a.fixturesService.Refresh(ctx)
	if err != nil {
		return domain.RefreshStatistics{}, err
	}

	stats := domain.RefreshStatistics{Live: len(board.Live), Completed: len(board.Completed), Upcoming: len(board.Upcoming)}
	a.reporter.Report(ctx, domain.Event{
		Kind:   domain.EventRefreshCompleted,
		Module: "app",
		Key:    fixtures.KeyBoard,
		Fields: map[string]any{"live": stats.Live, "completed": stats.Completed, "upcoming": stats.Upcoming},
	})
	return stats, nil
}

func (a *App) refreshNews(ctx context.Context) (domain.RefreshStatistics, error) {
	articles, err := a.newsService.Refresh(ctx)
	if err != nil {
		return domain.RefreshStatistics{}, err
	}

	a.reporter.Report(ctx, domain.Event{Kind: domain.EventRefreshCompleted, Module: "app", Key: news.KeyNews, Fields: map[string]any{"articles": len(articles)}})
	return domain.RefreshStatistics{Articles: len(articles)}, nil
}
