package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// RunFunc performs one refresh and reports what it produced
type RunFunc func(ctx context.Context) (domain.RefreshStatistics, error)

type job struct {
	name     string
	schedule string
	run      RunFunc
	mu       sync.Mutex
}

// Scheduler runs refresh jobs on cron schedules. A job never overlaps with
// itself; a tick that arrives while the previous run is busy is skipped.
type Scheduler struct {
	log      zerolog.Logger
	cron     *cron.Cron
	notifier domain.NotificationService
	now      func() time.Time

	mu   sync.Mutex
	ctx  context.Context
	jobs map[string]*job
}

func New(log zerolog.Logger, notifier domain.NotificationService) *Scheduler {
	l := log.With().Str("module", "scheduler").Logger()

	return &Scheduler{
		log:      l,
		cron:     cron.New(cron.WithLogger(cronLogger{l})),
		notifier: notifier,
		now:      time.Now,
		ctx:      context.Background(),
		jobs:     map[string]*job{},
	}
}

// Add registers a job under a standard five-field cron expression
func (s *Scheduler) Add(name, schedule string, run RunFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return errors.Errorf("job %s already registered", name)
	}

	j := &job{name: name, schedule: schedule, run: run}
	if _, err := s.cron.AddFunc(schedule, func() { s.tick(j) }); err != nil {
		return errors.Wrapf(err, "invalid schedule %q for job %s", schedule, name)
	}

	s.jobs[name] = j
	s.log.Debug().Str("job", name).Str("schedule", schedule).Msg("job registered")
	return nil
}

// Start begins firing jobs. Runs are bound to ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop prevents new runs and waits for running ones to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow runs a job immediately, waiting for any run in progress
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return errors.Errorf("unknown job %s", name)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	return s.execute(ctx, j)
}

func (s *Scheduler) tick(j *job) {
	if !j.mu.TryLock() {
		s.log.Warn().Str("job", j.name).Msg("previous run still busy, skipping")
		return
	}
	defer j.mu.Unlock()

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	// failures are already logged and notified
	_ = s.execute(ctx, j)
}

func (s *Scheduler) execute(ctx context.Context, j *job) error {
	start := s.now()
	s.log.Info().Str("job", j.name).Msg("refresh started")

	stats, err := j.run(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", j.name).Msg("refresh failed")
		if nerr := s.notifier.SendError(ctx, j.name, err); nerr != nil {
			s.log.Warn().Err(nerr).Msg("failed to send error notification")
		}
		return err
	}

	stats.Job = j.name
	stats.Duration = s.now().Sub(start)

	s.log.Info().Str("job", j.name).Dur("duration", stats.Duration).Msg("refresh completed")
	if nerr := s.notifier.SendSuccess(ctx, stats); nerr != nil {
		s.log.Warn().Err(nerr).Msg("failed to send success notification")
	}
	return nil
}

// cronLogger routes cron's internal messages through zerolog
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
