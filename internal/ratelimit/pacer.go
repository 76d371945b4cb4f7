package ratelimit

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Policy describes how requests to one upstream are spaced and retried
type Policy struct {
	// Delay is the minimum gap between two consecutive requests
	Delay time.Duration
	// Jitter adds a random extra delay in [0, Jitter)
	Jitter time.Duration
	// MaxRetries bounds how often a retryable response is retried
	MaxRetries int
	// BaseBackoff is the first retry delay, doubled on every attempt
	BaseBackoff time.Duration
	// MaxBackoff caps the retry delay
	MaxBackoff time.Duration
}

// DefaultPolicy matches the free tier limits of the fixtures API
func DefaultPolicy() Policy {
	return Policy{
		Delay:       5 * time.Second,
		MaxRetries:  3,
		BaseBackoff: 2 * time.Second,
		MaxBackoff:  time.Minute,
	}
}

// Pacer serializes requests according to a Policy
type Pacer struct {
	policy Policy
	clock  Clock

	mu     sync.Mutex
	rnd    *rand.Rand
	last   time.Time
	called bool
}

func NewPacer(policy Policy, clock Clock) *Pacer {
	if clock == nil {
		clock = RealClock{}
	}

	return &Pacer{
		policy: policy,
		clock:  clock,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Policy returns the policy the pacer was built with
func (p *Pacer) Policy() Policy {
	return p.policy
}

// Wait blocks until the next request may be sent. The first call never
// waits; later calls wait until Delay plus jitter has passed since the
// previous call returned.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.called {
		gap := p.policy.Delay
		if p.policy.Jitter > 0 {
			gap += time.Duration(p.rnd.Int63n(int64(p.policy.Jitter)))
		}

		if wait := gap - p.clock.Now().Sub(p.last); wait > 0 {
			if err := p.clock.Sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	p.called = true
	p.last = p.clock.Now()
	return ctx.Err()
}

// Backoff returns how long to wait before retry number attempt (0-based).
// A positive retryAfter from the server takes precedence.
func (p *Pacer) Backoff(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		if p.policy.MaxBackoff > 0 && retryAfter > p.policy.MaxBackoff {
			return p.policy.MaxBackoff
		}
		return retryAfter
	}

	d := p.policy.BaseBackoff
	for i := 0; i < attempt; i++ {
		d *= 2
		if p.policy.MaxBackoff > 0 && d >= p.policy.MaxBackoff {
			return p.policy.MaxBackoff
		}
	}
	return d
}

// Sleep waits d on the pacer's clock
func (p *Pacer) Sleep(ctx context.Context, d time.Duration) error {
	return p.clock.Sleep(ctx, d)
}

// Retryable reports whether a response status is worth retrying
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// RetryAfter parses a Retry-After header given in seconds. The fixtures API
// additionally sends X-RequestCounter-Reset with the same meaning.
func RetryAfter(h http.Header) time.Duration {
	for _, name := range []string{"Retry-After", "X-RequestCounter-Reset"} {
		if v := h.Get(name); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return 0
}
