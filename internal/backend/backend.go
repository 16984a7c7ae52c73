// package backend is the boundary the rest of the app talks to.
//
// Every operation returns a [shared.Result], waits out a simulated network delay and, for writes,
// draws from a per-user quota, the way a hosted backend would behave.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/fivhter/internal/auth"
	"github.com/desertthunder/fivhter/internal/metrics"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
)

const anonymous = "anonymous"

// Options configures a [Client].
type Options struct {
	Latency         time.Duration // delay before every call
	WritesPerSecond float64       // per-user write quota; 0 disables it
	WriteBurst      int
	Metrics         metrics.Recorder
	Logger          *log.Logger
}

// OptionsFromConfig maps the [backend] config section onto Options.
func OptionsFromConfig(cfg shared.BackendConfig) Options {
	return Options{
		Latency:         cfg.Latency.Duration,
		WritesPerSecond: cfg.WritesPerSecond,
		WriteBurst:      cfg.WriteBurst,
	}
}

// Client exposes the store and auth facade as result returning calls.
type Client struct {
	store *store.Store
	auth  *auth.Service

	latency time.Duration
	limit   rate.Limit
	burst   int
	metrics metrics.Recorder
	logger  *log.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New returns a Client over st and au.
func New(st *store.Store, au *auth.Service, opts Options) *Client {
	c := &Client{
		store:    st,
		auth:     au,
		latency:  opts.Latency,
		burst:    opts.WriteBurst,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		limiters: make(map[string]*rate.Limiter),
	}

	if opts.WritesPerSecond > 0 {
		c.limit = rate.Limit(opts.WritesPerSecond)
		if c.burst < 1 {
			c.burst = 1
		}
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop{}
	}
	if c.logger == nil {
		c.logger = shared.NopLogger()
	}

	c.metrics.SetLists(st.Len())

	return c
}

// call runs fn as operation op and folds its outcome into a Result.
// Writes pass the quota key of the acting user; reads pass "".
func call[T any](ctx context.Context, c *Client, op, quotaKey string, fn func() (T, error)) (res shared.Result[T]) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered panic", "op", op, "panic", r)
			res = shared.Fail[T](fmt.Errorf("unexpected failure in %s: %v", op, r))
		}
		c.observe(op, res.Error, time.Since(start))
	}()

	if err := c.delay(ctx); err != nil {
		return shared.Fail[T](fmt.Errorf("request cancelled: %w", err))
	}

	if quotaKey != "" {
		if err := c.acquire(ctx, op, quotaKey); err != nil {
			return shared.Fail[T](err)
		}
	}

	v, err := fn()
	return shared.NewResult(v, err)
}

func (c *Client) observe(op string, e *shared.ErrorInfo, d time.Duration) {
	outcome := metrics.OutcomeOK
	if e != nil {
		outcome = string(e.Code)
	}
	c.metrics.RecordCall(op, outcome, d)

	switch {
	case e == nil:
		c.logger.Debug("backend call", "op", op, "duration", d)
	case e.Code == shared.KindUnknown:
		c.logger.Warn("backend call failed", "op", op, "error", e.Message, "duration", d)
	default:
		c.logger.Debug("backend call rejected", "op", op, "code", e.Code, "error", e.Message)
	}
}

func (c *Client) delay(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(c.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) acquire(ctx context.Context, op, key string) error {
	lim := c.limiter(key)
	if lim == nil {
		return nil
	}

	if !lim.Allow() {
		c.metrics.RecordThrottled(op)
		c.logger.Debug("write quota exhausted, waiting", "op", op, "user", key)
		if err := lim.Wait(ctx); err != nil {
			return fmt.Errorf("write quota exceeded: %w", err)
		}
	}
	return nil
}

func (c *Client) limiter(key string) *rate.Limiter {
	if c.limit == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[key]
	if !ok {
		lim = rate.NewLimiter(c.limit, c.burst)
		c.limiters[key] = lim
	}
	return lim
}

// actor returns the signed in user id used as the quota key, or "anonymous".
func (c *Client) actor(ctx context.Context) string {
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotAuthenticated) && ctx.Err() == nil {
			c.logger.Warn("could not read session", "error", err)
		}
		return anonymous
	}
	return user.ID
}

func (c *Client) touched() {
	c.metrics.SetLists(c.store.Len())
}
