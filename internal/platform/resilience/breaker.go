package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

type BreakerConfig struct {
	Enabled             bool
	FailureThreshold    int
	Cooldown            time.Duration
	HalfOpenMaxRequests int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:             true,
		FailureThreshold:    5,
		Cooldown:            30 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// Normalize fills non-positive fields from DefaultBreakerConfig.
func (c BreakerConfig) Normalize() BreakerConfig {
	defaults := DefaultBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.Cooldown <= 0 {
		c.Cooldown = defaults.Cooldown
	}
	if c.HalfOpenMaxRequests < 1 {
		c.HalfOpenMaxRequests = defaults.HalfOpenMaxRequests
	}
	return c
}

// Breaker opens after FailureThreshold consecutive failures. Once Cooldown
// has passed it admits up to HalfOpenMaxRequests calls; their success closes
// it again and any failure reopens it.
type Breaker struct {
	mu sync.Mutex

	cfg      BreakerConfig
	state    BreakerState
	failures int
	openedAt time.Time
	inFlight int
	passed   int
	now      func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   cfg.Normalize(),
		state: BreakerClosed,
		now:   time.Now,
	}
}

// Do runs fn when the breaker admits it. isFailure decides which errors count
// against the breaker; a nil classifier counts every error.
func (b *Breaker) Do(fn func() error, isFailure func(error) bool) error {
	if !b.cfg.Enabled {
		return fn()
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	failed := err != nil && (isFailure == nil || isFailure(err))
	b.settle(failed)
	return err
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.inFlight = 0
		b.passed = 0
	}
	if b.state == BreakerHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenMaxRequests {
			return ErrBreakerOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) settle(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if failed {
			b.trip()
			return
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxRequests && b.inFlight == 0 {
			b.state = BreakerClosed
			b.failures = 0
			b.passed = 0
		}
	case BreakerOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.inFlight = 0
	b.passed = 0
}
