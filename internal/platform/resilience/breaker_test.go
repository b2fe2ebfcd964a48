package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failed")

func TestBreaker_Transitions(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, Cooldown: 5 * time.Second, HalfOpenMaxRequests: 1})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	fail := func() error { return errUpstream }
	pass := func() error { return nil }

	if err := b.Do(fail, nil); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail, nil)
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Do(pass, nil); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected breaker open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != BreakerHalfOpen {
		t.Fatalf("expected half-open after cooldown, got %s", state)
	}
	if err := b.Do(pass, nil); err != nil {
		t.Fatalf("expected half-open call to pass, got %v", err)
	}
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after successful half-open call, got %s", state)
	}
}

func TestBreaker_ClassifierIgnoresPermanentErrors(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1})
	permanent := errors.New("not found")

	for i := 0; i < 3; i++ {
		_ = b.Do(func() error { return permanent }, func(err error) bool { return !errors.Is(err, permanent) })
	}
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed when errors are not failures, got %s", state)
	}
}

func TestBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		_ = b.Do(func() error { return errUpstream }, nil)
	}
	if err := b.Do(func() error { return nil }, nil); err != nil {
		t.Fatalf("disabled breaker should not reject, got %v", err)
	}
}

func TestBreakerConfig_Normalize(t *testing.T) {
	cfg := BreakerConfig{}.Normalize()
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold != defaults.FailureThreshold || cfg.Cooldown != defaults.Cooldown || cfg.HalfOpenMaxRequests != defaults.HalfOpenMaxRequests {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
