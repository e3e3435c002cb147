package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type State uint8

const (
	Closed State = iota + 1
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(fn func() error) error
	State() State
	Reset()
}

type Config struct {
	// Window is the number of most recent calls used to compute the failure ratio.
	Window int
	// FailureRatio opens the breaker once failures/Window reaches it.
	FailureRatio float64
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
	// Probes is the number of consecutive successes in half-open needed to close.
	Probes int
}

type circuitBreaker struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	state    State
	openedAt time.Time
	ring     []bool
	pos      int
	probes   int
}

type Option func(cb *circuitBreaker)

func WithClock(now func() time.Time) Option {
	return func(cb *circuitBreaker) {
		cb.now = now
	}
}

func New(cfg Config, opts ...Option) CircuitBreaker {
	if cfg.Window <= 0 {
		cfg.Window = 1
	}
	cb := &circuitBreaker{
		cfg:   cfg,
		now:   time.Now,
		state: Closed,
		ring:  make([]bool, cfg.Window),
	}
	for _, op := range opts {
		op(cb)
	}
	return cb
}

func (cb *circuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Cooldown {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = HalfOpen
		cb.probes = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.ring[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.ring)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.probes++
		if cb.probes >= cb.cfg.Probes {
			cb.reset()
		}
		return nil
	}

	failed := 0
	for _, f := range cb.ring {
		if f {
			failed++
		}
	}
	if float64(failed)/float64(len(cb.ring)) >= cb.cfg.FailureRatio {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.probes = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.ring {
		cb.ring[i] = false
	}
	cb.pos = 0
	cb.probes = 0
	cb.state = Closed
}
