// Package circuitbreaker stops calling a provider that keeps failing, giving it
// time to recover before a single trial call is let through.
package circuitbreaker

import (
	"errors"
	"log"
	"sync"
	"time"
)

var (
	// ErrCircuitOpen is returned by Allow while the reset timeout runs
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned by Allow while a half-open trial call is in flight
	ErrTooManyRequests = errors.New("too many requests while circuit is half-open")
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// CircuitBreaker opens after maxFailures consecutive failures and stays open for
// resetTimeout. A breaker with maxFailures <= 0 never opens.
type CircuitBreaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	mu            sync.Mutex
	state         State
	failures      int
	openedAt      time.Time
	trialInFlight bool
}

// New creates a closed circuit breaker
func New(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
		state:        StateClosed,
	}
}

// Allow reports whether a call may proceed. Every nil return must be followed by
// exactly one Record or Release.
func (cb *CircuitBreaker) Allow() error {
	if cb.maxFailures <= 0 {
		return nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.resetTimeout {
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
		cb.trialInFlight = true
		return nil

	case StateHalfOpen:
		if cb.trialInFlight {
			return ErrTooManyRequests
		}
		cb.trialInFlight = true
		return nil
	}

	return nil
}

// Record updates the breaker with the outcome of an allowed call
func (cb *CircuitBreaker) Record(success bool) {
	if cb.maxFailures <= 0 {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.trialInFlight = false

	if success {
		cb.failures = 0
		if cb.state != StateClosed {
			cb.setState(StateClosed)
		}
		return
	}

	cb.failures++
	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.maxFailures {
			cb.trip()
		}
	case StateHalfOpen:
		cb.trip()
	}
}

// Release gives back an allowed call that never reached the provider
func (cb *CircuitBreaker) Release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.trialInFlight = false
}

func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

func (cb *CircuitBreaker) setState(s State) {
	log.Printf("Circuit breaker %s: %s -> %s (failures=%d)", cb.name, cb.state, s, cb.failures)
	cb.state = s
}

// State returns current circuit breaker state
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
