// Package circuitbreaker guards calls to external model providers. A
// run of failures opens the circuit so a dead provider fails fast
// instead of stalling every pipeline worker on timeouts.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State is the circuit position.
type State int

const (
	// Closed admits all calls.
	Closed State = iota
	// Open rejects calls until the cooldown elapses.
	Open
	// HalfOpen admits trial calls to probe recovery.
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

// ErrCircuitOpen is returned while the circuit rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker wraps calls to a failure-prone dependency.
type CircuitBreaker interface {
	// Execute runs fn unless the circuit is open.
	Execute(fn func() error) error
	// State returns the current circuit position.
	State() State
}

type breaker struct {
	failureThreshold uint32
	successThreshold uint32
	cooldown         time.Duration

	failures  uint32
	successes uint32
	openedAt  time.Time
	state     State
	mutex     sync.Mutex
}

// New creates a CircuitBreaker. The circuit opens after
// failureThreshold consecutive failures, stays open for cooldown, then
// half-opens; successThreshold consecutive successes close it again.
func New(failureThreshold, successThreshold uint32, cooldown time.Duration) CircuitBreaker {
	return &breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		cooldown:         cooldown,
		state:            Closed,
	}
}

func (b *breaker) State() State {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.state
}

func (b *breaker) Execute(fn func() error) error {
	b.mutex.Lock()
	if b.state == Open {
		if time.Since(b.openedAt) < b.cooldown {
			b.mutex.Unlock()
			return ErrCircuitOpen
		}
		b.state = HalfOpen
		b.successes = 0
	}
	b.mutex.Unlock()

	err := fn()

	b.mutex.Lock()
	defer b.mutex.Unlock()
	if err != nil {
		b.failures++
		b.successes = 0
		if b.state == HalfOpen || b.failures >= b.failureThreshold {
			b.state = Open
			b.openedAt = time.Now()
		}
		return err
	}

	switch b.state {
	case HalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = Closed
			b.failures = 0
		}
	case Closed:
		b.failures = 0
	}
	return nil
}
