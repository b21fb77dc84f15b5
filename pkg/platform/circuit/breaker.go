// Package circuit provides a small counting circuit breaker for optional
// outbound dependencies. Callers record outcomes; the breaker decides when to
// stop sending traffic and when to let it resume.
package circuit

import (
	"sync"
	"time"
)

// State is the breaker's current position.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// StateChange reports a transition caused by the recorded outcome, so
// callers can log opens and closes exactly once.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker counts consecutive failures and successes. It opens after
// failureThreshold consecutive failures and closes again after
// successThreshold consecutive successes while open. An open breaker lets a
// probe through once retryAfter has elapsed, so a recovered upstream can
// close the circuit without operator intervention.
type Breaker struct {
	mu        sync.Mutex
	name      string
	state     State
	failures  int
	successes int
	openedAt  time.Time

	failureThreshold int
	successThreshold int
	retryAfter       time.Duration
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) { b.failureThreshold = n }
}

// WithSuccessThreshold sets how many consecutive successes close it again.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) { b.successThreshold = n }
}

// WithRetryAfter sets how long an open circuit blocks traffic before letting
// a probe through. Zero or negative keeps the circuit latched until Reset.
func WithRetryAfter(d time.Duration) Option {
	return func(b *Breaker) { b.retryAfter = d }
}

// New creates a closed breaker. Defaults: 5 failures to open, 1 success to
// close, a probe every 30 seconds while open.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 1,
		retryAfter:       30 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// Allow reports whether a call may proceed at the given instant. A closed
// circuit always allows. An open circuit allows one probe per elapsed retry
// window; granting a probe re-arms the window so concurrent callers do not
// stampede a recovering upstream.
func (b *Breaker) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		return true
	}
	if b.retryAfter <= 0 || now.Sub(b.openedAt) < b.retryAfter {
		return false
	}
	b.openedAt = now
	return true
}

// RecordFailure notes a failed operation. It returns whether the caller
// should use its fallback, and whether this failure opened the circuit.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	if b.state == StateOpen {
		// A failed probe re-arms the retry window.
		b.openedAt = time.Now()
		return true, StateChange{}
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.failures = 0
		b.openedAt = time.Now()
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess notes a successful operation. It returns whether the caller
// should use the primary path, and whether this success closed the circuit.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == StateClosed {
		return true, StateChange{}
	}
	b.successes++
	if b.successes >= b.successThreshold {
		b.state = StateClosed
		b.successes = 0
		return true, StateChange{Closed: true}
	}
	return false, StateChange{}
}

// Reset manually closes the circuit.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}
