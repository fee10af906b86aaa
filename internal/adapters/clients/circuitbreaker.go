package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen admits a limited number of probe requests.
	StateHalfOpen
)

// String returns the state name used in logs and health output.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int

	// Timeout is the cool-down spent open before probing again.
	Timeout time.Duration

	// HalfOpenLimit bounds in-flight probes and is also the number of
	// successful probes needed to close the circuit.
	HalfOpenLimit int
}

// Snapshot is a point-in-time view of a breaker.
type Snapshot struct {
	State       State
	Failures    int
	OpenedAt    time.Time
	LastFailure time.Time
}

// CircuitBreaker guards calls to the quote API.
//
//	closed    -> open       after MaxFailures consecutive failures
//	open      -> half-open  once Timeout has passed since opening
//	half-open -> closed     after HalfOpenLimit successful probes
//	half-open -> open       on any failed probe
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	state    State
	failures int
	probes   int
	passed   int
	openedAt time.Time
	lastFail time.Time
	listener func(from, to State)
	now      func() time.Time
}

// NewCircuitBreaker returns a closed breaker. Non-positive limits are raised to 1.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = 1
	}

	if cfg.HalfOpenLimit < 1 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after every transition. fn runs outside
// the breaker's lock and may call back into it.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.listener = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may proceed. It returns ErrCircuitOpen
// while the circuit is open or while the half-open probe budget is spent.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()

	var notify func()
	allowed := true

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			allowed = false
			break
		}

		notify = cb.moveLocked(StateHalfOpen)
		cb.probes = 1
	case StateHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenLimit {
			allowed = false
			break
		}

		cb.probes++
	}

	cb.mu.Unlock()
	run(notify)

	if !allowed {
		return ErrCircuitOpen
	}

	return nil
}

// RecordSuccess reports a request that reached the API and got an answer.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var notify func()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.probes--
		cb.passed++
		if cb.passed >= cb.cfg.HalfOpenLimit {
			notify = cb.moveLocked(StateClosed)
		}
	}

	cb.mu.Unlock()
	run(notify)
}

// RecordFailure reports a request that failed at the transport level or
// with a server error.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var notify func()
	cb.lastFail = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			notify = cb.moveLocked(StateOpen)
		}
	case StateHalfOpen:
		cb.probes--
		notify = cb.moveLocked(StateOpen)
	}

	cb.mu.Unlock()
	run(notify)
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns a snapshot for health reporting.
func (cb *CircuitBreaker) Stats() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Snapshot{
		State:       cb.state,
		Failures:    cb.failures,
		OpenedAt:    cb.openedAt,
		LastFailure: cb.lastFail,
	}
}

// Reset forces the breaker closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	notify := cb.moveLocked(StateClosed)
	cb.probes = 0
	cb.mu.Unlock()
	run(notify)
}

// moveLocked switches state and returns the listener call to make once the
// lock is released, or nil.
func (cb *CircuitBreaker) moveLocked(to State) func() {
	from := cb.state
	if from == to {
		return nil
	}

	cb.state = to
	cb.failures = 0
	cb.passed = 0

	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.listener == nil {
		return nil
	}

	listener := cb.listener
	return func() { listener(from, to) }
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
