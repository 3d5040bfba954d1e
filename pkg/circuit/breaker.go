package circuit

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the position of a Breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// Config tunes a Breaker.
type Config struct {
	Threshold        int           // consecutive failures that open the circuit
	Timeout          time.Duration // how long the circuit stays open before probing
	SuccessThreshold int           // probe successes that close it again
	MaxHalfOpen      int           // concurrent probes while half-open
}

func DefaultConfig() Config {
	return Config{
		Threshold:        5,
		Timeout:          30 * time.Second,
		SuccessThreshold: 2,
		MaxHalfOpen:      1,
	}
}

// Counts is a snapshot of a Breaker.
type Counts struct {
	State       State
	Failures    int
	Successes   int
	LastFailure time.Time
}

// Breaker fails calls fast after Threshold consecutive failures. Errors the
// IsFailure classifier rejects (for example a 404 from the API) pass through
// without counting.
type Breaker struct {
	mu        sync.Mutex
	name      string
	config    Config
	logger    *zap.Logger
	now       func() time.Time
	IsFailure func(error) bool

	state       State
	failures    int
	successes   int
	probes      int
	lastFailure time.Time
}

func NewBreaker(name string, config Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultConfig().Threshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	if config.MaxHalfOpen <= 0 {
		config.MaxHalfOpen = 1
	}
	return &Breaker{
		name:      name,
		config:    config,
		logger:    logger,
		now:       time.Now,
		IsFailure: func(err error) bool { return err != nil },
	}
}

// Execute runs fn when the circuit admits it and records the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err)
	return err
}

// Allow admits a call or returns ErrCircuitOpen / ErrTooManyRequests.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.lastFailure) < b.config.Timeout {
			return ErrCircuitOpen
		}
		b.transitionTo(StateHalfOpen)
		b.probes = 1
		return nil
	case StateHalfOpen:
		if b.probes >= b.config.MaxHalfOpen {
			return ErrTooManyRequests
		}
		b.probes++
		return nil
	default:
		return nil
	}
}

// Record feeds the result of an admitted call back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.probes > 0 {
		b.probes--
	}
	if b.IsFailure(err) {
		b.recordFailure()
		return
	}
	b.recordSuccess()
}

// must hold lock
func (b *Breaker) recordFailure() {
	b.failures++
	b.successes = 0
	b.lastFailure = b.now()

	switch b.state {
	case StateClosed:
		if b.failures >= b.config.Threshold {
			b.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		b.transitionTo(StateOpen)
	}
}

// must hold lock
func (b *Breaker) recordSuccess() {
	b.failures = 0
	if b.state != StateHalfOpen {
		return
	}
	b.successes++
	if b.successes >= b.config.SuccessThreshold {
		b.transitionTo(StateClosed)
	}
}

// must hold lock
func (b *Breaker) transitionTo(next State) {
	prev := b.state
	b.state = next
	b.probes = 0
	b.successes = 0
	if next == StateClosed {
		b.failures = 0
	}

	b.logger.Info("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
		zap.Int("failures", b.failures),
	)
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Counts{
		State:       b.state,
		Failures:    b.failures,
		Successes:   b.successes,
		LastFailure: b.lastFailure,
	}
}

// Reset closes the circuit and clears the counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
	b.probes = 0
}
