package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Status represents health check status
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "HEALTHY"
	case StatusUnhealthy:
		return "UNHEALTHY"
	default:
		return "UNKNOWN"
	}
}

// CheckResult is the latest outcome of one dependency probe.
type CheckResult struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Latency      time.Duration `json:"latency"`
	LastCheck    time.Time     `json:"last_check"`
	LastError    string        `json:"last_error,omitempty"`
	CheckCount   int           `json:"check_count"`
	FailureCount int           `json:"failure_count"`

	status Status
}

// Checker probes one dependency.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a ping function, such as a redis client's Ping, to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// Monitor probes registered dependencies in the background and publishes
// dashboard_dependency_up{dependency} as 1 or 0.
type Monitor struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	results  map[string]*CheckResult
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	up       *prometheus.GaugeVec
	now      func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor builds a monitor. reg may be nil to skip the gauge.
func NewMonitor(interval time.Duration, logger *zap.Logger, reg prometheus.Registerer) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	m := &Monitor{
		checkers: make(map[string]Checker),
		results:  make(map[string]*CheckResult),
		interval: interval,
		timeout:  5 * time.Second,
		logger:   logger,
		now:      time.Now,
	}
	if reg != nil {
		m.up = promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "dependency_up",
			Help:      "Whether the last probe of a dependency succeeded.",
		}, []string{"dependency"})
	}
	return m
}

// Register adds a dependency. Registering a name twice replaces the checker.
func (m *Monitor) Register(name string, checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[name] = checker
	if _, ok := m.results[name]; !ok {
		// Listed as UNKNOWN until its first probe.
		m.results[name] = &CheckResult{Name: name, Status: StatusUnknown.String(), status: StatusUnknown}
	}

	m.logger.Info("Registered health checker", zap.String("dependency", name))
}

// Start probes once synchronously, then every interval until Stop.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.CheckAll(ctx)
	go m.run(ctx)
}

// Stop ends the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll(ctx)
		}
	}
}

// CheckAll probes every registered dependency once.
func (m *Monitor) CheckAll(ctx context.Context) {
	m.mu.RLock()
	checkers := make(map[string]Checker, len(m.checkers))
	for name, checker := range m.checkers {
		checkers[name] = checker
	}
	m.mu.RUnlock()

	for name, checker := range checkers {
		m.check(ctx, name, checker)
	}
}

func (m *Monitor) check(ctx context.Context, name string, checker Checker) {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	start := m.now()
	err := checker.Check(checkCtx)
	cancel()

	result := CheckResult{
		Name:      name,
		Latency:   m.now().Sub(start),
		LastCheck: start,
		status:    StatusHealthy,
	}
	if err != nil {
		result.status = StatusUnhealthy
		result.LastError = err.Error()
	}
	result.Status = result.status.String()

	m.mu.Lock()
	prev, seen := m.results[name]
	if seen {
		result.CheckCount = prev.CheckCount + 1
		result.FailureCount = prev.FailureCount
	} else {
		result.CheckCount = 1
	}
	if err != nil {
		result.FailureCount++
	}
	m.results[name] = &result
	m.mu.Unlock()

	if m.up != nil {
		value := 0.0
		if err == nil {
			value = 1
		}
		m.up.WithLabelValues(name).Set(value)
	}

	switch {
	case err != nil:
		m.logger.Warn("Health check failed",
			zap.String("dependency", name),
			zap.Duration("latency", result.Latency),
			zap.Int("failure_count", result.FailureCount),
			zap.Error(err),
		)
	case seen && prev.status == StatusUnhealthy:
		m.logger.Info("Dependency recovered", zap.String("dependency", name))
	}
}

// IsHealthy reports the last probe of name. Untracked and not yet probed
// names count as healthy.
func (m *Monitor) IsHealthy(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if result, ok := m.results[name]; ok {
		return result.status != StatusUnhealthy
	}
	return true
}

// Results returns a copy of every result, ordered by name.
func (m *Monitor) Results() []CheckResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CheckResult, 0, len(m.results))
	for _, result := range m.results {
		out = append(out, *result)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
