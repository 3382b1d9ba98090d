package monitoring

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	wizardActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_actions_total",
			Help: "Wizard actions by wizard, action type and result",
		},
		[]string{"wizard", "action", "result"},
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_submissions_total",
			Help: "Wizard submissions by outcome",
		},
		[]string{"wizard", "outcome"},
	)

	guardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_guard_rejections_total",
			Help: "Requests stopped by the auth guard",
		},
		[]string{"reason"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of calls to the concert backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "code"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Current number of signed-in sessions",
		},
	)
)

// Action results.
const (
	ResultApplied  = "applied"
	ResultBlocked  = "blocked"
	ResultRejected = "rejected"
)

// Submission outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeInFlight  = "in_flight"
	OutcomeAbandoned = "abandoned"
)

func TrackWizardAction(wizard, action, result string) {
	wizardActions.WithLabelValues(wizard, action, result).Inc()
}

func TrackSubmission(wizard, outcome string) {
	submissions.WithLabelValues(wizard, outcome).Inc()
}

func TrackGuardRejection(reason string) {
	guardRejections.WithLabelValues(reason).Inc()
}

// ObserveBackendRequest records one backend call. code is 0 for transport errors.
func ObserveBackendRequest(route string, code int, duration time.Duration) {
	backendRequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(duration.Seconds())
}

func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

// Monitor samples gauges that live in Redis.
type Monitor struct {
	redis    redis.Cmdable
	pattern  string
	interval time.Duration
}

// NewMonitor starts collecting in the background until ctx is done. pattern selects
// the session keys to count.
func NewMonitor(ctx context.Context, redisClient redis.Cmdable, pattern string) *Monitor {
	monitor := &Monitor{redis: redisClient, pattern: pattern, interval: 30 * time.Second}

	go monitor.collectMetrics(ctx)

	return monitor
}

func (m *Monitor) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.CollectSessionMetrics(ctx); err != nil {
				slog.Warn("collect session metrics", "error", err)
			}
		}
	}
}

// CollectSessionMetrics counts the session keys with SCAN and updates the gauge.
func (m *Monitor) CollectSessionMetrics(ctx context.Context) error {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := m.redis.Scan(ctx, cursor, m.pattern, 100).Result()
		if err != nil {
			return err
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	activeSessions.Set(float64(total))
	return nil
}
