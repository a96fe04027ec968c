// Package metrics exposes Prometheus counters for the bot and the reminder scheduler.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

const namespace = "babycare"

var (
	Registry = prometheus.NewRegistry()

	EntriesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_logged_total",
		Help:      "Log entries created, by kind.",
	}, []string{"kind"})

	RemindersSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Reminder notifications delivered, by reminder kind.",
	}, []string{"kind"})

	ReminderFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminder_failures_total",
		Help:      "Reminder evaluations or deliveries that failed, by stage.",
	}, []string{"stage"})

	SchedulerTickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scheduler_tick_seconds",
		Help:      "Time spent evaluating reminders for every caregiver.",
		Buckets:   prometheus.DefBuckets,
	})

	ActiveProfiles = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_profiles",
		Help:      "Caregivers with an active profile seen in the last scheduler tick.",
	})

	AIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Assistant requests, by provider and result.",
	}, []string{"provider", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		EntriesLogged,
		RemindersSent,
		ReminderFailures,
		SchedulerTickDuration,
		ActiveProfiles,
		AIRequests,
	)
}

// EntryKind buckets an entry for the entries_logged_total label
func EntryKind(e domain.LogEntry) string {
	switch {
	case e.IsFeeding():
		return "feeding"
	case e.Stool || e.Urination || e.Vomiting:
		return "diaper"
	case e.HasSupplement():
		return "supplement"
	case e.TummyTime || e.Sterilization || e.Bathing:
		return "care"
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics listener until ctx is cancelled
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics listener started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
