package runtime

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/maratech/voxguide/internal/dialog"
)

// dialogMetrics backs dialog.Metrics with OTel counters, exported through
// the Prometheus bridge on /metrics.
type dialogMetrics struct {
	log       *slog.Logger
	sessions  metric.Int64Counter
	retries   metric.Int64Counter
	fallbacks metric.Int64Counter
	committed metric.Int64Counter
	rejected  metric.Int64Counter
}

func newDialogMetrics(log *slog.Logger) dialog.Metrics {
	m := &dialogMetrics{log: log.With(slog.String("component", "metrics"))}
	meter := otel.Meter("github.com/maratech/voxguide/runtime")

	var err error
	if m.sessions, err = meter.Int64Counter("voxguide.sessions.started",
		metric.WithDescription("Dialogue sessions started by a user gesture")); err != nil {
		m.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}
	if m.retries, err = meter.Int64Counter("voxguide.prompt.retries",
		metric.WithDescription("Prompt retries consumed, by dialogue phase")); err != nil {
		m.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}
	if m.fallbacks, err = meter.Int64Counter("voxguide.dialog.fallbacks",
		metric.WithDescription("Dialogues that fell back to manual controls, by phase")); err != nil {
		m.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}
	if m.committed, err = meter.Int64Counter("voxguide.transfers.committed",
		metric.WithDescription("Voice transfers committed to the ledger")); err != nil {
		m.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}
	if m.rejected, err = meter.Int64Counter("voxguide.transfers.rejected",
		metric.WithDescription("Voice transfers rejected for insufficient funds")); err != nil {
		m.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}
	return m
}

func (m *dialogMetrics) SessionStarted() {
	if m.sessions != nil {
		m.sessions.Add(context.Background(), 1)
	}
}

func (m *dialogMetrics) RetryConsumed(phase dialog.Phase) {
	if m.retries != nil {
		m.retries.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("phase", string(phase))))
	}
}

func (m *dialogMetrics) FallbackEntered(phase dialog.Phase) {
	if m.fallbacks != nil {
		m.fallbacks.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("phase", string(phase))))
	}
}

func (m *dialogMetrics) TransferCommitted() {
	if m.committed != nil {
		m.committed.Add(context.Background(), 1)
	}
}

func (m *dialogMetrics) TransferRejected() {
	if m.rejected != nil {
		m.rejected.Add(context.Background(), 1)
	}
}
