package storefront

import (
	"context"
	"log/slog"

	"github.com/xiebiao/storefront/pkg/metrics"
)

// MetricsListener 把意图结果记录为Prometheus指标
type MetricsListener struct{}

// NewMetricsListener 创建指标监听者
func NewMetricsListener() *MetricsListener {
	metrics.InitMetrics()
	return &MetricsListener{}
}

// OnEvent 实现Listener
func (MetricsListener) OnEvent(_ context.Context, e Event) {
	metrics.IncCounterVec(metrics.IntentsTotal, map[string]string{
		"intent":  string(e.Intent),
		"outcome": string(e.Outcome),
	})

	metrics.SetGauge(metrics.CartLines, float64(len(e.Cart)))
	metrics.SetGauge(metrics.CartUnits, float64(units(e.Cart)))

	if e.Intent == IntentCheckout && e.Outcome == OutcomeOK && e.Billed != nil {
		metrics.IncCounter(metrics.CheckoutsTotal)
		metrics.ObserveHistogram(metrics.CheckoutAmount, e.Billed.GrandTotal.InexactFloat64())
	}
}

// LoggingListener 记录每个意图的结果
type LoggingListener struct {
	logger *slog.Logger
}

// NewLoggingListener 创建日志监听者
func NewLoggingListener(logger *slog.Logger) *LoggingListener {
	return &LoggingListener{logger: logger}
}

// OnEvent 实现Listener
func (l *LoggingListener) OnEvent(ctx context.Context, e Event) {
	attrs := []any{
		slog.String("intent", string(e.Intent)),
		slog.String("outcome", string(e.Outcome)),
		slog.String("session", e.Session.State.String()),
		slog.String("branch", e.Session.Branch.String()),
		slog.Int("lines", len(e.Cart)),
		slog.String("grand_total", e.Totals.Display().GrandTotal),
	}
	if e.Billed != nil {
		attrs = append(attrs, slog.String("billed", e.Billed.Display().GrandTotal))
	}

	switch e.Outcome {
	case OutcomeFailed:
		l.logger.ErrorContext(ctx, "intent failed", append(attrs, slog.Any("error", e.Err))...)
	case OutcomeRejected:
		l.logger.InfoContext(ctx, "intent rejected", append(attrs, slog.Any("error", e.Err))...)
	default:
		l.logger.InfoContext(ctx, "intent handled", attrs...)
	}
}
