package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/circuitbreaker"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

const tracerName = "storefront/storage"

// GuardedSlot 存储槽装饰器
// 每次读写记录耗时指标和追踪Span；远程存储额外经过熔断器
type GuardedSlot struct {
	next    cart.Storage
	driver  string
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedSlot 包装存储槽，breaker为nil时不熔断
func NewGuardedSlot(next cart.Storage, driver string, breaker *circuitbreaker.CircuitBreaker) *GuardedSlot {
	metrics.InitMetrics()
	return &GuardedSlot{next: next, driver: driver, breaker: breaker}
}

// Read 读取槽内容
func (s *GuardedSlot) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.do(ctx, "read", func(ctx context.Context) error {
		var err error
		data, err = s.next.Read(ctx)
		return err
	})
	return data, err
}

// Write 覆盖写入
func (s *GuardedSlot) Write(ctx context.Context, data []byte) error {
	return s.do(ctx, "write", func(ctx context.Context) error {
		return s.next.Write(ctx, data)
	})
}

func (s *GuardedSlot) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storage."+s.driver+"."+op)
	defer span.End()

	start := time.Now()
	err := s.execute(ctx, fn)
	metrics.ObserveHistogramVec(metrics.StorageOperationDuration,
		map[string]string{"driver": s.driver, "op": op}, time.Since(start).Seconds())

	tracing.RecordError(span, err)
	return err
}

func (s *GuardedSlot) execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.breaker == nil {
		return fn(ctx)
	}

	err := s.breaker.Execute(func() error { return fn(ctx) })

	result := "success"
	switch {
	case circuitbreaker.IsRejected(err):
		result = "rejected"
		err = fmt.Errorf("%s存储暂不可用: %w", s.driver, err)
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests,
		map[string]string{"name": s.breaker.Name(), "result": result})

	return err
}

// NewBreaker 按配置创建熔断器，状态变化写日志和指标
func NewBreaker(name string, cfg config.BreakerConfig, logger *slog.Logger) *circuitbreaker.CircuitBreaker {
	metrics.InitMetrics()

	breaker := circuitbreaker.NewCircuitBreaker(name, circuitbreaker.Config{
		MaxRequests:      cfg.MaxRequests,
		Interval:         cfg.Interval,
		Timeout:          cfg.Timeout,
		FailureThreshold: cfg.FailureThreshold,
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(circuitbreaker.StateClosed))

	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	return breaker
}
