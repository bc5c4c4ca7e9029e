// Package metrics 提供基于Prometheus的指标收集
//
// 指标分为三组：
//   - HTTP指标：请求数、耗时、并发数，由中间件记录
//   - 业务指标：意图（登录、加购、结账等）的执行次数，购物车行数/件数，结账金额
//   - 存储指标：存储槽读写耗时，熔断器状态
//
// 命名规范：
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`、`_dollars`）
//  3. 标签只用有限取值（intent、outcome、driver），不要用用户名
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.IntentsTotal, map[string]string{"intent": "add", "outcome": "ok"})
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// IntentsTotal 用户意图执行总数（Counter）
	// 标签：intent（login/add/increment/...）、outcome（ok/rejected/failed）
	IntentsTotal *prometheus.CounterVec

	// CartLines 当前购物车行数（Gauge）
	CartLines prometheus.Gauge

	// CartUnits 当前购物车总件数（Gauge）
	CartUnits prometheus.Gauge

	// CheckoutsTotal 结账总数（Counter）
	CheckoutsTotal prometheus.Counter

	// CheckoutAmount 结账应付总额分布（Histogram）
	CheckoutAmount prometheus.Histogram

	// 存储指标

	// StorageOperationDuration 存储槽读写耗时（Histogram）
	// 标签：driver（memory/file/redis/mysql）、op（read/write）
	StorageOperationDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 使用promauto注册到默认Registry，重复调用是安全的
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_intents_total",
			Help: "用户意图执行总数",
		},
		[]string{"intent", "outcome"},
	)

	CartLines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_lines",
			Help: "购物车行数",
		},
	)

	CartUnits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_units",
			Help: "购物车总件数",
		},
	)

	CheckoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "结账总数",
		},
	)

	CheckoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "storefront_checkout_amount_dollars",
			Help: "结账应付总额（美元）",
			// 单本书价格在30~100之间
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_storage_operation_duration_seconds",
			Help:    "存储槽读写耗时（秒）",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"driver", "op"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
