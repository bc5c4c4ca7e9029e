// Package circuitbreaker 熔断器，基于sony/gobreaker
//
// 三种状态：
//   - CLOSED：请求正常通过，统计连续失败次数，达到阈值转为OPEN
//   - OPEN：请求快速失败，Timeout之后转为HALF_OPEN
//   - HALF_OPEN：放行MaxRequests个探测请求，成功转为CLOSED，失败转回OPEN
//
// 远程存储（Redis、MySQL）故障时，购物车操作立即失败而不是等待连接超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
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

func fromGobreaker(s gobreaker.State) State {
	switch s {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大请求数
	MaxRequests uint32

	// Interval CLOSED状态下清空统计的周期，0表示不清空
	Interval time.Duration

	// Timeout OPEN状态持续时间，过后转为HALF_OPEN
	Timeout time.Duration

	// FailureThreshold 连续失败多少次打开熔断器
	FailureThreshold uint32

	// ReadyToTrip 自定义熔断判断，设置后忽略FailureThreshold
	ReadyToTrip func(counts Counts) bool
}

// Counts 统计数据
type Counts = gobreaker.Counts

// ErrOpenState 熔断器打开，请求被拒绝
var ErrOpenState = gobreaker.ErrOpenState

// ErrTooManyRequests 半开状态下探测请求已满
var ErrTooManyRequests = gobreaker.ErrTooManyRequests

// IsRejected 判断错误是否是熔断器拒绝（而不是被保护的调用本身失败）
func IsRejected(err error) bool {
	return errors.Is(err, ErrOpenState) || errors.Is(err, ErrTooManyRequests)
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]

	mu       sync.RWMutex
	onChange func(name string, from State, to State)
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	breaker := &CircuitBreaker{name: name}

	readyToTrip := config.ReadyToTrip
	if readyToTrip == nil {
		threshold := config.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		readyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		}
	}

	breaker.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			breaker.notify(fromGobreaker(from), fromGobreaker(to))
		},
	})

	return breaker
}

// SetStateChangeCallback 设置状态变化回调（用于日志和指标）
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onChange = fn
}

func (cb *CircuitBreaker) notify(from, to State) {
	cb.mu.RLock()
	fn := cb.onChange
	cb.mu.RUnlock()

	if fn != nil {
		fn(cb.name, from, to)
	}
}

// Execute 在熔断器保护下执行req
// 熔断器打开时不调用req，直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	_, err := cb.cb.Execute(func() (struct{}, error) {
		return struct{}{}, req()
	})
	return err
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	return fromGobreaker(cb.cb.State())
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	return cb.cb.Counts()
}
