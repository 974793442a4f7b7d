package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 表示熔断器所处的状态。
type State int

const (
	// Closed 是初始状态，请求正常放行。
	Closed State = iota
	// Open 表示已熔断，请求直接快速失败。
	Open
	// HalfOpen 表示试探恢复，放行请求以检验后端是否恢复。
	HalfOpen
)

// String 返回状态的字符串表示。
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "Half-Open"
	default:
		return "Unknown"
	}
}

// ErrCircuitOpen 在熔断器打开期间返回；超时窗口结束前重试没有意义。
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker 包装一个不可靠的调用：连续失败达到阈值后熔断，
// 超时后进入半开试探，连续成功达到阈值后恢复。
type CircuitBreaker interface {
	// Execute 在熔断器允许时运行 req，并根据结果更新状态。
	Execute(req func() (interface{}, error)) (interface{}, error)
	// State 返回熔断器的当前状态。
	State() State
}

// breaker 是基于连续成功/失败计数的实现。
type breaker struct {
	mu               sync.Mutex
	state            State
	failures         uint32
	successes        uint32
	failureThreshold uint32
	successThreshold uint32
	timeout          time.Duration
	openedAt         time.Time
	now              func() time.Time // 测试时替换时钟
}

// New 创建熔断器。
// failureThreshold: 连续失败多少次后打开熔断。
// successThreshold: 半开状态下连续成功多少次后关闭熔断。
// timeout: 打开后等待多久进入半开状态。
func New(failureThreshold, successThreshold uint32, timeout time.Duration) CircuitBreaker {
	return &breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
		now:              time.Now,
	}
}

// State 返回熔断器的当前状态。
func (b *breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// currentState 须持锁调用；处理 Open 超时后向 HalfOpen 的迁移。
func (b *breaker) currentState() State {
	if b.state == Open && b.now().Sub(b.openedAt) > b.timeout {
		b.state = HalfOpen
		b.successes = 0
	}
	return b.state
}

// Execute 在熔断器允许时运行 req，并根据结果更新状态。
func (b *breaker) Execute(req func() (interface{}, error)) (interface{}, error) {
	b.mu.Lock()
	if b.currentState() == Open {
		b.mu.Unlock()
		return nil, ErrCircuitOpen
	}
	b.mu.Unlock()

	res, err := req()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailure()
		return nil, err
	}
	b.recordSuccess()
	return res, nil
}

// recordFailure 须持锁调用。半开状态下任何一次失败都立即重新熔断。
func (b *breaker) recordFailure() {
	switch b.state {
	case HalfOpen:
		b.trip()
	case Closed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.trip()
		}
	}
}

// recordSuccess 须持锁调用。关闭状态下成功会清零失败计数。
func (b *breaker) recordSuccess() {
	switch b.state {
	case HalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = Closed
			b.failures = 0
			b.successes = 0
		}
	case Closed:
		b.failures = 0
	}
}

// trip 须持锁调用；打开熔断并记录时间。
func (b *breaker) trip() {
	b.state = Open
	b.openedAt = b.now()
	b.failures = 0
	b.successes = 0
}
