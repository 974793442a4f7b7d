package ratelimiter

import (
	"sync"
	"time"
)

// TokenBucket 是令牌桶限流器。令牌以固定速率持续注入，最多存满容量，
// 因此容量以内的突发请求可以通过，持续流量则被限制在注入速率上。
type TokenBucket struct {
	mu         sync.Mutex
	rate       float64 // 每秒注入的令牌数
	capacity   float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time // 测试时替换时钟
}

// NewTokenBucket 创建一个满的令牌桶，每秒注入 rate 个令牌，最多 capacity 个。
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// Allow 在桶中还有完整令牌时消耗一个并放行。
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	if elapsed := now.Sub(tb.lastRefill); elapsed > 0 {
		tb.tokens += elapsed.Seconds() * tb.rate
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}

	if tb.tokens < 1 {
		return false
	}
	tb.tokens--
	return true
}
