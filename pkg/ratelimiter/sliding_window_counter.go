package ratelimiter

import (
	"sync"
	"time"
)

// SlidingWindowCounter 在一个滚动时间窗口内限制请求总数。窗口被切分为若干
// 桶，随时间推进清空滚出窗口的桶，从而避免固定窗口在边界处放过双倍流量。
type SlidingWindowCounter struct {
	mu         sync.Mutex
	limit      int
	bucketSpan time.Duration
	counts     []int
	head       int              // 当前接收请求的桶
	headStart  time.Time        // 当前桶的起始时间
	now        func() time.Time // 测试时替换时钟
}

// NewSlidingWindowCounter 创建滑动窗口计数器：窗口时长 window，切分为
// numBuckets 个桶（非正值时取 10），窗口内最多放行 limit 个请求。
func NewSlidingWindowCounter(limit int, window time.Duration, numBuckets int) *SlidingWindowCounter {
	if numBuckets <= 0 {
		numBuckets = 10
	}
	return &SlidingWindowCounter{
		limit:      limit,
		bucketSpan: window / time.Duration(numBuckets),
		counts:     make([]int, numBuckets),
		headStart:  time.Now(),
		now:        time.Now,
	}
}

// Allow 在窗口内请求总数未达上限时计数并放行。
func (s *SlidingWindowCounter) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advance()

	total := 0
	for _, c := range s.counts {
		total += c
	}
	if total >= s.limit {
		return false
	}
	s.counts[s.head]++
	return true
}

// advance 把当前桶推进到现在所在的时间片，并清空滚出窗口的桶。
func (s *SlidingWindowCounter) advance() {
	steps := int(s.now().Sub(s.headStart) / s.bucketSpan)
	if steps <= 0 {
		return
	}
	if steps >= len(s.counts) {
		for i := range s.counts {
			s.counts[i] = 0
		}
	} else {
		for i := 1; i <= steps; i++ {
			s.counts[(s.head+i)%len(s.counts)] = 0
		}
	}
	s.head = (s.head + steps) % len(s.counts)
	s.headStart = s.headStart.Add(s.bucketSpan * time.Duration(steps))
}
