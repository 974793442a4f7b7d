package ratelimiter

// RateLimiter 决定当前这一个请求是否放行。实现必须是并发安全的。
type RateLimiter interface {
	// Allow 报告请求是否被放行；放行的同时消耗相应的配额。
	Allow() bool
}
