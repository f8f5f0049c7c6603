package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// RateLimiter 令牌桶限流器,同时供 AList 客户端和上传接口使用
type RateLimiter struct {
	limiter  *rate.Limiter
	rejected atomic.Int64
}

// NewRateLimiter 创建限流器,qps 为0或负数时不限制
func NewRateLimiter(qps int) *RateLimiter {
	r := &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	r.SetQPS(qps)
	return r
}

// Wait 阻塞直到拿到令牌或 ctx 结束
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// Allow 非阻塞检查,拒绝时计数
func (r *RateLimiter) Allow() bool {
	if r.limiter.Allow() {
		return true
	}
	r.rejected.Add(1)
	return false
}

// SetQPS 动态调整限制,桶大小与 QPS 相同
func (r *RateLimiter) SetQPS(qps int) {
	if qps <= 0 {
		r.limiter.SetLimit(rate.Inf)
		r.limiter.SetBurst(1)
		return
	}
	r.limiter.SetLimit(rate.Limit(qps))
	r.limiter.SetBurst(qps)
}

// QPS 当前限制,0 表示不限制
func (r *RateLimiter) QPS() int {
	limit := r.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}

// Rejected 被 Allow 拒绝的请求数
func (r *RateLimiter) Rejected() int64 {
	return r.rejected.Load()
}
