package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/slide_window.lua
	slidingWindowScript string

	_ Limiter = (*RedisSlidingWindowLimiter)(nil)
)

type RedisSlidingWindowLimiter struct {
	cmd       redis.Cmdable
	interval  time.Duration
	rate      int
	keyPrefix string
	seq       atomic.Uint64
	now       func() time.Time
}

// NewRedisSlidingWindowLimiter 创建一个基于Redis的滑动窗口限流器，interval 内最多 rate 个请求
func NewRedisSlidingWindowLimiter(cmd redis.Cmdable, interval time.Duration, rate int) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		cmd:       cmd,
		interval:  interval,
		rate:      rate,
		keyPrefix: "push:ratelimit:",
		now:       time.Now,
	}
}

func (r *RedisSlidingWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	now := r.now()
	limited, err := r.cmd.Eval(ctx, slidingWindowScript,
		[]string{r.getCountKey(key)},
		r.interval.Milliseconds(),
		r.rate,
		now.UnixMilli(),
		r.member(now),
	).Bool()
	return limited, errors.Wrapf(err, "限流判断失败 %s", key)
}

// getCountKey 获取请求计数的Redis键
func (r *RedisSlidingWindowLimiter) getCountKey(key string) string {
	return fmt.Sprintf("%scount:%s", r.keyPrefix, key)
}

// member 同一毫秒内的请求也要区分开
func (r *RedisSlidingWindowLimiter) member(now time.Time) string {
	return fmt.Sprintf("%d-%d", now.UnixNano(), r.seq.Add(1))
}
