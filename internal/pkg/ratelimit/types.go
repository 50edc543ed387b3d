package ratelimit

import "context"

//go:generate mockgen -source=./types.go -package=limitmocks -destination=./mocks/limiter.mock.go Limiter
type Limiter interface {
	// Limit 判断是否应该限流，true 表示应该拒绝这次请求
	Limit(ctx context.Context, key string) (bool, error)
}
