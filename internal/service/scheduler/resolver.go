package scheduler

import (
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
)

// Resolver 计算通知实例的发送时间
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve 在 loc 时区下执行调度链，结果统一成 UTC 并且去掉秒以下的精度。
// 返回 false 表示丢弃
func (r *Resolver) Resolve(loc *time.Location, now time.Time, chain domain.SchedulerChain) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	window, ok := chain.Resolve(now.In(loc))
	if !ok {
		return time.Time{}, false
	}
	return domain.NormalizeTime(window), true
}

// LoadLocation 空字符串就是 UTC
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: 未知的时区 %q", errs.ErrInvalidParameter, name)
	}
	return loc, nil
}
