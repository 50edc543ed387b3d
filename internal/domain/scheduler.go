package domain

import (
	"fmt"
	"sort"
	"time"

	"gitee.com/flycash/push-platform/internal/errs"
)

// SchedulerPolicyType 调度策略类型
type SchedulerPolicyType string

const (
	SchedulerPolicyMinutesLater SchedulerPolicyType = "MINUTES_LATER" // 若干分钟之后发送
	SchedulerPolicyInTimeRange  SchedulerPolicyType = "IN_TIME_RANGE" // 在每天的某个时间段内发送
)

const hoursPerDay = 24

// SchedulerPolicy 调度策略，把一个时间点映射成新的时间点。
// 返回 false 表示丢弃这次发送
type SchedulerPolicy interface {
	Apply(t time.Time) (time.Time, bool)
	String() string
}

// SchedulerPolicyConfig 调度策略配置，Type 决定了哪些字段生效
type SchedulerPolicyConfig struct {
	ID   int64
	Type SchedulerPolicyType
	// MinutesLater 使用
	Minutes int
	// InTimeRange 使用，区间为 [StartHour, EndHour)
	StartHour int
	EndHour   int
	Discard   bool
}

func (c SchedulerPolicyConfig) Validate() error {
	switch c.Type {
	case SchedulerPolicyMinutesLater:
		if c.Minutes < 0 {
			return fmt.Errorf("%w: Minutes = %d", errs.ErrInvalidParameter, c.Minutes)
		}
	case SchedulerPolicyInTimeRange:
		if c.StartHour < 0 || c.StartHour >= hoursPerDay {
			return fmt.Errorf("%w: StartHour = %d", errs.ErrInvalidParameter, c.StartHour)
		}
		if c.EndHour < 0 || c.EndHour >= hoursPerDay {
			return fmt.Errorf("%w: EndHour = %d", errs.ErrInvalidParameter, c.EndHour)
		}
	default:
		return fmt.Errorf("%w: 未知的调度策略 %q", errs.ErrInvalidParameter, c.Type)
	}
	return nil
}

// Policy 根据 Type 构造具体的调度策略
func (c SchedulerPolicyConfig) Policy() (SchedulerPolicy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Type == SchedulerPolicyMinutesLater {
		return MinutesLater{Minutes: c.Minutes}, nil
	}
	return InTimeRange{StartHour: c.StartHour, EndHour: c.EndHour, Discard: c.Discard}, nil
}

// MinutesLater 在 Minutes 分钟之后发送
type MinutesLater struct {
	Minutes int
}

func (p MinutesLater) Apply(t time.Time) (time.Time, bool) {
	return t.Add(time.Duration(p.Minutes) * time.Minute), true
}

func (p MinutesLater) String() string {
	return fmt.Sprintf("Schedule in %d minute(s)", p.Minutes)
}

// InTimeRange 只在每天的 [StartHour, EndHour) 内发送。
// 太早了就推迟到当天的 StartHour，太晚了就推迟到第二天的 StartHour；
// Discard 为 true 的时候，不在区间内的直接丢弃
type InTimeRange struct {
	StartHour int
	EndHour   int
	Discard   bool
}

func (p InTimeRange) Apply(t time.Time) (time.Time, bool) {
	var days int
	switch h := t.Hour(); {
	case h < p.StartHour:
		days = 0
	case h >= p.EndHour:
		days = 1
	default:
		return t, true
	}
	if p.Discard {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d+days, p.StartHour, 0, 0, 0, t.Location()), true
}

func (p InTimeRange) String() string {
	return fmt.Sprintf("Schedule between %d and %d (discard %t)", p.StartHour, p.EndHour, p.Discard)
}

// SchedulerBinding 通知上绑定的调度策略，Order 决定了执行顺序
type SchedulerBinding struct {
	ID     int64
	Order  int
	Policy SchedulerPolicyConfig
}

// SchedulerChain 按顺序执行的一组调度策略。
// 顺序是有意义的：先加 5 分钟再判断时间段，和先判断时间段再加 5 分钟，结果不一样
type SchedulerChain []SchedulerPolicy

// NewSchedulerChain 按 Order 排序之后构造调度链
func NewSchedulerChain(bindings []SchedulerBinding) (SchedulerChain, error) {
	sorted := make([]SchedulerBinding, len(bindings))
	copy(sorted, bindings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	chain := make(SchedulerChain, 0, len(sorted))
	for i := range sorted {
		p, err := sorted[i].Policy.Policy()
		if err != nil {
			return nil, fmt.Errorf("调度策略 %d 配置错误: %w", sorted[i].Policy.ID, err)
		}
		chain = append(chain, p)
	}
	return chain, nil
}

// Resolve 依次执行调度策略，每一步的输入是上一步的输出。
// 任何一步丢弃，整个调度链就丢弃；空的调度链意味着立刻发送
func (c SchedulerChain) Resolve(now time.Time) (time.Time, bool) {
	res := now
	for _, p := range c {
		var ok bool
		res, ok = p.Apply(res)
		if !ok {
			return time.Time{}, false
		}
	}
	return res, true
}
