package delayqueue

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Queue 延迟任务队列。投递语义是至少一次：
// 任务可能重复、可能乱序，消费方必须自己保证幂等
//
//go:generate mockgen -source=./types.go -destination=./mocks/queue.mock.go -package=delayqueuemocks Queue
type Queue interface {
	// Schedule 在 delay 之后投递 instanceID，delay 为 0 表示立刻投递
	Schedule(ctx context.Context, instanceID uint64, delay time.Duration) error
	// Poll 取出最多 limit 个到期的任务。
	// 取出之后的任务在租约时间内不会被再次取出，超时没有 Ack 的任务会被重新投递
	Poll(ctx context.Context, limit int) ([]Task, error)
	// Ack 确认任务已经处理完毕
	Ack(ctx context.Context, tasks ...Task) error
}

// Task 一个延迟任务
type Task struct {
	InstanceID uint64
	// 计划执行的时间，秒级精度
	DueAt time.Time
}

// Expired 是否已经过了有效期，expires 为 0 表示永不过期
func (t Task) Expired(now time.Time, expires time.Duration) bool {
	if expires <= 0 {
		return false
	}
	return now.After(t.DueAt.Add(expires))
}

// member 在有序集合中的成员，形如 "{id}:{due}"。
// 同一个实例同一个时间重复投递会得到同一个成员
func (t Task) member() string {
	return fmt.Sprintf("%d:%d", t.InstanceID, t.DueAt.Unix())
}

func parseMember(member string) (Task, error) {
	id, due, ok := strings.Cut(member, ":")
	if !ok {
		return Task{}, errors.Errorf("非法的延迟任务 %q", member)
	}
	instanceID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return Task{}, errors.Wrapf(err, "非法的延迟任务 %q", member)
	}
	dueAt, err := strconv.ParseInt(due, 10, 64)
	if err != nil {
		return Task{}, errors.Wrapf(err, "非法的延迟任务 %q", member)
	}
	return Task{InstanceID: instanceID, DueAt: time.Unix(dueAt, 0).UTC()}, nil
}
