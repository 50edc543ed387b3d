package delayqueue

import (
	"context"
	_ "embed"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/poll.lua
	pollScript string

	_ Queue = (*RedisQueue)(nil)
)

// RedisQueue 基于 Redis 有序集合的延迟队列，分数是计划执行的时间
type RedisQueue struct {
	client redis.Cmdable
	key    string
	// 取出之后多久没有 Ack 就会重新投递
	visibility time.Duration
	logger     *elog.Component
	now        func() time.Time
}

func NewRedisQueue(client redis.Cmdable, key string, visibility time.Duration) *RedisQueue {
	return &RedisQueue{
		client:     client,
		key:        key,
		visibility: visibility,
		logger:     elog.DefaultLogger,
		now:        time.Now,
	}
}

func (q *RedisQueue) Schedule(ctx context.Context, instanceID uint64, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	task := Task{InstanceID: instanceID, DueAt: q.now().Add(delay).Truncate(time.Second)}
	err := q.client.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(task.DueAt.Unix()),
		Member: task.member(),
	}).Err()
	return errors.Wrapf(err, "投递延迟任务失败 %d", instanceID)
}

func (q *RedisQueue) Poll(ctx context.Context, limit int) ([]Task, error) {
	now := q.now()
	members, err := q.client.Eval(ctx, pollScript, []string{q.key},
		now.Unix(),
		now.Add(q.visibility).Unix(),
		limit,
	).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "获取到期的延迟任务失败")
	}
	tasks := make([]Task, 0, len(members))
	for _, m := range members {
		task, err1 := parseMember(m)
		if err1 != nil {
			// 永远不可能被处理，直接删掉
			q.logger.Error("删除非法的延迟任务", elog.String("member", m), elog.FieldErr(err1))
			q.client.ZRem(ctx, q.key, m)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (q *RedisQueue) Ack(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}
	err := q.client.ZRem(ctx, q.key, slice.Map(tasks, func(idx int, src Task) any {
		return src.member()
	})...).Err()
	return errors.Wrap(err, "确认延迟任务失败")
}
