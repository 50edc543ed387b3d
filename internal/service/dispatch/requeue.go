package dispatch

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/pkg/delayqueue"
	"gitee.com/flycash/push-platform/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

const (
	defaultRequeueGrace     = time.Minute * 10
	defaultRequeueBatchSize = 100
)

// RequeueCron 把早就到期却一直没有发送的存活实例重新放回延迟队列，
// 用来兜底丢失的延迟任务。它不会修改任何实例
type RequeueCron struct {
	repo    repository.InstanceRepository
	queue   delayqueue.Queue
	grace   time.Duration
	expires time.Duration

	batchSize int
	logger    *elog.Component
	now       func() time.Time
}

func NewRequeueCron(repo repository.InstanceRepository, queue delayqueue.Queue, cfg domain.Config) *RequeueCron {
	return &RequeueCron{
		repo:      repo,
		queue:     queue,
		grace:     defaultRequeueGrace,
		expires:   cfg.NotificationExpires,
		batchSize: defaultRequeueBatchSize,
		logger:    elog.DefaultLogger,
		now:       time.Now,
	}
}

func (r *RequeueCron) Do(ctx context.Context) error {
	now := r.now()
	before := now.Add(-r.grace)
	var (
		afterID uint64
		total   int
	)
	for {
		insts, err := r.repo.FindLiveBefore(ctx, before, afterID, r.batchSize)
		if err != nil {
			return fmt.Errorf("查询超时未发送的通知实例失败: %w", err)
		}
		for _, inst := range insts {
			// 已经过期的任务重新投递也会被丢弃
			if (delayqueue.Task{DueAt: inst.ScheduledAt}).Expired(now, r.expires) {
				continue
			}
			if err = r.queue.Schedule(ctx, inst.ID, 0); err != nil {
				return fmt.Errorf("重新投递通知实例 %d 失败: %w", inst.ID, err)
			}
			total++
		}
		if len(insts) < r.batchSize {
			break
		}
		afterID = insts[len(insts)-1].ID
	}
	if total > 0 {
		r.logger.Warn("重新投递超时未发送的通知实例", elog.Any("count", total))
	}
	return nil
}
