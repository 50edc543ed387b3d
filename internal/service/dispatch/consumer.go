package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/pkg/delayqueue"
	"gitee.com/flycash/push-platform/internal/pkg/loopjob"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"github.com/meoying/dlock-go"
	"golang.org/x/sync/errgroup"
)

const (
	ConsumerKey = "push:dispatch:consumer"

	defaultBatchSize   = 100
	defaultConcurrency = 16
	defaultIdleTime    = time.Second
	consumerExpiration = time.Second * 30
)

// Consumer 消费到期的延迟任务，交给 Gate 发送。
// 任务处理完之后不管成功失败都会确认，不会重试
type Consumer struct {
	queue   delayqueue.Queue
	gate    Gate
	dclient dlock.Client
	// 过期时间，0 表示不过期
	expires     time.Duration
	batchSize   int
	concurrency int
	idleTime    time.Duration
	logger      *elog.Component
	now         func() time.Time
}

func NewConsumer(queue delayqueue.Queue, gate Gate, dclient dlock.Client, cfg domain.Config) *Consumer {
	return &Consumer{
		queue:       queue,
		gate:        gate,
		dclient:     dclient,
		expires:     cfg.NotificationExpires,
		batchSize:   defaultBatchSize,
		concurrency: defaultConcurrency,
		idleTime:    defaultIdleTime,
		logger:      elog.DefaultLogger,
		now:         time.Now,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	lj := loopjob.NewInfiniteLoop(c.dclient, c.Consume, ConsumerKey, consumerExpiration)
	lj.Run(ctx)
}

// Consume 处理一批到期的任务
func (c *Consumer) Consume(ctx context.Context) error {
	tasks, err := c.queue.Poll(ctx, c.batchSize)
	if err != nil {
		// 避免 Redis 出问题的时候空转
		c.sleep(ctx)
		return fmt.Errorf("拉取延迟任务失败: %w", err)
	}
	if len(tasks) == 0 {
		c.sleep(ctx)
		return nil
	}

	var (
		eg   errgroup.Group
		mu   sync.Mutex
		merr *multierror.Error
	)
	eg.SetLimit(c.concurrency)
	now := c.now()
	for _, task := range tasks {
		if task.Expired(now, c.expires) {
			c.logger.Warn("延迟任务已经过期，丢弃",
				elog.Any("instanceID", task.InstanceID),
				elog.String("dueAt", task.DueAt.Format(time.RFC3339)))
			continue
		}
		eg.Go(func() error {
			if err1 := c.gate.Dispatch(ctx, task.InstanceID); err1 != nil {
				mu.Lock()
				merr = multierror.Append(merr, fmt.Errorf("通知实例 %d: %w", task.InstanceID, err1))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	if err = c.queue.Ack(ctx, tasks...); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("确认延迟任务失败: %w", err))
	}
	return merr.ErrorOrNil()
}

func (c *Consumer) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(c.idleTime):
	}
}
