package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// 多个实例同时部署的时候，只有拿到分布式锁的那个实例执行业务

const defaultTimeout = time.Second * 3

type InfiniteLoop struct {
	dclient dlock.Client
	key     string
	// 锁的过期时间，也是拿不到锁之后的重试间隔
	expiration time.Duration
	logger     *elog.Component
	biz        func(ctx context.Context) error
}

func NewInfiniteLoop(
	dclient dlock.Client,
	// 注意当 ctx 被取消的时候，就会退出全部循环。
	// biz 没有事情可做的时候应该自己休息一下
	biz func(ctx context.Context) error,
	key string,
	expiration time.Duration,
) *InfiniteLoop {
	return &InfiniteLoop{
		dclient:    dclient,
		key:        key,
		expiration: expiration,
		logger:     elog.DefaultLogger.With(elog.String("key", key)),
		biz:        biz,
	}
}

// Run 当 ctx 被取消的时候，就会退出
func (l *InfiniteLoop) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		lock, err := l.dclient.NewLock(ctx, l.key, l.expiration)
		if err != nil {
			l.logger.Error("初始化分布式锁失败，重试", elog.FieldErr(err))
			l.sleep(ctx)
			continue
		}

		lockCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		// 没有拿到锁，不管是系统错误，还是锁被别的实例持有，都暂停一段时间之后继续
		err = lock.Lock(lockCtx)
		cancel()
		if err != nil {
			l.logger.Debug("没有抢到分布式锁", elog.FieldErr(err))
			l.sleep(ctx)
			continue
		}

		err = l.bizLoop(ctx, lock)
		if err != nil {
			l.logger.Error("执行业务失败，将执行重试", elog.FieldErr(err))
		}
		// ctx 可能已经被取消了，但是还是要尝试释放锁
		unCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		//nolint:contextcheck // 原始 ctx 可能已被取消
		unErr := lock.Unlock(unCtx)
		cancel()
		if unErr != nil {
			l.logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
		}
		err = ctx.Err()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			l.logger.Info("任务被取消，退出任务循环")
			return
		}
		l.sleep(ctx)
	}
}

func (l *InfiniteLoop) bizLoop(ctx context.Context, lock dlock.Lock) error {
	for {
		err := l.biz(ctx)
		if err != nil {
			l.logger.Error("业务执行失败", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		refCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		err = lock.Refresh(refCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("分布式锁续约失败 %w", err)
		}
	}
}

func (l *InfiniteLoop) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(l.expiration):
	}
}
