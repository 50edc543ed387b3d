package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

const (
	// 要覆盖一次供应商调用
	dispatchLockExpiration = time.Second * 30
	dispatchLockTimeout    = time.Second * 3
)

// Gate 延迟任务到期之后的入口。同一个任务可能被投递多次，
// 这里保证只有存活的实例会被发送
//
//go:generate mockgen -source=./gate.go -destination=./mocks/gate.mock.go -package=dispatchmocks Gate
type Gate interface {
	Dispatch(ctx context.Context, instanceID uint64) error
}

type gate struct {
	repo     repository.InstanceRepository
	executor Executor
	dclient  dlock.Client
	logger   *elog.Component
}

func NewGate(repo repository.InstanceRepository, executor Executor, dclient dlock.Client) Gate {
	return &gate{
		repo:     repo,
		executor: executor,
		dclient:  dclient,
		logger:   elog.DefaultLogger,
	}
}

func (g *gate) Dispatch(ctx context.Context, instanceID uint64) error {
	lock, err := g.dclient.NewLock(ctx, fmt.Sprintf("push:dispatch:%d", instanceID), dispatchLockExpiration)
	if err != nil {
		return fmt.Errorf("初始化分布式锁失败: %w", err)
	}
	lockCtx, cancel := context.WithTimeout(ctx, dispatchLockTimeout)
	err = lock.Lock(lockCtx)
	cancel()
	if err != nil {
		// 别人正在发送这个实例
		return fmt.Errorf("获取分布式锁失败: %w", err)
	}
	defer func() {
		unCtx, cancel := context.WithTimeout(context.Background(), dispatchLockTimeout)
		//nolint:contextcheck // ctx 可能已经被取消了
		if unErr := lock.Unlock(unCtx); unErr != nil {
			g.logger.Error("释放分布式锁失败", elog.Any("instanceID", instanceID), elog.FieldErr(unErr))
		}
		cancel()
	}()

	inst, err := g.repo.GetByID(ctx, instanceID)
	if errors.Is(err, errs.ErrInstanceNotFound) {
		g.logger.Warn("通知实例不存在，忽略", elog.Any("instanceID", instanceID))
		return nil
	}
	if err != nil {
		return err
	}
	switch {
	case inst.Canceled:
		g.logger.Debug("通知实例已经取消", elog.Any("instanceID", instanceID))
		return nil
	case inst.Sent():
		g.logger.Debug("通知实例已经发送", elog.Any("instanceID", instanceID))
		return nil
	}
	return g.executor.Execute(ctx, inst)
}
