package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/repository"
	"gitee.com/flycash/push-platform/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

// Executor 调用供应商发送一个通知实例，并且记录结果
//
//go:generate mockgen -source=./executor.go -destination=./mocks/executor.mock.go -package=dispatchmocks Executor
type Executor interface {
	// Execute 只调用一次供应商，不会重试。
	// 请求没有完成的时候什么也不记录；供应商拒绝的请求会记录下来，并且返回 errs.ErrProviderRejected
	Execute(ctx context.Context, inst domain.DeliveryInstance) error
}

type executor struct {
	registry *provider.Registry
	repo     repository.InstanceRepository
	logger   *elog.Component
	now      func() time.Time
}

func NewExecutor(registry *provider.Registry, repo repository.InstanceRepository) Executor {
	return &executor{
		registry: registry,
		repo:     repo,
		logger:   elog.DefaultLogger,
		now:      time.Now,
	}
}

func (e *executor) Execute(ctx context.Context, inst domain.DeliveryInstance) error {
	p, err := e.registry.Get(inst.Provider)
	if err != nil {
		return err
	}
	tokens, err := inst.Tokens()
	if err != nil {
		return fmt.Errorf("%w: 通知实例 %d 的接收者格式错误 %w", errs.ErrInvalidParameter, inst.ID, err)
	}

	res, err := p.Send(ctx, tokens, inst.Payload)
	if err != nil {
		return fmt.Errorf("%w: 通知实例 %d %w", errs.ErrSendFailed, inst.ID, err)
	}

	ok, err := e.repo.MarkSent(ctx, inst.ID, e.now(), formatResult(res))
	if err != nil {
		return fmt.Errorf("记录发送结果失败: %w", err)
	}
	if !ok {
		// 有人先记录了，说明重复发送了一次
		e.logger.Warn("通知实例已经记录过发送结果",
			elog.Any("instanceID", inst.ID),
			elog.String("provider", inst.Provider))
	}
	if !res.OK() {
		return fmt.Errorf("%w: 通知实例 %d 状态码 %d", errs.ErrProviderRejected, inst.ID, res.StatusCode)
	}
	return nil
}

// formatResult 成功并且是合法 JSON 的时候压缩一下，其他情况原样保存
func formatResult(res domain.ProviderResult) string {
	if res.OK() && json.Valid(res.Body) {
		buf := &bytes.Buffer{}
		if err := json.Compact(buf, res.Body); err == nil {
			return buf.String()
		}
	}
	return string(res.Body)
}
