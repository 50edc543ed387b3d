package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/pkg/delayqueue"
	"gitee.com/flycash/push-platform/internal/repository"
	"gitee.com/flycash/push-platform/internal/service/provider"
	"gitee.com/flycash/push-platform/internal/service/reconciler"
	"gitee.com/flycash/push-platform/internal/service/scheduler"
	"github.com/gotomicro/ego/core/elog"
)

// ScheduleRequest 调度一次推送
type ScheduleRequest struct {
	// IANA 时区，空字符串就是 UTC
	Timezone string
	Slug     string
	Tokens   []string
	// 渲染 title 和 body 用的参数
	Context map[string]any
	// 为空的时候使用默认供应商
	Provider string
}

// Service 调度通知的入口
//
//go:generate mockgen -source=./notification.go -destination=./mocks/notification.mock.go -package=notificationmocks Service
type Service interface {
	// ScheduleNotification 计算发送时间，和已有的通知实例合并，然后放进延迟队列。
	// 通知不存在或者被丢弃都不是错误，体现在 Outcome 上
	ScheduleNotification(ctx context.Context, req ScheduleRequest) (domain.ScheduleResult, error)
}

type service struct {
	cfg        domain.Config
	repo       repository.NotificationRepository
	registry   *provider.Registry
	resolver   *scheduler.Resolver
	reconciler reconciler.Service
	queue      delayqueue.Queue
	logger     *elog.Component
	now        func() time.Time
}

func NewService(
	cfg domain.Config,
	repo repository.NotificationRepository,
	registry *provider.Registry,
	resolver *scheduler.Resolver,
	reconcilerSvc reconciler.Service,
	queue delayqueue.Queue,
) Service {
	return &service{
		cfg:        cfg,
		repo:       repo,
		registry:   registry,
		resolver:   resolver,
		reconciler: reconcilerSvc,
		queue:      queue,
		logger:     elog.DefaultLogger,
		now:        time.Now,
	}
}

func (s *service) ScheduleNotification(ctx context.Context, req ScheduleRequest) (domain.ScheduleResult, error) {
	providerName := s.cfg.ProviderOrDefault(req.Provider)
	if !s.registry.Has(providerName) {
		return domain.ScheduleResult{}, fmt.Errorf("%w: %s", errs.ErrProviderNotFound, providerName)
	}
	loc, err := scheduler.LoadLocation(req.Timezone)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	n, err := s.repo.GetEnabledBySlug(ctx, req.Slug)
	if errors.Is(err, errs.ErrNotificationNotFound) {
		s.logger.Warn("通知不存在或未启用", elog.String("slug", req.Slug))
		return domain.ScheduleResult{Outcome: domain.OutcomeUnknownNotification}, nil
	}
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	chain, err := n.SchedulerChain()
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	now := s.now()
	window, ok := s.resolver.Resolve(loc, now, chain)
	if !ok {
		s.logger.Debug("调度链丢弃了这次推送", elog.String("slug", req.Slug))
		return domain.ScheduleResult{Outcome: domain.OutcomeDiscarded}, nil
	}

	payload, err := n.Payload(req.Context, s.cfg.Languages)
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	inst, outcome, err := s.reconciler.Reconcile(ctx, reconciler.Request{
		NotificationID: n.ID,
		Provider:       providerName,
		Tokens:         req.Tokens,
		Payload:        payload,
		Timezone:       loc.String(),
		Window:         window,
	})
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	if outcome != domain.OutcomeAccepted {
		return domain.ScheduleResult{Outcome: outcome}, nil
	}

	delay := time.Duration(domain.DelaySeconds(now, window)) * time.Second
	if err = s.queue.Schedule(ctx, inst.ID, delay); err != nil {
		// 实例已经落库，丢失的任务会被 dispatch.RequeueCron 重新投递
		s.logger.Error("放入延迟队列失败",
			elog.Any("instanceID", inst.ID),
			elog.FieldErr(err))
	}
	return domain.ScheduleResult{Outcome: outcome, Instance: &inst}, nil
}
