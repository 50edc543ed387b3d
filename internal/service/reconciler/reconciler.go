package reconciler

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
	"github.com/sony/sonyflake"
)

const (
	defaultLockExpiration = time.Second * 10
	defaultLockTimeout    = time.Second * 3
)

// Request 一次调度请求
type Request struct {
	NotificationID int64
	Provider       string
	Tokens         []string
	// 已经渲染好的推送内容
	Payload  []byte
	Timezone string
	// 调度链计算出来的发送时间，零值表示丢弃
	Window time.Time
}

// Service 保证同一个通知、同一批接收者，在一个时间窗口内最多只有一个存活的通知实例，
// 并且窗口内已经发送过的话就不再发送
//
//go:generate mockgen -source=./reconciler.go -destination=./mocks/reconciler.mock.go -package=reconcilermocks Service
type Service interface {
	// Reconcile 只有 OutcomeAccepted 的时候才会返回新创建的实例
	Reconcile(ctx context.Context, req Request) (domain.DeliveryInstance, domain.ReconcileOutcome, error)
}

type service struct {
	repo    repository.InstanceRepository
	dclient dlock.Client
	idGen   *sonyflake.Sonyflake
	logger  *elog.Component
	now     func() time.Time
}

func NewService(repo repository.InstanceRepository, dclient dlock.Client, idGen *sonyflake.Sonyflake) Service {
	return &service{
		repo:    repo,
		dclient: dclient,
		idGen:   idGen,
		logger:  elog.DefaultLogger,
		now:     time.Now,
	}
}

func (s *service) Reconcile(ctx context.Context, req Request) (domain.DeliveryInstance, domain.ReconcileOutcome, error) {
	if req.Window.IsZero() {
		return domain.DeliveryInstance{}, domain.OutcomeDiscarded, nil
	}
	audienceKey := domain.CanonicalAudienceKey(req.Tokens)
	// 数据库的行锁锁不住还不存在的行，所以先用分布式锁把同一批接收者的请求串行化
	lock, err := s.dclient.NewLock(ctx, s.lockKey(req.NotificationID, audienceKey), defaultLockExpiration)
	if err != nil {
		return domain.DeliveryInstance{}, "", fmt.Errorf("初始化分布式锁失败: %w", err)
	}
	lockCtx, cancel := context.WithTimeout(ctx, defaultLockTimeout)
	err = lock.Lock(lockCtx)
	cancel()
	if err != nil {
		return domain.DeliveryInstance{}, "", fmt.Errorf("获取分布式锁失败: %w", err)
	}
	defer func() {
		unCtx, cancel := context.WithTimeout(context.Background(), defaultLockTimeout)
		//nolint:contextcheck // ctx 可能已经被取消了
		if unErr := lock.Unlock(unCtx); unErr != nil {
			s.logger.Error("释放分布式锁失败",
				elog.Any("notificationID", req.NotificationID),
				elog.FieldErr(unErr))
		}
		cancel()
	}()

	id, err := s.idGen.NextID()
	if err != nil {
		return domain.DeliveryInstance{}, "", fmt.Errorf("生成通知实例ID失败: %w", err)
	}
	window := domain.NormalizeTime(req.Window)
	from := domain.NormalizeTime(s.now())
	if window.Before(from) {
		from = window
	}
	candidate := domain.DeliveryInstance{
		ID:             id,
		NotificationID: req.NotificationID,
		Provider:       req.Provider,
		AudienceKey:    audienceKey,
		Payload:        req.Payload,
		Timezone:       req.Timezone,
		ScheduledAt:    window,
	}
	created, err := s.repo.Reconcile(ctx, candidate, from, Decide)
	if err != nil {
		return domain.DeliveryInstance{}, "", err
	}
	if !created {
		s.logger.Info("窗口内已经发送过，不再创建通知实例",
			elog.Any("notificationID", req.NotificationID),
			elog.String("window", window.Format(time.RFC3339)))
		return domain.DeliveryInstance{}, domain.OutcomeSuppressed, nil
	}
	return candidate, domain.OutcomeAccepted, nil
}

func (s *service) lockKey(notificationID int64, audienceKey string) string {
	return fmt.Sprintf("push:reconcile:%d:%d", notificationID, domain.AudienceHash(audienceKey))
}

// Decide 窗口内有已经发送的实例，就取消所有没有发送的并且不再创建；
// 否则取消所有实例，由新的实例替代
func Decide(matched []domain.DeliveryInstance) domain.ReconcileDecision {
	var (
		anySent   bool
		cancelIDs = make([]uint64, 0, len(matched))
	)
	for _, inst := range matched {
		if inst.Sent() {
			anySent = true
			continue
		}
		if !inst.Canceled {
			cancelIDs = append(cancelIDs, inst.ID)
		}
	}
	return domain.ReconcileDecision{CancelIDs: cancelIDs, Suppress: anySent}
}
