package repository

import (
	"context"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// InstanceRepository 通知实例，只会新增和更新，不会删除
//
//go:generate mockgen -source=./instance.go -destination=./mocks/instance.mock.go -package=repomocks InstanceRepository
type InstanceRepository interface {
	// Reconcile 锁住 [from, candidate.ScheduledAt] 内同一个通知、同一批接收者的实例，
	// 按照 decide 的结果取消实例，不抑制的时候创建 candidate
	Reconcile(ctx context.Context, candidate domain.DeliveryInstance, from time.Time,
		decide func(matched []domain.DeliveryInstance) domain.ReconcileDecision) (bool, error)
	GetByID(ctx context.Context, id uint64) (domain.DeliveryInstance, error)
	// MarkSent 记录发送结果，已经记录过的返回 false
	MarkSent(ctx context.Context, id uint64, sentAt time.Time, result string) (bool, error)
	// FindLiveBefore 按照 ID 翻页查询计划时间早于 before 的存活实例
	FindLiveBefore(ctx context.Context, before time.Time, afterID uint64, limit int) ([]domain.DeliveryInstance, error)
}

type instanceRepository struct {
	dao dao.InstanceDAO
}

func NewInstanceRepository(d dao.InstanceDAO) InstanceRepository {
	return &instanceRepository{dao: d}
}

func (r *instanceRepository) Reconcile(ctx context.Context, candidate domain.DeliveryInstance, from time.Time,
	decide func(matched []domain.DeliveryInstance) domain.ReconcileDecision,
) (bool, error) {
	return r.dao.Reconcile(ctx, r.toEntity(candidate), from.Unix(), candidate.ScheduledAt.Unix(),
		func(matched []dao.NotificationInstance) ([]uint64, bool) {
			decision := decide(slice.Map(matched, func(idx int, src dao.NotificationInstance) domain.DeliveryInstance {
				return r.toDomain(src)
			}))
			return decision.CancelIDs, decision.Suppress
		})
}

func (r *instanceRepository) GetByID(ctx context.Context, id uint64) (domain.DeliveryInstance, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.DeliveryInstance{}, err
	}
	return r.toDomain(entity), nil
}

func (r *instanceRepository) MarkSent(ctx context.Context, id uint64, sentAt time.Time, result string) (bool, error) {
	return r.dao.MarkSent(ctx, id, sentAt.UnixMilli(), result)
}

func (r *instanceRepository) FindLiveBefore(ctx context.Context, before time.Time, afterID uint64, limit int) ([]domain.DeliveryInstance, error) {
	entities, err := r.dao.FindLiveBefore(ctx, before.Unix(), afterID, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.NotificationInstance) domain.DeliveryInstance {
		return r.toDomain(src)
	}), nil
}

func (r *instanceRepository) toEntity(i domain.DeliveryInstance) dao.NotificationInstance {
	var sentAt int64
	if i.Sent() {
		sentAt = i.SentAt.UnixMilli()
	}
	return dao.NotificationInstance{
		ID:             i.ID,
		NotificationID: i.NotificationID,
		Provider:       i.Provider,
		Tokens:         i.AudienceKey,
		AudienceHash:   i.AudienceHash(),
		Data:           i.Payload,
		Timezone:       i.Timezone,
		ScheduledAt:    i.ScheduledAt.Unix(),
		Canceled:       i.Canceled,
		SentAt:         sentAt,
		Result:         i.Result,
		Ctime:          i.Ctime,
		Utime:          i.Utime,
	}
}

func (r *instanceRepository) toDomain(e dao.NotificationInstance) domain.DeliveryInstance {
	var sentAt time.Time
	if e.SentAt > 0 {
		sentAt = time.UnixMilli(e.SentAt).UTC()
	}
	return domain.DeliveryInstance{
		ID:             e.ID,
		NotificationID: e.NotificationID,
		Provider:       e.Provider,
		AudienceKey:    e.Tokens,
		Payload:        e.Data,
		Timezone:       e.Timezone,
		ScheduledAt:    time.Unix(e.ScheduledAt, 0).UTC(),
		Canceled:       e.Canceled,
		SentAt:         sentAt,
		Result:         e.Result,
		Ctime:          e.Ctime,
		Utime:          e.Utime,
	}
}
