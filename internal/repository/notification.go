package repository

import (
	"context"
	"fmt"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	ca "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// NotificationRepository 通知定义是管理后台维护的，这里只读
//
//go:generate mockgen -source=./notification.go -destination=./mocks/notification.mock.go -package=repomocks NotificationRepository
type NotificationRepository interface {
	// GetEnabledBySlug 查询启用的通知定义，Schedulers 按照 Order 排好序
	GetEnabledBySlug(ctx context.Context, slug string) (domain.Notification, error)
}

type notificationRepository struct {
	dao    dao.NotificationDAO
	cache  *ca.Cache
	group  singleflight.Group
	logger *elog.Component
}

// NewNotificationRepository 通知定义很少变化，本地缓存一段时间，过期时间由 cache 决定
func NewNotificationRepository(d dao.NotificationDAO, c *ca.Cache) NotificationRepository {
	return &notificationRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *notificationRepository) cacheKey(slug string) string {
	return fmt.Sprintf("notification:slug:%s", slug)
}

func (r *notificationRepository) GetEnabledBySlug(ctx context.Context, slug string) (domain.Notification, error) {
	key := r.cacheKey(slug)
	if v, ok := r.cache.Get(key); ok {
		return v.(domain.Notification), nil
	}
	// 同一个通知的并发请求只查一次数据库
	v, err, _ := r.group.Do(key, func() (any, error) {
		n, err := r.load(ctx, slug)
		if err != nil {
			return domain.Notification{}, err
		}
		r.cache.Set(key, n, ca.DefaultExpiration)
		return n, nil
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return v.(domain.Notification), nil
}

func (r *notificationRepository) load(ctx context.Context, slug string) (domain.Notification, error) {
	entity, err := r.dao.GetEnabledBySlug(ctx, slug)
	if err != nil {
		return domain.Notification{}, err
	}
	rows, err := r.dao.FindSchedulers(ctx, entity.ID)
	if err != nil {
		return domain.Notification{}, err
	}
	n := r.toDomain(entity, rows)
	if entity.CategoryID.Valid {
		c, err1 := r.dao.GetCategory(ctx, entity.CategoryID.Int64)
		if err1 != nil {
			// 分类不影响推送内容
			r.logger.Warn("查询通知分类失败",
				elog.String("slug", slug),
				elog.Any("categoryID", entity.CategoryID.Int64),
				elog.FieldErr(err1))
		} else {
			n.Category = &domain.Category{ID: c.ID, Name: c.Name, OptOut: c.OptOut}
		}
	}
	return n, nil
}

func (r *notificationRepository) toDomain(n dao.Notification, rows []dao.SchedulerRow) domain.Notification {
	var ttl *int
	if n.GCMTimeToLive.Valid {
		v := int(n.GCMTimeToLive.Int32)
		ttl = &v
	}
	return domain.Notification{
		ID:          n.ID,
		Name:        n.Name,
		Slug:        n.Slug,
		Enabled:     n.Enabled,
		Description: n.Description,
		Title:       n.Title,
		Body:        n.Body,
		Sound:       n.Sound,
		Priority:    domain.Priority(n.Priority),
		APNs: domain.APNs{
			AlertTitleLocKey:  n.APNsAlertTitleLocKey,
			AlertTitleLocArgs: n.APNsAlertTitleLocArgs,
			AlertLocKey:       n.APNsAlertLocKey,
			AlertLocArgs:      n.APNsAlertLocArgs,
			AlertActionLocKey: n.APNsAlertActionLocKey,
			AlertLaunchImage:  n.APNsAlertLaunchImage,
			Custom:            n.APNsCustom,
		},
		GCM: domain.GCM{
			Icon:                  n.GCMIcon,
			Tag:                   n.GCMTag,
			Color:                 n.GCMColor,
			ClickAction:           n.GCMClickAction,
			BodyLocKey:            n.GCMBodyLocKey,
			BodyLocArgs:           n.GCMBodyLocArgs,
			TitleLocKey:           n.GCMTitleLocKey,
			TitleLocArgs:          n.GCMTitleLocArgs,
			CollapseKey:           n.GCMCollapseKey,
			ContentAvailable:      n.GCMContentAvailable,
			DelayWhileIdle:        n.GCMDelayWhileIdle,
			TimeToLive:            ttl,
			RestrictedPackageName: n.GCMRestrictedPackageName,
			Data:                  n.GCMData,
		},
		TemplateID: n.OSTemplateID,
		Schedulers: slice.Map(rows, func(idx int, src dao.SchedulerRow) domain.SchedulerBinding {
			return domain.SchedulerBinding{
				ID:    src.BindingID,
				Order: src.OrderNum,
				Policy: domain.SchedulerPolicyConfig{
					ID:        src.PolicyID,
					Type:      domain.SchedulerPolicyType(src.Type),
					Minutes:   src.Minutes,
					StartHour: src.StartHour,
					EndHour:   src.EndHour,
					Discard:   src.Discard,
				},
			}
		}),
	}
}
