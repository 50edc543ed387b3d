package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/pkg/sqlx"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReconcileFunc 在锁住窗口内的实例之后调用，返回需要取消的实例和是否抑制这次创建
type ReconcileFunc func(matched []NotificationInstance) (cancelIDs []uint64, suppress bool)

// InstanceDAO 通知实例
//
//go:generate mockgen -source=./instance.go -destination=./mocks/instance.mock.go -package=daomocks InstanceDAO
type InstanceDAO interface {
	// Reconcile 在一个事务里面锁住 [from, to] 内同一个通知、同一批接收者的实例，
	// 按照 decide 的结果取消实例，不抑制的时候创建 candidate。返回是否创建了
	Reconcile(ctx context.Context, candidate NotificationInstance, from, to int64, decide ReconcileFunc) (bool, error)
	GetByID(ctx context.Context, id uint64) (NotificationInstance, error)
	// MarkSent 记录发送结果，sent_at 只能设置一次。已经设置过的返回 false
	MarkSent(ctx context.Context, id uint64, sentAt int64, result string) (bool, error)
	// FindLiveBefore 找出 scheduled_at 早于 before 且还没有发送、没有取消的实例，按照 ID 翻页
	FindLiveBefore(ctx context.Context, before int64, afterID uint64, limit int) ([]NotificationInstance, error)
}

// NotificationInstance 通知实例表
type NotificationInstance struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement:false;comment:'雪花算法ID'"`
	NotificationID int64     `gorm:"NOT NULL;index:idx_reconcile,priority:1"`
	Provider       string    `gorm:"type:VARCHAR(32);NOT NULL;comment:'推送供应商'"`
	Tokens         string    `gorm:"type:TEXT;NOT NULL;comment:'排序去重之后的接收者，JSON数组'"`
	AudienceHash   uint64    `gorm:"type:BIGINT UNSIGNED;NOT NULL;index:idx_reconcile,priority:2;comment:'tokens 的哈希值，用于索引'"`
	Data           sqlx.JSON `gorm:"type:JSON;NOT NULL;comment:'创建时冻结的推送内容'"`
	Timezone       string    `gorm:"type:VARCHAR(64);NOT NULL;DEFAULT:'UTC'"`
	ScheduledAt    int64     `gorm:"NOT NULL;index:idx_reconcile,priority:3;index:idx_live,priority:3;comment:'计划发送时间，秒'"`
	Canceled       bool      `gorm:"NOT NULL;DEFAULT:false;index:idx_live,priority:1"`
	SentAt         int64     `gorm:"NOT NULL;DEFAULT:0;index:idx_live,priority:2;comment:'发送时间，毫秒，0 表示还没有发送'"`
	Result         string    `gorm:"type:TEXT;comment:'供应商的原始响应'"`
	Ctime          int64
	Utime          int64
}

type instanceDAO struct {
	db *egorm.Component
}

func NewInstanceDAO(db *egorm.Component) InstanceDAO {
	return &instanceDAO{
		db: db,
	}
}

func (d *instanceDAO) Reconcile(ctx context.Context, candidate NotificationInstance,
	from, to int64, decide ReconcileFunc,
) (bool, error) {
	created := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var matched []NotificationInstance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("notification_id = ? AND audience_hash = ? AND tokens = ? AND scheduled_at BETWEEN ? AND ?",
				candidate.NotificationID, candidate.AudienceHash, candidate.Tokens, from, to).
			Order("id ASC").
			Find(&matched).Error
		if err != nil {
			return err
		}

		cancelIDs, suppress := decide(matched)
		now := time.Now().UnixMilli()
		if len(cancelIDs) > 0 {
			// 已经发送的不能再取消
			err = tx.Model(&NotificationInstance{}).
				Where("id IN ? AND sent_at = 0", cancelIDs).
				Updates(map[string]any{
					"canceled": true,
					"utime":    now,
				}).Error
			if err != nil {
				return err
			}
		}
		if suppress {
			// 取消的结果需要提交
			return nil
		}

		candidate.Ctime, candidate.Utime = now, now
		if err = tx.Create(&candidate).Error; err != nil {
			if d.isUniqueConstraintError(err) {
				return fmt.Errorf("%w", errs.ErrInstanceDuplicate)
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func (d *instanceDAO) isUniqueConstraintError(err error) bool {
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

func (d *instanceDAO) GetByID(ctx context.Context, id uint64) (NotificationInstance, error) {
	var inst NotificationInstance
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotificationInstance{}, fmt.Errorf("%w: id = %d", errs.ErrInstanceNotFound, id)
	}
	return inst, err
}

func (d *instanceDAO) MarkSent(ctx context.Context, id uint64, sentAt int64, result string) (bool, error) {
	res := d.db.WithContext(ctx).Model(&NotificationInstance{}).
		Where("id = ? AND sent_at = 0", id).
		Updates(map[string]any{
			"sent_at": sentAt,
			"result":  result,
			"utime":   time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (d *instanceDAO) FindLiveBefore(ctx context.Context, before int64, afterID uint64, limit int) ([]NotificationInstance, error) {
	var res []NotificationInstance
	err := d.db.WithContext(ctx).
		Where("canceled = ? AND sent_at = 0 AND scheduled_at < ? AND id > ?", false, before, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&res).Error
	return res, err
}
