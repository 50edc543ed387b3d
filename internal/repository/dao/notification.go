package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitee.com/flycash/push-platform/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// NotificationDAO 通知定义只读
//
//go:generate mockgen -source=./notification.go -destination=./mocks/notification.mock.go -package=daomocks NotificationDAO
type NotificationDAO interface {
	// GetEnabledBySlug 根据标识查询启用的通知定义
	GetEnabledBySlug(ctx context.Context, slug string) (Notification, error)
	// FindSchedulers 按照 order_num 升序返回通知绑定的调度策略
	FindSchedulers(ctx context.Context, notificationID int64) ([]SchedulerRow, error)
	GetCategory(ctx context.Context, id int64) (NotificationCategory, error)
}

// NotificationCategory 通知分类表
type NotificationCategory struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"type:VARCHAR(100);NOT NULL"`
	OptOut bool   `gorm:"NOT NULL;DEFAULT:false;comment:'用户是否可以退订'"`
	Ctime  int64
	Utime  int64
}

// Notification 通知定义表，由管理后台维护
type Notification struct {
	ID          int64         `gorm:"primaryKey;autoIncrement"`
	Name        string        `gorm:"type:VARCHAR(100);NOT NULL"`
	Slug        string        `gorm:"type:VARCHAR(50);NOT NULL;uniqueIndex:uk_slug;comment:'通知标识，调用方用它来指定通知'"`
	Enabled     bool          `gorm:"NOT NULL;DEFAULT:false;comment:'未启用的通知不会被发送'"`
	Description string        `gorm:"type:TEXT"`
	CategoryID  sql.NullInt64 `gorm:"index"`

	Title    string `gorm:"type:TEXT"`
	Body     string `gorm:"type:TEXT"`
	Sound    string `gorm:"type:VARCHAR(100)"`
	Priority string `gorm:"type:ENUM('normal','high');NOT NULL;DEFAULT:'high'"`

	APNsAlertTitleLocKey  string `gorm:"column:apns_alert_title_loc_key;type:VARCHAR(200)"`
	APNsAlertTitleLocArgs string `gorm:"column:apns_alert_title_loc_args;type:VARCHAR(200)"`
	APNsAlertLocKey       string `gorm:"column:apns_alert_loc_key;type:VARCHAR(200)"`
	APNsAlertLocArgs      string `gorm:"column:apns_alert_loc_args;type:VARCHAR(200)"`
	APNsAlertActionLocKey string `gorm:"column:apns_alert_action_loc_key;type:VARCHAR(200)"`
	APNsAlertLaunchImage  string `gorm:"column:apns_alert_launch_image;type:VARCHAR(200)"`
	APNsCustom            string `gorm:"column:apns_custom;type:TEXT"`

	GCMIcon                  string        `gorm:"column:gcm_icon;type:VARCHAR(200)"`
	GCMTag                   string        `gorm:"column:gcm_tag;type:VARCHAR(200)"`
	GCMColor                 string        `gorm:"column:gcm_color;type:VARCHAR(20)"`
	GCMClickAction           string        `gorm:"column:gcm_click_action;type:VARCHAR(200)"`
	GCMBodyLocKey            string        `gorm:"column:gcm_body_loc_key;type:VARCHAR(200)"`
	GCMBodyLocArgs           string        `gorm:"column:gcm_body_loc_args;type:VARCHAR(200)"`
	GCMTitleLocKey           string        `gorm:"column:gcm_title_loc_key;type:VARCHAR(200)"`
	GCMTitleLocArgs          string        `gorm:"column:gcm_title_loc_args;type:VARCHAR(200)"`
	GCMCollapseKey           string        `gorm:"column:gcm_collapse_key;type:VARCHAR(200)"`
	GCMContentAvailable      string        `gorm:"column:gcm_content_available;type:VARCHAR(200)"`
	GCMDelayWhileIdle        bool          `gorm:"column:gcm_delay_while_idle;NOT NULL;DEFAULT:false"`
	GCMTimeToLive            sql.NullInt32 `gorm:"column:gcm_time_to_live;comment:'秒，最多四周'"`
	GCMRestrictedPackageName string        `gorm:"column:gcm_restricted_package_name;type:VARCHAR(200)"`
	GCMData                  string        `gorm:"column:gcm_data;type:TEXT"`

	OSTemplateID string `gorm:"column:os_template_id;type:VARCHAR(100);comment:'OneSignal 模板ID'"`

	Ctime int64
	Utime int64
}

// SchedulerPolicy 调度策略表，Type 决定了哪些列生效
type SchedulerPolicy struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Type      string `gorm:"type:ENUM('MINUTES_LATER','IN_TIME_RANGE');NOT NULL"`
	Minutes   int    `gorm:"NOT NULL;DEFAULT:0"`
	StartHour int    `gorm:"NOT NULL;DEFAULT:0"`
	EndHour   int    `gorm:"NOT NULL;DEFAULT:0"`
	Discard   bool   `gorm:"NOT NULL;DEFAULT:false"`
	Ctime     int64
	Utime     int64
}

// NotificationScheduler 通知和调度策略的关联表，order_num 决定执行顺序
type NotificationScheduler struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	NotificationID int64 `gorm:"NOT NULL;uniqueIndex:uk_notification_policy_order,priority:1"`
	PolicyID       int64 `gorm:"NOT NULL;uniqueIndex:uk_notification_policy_order,priority:2"`
	OrderNum       int   `gorm:"column:order_num;NOT NULL;DEFAULT:0;uniqueIndex:uk_notification_policy_order,priority:3"`
	Ctime          int64
	Utime          int64
}

// SchedulerRow 关联查询的结果
type SchedulerRow struct {
	BindingID int64
	OrderNum  int
	PolicyID  int64
	Type      string
	Minutes   int
	StartHour int
	EndHour   int
	Discard   bool
}

type notificationDAO struct {
	db *egorm.Component
}

func NewNotificationDAO(db *egorm.Component) NotificationDAO {
	return &notificationDAO{
		db: db,
	}
}

func (d *notificationDAO) GetEnabledBySlug(ctx context.Context, slug string) (Notification, error) {
	var n Notification
	err := d.db.WithContext(ctx).
		Where("slug = ? AND enabled = ?", slug, true).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Notification{}, fmt.Errorf("%w: slug = %s", errs.ErrNotificationNotFound, slug)
	}
	return n, err
}

func (d *notificationDAO) FindSchedulers(ctx context.Context, notificationID int64) ([]SchedulerRow, error) {
	var rows []SchedulerRow
	err := d.db.WithContext(ctx).
		Table("notification_schedulers AS s").
		Select("s.id AS binding_id, s.order_num, p.id AS policy_id, p.type, p.minutes, p.start_hour, p.end_hour, p.discard").
		Joins("JOIN scheduler_policies AS p ON p.id = s.policy_id").
		Where("s.notification_id = ?", notificationID).
		Order("s.order_num ASC, s.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (d *notificationDAO) GetCategory(ctx context.Context, id int64) (NotificationCategory, error) {
	var c NotificationCategory
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return c, err
}
