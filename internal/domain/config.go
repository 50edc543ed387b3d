package domain

import (
	"fmt"
	"slices"
	"time"

	"gitee.com/flycash/push-platform/internal/errs"
)

// Config 推送配置，启动的时候构造一次，之后只读
type Config struct {
	// 调用方没有指定供应商的时候使用
	DefaultProvider string
	// 任务到期之后超过这么久还没有执行就丢弃，0 表示不过期
	NotificationExpires time.Duration
	// 允许的通知标识，为空表示不限制
	Slugs []string
	// 渲染结果按这些语言组织
	Languages []string
}

// NewConfig 校验并补全配置。没有默认供应商的时候系统不能启动
func NewConfig(cfg Config) (Config, error) {
	if cfg.DefaultProvider == "" {
		return Config{}, fmt.Errorf("%w，请检查 push.defaultProvider", errs.ErrNoDefaultProvider)
	}
	if cfg.NotificationExpires < 0 {
		return Config{}, fmt.Errorf("%w: NotificationExpires = %s", errs.ErrInvalidParameter, cfg.NotificationExpires)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{DefaultLanguage}
	}
	return cfg, nil
}

// ValidSlug 通知标识是否在允许的范围内
func (c Config) ValidSlug(slug string) bool {
	return len(c.Slugs) == 0 || slices.Contains(c.Slugs, slug)
}

// ProviderOrDefault 没有指定供应商就用默认的
func (c Config) ProviderOrDefault(provider string) string {
	if provider == "" {
		return c.DefaultProvider
	}
	return provider
}
