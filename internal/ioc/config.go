package ioc

import (
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"github.com/gotomicro/ego/core/econf"
)

// InitConfig 没有配置默认供应商的时候直接 panic，系统不能启动
func InitConfig() domain.Config {
	type Config struct {
		DefaultProvider     string        `yaml:"defaultProvider"`
		NotificationExpires time.Duration `yaml:"notificationExpires"`
		Slugs               []string      `yaml:"slugs"`
		Languages           []string      `yaml:"languages"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("push", &cfg); err != nil {
		panic(err)
	}
	res, err := domain.NewConfig(domain.Config{
		DefaultProvider:     cfg.DefaultProvider,
		NotificationExpires: cfg.NotificationExpires,
		Slugs:               cfg.Slugs,
		Languages:           cfg.Languages,
	})
	if err != nil {
		panic(err)
	}
	return res
}
