package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
)

const (
	defaultCacheExpiration = time.Minute
	defaultCleanupInterval = time.Minute * 10
)

// InitGoCache 通知定义的本地缓存
func InitGoCache() *ca.Cache {
	type Config struct {
		Expiration      time.Duration `yaml:"expiration"`
		CleanupInterval time.Duration `yaml:"cleanupInterval"`
	}
	cfg := Config{
		Expiration:      defaultCacheExpiration,
		CleanupInterval: defaultCleanupInterval,
	}
	if err := econf.UnmarshalKey("cache.local", &cfg); err != nil {
		panic(err)
	}
	return ca.New(cfg.Expiration, cfg.CleanupInterval)
}
