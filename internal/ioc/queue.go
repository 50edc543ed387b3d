package ioc

import (
	"time"

	"gitee.com/flycash/push-platform/internal/pkg/delayqueue"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

func InitDelayQueue(rdb redis.Cmdable) delayqueue.Queue {
	type Config struct {
		Key        string        `yaml:"key"`
		Visibility time.Duration `yaml:"visibility"`
	}
	cfg := Config{
		Key:        "push:delay_queue",
		Visibility: time.Minute,
	}
	if err := econf.UnmarshalKey("delayQueue", &cfg); err != nil {
		panic(err)
	}
	return delayqueue.NewRedisQueue(rdb, cfg.Key, cfg.Visibility)
}
