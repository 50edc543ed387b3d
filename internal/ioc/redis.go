package ioc

import (
	"gitee.com/flycash/push-platform/internal/pkg/redis/metrics"
	"gitee.com/flycash/push-platform/internal/pkg/redis/tracing"
	"github.com/gotomicro/ego/core/econf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/sdk/trace"
)

func InitRedisClient(tp *trace.TracerProvider) *redis.Client {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	hook, err := metrics.NewHook("push", prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	client.AddHook(hook)
	client.AddHook(tracing.NewHook(tp))
	return client
}

func InitRedisCmd(client *redis.Client) redis.Cmdable {
	return client
}
