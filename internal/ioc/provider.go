package ioc

import (
	"fmt"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/service/provider"
	"gitee.com/flycash/push-platform/internal/service/provider/console"
	"gitee.com/flycash/push-platform/internal/service/provider/metrics"
	"gitee.com/flycash/push-platform/internal/service/provider/onesignal"
	"gitee.com/flycash/push-platform/internal/service/provider/tracing"
	"github.com/gotomicro/ego/core/econf"
)

// InitProviders dummy 总是可用，OneSignal 配置了 appID 才注册
func InitProviders(cfg domain.Config) *provider.Registry {
	providers := map[string]provider.Provider{
		domain.ProviderDummy: console.NewProvider(),
	}
	var osCfg onesignal.Config
	if err := econf.UnmarshalKey("provider.onesignal", &osCfg); err != nil {
		panic(err)
	}
	if osCfg.AppID != "" {
		providers[domain.ProviderOneSignal] = onesignal.NewProvider(osCfg)
	}
	for name, p := range providers {
		providers[name] = metrics.NewProvider(name, tracing.NewProvider(name, p))
	}
	registry := provider.NewRegistry(providers)
	if !registry.Has(cfg.DefaultProvider) {
		panic(fmt.Errorf("%w: %s", errs.ErrProviderNotFound, cfg.DefaultProvider))
	}
	return registry
}
