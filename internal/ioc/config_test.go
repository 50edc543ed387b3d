package ioc

import (
	"os"
	"testing"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"github.com/gotomicro/ego/core/econf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

// econf 是全局的，这里的测试不能并行
func TestInitConfig(t *testing.T) {
	f, err := os.Open("../../config/config.yaml")
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, econf.LoadFromReader(f, yaml.Unmarshal))

	cfg := InitConfig()
	assert.Equal(t, domain.ProviderDummy, cfg.DefaultProvider)
	assert.Equal(t, time.Hour*24, cfg.NotificationExpires)
	assert.True(t, cfg.ValidSlug("welcome"))
	assert.False(t, cfg.ValidSlug("unknown"))
	assert.Equal(t, []string{"en"}, cfg.Languages)

	registry := InitProviders(cfg)
	assert.True(t, registry.Has(domain.ProviderDummy))
	// 没有配置 appID
	assert.False(t, registry.Has(domain.ProviderOneSignal))

	// 默认供应商没有注册
	assert.Panics(t, func() {
		InitProviders(domain.Config{DefaultProvider: domain.ProviderOneSignal})
	})
}
