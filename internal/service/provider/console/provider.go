package console

import (
	"context"
	"net/http"
	"strconv"

	"gitee.com/flycash/push-platform/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// Provider 只把推送输出到日志，本地开发和测试环境使用
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger,
	}
}

func (p *Provider) Send(_ context.Context, tokens []string, payload []byte) (domain.ProviderResult, error) {
	p.logger.Info("推送通知",
		elog.Any("tokens", tokens),
		elog.String("payload", string(payload)))
	body := `{"id":"dummy","recipients":` + strconv.Itoa(len(tokens)) + `}`
	return domain.ProviderResult{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}
