// Package metrics 为供应商实现添加指标收集的装饰器
package metrics

import (
	"context"
	"strconv"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

const statusError = "error"

var (
	sendDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "push",
			Name:       "provider_send_duration_seconds",
			Help:       "供应商推送耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"provider", "status"},
	)

	sendCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "push",
			Name:      "provider_send_total",
			Help:      "供应商推送状态统计，status 是 HTTP 状态码或者 error",
		},
		[]string{"provider", "status"},
	)

	sendTokensCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "push",
			Name:      "provider_send_tokens_total",
			Help:      "推送给供应商的 token 总数",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(sendDurationSummary, sendCounter, sendTokensCounter)
}

// Provider 为供应商实现添加指标收集的装饰器
type Provider struct {
	provider provider.Provider
	name     string
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		name:     name,
	}
}

func (p *Provider) Send(ctx context.Context, tokens []string, payload []byte) (domain.ProviderResult, error) {
	startTime := time.Now()
	sendTokensCounter.WithLabelValues(p.name).Add(float64(len(tokens)))

	res, err := p.provider.Send(ctx, tokens, payload)

	status := statusError
	if err == nil {
		status = strconv.Itoa(res.StatusCode)
	}
	sendCounter.WithLabelValues(p.name, status).Inc()
	sendDurationSummary.WithLabelValues(p.name, status).Observe(time.Since(startTime).Seconds())
	return res, err
}
