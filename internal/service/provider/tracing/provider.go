package tracing

import (
	"context"
	"strconv"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Provider 为供应商实现添加链路追踪的装饰器
type Provider struct {
	provider provider.Provider
	name     string
	tracer   trace.Tracer
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		name:     name,
		tracer:   otel.Tracer("push-platform/provider"),
	}
}

func (p *Provider) Send(ctx context.Context, tokens []string, payload []byte) (domain.ProviderResult, error) {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("provider.name", p.name),
			attribute.Int("push.tokens", len(tokens)),
			attribute.Int("push.payload_bytes", len(payload)),
		))
	defer span.End()

	res, err := p.provider.Send(ctx, tokens, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(attribute.String("provider.status", strconv.Itoa(res.StatusCode)))
	if !res.OK() {
		span.SetStatus(codes.Error, "供应商拒绝了请求")
	}
	return res, nil
}
