package provider

import (
	"context"
	"fmt"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
)

// Provider 推送供应商
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider
type Provider interface {
	// Send 把冻结好的 payload 推送给 tokens。
	// 返回 error 表示请求没有完成；供应商拒绝的请求不会返回 error，而是体现在 StatusCode 上
	Send(ctx context.Context, tokens []string, payload []byte) (domain.ProviderResult, error)
}

// Registry 按照名字查找供应商
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers map[string]Provider) *Registry {
	return &Registry{providers: providers}
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrProviderNotFound, name)
	}
	return p, nil
}

// Has 是否注册了这个供应商
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}
