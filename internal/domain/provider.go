package domain

import "net/http"

// 内置的供应商
const (
	ProviderDummy     = "dummy"
	ProviderOneSignal = "onesignal"
)

// ProviderResult 供应商的响应
type ProviderResult struct {
	StatusCode int
	Body       []byte
}

func (r ProviderResult) OK() bool {
	return r.StatusCode == http.StatusOK
}
