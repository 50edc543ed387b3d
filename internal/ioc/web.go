package ioc

import (
	"gitee.com/flycash/push-platform/internal/pkg/ratelimit"
	"gitee.com/flycash/push-platform/internal/web/middleware"
	"gitee.com/flycash/push-platform/internal/web/notification"
	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
)

func InitWebServer(h *notification.Handler, limiter ratelimit.Limiter) *egin.Component {
	server := egin.Load("server.http").Build()
	server.Use(middleware.NewRateLimitBuilder("http", limiter).Build())
	h.RegisterRoutes(server.Engine)
	return server
}

// InitGovernor 暴露 /metrics 等治理接口
func InitGovernor() *egovernor.Component {
	return egovernor.Load("server.governor").Build()
}
