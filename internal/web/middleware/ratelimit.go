package middleware

import (
	"net/http"

	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// RateLimitBuilder 按照客户端 IP 限流
type RateLimitBuilder struct {
	keyPrefix string
	limiter   ratelimit.Limiter
	logger    *elog.Component
}

func NewRateLimitBuilder(keyPrefix string, limiter ratelimit.Limiter) *RateLimitBuilder {
	return &RateLimitBuilder{
		keyPrefix: keyPrefix,
		limiter:   limiter,
		logger:    elog.DefaultLogger,
	}
}

func (b *RateLimitBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := b.keyPrefix + ":" + ctx.ClientIP()
		limited, err := b.limiter.Limit(ctx.Request.Context(), key)
		if err != nil {
			// 保守策略
			b.logger.Error("限流判断失败", elog.String("key", key), elog.FieldErr(err))
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if limited {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code": 4,
				"msg":  errs.ErrRateLimited.Error(),
			})
			return
		}
		ctx.Next()
	}
}
