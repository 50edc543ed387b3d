package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter     = errors.New("参数错误")
	ErrUnknownSlug          = errors.New("未注册的通知标识")
	ErrNotificationNotFound = errors.New("通知定义不存在或未启用")
	ErrInstanceNotFound     = errors.New("通知实例不存在")
	ErrInstanceDuplicate    = errors.New("通知实例主键冲突")

	ErrNoDefaultProvider = errors.New("未配置默认的推送供应商")
	ErrProviderNotFound  = errors.New("推送供应商不存在")
	ErrProviderRejected  = errors.New("推送供应商拒绝了请求")
	ErrSendFailed        = errors.New("推送失败")

	ErrRateLimited = errors.New("请求过于频繁")
)
