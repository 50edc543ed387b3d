package ioc

import (
	"gitee.com/flycash/push-platform/internal/service/dispatch"
)

func InitTasks(c *dispatch.Consumer) []Task {
	return []Task{
		c,
	}
}
