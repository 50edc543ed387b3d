package ioc

import (
	"gitee.com/flycash/push-platform/internal/service/dispatch"
	"github.com/gotomicro/ego/task/ecron"
)

func Crons(r *dispatch.RequeueCron) []ecron.Ecron {
	c1 := ecron.Load("cron.requeue").Build(ecron.WithJob(r.Do))
	return []ecron.Ecron{c1}
}
