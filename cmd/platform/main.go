package main

import (
	"context"
	// 容器里面不一定有时区数据
	_ "time/tzdata"

	"gitee.com/flycash/push-platform/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 先加载配置
	egoApp := ego.New()
	app := ioc.InitApp()
	defer func() {
		if err := app.Tracer.Shutdown(context.Background()); err != nil {
			elog.Error("Shutdown zipkinTracer", elog.FieldErr(err))
		}
	}()
	app.StartTasks(ctx)

	if err := egoApp.Serve(
		app.Governor,
		app.Web,
	).Cron(app.Crons...).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
