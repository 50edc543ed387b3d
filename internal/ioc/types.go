package ioc

import (
	"context"

	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
	"github.com/gotomicro/ego/task/ecron"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Task 长期运行的后台任务，ctx 取消的时候退出
type Task interface {
	Start(ctx context.Context)
}

type App struct {
	Web      *egin.Component
	Governor *egovernor.Component
	Tracer   *trace.TracerProvider
	Crons    []ecron.Ecron
	Tasks    []Task
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		go func(t Task) {
			t.Start(ctx)
		}(t)
	}
}
