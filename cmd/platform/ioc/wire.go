//go:build wireinject

package ioc

import (
	"gitee.com/flycash/push-platform/internal/ioc"
	"gitee.com/flycash/push-platform/internal/repository"
	"gitee.com/flycash/push-platform/internal/repository/dao"
	"gitee.com/flycash/push-platform/internal/service/dispatch"
	notificationsvc "gitee.com/flycash/push-platform/internal/service/notification"
	"gitee.com/flycash/push-platform/internal/service/reconciler"
	"gitee.com/flycash/push-platform/internal/service/scheduler"
	notificationweb "gitee.com/flycash/push-platform/internal/web/notification"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitConfig,
		ioc.InitZipkinTracer,
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitRedisCmd,
		ioc.InitDistributedLock,
		ioc.InitIDGenerator,
		ioc.InitGoCache,
		ioc.InitDelayQueue,
		ioc.InitProviders,
		ioc.InitRateLimiter,
	)
	notificationSvcSet = wire.NewSet(
		dao.NewNotificationDAO,
		repository.NewNotificationRepository,
		scheduler.NewResolver,
		notificationsvc.NewService,
	)
	reconcilerSvcSet = wire.NewSet(
		dao.NewInstanceDAO,
		repository.NewInstanceRepository,
		reconciler.NewService,
	)
	dispatchSvcSet = wire.NewSet(
		dispatch.NewExecutor,
		dispatch.NewGate,
		dispatch.NewConsumer,
		dispatch.NewRequeueCron,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// 调度
		notificationSvcSet,
		reconcilerSvcSet,

		// 发送
		dispatchSvcSet,

		// HTTP 服务器
		notificationweb.NewHandler,
		ioc.InitWebServer,
		ioc.InitGovernor,

		ioc.InitTasks,
		ioc.Crons,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
