package notification

import (
	"errors"
	"net/http"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	notificationsvc "gitee.com/flycash/push-platform/internal/service/notification"
	"gitee.com/flycash/push-platform/internal/service/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	svc    notificationsvc.Service
	cfg    domain.Config
	logger *elog.Component
}

func NewHandler(svc notificationsvc.Service, cfg domain.Config) *Handler {
	return &Handler{
		svc:    svc,
		cfg:    cfg,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/notifications")
	g.POST("/schedule", h.Schedule)
}

func (h *Handler) Schedule(ctx *gin.Context) {
	var req ScheduleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, Result{Code: codeBadRequest, Msg: "请求格式错误"})
		return
	}
	if len(req.Tokens) == 0 {
		ctx.JSON(http.StatusBadRequest, Result{Code: codeBadRequest, Msg: "tokens 不能为空"})
		return
	}
	if _, err := scheduler.LoadLocation(req.Timezone); err != nil {
		ctx.JSON(http.StatusBadRequest, Result{Code: codeBadRequest, Msg: err.Error()})
		return
	}
	if !h.cfg.ValidSlug(req.Slug) {
		ctx.JSON(http.StatusBadRequest, Result{Code: codeBadRequest, Msg: errs.ErrUnknownSlug.Error()})
		return
	}

	res, err := h.svc.ScheduleNotification(ctx.Request.Context(), notificationsvc.ScheduleRequest{
		Timezone: req.Timezone,
		Slug:     req.Slug,
		Tokens:   req.Tokens,
		Context:  req.Context,
		Provider: req.Provider,
	})
	switch {
	case errors.Is(err, errs.ErrInvalidParameter), errors.Is(err, errs.ErrProviderNotFound):
		ctx.JSON(http.StatusBadRequest, Result{Code: codeBadRequest, Msg: err.Error()})
		return
	case err != nil:
		h.logger.Error("调度通知失败", elog.String("slug", req.Slug), elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, Result{Code: codeSystemError, Msg: "系统错误"})
		return
	}
	ctx.JSON(http.StatusOK, Result{Code: codeOK, Msg: "OK", Data: h.toVO(res)})
}

func (h *Handler) toVO(res domain.ScheduleResult) ScheduleVO {
	vo := ScheduleVO{Outcome: string(res.Outcome)}
	if res.Instance != nil {
		vo.InstanceID = res.Instance.ID
		vo.ScheduledAt = res.Instance.ScheduledAt.Format(time.RFC3339)
	}
	return vo
}
