package controller

import (
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	Provider        *store.Provider
}

func NewProgressController(progressService *service.ProgressService, provider *store.Provider) *ProgressController {
	return &ProgressController{ProgressService: progressService, Provider: provider}
}

// GetProgress godoc
// @Summary 学习进度
// @Description Points, badges, completed modules and quiz results for the caller
// @Tags 进度
// @Produce  json
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	view, err := c.ProgressService.GetProgress(ctx.Request.Context(), progressStore(c.Provider, ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ResetProgress godoc
// @Summary 重置进度
// @Description Clears points, badges and module progress. Challenge history is kept.
// @Tags 进度
// @Produce  json
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ResetOutcome}
// @Router /api/progress/reset [post]
func (c *ProgressController) ResetProgress(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	deviceID := util.GetDeviceID(ctx)
	out, err := c.ProgressService.ResetProgress(ctx.Request.Context(), c.Provider.For(session, deviceID), store.ScopeFor(session, deviceID))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// ImportProgress godoc
// @Summary 导入本地进度
// @Description Copies the device's demo progress into the signed-in account. Fails with 409 if the account already has progress.
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param X-Device-ID header string false "device whose demo progress is imported"
// @Success 200 {object} util.Response{data=service.ImportOutcome}
// @Failure 409 {object} util.Response
// @Router /api/progress/import [post]
func (c *ProgressController) ImportProgress(ctx *gin.Context) {
	out, err := c.ProgressService.ImportLocalProgress(ctx.Request.Context(), util.GetSessionFromContext(ctx), util.GetDeviceID(ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
