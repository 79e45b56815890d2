package controller

import (
	"encoding/json"

	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	Provider         *store.Provider
}

func NewChallengeController(challengeService *service.ChallengeService, provider *store.Provider) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService, Provider: provider}
}

// UpdateProgressRequest carries the interaction-specific progress payload,
// e.g. {"count":3}, {"completed":["..."]} or {"seconds":120}.
type UpdateProgressRequest struct {
	Progress json.RawMessage `json:"progress" swaggertype:"object"`
}

type TimerStatus struct {
	InstanceID string `json:"instanceId"`
	Running    bool   `json:"running"`
	Seconds    int    `json:"seconds"`
}

// GetMyChallenges godoc
// @Summary 我的挑战
// @Description Today's, available and completed challenges with total points earned
// @Tags 挑战
// @Produce  json
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ChallengeOverview}
// @Router /api/challenges/mine [get]
func (c *ChallengeController) GetMyChallenges(ctx *gin.Context) {
	overview, err := c.ChallengeService.Overview(ctx.Request.Context(), progressStore(c.Provider, ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// StartChallenge godoc
// @Summary 开始挑战
// @Description Starts a challenge for today. Starting one already started today creates nothing and answers with a "Challenge Active" notice.
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge template id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ChallengeOutcome}
// @Router /api/challenges/{id}/start [post]
func (c *ChallengeController) StartChallenge(ctx *gin.Context) {
	out, err := c.ChallengeService.Start(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// UpdateProgress godoc
// @Summary 更新挑战进度
// @Tags 挑战
// @Accept  json
// @Produce  json
// @Param id path string true "challenge instance id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Param body body UpdateProgressRequest true "progress"
// @Success 200 {object} util.Response{data=service.ChallengeOutcome}
// @Failure 400 {object} util.Response
// @Router /api/user-challenges/{id}/progress [put]
func (c *ChallengeController) UpdateProgress(ctx *gin.Context) {
	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req.Progress) == 0 {
		util.BadRequest(ctx, "progress is required")
		return
	}

	out, err := c.ChallengeService.UpdateProgressJSON(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"), req.Progress)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// IncrementProgress godoc
// @Summary 计数挑战加一
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge instance id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ChallengeOutcome}
// @Failure 400 {object} util.Response "not a counter challenge"
// @Router /api/user-challenges/{id}/increment [post]
func (c *ChallengeController) IncrementProgress(ctx *gin.Context) {
	out, err := c.ChallengeService.Increment(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// StartTimer godoc
// @Summary 启动计时
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge instance id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ChallengeOutcome}
// @Failure 409 {object} util.Response "timer already running"
// @Router /api/user-challenges/{id}/timer/start [post]
func (c *ChallengeController) StartTimer(ctx *gin.Context) {
	out, err := c.ChallengeService.StartTimer(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// StopTimer godoc
// @Summary 停止计时并保存
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge instance id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response{data=service.ChallengeOutcome}
// @Failure 404 {object} util.Response "no running timer"
// @Router /api/user-challenges/{id}/timer/stop [post]
func (c *ChallengeController) StopTimer(ctx *gin.Context) {
	out, err := c.ChallengeService.StopTimer(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// CancelTimer godoc
// @Summary 取消计时
// @Description Stops the timer without saving the elapsed time
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge instance id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Success 200 {object} util.Response
// @Router /api/user-challenges/{id}/timer/cancel [post]
func (c *ChallengeController) CancelTimer(ctx *gin.Context) {
	cancelled, err := c.ChallengeService.CancelTimer(ctx.Request.Context(), progressStore(c.Provider, ctx), ctx.Param("id"))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cancelled": cancelled})
}

// GetTimer godoc
// @Summary 计时状态
// @Tags 挑战
// @Produce  json
// @Param id path string true "challenge instance id"
// @Success 200 {object} util.Response{data=TimerStatus}
// @Router /api/user-challenges/{id}/timer [get]
func (c *ChallengeController) GetTimer(ctx *gin.Context) {
	id := ctx.Param("id")
	seconds, running := c.ChallengeService.TimerStatus(id)
	util.Success(ctx, TimerStatus{InstanceID: id, Running: running, Seconds: seconds})
}
