package controller

import (
	"errors"
	"net/http"

	"health_edu_backend/internal/challenge"
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// progressStore picks the store for the request's session and device.
func progressStore(p *store.Provider, ctx *gin.Context) store.ProgressStore {
	return p.For(util.GetSessionFromContext(ctx), util.GetDeviceID(ctx))
}

// writeDomainError maps service errors onto the response envelope.
func writeDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput),
		errors.Is(err, challenge.ErrProgressMismatch),
		errors.Is(err, challenge.ErrNotCounter),
		errors.Is(err, challenge.ErrNotTimer),
		errors.Is(err, service.ErrChallengeCompleted):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, challenge.ErrTimerRunning),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrRemoteNotEmpty):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, challenge.ErrTimerNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrInvalidToken),
		errors.Is(err, util.ErrSessionRequired):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrRemoteUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
