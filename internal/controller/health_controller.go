package controller

import (
	"net/http"

	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthProbeKey = "health-probe"

type HealthController struct {
	DB *gorm.DB
	KV store.KV
}

func NewHealthController(db *gorm.DB, kv store.KV) *HealthController {
	return &HealthController{DB: db, KV: kv}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	// 本地存储降级时仍然可用，只报告状态
	kvStatus := "up"
	if _, err := c.KV.Exists(ctx.Request.Context(), healthProbeKey); err != nil {
		logger.Log.Warn("local store unavailable", zap.Error(err))
		kvStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database":    "up",
			"local_store": kvStatus,
		},
	})
}
