package controller

import (
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is checked for shape only; the service validates the
// email and password after normalising them.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
	Age         *int   `json:"age"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
}

// Register godoc
// @Summary 注册新用户
// @Description Create an account. Progress made in demo mode stays on the device until imported.
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration"
// @Success 201 {object} util.Response{data=model.Profile} "created"
// @Failure 400 {object} util.Response "invalid input"
// @Failure 409 {object} util.Response "email already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput(req))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Created(ctx, profile)
}

// Login godoc
// @Summary 用户登录
// @Description Exchange credentials for a bearer token
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=service.LoginResult}
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Logout godoc
// @Summary 退出登录
// @Description Revoke the current token
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.SignOut(ctx.Request.Context(), util.GetSessionFromContext(ctx)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Me godoc
// @Summary 当前用户资料
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	profile, err := c.AuthService.Profile(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateMe godoc
// @Summary 更新用户资料
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdate true "profile"
// @Success 200 {object} util.Response{data=model.Profile}
// @Router /api/auth/me [put]
func (c *AuthController) UpdateMe(ctx *gin.Context) {
	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	profile, err := c.AuthService.UpdateProfile(ctx.Request.Context(), util.GetSessionFromContext(ctx), req)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
