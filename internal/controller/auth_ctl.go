package controller

import (
	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 用户登录
// @Summary 用户名密码登录
// @Tags Auth
// @Param req body dto.LoginReq true "登录信息"
// @Success 200 {object} dto.LoginResp
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	tokens, user, err := ctrl.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, dto.LoginResp{
		Code:         0,
		Message:      "success",
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Username:     user.Username,
		Name:         user.Name,
		Role:         user.Role,
	})
}

// Refresh 刷新令牌
// @Summary 用 Refresh Token 换新令牌对
// @Tags Auth
// @Param req body dto.RefreshReq true "刷新令牌"
// @Success 200 {object} dto.Resp
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, tokens)
}
