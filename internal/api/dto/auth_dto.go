package dto

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq 刷新令牌请求
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResp 登录响应
type LoginResp struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}
