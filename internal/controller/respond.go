package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/service"
)

// fail 按业务错误哨兵映射 HTTP 状态码
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(400, gin.H{"code": 400, "message": "参数无效: " + err.Error()})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(401, gin.H{"code": 401, "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(404, gin.H{"code": 404, "message": "记录不存在"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(409, gin.H{"code": 409, "message": "操作冲突: " + err.Error()})
	case errors.Is(err, service.ErrMissingRate):
		c.JSON(422, gin.H{"code": 422, "message": err.Error()})
	default:
		c.JSON(500, gin.H{"code": 500, "message": "服务内部错误: " + err.Error()})
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": data})
}
