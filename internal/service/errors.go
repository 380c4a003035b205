package service

import "errors"

// 业务错误哨兵，controller 层据此决定 HTTP 状态码
var (
	// ErrInvalidInput 入参缺失或非法
	ErrInvalidInput = errors.New("参数无效")
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrMissingRate 币种没有任何汇率记录，无法折算
	ErrMissingRate = errors.New("缺少汇率")
	// ErrConflict 业务约束冲突（重复创建、仍被引用等）
	ErrConflict = errors.New("操作冲突")
)
