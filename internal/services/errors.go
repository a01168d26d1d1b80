package services

import (
	"errors"
)

var (
	// ErrNotFound 目标不存在或已被软删除
	ErrNotFound = errors.New("record not found")
	// ErrContentRequired 内容为必填字段
	ErrContentRequired = errors.New("content is required")
	// ErrTitleRequired 标题为必填字段
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidTarget 评论/点赞的目标类型不合法
	ErrInvalidTarget = errors.New("invalid target")
)

// IsValidationError 校验类错误直接回显给调用方，其余错误只返回通用提示
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentRequired) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidTarget)
}
