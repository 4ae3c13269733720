package service

import (
	"errors"
	"fmt"
)

// 业务层哨兵错误，handler 通过 errors.Is 映射成 HTTP 状态码
var (
	// ErrNotFound 目标资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrSlugExists slug 已被占用
	ErrSlugExists = errors.New("slug already exists")
	// ErrNameExists 名称已被占用
	ErrNameExists = errors.New("name already exists")
	// ErrCategoryInUse 分类仍被文章引用，不能删除
	ErrCategoryInUse = errors.New("category is referenced by articles")
	// ErrTagInUse 标签仍被文章引用，不能删除
	ErrTagInUse = errors.New("tag is referenced by articles")
	// ErrPermissionDenied 当前用户无权执行该操作
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidTitle 标题无法生成有效 slug
	ErrInvalidTitle = errors.New("title cannot produce a valid slug")
	// ErrInvalidStatus 非法的文章状态
	ErrInvalidStatus = errors.New("invalid article status")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailExists 邮箱已注册
	ErrEmailExists = errors.New("email already registered")
	// ErrUsernameExists 用户名已注册
	ErrUsernameExists = errors.New("username already registered")
)

// ValidationError 字段级校验错误
type ValidationError struct {
	Field  string
	Reason string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError 创建字段校验错误
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
