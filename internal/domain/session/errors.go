package session

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 会话领域错误定义
var (
	// ErrNotActive 尚未登录
	ErrNotActive = apperrors.ErrUnauthorized

	// ErrInvalidBranch 分支不合法
	ErrInvalidBranch = apperrors.New(apperrors.ErrCodeInvalidParams, "请选择有效的分支")
)

// 字段名
const (
	FieldUsername   = "username"
	FieldPassword   = "password"
	FieldBranch     = "branch"
	FieldIdentifier = "identifier"
)

// 字段级提示信息
const (
	MsgUsernameTooShort   = "用户名至少需要3个字符"
	MsgPasswordTooShort   = "密码至少需要3个字符"
	MsgBranchRequired     = "请选择所属分支"
	MsgIdentifierRequired = "请输入邮箱或用户名"
)

// FieldErrors 字段级校验错误(字段名 → 提示信息)
// 一次校验可以同时包含多个字段的错误
type FieldErrors map[string]string

// Empty 是否没有任何错误
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Err 转换为AppError,没有错误时返回nil
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return apperrors.NewValidation("提交的信息有误", f)
}
