package service

import "github.com/inkstone-cms/internal/constants"

// Principal 当前操作者身份，由认证中间件解析后逐层显式传入
type Principal struct {
	UserID   uint
	Username string
	Role     string
}

// IsAdmin 是否管理员
func (p Principal) IsAdmin() bool {
	return p.Role == constants.RoleAdmin
}
