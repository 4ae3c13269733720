package models

import "time"

// Role 角色表（admin / editor / writer）
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`                     // 主键
	Name string `gorm:"size:20;uniqueIndex;not null" json:"name"` // 角色名
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}

// User 员工账号表
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                         // 主键
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // 用户名
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`   // 邮箱
	PasswordHash string    `gorm:"size:128;not null" json:"-"`                   // 密码哈希（不返回给前端）
	RoleID       uint      `gorm:"not null;index" json:"role_id"`                // 角色
	Role         *Role     `json:"role,omitempty"`                               // 角色实体
	CreatedAt    time.Time `json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// RoleName 返回角色名，未预加载时为空串
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
