package models

import (
	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedRoles 初始化内置角色，已存在时跳过
func SeedRoles(db *gorm.DB) error {
	for _, name := range constants.Roles {
		role := Role{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if username == "" {
		username = constants.DefaultAdminUsername
	}
	if password == "" {
		password = constants.DefaultAdminPassword
	}

	var adminRole Role
	if err := DB.Where("name = ?", constants.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		Email:        constants.DefaultAdminEmail,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == constants.DefaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
