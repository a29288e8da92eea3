package models

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/constants"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultOwner 首次启动时创建默认店主账号。已有员工则跳过。
func InitDefaultOwner(username, password string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	var count int64
	if err := DB.Model(&Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = "owner"
	}
	if password == "" {
		password = "ChangeMe123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return DB.Create(&Staff{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  "Store Owner",
		Role:         constants.RoleOwner,
		IsActive:     true,
	}).Error
}
