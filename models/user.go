package models

import (
	"time"

	"gorm.io/gorm"
)

// 用户状态
const (
	// UserStatusActive 正常：可登录
	UserStatusActive = "active"
	// UserStatusLocked 锁定：不可登录
	UserStatusLocked = "locked"
)

// User 用户账号模型（认证身份）
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"uniqueIndex;size:100;not null"` // 注册后不可修改
	Password    string         `json:"-" gorm:"size:255;not null"`
	DisplayName string         `json:"display_name" gorm:"size:50"`
	Status      string         `json:"status" gorm:"size:20;default:active;index"` // active/locked
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
