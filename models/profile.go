package models

import (
	"time"
)

const (
	// DefaultMonthlyBudget 默认月度预算（美元）
	DefaultMonthlyBudget = 2000
	// DefaultCurrency 默认展示币种
	DefaultCurrency = "USD"
)

// Profile 用户资料模型，与 User 一对一（主键即用户ID）
// 首次观察到某个身份没有对应资料时自动创建一条默认资料，且只创建一次
type Profile struct {
	UserID        uint      `json:"user_id" gorm:"primaryKey"`
	DisplayName   string    `json:"display_name" gorm:"size:50"`
	AvatarURL     string    `json:"avatar_url" gorm:"size:255"`                            // 本地头像文件 URI，空表示未设置
	MonthlyBudget float64   `json:"monthly_budget" gorm:"type:decimal(10,2);default:2000"` // 月度预算，仅用于展示，不做强制拦截
	Currency      string    `json:"currency" gorm:"size:10;default:USD"`                   // 展示币种代码
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Profile) TableName() string {
	return "profiles"
}
