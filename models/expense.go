package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 消费记录模型
// 金额统一以美元入库，展示时再按用户资料中的币种换算
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string         `json:"category" gorm:"size:50;not null;index"`
	Description string         `json:"description" gorm:"size:200;not null"`
	ExpenseDate time.Time      `json:"expense_date" gorm:"not null"`
	ReceiptURL  string         `json:"receipt_url" gorm:"size:255"` // 本地票据文件 URI，空表示未附票据
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
