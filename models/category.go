package models

import (
	"time"
)

// Category 消费类别，固定集合（启动时写入，ID 即对外的类别标识）
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Icon      string    `json:"icon" gorm:"size:10"`
	Color     string    `json:"color" gorm:"size:20"` // 颜色代码，如 #FF6B6B
	Sort      int       `json:"sort" gorm:"default:0;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// 固定类别标识
const (
	CategoryComida          = "comida"
	CategoryTransporte      = "transporte"
	CategoryEntretenimiento = "entretenimiento"
	CategoryCompras         = "compras"
	CategorySalud           = "salud"
	CategoryServicios       = "servicios"
	CategoryOtros           = "otros"
)

// DefaultCategories 获取内置类别集合（图标与颜色和客户端保持一致）
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryComida, Name: "Comida", Icon: "🍔", Color: "#FF6B6B"},
		{ID: CategoryTransporte, Name: "Transporte", Icon: "🚗", Color: "#4ECDC4"},
		{ID: CategoryEntretenimiento, Name: "Entretenimiento", Icon: "🎬", Color: "#FFE66D"},
		{ID: CategoryCompras, Name: "Compras", Icon: "🛍️", Color: "#A8E6CF"},
		{ID: CategorySalud, Name: "Salud", Icon: "💊", Color: "#FF8B94"},
		{ID: CategoryServicios, Name: "Servicios", Icon: "💡", Color: "#C7CEEA"},
		{ID: CategoryOtros, Name: "Otros", Icon: "📌", Color: "#B4B4B4"},
	}
}
