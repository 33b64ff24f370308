package session

import (
	"gastos/database"
	"gastos/models"
)

// GormProfileRepository 基于 gorm 的资料仓储实现
type GormProfileRepository struct{}

// NewGormProfileRepository 创建资料仓储
func NewGormProfileRepository() *GormProfileRepository {
	return &GormProfileRepository{}
}

// Get 按用户ID查询资料
func (r *GormProfileRepository) Get(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create 写入一条资料
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return database.DB.Create(profile).Error
}

// Update 保存资料的全部字段
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return database.DB.Save(profile).Error
}
