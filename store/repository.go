package store

import (
	"errors"

	"gorm.io/gorm"

	"gastos/database"
	"gastos/models"
)

// GormRepository 基于 gorm 的消费记录仓储实现
type GormRepository struct{}

// NewGormRepository 创建 gorm 仓储
func NewGormRepository() *GormRepository {
	return &GormRepository{}
}

// ListByUser 按用户拉取全部消费记录，按消费日期倒序
func (r *GormRepository) ListByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := database.DB.Where("user_id = ?", userID).
		Order("expense_date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Create 写入一条消费记录，ID 由数据库回填
func (r *GormRepository) Create(expense *models.Expense) error {
	return database.DB.Create(expense).Error
}

// Update 保存一条消费记录的全部字段
func (r *GormRepository) Update(expense *models.Expense) error {
	return database.DB.Save(expense).Error
}

// Delete 软删除一条消费记录，限定属主
func (r *GormRepository) Delete(userID, expenseID uint) error {
	result := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get 按属主查询单条消费记录
func (r *GormRepository) Get(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}
