package api

import (
	"gastos/database"
	"gastos/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 消费类别处理器，类别目录固定、只读
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 获取消费类别列表
// @Summary 获取消费类别列表
// @Description 获取固定的消费类别目录（id、名称、图标、颜色），按排序字段升序排列
// @Tags 消费类别
// @Accept json
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
