package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gastos/database"
	"gastos/middleware"
	"gastos/models"
	"gastos/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器，读写都经过每用户的列表状态
type ExpenseHandler struct {
	stores *store.Manager
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(stores *store.Manager) *ExpenseHandler {
	return &ExpenseHandler{stores: stores}
}

// CreateExpenseRequest 创建消费记录请求
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"99.99"`
	Category    string  `json:"category" binding:"required" example:"comida"`
	Description string  `json:"description" binding:"required,min=1,max=200" example:"almuerzo"`
	ExpenseDate string  `json:"expense_date" binding:"required" example:"2024-01-15 12:30:00"`
}

// UpdateExpenseRequest 更新消费记录请求，未提供的字段不修改
type UpdateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"omitempty,gt=0" example:"99.99"`
	Category    string  `json:"category" example:"comida"`
	Description string  `json:"description" binding:"omitempty,max=200" example:"almuerzo"`
	ExpenseDate string  `json:"expense_date" example:"2024-01-15 12:30:00"`
}

// ExpenseListRequest 消费记录列表请求
type ExpenseListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Categoria string `form:"categoria" example:"comida"`
	Filtro    string `form:"filtro" example:"mes"` // todos/hoy/semana/mes
}

// parseExpenseDate 解析消费时间并拒绝未来时间
func parseExpenseDate(value string) (time.Time, string) {
	date, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		return time.Time{}, "时间格式错误，应为: 2006-01-02 15:04:05"
	}
	if date.After(time.Now()) {
		return time.Time{}, "消费日期不能晚于当前时间"
	}
	return date, ""
}

// validateCategory 校验类别是否在固定目录中
func validateCategory(id string) bool {
	var cat models.Category
	return database.DB.Where("id = ?", id).First(&cat).Error == nil
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条新的消费记录，金额以美元计。创建成功后服务端整体刷新该用户的列表。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if !validateCategory(req.Category) {
		BadRequest(c, "无效的消费类别")
		return
	}

	expenseDate, msg := parseExpenseDate(req.ExpenseDate)
	if msg != "" {
		BadRequest(c, msg)
		return
	}

	expense, err := h.stores.For(userID).Create(store.CreateExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: expenseDate,
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建消费记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", expense)
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取当前用户的消费记录列表。categoria 和 filtro 为筛选条件（filtro 可选值 todos/hoy/semana/mes），分页作用于筛选后的结果。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param categoria query string false "类别筛选，todos 表示全部"
// @Param filtro query string false "时间筛选" Enums(todos,hoy,semana,mes)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	s := h.stores.For(userID)
	if req.Categoria != "" {
		s.SetCategory(req.Categoria)
	}
	if req.Filtro != "" {
		s.SetDateFilter(req.Filtro)
	}

	info := s.Info()
	if info.State == store.StateError {
		InternalError(c, info.ErrorMsg)
		return
	}

	filtered := s.Filtered(time.Now())
	total := int64(len(filtered))

	// 对筛选结果分页
	start := (req.Page - 1) * req.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + req.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	Page(c, total, req.Page, req.PageSize, filtered[start:end])
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Description 根据ID获取消费记录详情
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	expense, err := h.stores.For(userID).Get(uint(id))
	if err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 更新指定的消费记录，只修改请求中携带的字段。更新成功后服务端整体刷新该用户的列表。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Param request body UpdateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	s := h.stores.For(userID)
	existing, err := s.Get(uint(id))
	if err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	input := store.UpdateExpenseInput{
		ID:          existing.ID,
		Amount:      existing.Amount,
		Category:    existing.Category,
		Description: existing.Description,
		ExpenseDate: existing.ExpenseDate,
	}
	if req.Amount > 0 {
		input.Amount = req.Amount
	}
	if req.Category != "" {
		category := strings.TrimSpace(req.Category)
		if !validateCategory(category) {
			BadRequest(c, "无效的消费类别")
			return
		}
		input.Category = category
	}
	if req.Description != "" {
		input.Description = req.Description
	}
	if req.ExpenseDate != "" {
		expenseDate, msg := parseExpenseDate(req.ExpenseDate)
		if msg != "" {
			BadRequest(c, msg)
			return
		}
		input.ExpenseDate = expenseDate
	}

	updated, err := s.Update(input)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 删除指定的消费记录，附带的票据文件先于记录删除
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.stores.For(userID).Delete(uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "记录不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// UploadReceipt 上传票据
// @Summary 上传票据
// @Description 为指定消费记录上传票据图片（multipart 表单字段 receipt），替换时旧票据文件会被删除
// @Tags 消费记录
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Param receipt formData file true "票据图片"
// @Success 200 {object} Response{data=models.Expense} "上传成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id}/receipt [post]
func (h *ExpenseHandler) UploadReceipt(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	s := h.stores.For(userID)
	existing, err := s.Get(uint(id))
	if err != nil {
		NotFound(c, "记录不存在")
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		BadRequest(c, "请上传票据文件（表单字段 receipt）")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "读取上传文件失败")
		return
	}
	defer file.Close()

	updated, err := s.Update(store.UpdateExpenseInput{
		ID:          existing.ID,
		Amount:      existing.Amount,
		Category:    existing.Category,
		Description: existing.Description,
		ExpenseDate: existing.ExpenseDate,
		Receipt:     file,
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存票据失败"))
		return
	}

	SuccessWithMessage(c, "票据已保存", updated)
}
