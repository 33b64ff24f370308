package api

import (
	"sort"
	"time"

	"gastos/currency"
	"gastos/middleware"
	"gastos/models"
	"gastos/session"
	"gastos/store"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 消费统计处理器
type SummaryHandler struct {
	stores   *store.Manager
	sessions *session.Manager
}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler(stores *store.Manager, sessions *session.Manager) *SummaryHandler {
	return &SummaryHandler{stores: stores, sessions: sessions}
}

// CategoryTotal 单个类别的统计
type CategoryTotal struct {
	Category  string  `json:"category"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
	Percent   float64 `json:"percent"`
}

// BudgetSummary 预算使用情况
type BudgetSummary struct {
	MonthlyBudget float64 `json:"monthly_budget"`
	Spent         float64 `json:"spent"`
	Remaining     float64 `json:"remaining"`
	PercentUsed   float64 `json:"percent_used"`
}

// SummaryResponse 统计响应，所有金额按用户资料中的币种换算
type SummaryResponse struct {
	Currency       string          `json:"currency"`
	TodayTotal     float64         `json:"today_total"`
	TodayFormatted string          `json:"today_formatted"`
	MonthTotal     float64         `json:"month_total"`
	MonthFormatted string          `json:"month_formatted"`
	FilteredTotal  float64         `json:"filtered_total"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
	Budget         BudgetSummary   `json:"budget"`
}

// GetSummary 获取消费统计
// @Summary 获取消费统计
// @Description 返回今日/本月/当前筛选的消费总额、本月各类别消费以及预算使用情况。金额入库为美元，此处按用户资料中的币种换算后返回。
// @Tags 统计
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoria query string false "类别筛选，todos 表示全部"
// @Param filtro query string false "时间筛选" Enums(todos,hoy,semana,mes)
// @Success 200 {object} Response{data=SummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	profile, err := h.sessions.Profile(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "获取资料失败"))
		return
	}

	s := h.stores.For(userID)
	if categoria := c.Query("categoria"); categoria != "" {
		s.SetCategory(categoria)
	}
	if filtro := c.Query("filtro"); filtro != "" {
		s.SetDateFilter(filtro)
	}

	info := s.Info()
	if info.State == store.StateError {
		InternalError(c, info.ErrorMsg)
		return
	}

	now := time.Now()
	cur := profile.Currency
	convert := func(usd float64) float64 {
		return currency.Convert(usd, models.DefaultCurrency, cur)
	}

	todayTotal := convert(s.TodayTotal(now))
	monthTotalUSD := s.MonthTotal(now)
	monthTotal := convert(monthTotalUSD)
	filteredTotal := convert(s.FilteredTotal(now))

	// 本月各类别消费，按金额倒序
	byCategory := s.MonthTotalsByCategory(now)
	categoryTotals := make([]CategoryTotal, 0, len(byCategory))
	for category, totalUSD := range byCategory {
		total := convert(totalUSD)
		percent := 0.0
		if monthTotalUSD > 0 {
			percent = totalUSD / monthTotalUSD * 100
		}
		categoryTotals = append(categoryTotals, CategoryTotal{
			Category:  category,
			Total:     total,
			Formatted: currency.Format(total, cur),
			Percent:   percent,
		})
	}
	sort.Slice(categoryTotals, func(i, j int) bool {
		return categoryTotals[i].Total > categoryTotals[j].Total
	})

	// 预算以美元入库，剩余额先算后换
	budgetUSD := profile.MonthlyBudget
	percentUsed := 0.0
	if budgetUSD > 0 {
		percentUsed = monthTotalUSD / budgetUSD * 100
	}

	Success(c, SummaryResponse{
		Currency:       cur,
		TodayTotal:     todayTotal,
		TodayFormatted: currency.Format(todayTotal, cur),
		MonthTotal:     monthTotal,
		MonthFormatted: currency.Format(monthTotal, cur),
		FilteredTotal:  filteredTotal,
		CategoryTotals: categoryTotals,
		Budget: BudgetSummary{
			MonthlyBudget: convert(budgetUSD),
			Spent:         monthTotal,
			Remaining:     convert(budgetUSD - monthTotalUSD),
			PercentUsed:   percentUsed,
		},
	})
}
