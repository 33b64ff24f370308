package service

import (
	"time"

	"gastos/models"
)

// FilterAll 是分类和时间筛选共用的"全部"哨兵值
const FilterAll = "todos"

// Total 返回消费总额，空列表返回 0
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// GroupByCategory 按分类分组，只包含出现过的分类，组内保持原有顺序
func GroupByCategory(expenses []models.Expense) map[string][]models.Expense {
	groups := make(map[string][]models.Expense)
	for _, e := range expenses {
		groups[e.Category] = append(groups[e.Category], e)
	}
	return groups
}

// FilterByCategory 按分类筛选，category 为 todos 时原样返回
func FilterByCategory(expenses []models.Expense, category string) []models.Expense {
	if category == FilterAll {
		return expenses
	}
	filtered := make([]models.Expense, 0)
	for _, e := range expenses {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByDateRange 按日期区间筛选，两端边界均包含
func FilterByDateRange(expenses []models.Expense, start, end time.Time) []models.Expense {
	filtered := make([]models.Expense, 0)
	for _, e := range expenses {
		if !e.ExpenseDate.Before(start) && !e.ExpenseDate.After(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TotalByCategory 返回各分类的消费总额
func TotalByCategory(expenses []models.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}
