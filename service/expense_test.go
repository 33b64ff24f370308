package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gastos/models"
)

func expense(amount float64, category string, date time.Time) models.Expense {
	return models.Expense{Amount: amount, Category: category, ExpenseDate: date}
}

func TestTotal(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local)

	expenses := []models.Expense{
		expense(50, models.CategoryComida, day),
		expense(30, models.CategoryTransporte, day),
		expense(20, models.CategoryComida, day),
	}

	assert.Equal(t, 100.0, Total(expenses))
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 0.0, Total([]models.Expense{}))
}

func TestGroupByCategory(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local)

	expenses := []models.Expense{
		expense(50, models.CategoryComida, day),
		expense(30, models.CategoryTransporte, day),
		expense(20, models.CategoryComida, day.AddDate(0, 0, 1)),
	}

	groups := GroupByCategory(expenses)

	assert.Len(t, groups, 2)
	assert.Len(t, groups[models.CategoryComida], 2)
	assert.Len(t, groups[models.CategoryTransporte], 1)
	// 组内保持输入顺序
	assert.Equal(t, 50.0, groups[models.CategoryComida][0].Amount)
	assert.Equal(t, 20.0, groups[models.CategoryComida][1].Amount)
	// 未出现的分类不产生空组
	_, ok := groups[models.CategorySalud]
	assert.False(t, ok)

	assert.Empty(t, GroupByCategory(nil))
}

func TestFilterByCategory(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local)

	expenses := []models.Expense{
		expense(50, models.CategoryComida, day),
		expense(30, models.CategoryTransporte, day),
	}

	comida := FilterByCategory(expenses, models.CategoryComida)
	assert.Len(t, comida, 1)
	assert.Equal(t, 50.0, comida[0].Amount)

	// todos 哨兵值：原样返回
	todos := FilterByCategory(expenses, FilterAll)
	assert.Equal(t, expenses, todos)

	// 没有匹配时返回空切片而非 nil
	none := FilterByCategory(expenses, models.CategorySalud)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterByDateRange(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 16, 23, 59, 59, 0, time.Local)

	// 两端压边界各一条（含），区间外前后各一条，区间内一条
	expenses := []models.Expense{
		expense(10, models.CategoryComida, start),
		expense(20, models.CategoryComida, end),
		expense(30, models.CategoryComida, start.AddDate(0, 0, -1)),
		expense(40, models.CategoryComida, end.Add(time.Second)),
		expense(50, models.CategoryComida, start.AddDate(0, 0, 3)),
	}

	filtered := FilterByDateRange(expenses, start, end)

	assert.Len(t, filtered, 3)
	assert.Equal(t, 80.0, Total(filtered))
}

func TestTotalByCategory(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local)

	expenses := []models.Expense{
		expense(50, models.CategoryComida, day),
		expense(30, models.CategoryTransporte, day),
		expense(25, models.CategoryComida, day),
	}

	totals := TotalByCategory(expenses)

	assert.Equal(t, 75.0, totals[models.CategoryComida])
	assert.Equal(t, 30.0, totals[models.CategoryTransporte])
	assert.Len(t, totals, 2)
}
