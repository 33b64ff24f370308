package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-06-12 是周三
var wednesday = time.Date(2024, 6, 12, 15, 30, 45, 0, time.Local)

func TestStartEndOfDay(t *testing.T) {
	start := StartOfDay(wednesday)
	end := EndOfDay(wednesday)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, 12, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.True(t, end.After(wednesday))
}

func TestStartEndOfWeek(t *testing.T) {
	// 周从周一开始：2024-06-12（周三）所在周是 06-10 到 06-16
	start := StartOfWeek(wednesday)
	end := EndOfWeek(wednesday)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Weekday(time.Monday), start.Weekday())
	assert.Equal(t, 16, end.Day())
	assert.Equal(t, time.Weekday(time.Sunday), end.Weekday())

	// 周日属于上一个周一开始的那一周
	sunday := time.Date(2024, 6, 16, 10, 0, 0, 0, time.Local)
	assert.Equal(t, start, StartOfWeek(sunday))

	// 周一当天即是周起点
	monday := time.Date(2024, 6, 10, 1, 0, 0, 0, time.Local)
	assert.Equal(t, start, StartOfWeek(monday))
}

func TestStartEndOfMonth(t *testing.T) {
	start := StartOfMonth(wednesday)
	end := EndOfMonth(wednesday)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, 30, end.Day()) // 六月 30 天

	// 闰年二月
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 29, EndOfMonth(feb).Day())
}

func TestStartEndOfYear(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), StartOfYear(wednesday))
	end := EndOfYear(wednesday)
	assert.Equal(t, time.Month(12), end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestIsToday(t *testing.T) {
	assert.True(t, IsToday(time.Date(2024, 6, 12, 0, 0, 1, 0, time.Local), wednesday))
	assert.False(t, IsToday(time.Date(2024, 6, 11, 23, 59, 59, 0, time.Local), wednesday))

	// 零值时间不报错，返回 false（刻意保留的回退行为）
	assert.False(t, IsToday(time.Time{}, wednesday))
}

func TestIsCurrentMonth(t *testing.T) {
	assert.True(t, IsCurrentMonth(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), wednesday))
	assert.True(t, IsCurrentMonth(time.Date(2024, 6, 30, 23, 0, 0, 0, time.Local), wednesday))
	assert.False(t, IsCurrentMonth(time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local), wednesday))
	// 去年同月不算
	assert.False(t, IsCurrentMonth(time.Date(2023, 6, 15, 0, 0, 0, 0, time.Local), wednesday))
	assert.False(t, IsCurrentMonth(time.Time{}, wednesday))
}

func TestIsCurrentWeek(t *testing.T) {
	// 边界两端都包含
	assert.True(t, IsCurrentWeek(time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local), wednesday))
	assert.True(t, IsCurrentWeek(time.Date(2024, 6, 16, 23, 59, 59, 0, time.Local), wednesday))
	assert.False(t, IsCurrentWeek(time.Date(2024, 6, 9, 23, 59, 59, 0, time.Local), wednesday))
	assert.False(t, IsCurrentWeek(time.Date(2024, 6, 17, 0, 0, 0, 0, time.Local), wednesday))
	assert.False(t, IsCurrentWeek(time.Time{}, wednesday))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	assert.Equal(t, 14, DaysBetween(a, b))
	// 与参数顺序无关
	assert.Equal(t, 14, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))

	// 不足半天按就近取整
	c := time.Date(2024, 6, 1, 13, 0, 0, 0, time.Local)
	assert.Equal(t, 1, DaysBetween(a, c))
}
