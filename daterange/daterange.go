// Package daterange 提供日/周/月/年边界计算和日期判断
// 所有函数显式接收参照时刻 now，便于测试注入固定时间
package daterange

import (
	"math"
	"time"
)

// StartOfDay 返回 now 所在日的 00:00:00
func StartOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// EndOfDay 返回 now 所在日的最后一纳秒（23:59:59.999999999）
func EndOfDay(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek 返回 now 所在周的周一 00:00:00（周从周一开始）
func StartOfWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	// time.Sunday == 0，按周一起始折算成偏移 6
	if weekday == 0 {
		weekday = 7
	}
	return StartOfDay(now).AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek 返回 now 所在周的周日最后一纳秒
func EndOfWeek(now time.Time) time.Time {
	return StartOfWeek(now).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth 返回 now 所在月 1 号 00:00:00
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// EndOfMonth 返回 now 所在月最后一天的最后一纳秒
func EndOfMonth(now time.Time) time.Time {
	return StartOfMonth(now).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// StartOfYear 返回 now 所在年 1 月 1 日 00:00:00
func StartOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
}

// EndOfYear 返回 now 所在年 12 月 31 日的最后一纳秒
func EndOfYear(now time.Time) time.Time {
	return StartOfYear(now).AddDate(1, 0, 0).Add(-time.Nanosecond)
}

// IsToday 判断 date 是否与 now 同一天
// 零值时间返回 false，不会 panic
func IsToday(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsCurrentMonth 判断 date 是否与 now 同年同月
func IsCurrentMonth(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	return date.Year() == now.Year() && date.Month() == now.Month()
}

// IsCurrentWeek 判断 date 是否落在 now 所在周内（周一到周日，含边界）
func IsCurrentWeek(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	start := StartOfWeek(now)
	end := EndOfWeek(now)
	return !date.Before(start) && !date.After(end)
}

// DaysBetween 返回两个时刻间的整天数差，取绝对值，与参数顺序无关
func DaysBetween(a, b time.Time) int {
	diff := a.Sub(b).Hours() / 24
	return int(math.Round(math.Abs(diff)))
}
