package util

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate 解析 YYYY-MM-DD 格式的日历日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseFeedDate 解析外部接口返回的 ISO-8601 时间戳，截断为日历日期，丢弃时间和时区
func ParseFeedDate(s string) (time.Time, error) {
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		s = s[:idx]
	}
	if idx := strings.IndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	return ParseDate(s)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DowCode 星期编码，1=周日 .. 7=周六
func DowCode(t time.Time) int {
	return int(t.Weekday()) + 1
}

// DayWeight 周五/周六/周日为 1.0，周一到周四为 1.5
func DayWeight(t time.Time) float64 {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return 1.0
	default:
		return 1.5
	}
}

// EachDay 遍历 [start, end] 闭区间内的每个日历日期
func EachDay(start, end time.Time, fn func(time.Time)) {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// AdjacentMonths 前后相邻月份，12 月和 1 月回绕
func AdjacentMonths(mon int) (int, int) {
	prev := mon - 1
	if prev < 1 {
		prev = 12
	}
	next := mon + 1
	if next > 12 {
		next = 1
	}
	return prev, next
}

// FiscalMonth 从财年起始月推算财年月份（1-12）
func FiscalMonth(mon int, fiscalStartMonth int) int {
	return (mon-fiscalStartMonth+12)%12 + 1
}
