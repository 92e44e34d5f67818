package model

import "time"

// RefDay 参考基线表的一行，每个历史日期一行
// 归一化之后 ttl_earn 存的是 (mon, dow) 单元的平滑期望值，不是当日实际营收
type RefDay struct {
	ID      uint64    `gorm:"primaryKey"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_ref_date" json:"date"`
	Dow     int       `gorm:"not null" json:"dow"` // 1=周日 .. 7=周六
	Mon     int       `gorm:"not null" json:"mon"`
	FiscMon int       `gorm:"not null" json:"fiscMon"`
	TtlEarn float64   `gorm:"not null;default:0" json:"ttlEarn"`
	DayWght float64   `gorm:"not null;default:1" json:"dayWght"`
}

func (RefDay) TableName() string {
	return "ref_days"
}
