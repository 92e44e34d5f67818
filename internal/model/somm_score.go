package model

import "time"

// SommScore 每人每天一条归一化得分，重算时整天删除后重插
type SommScore struct {
	ID             uint64    `gorm:"primaryKey"`
	ScoreDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_score_date_assoc" json:"scoreDate"`
	SalesAssociate string    `gorm:"size:128;not null;uniqueIndex:idx_score_date_assoc" json:"salesAssociate"`
	DailyScore     float64   `gorm:"not null" json:"dailyScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (SommScore) TableName() string {
	return "somm_scores"
}
