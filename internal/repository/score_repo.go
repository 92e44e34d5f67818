package repository

import (
	"SommPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// ScoreSummary 每个销售在区间内的得分统计
type ScoreSummary struct {
	SalesAssociate string  `gorm:"column:sales_associate" json:"salesAssociate"`
	DaysCounted    int     `gorm:"column:days_counted" json:"daysCounted"`
	AverageScore   float64 `gorm:"column:average_score" json:"averageScore"`
	MinScore       float64 `gorm:"column:min_score" json:"minScore"`
	MaxScore       float64 `gorm:"column:max_score" json:"maxScore"`
}

type ScoreRepo interface {
	ReplaceForDates(ctx context.Context, dates []time.Time, rows []*model.SommScore) error
	GetByDateRange(ctx context.Context, start, end time.Time, associates []string) ([]*model.SommScore, error)
	GetSummary(ctx context.Context, start, end time.Time, associates []string) ([]*ScoreSummary, error)
}

type scoreRepoImpl struct {
	db *gorm.DB
}

func NewScoreRepo(db *gorm.DB) ScoreRepo {
	return &scoreRepoImpl{db: db}
}

// ReplaceForDates 只删除本次实际触达的日期，然后整批重插，同一事务内完成
func (s *scoreRepoImpl) ReplaceForDates(ctx context.Context, dates []time.Time, rows []*model.SommScore) error {
	if len(dates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("score_date IN ?", dates).Delete(&model.SommScore{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
}

func (s *scoreRepoImpl) GetByDateRange(ctx context.Context, start, end time.Time, associates []string) ([]*model.SommScore, error) {
	rows := make([]*model.SommScore, 0)
	query := s.db.WithContext(ctx).
		Where("score_date BETWEEN ? AND ?", start, end)
	if len(associates) > 0 {
		query = query.Where("sales_associate IN ?", associates)
	}
	err := query.Order("score_date, sales_associate").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *scoreRepoImpl) GetSummary(ctx context.Context, start, end time.Time, associates []string) ([]*ScoreSummary, error) {
	rows := make([]*ScoreSummary, 0)
	query := s.db.WithContext(ctx).
		Model(&model.SommScore{}).
		Select("sales_associate, COUNT(*) AS days_counted, AVG(daily_score) AS average_score, MIN(daily_score) AS min_score, MAX(daily_score) AS max_score").
		Where("score_date BETWEEN ? AND ?", start, end)
	if len(associates) > 0 {
		query = query.Where("sales_associate IN ?", associates)
	}
	err := query.Group("sales_associate").Order("average_score DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
