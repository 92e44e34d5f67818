package repository

import (
	"SommPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type RefRepo interface {
	ReplaceWindow(ctx context.Context, start, end time.Time, rows []*model.RefDay) error
	GetWindow(ctx context.Context, start, end time.Time) ([]*model.RefDay, error)
}

type refRepoImpl struct {
	db *gorm.DB
}

func NewRefRepo(db *gorm.DB) RefRepo {
	return &refRepoImpl{db: db}
}

// ReplaceWindow 在一个事务内删除窗口内所有行并重插，避免出现半空窗口
func (s *refRepoImpl) ReplaceWindow(ctx context.Context, start, end time.Time, rows []*model.RefDay) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date BETWEEN ? AND ?", start, end).Delete(&model.RefDay{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
}

func (s *refRepoImpl) GetWindow(ctx context.Context, start, end time.Time) ([]*model.RefDay, error) {
	rows := make([]*model.RefDay, 0)
	err := s.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
