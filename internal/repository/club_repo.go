package repository

import (
	"SommPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssociateDailySignups 某日某销售的会员注册数
type AssociateDailySignups struct {
	SignupDate     string `gorm:"column:signup_date"`
	SalesAssociate string `gorm:"column:sales_associate"`
	TotalSignups   int    `gorm:"column:total_signups"`
}

type ClubRepo interface {
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	CreateBatch(ctx context.Context, signups []*model.ClubSignup) error
	GetDailySignupCounts(ctx context.Context, start, end time.Time) ([]*AssociateDailySignups, error)
	GetAllAssociates(ctx context.Context) ([]string, error)
}

type clubRepoImpl struct {
	db *gorm.DB
}

func NewClubRepo(db *gorm.DB) ClubRepo {
	return &clubRepoImpl{db: db}
}

func (s *clubRepoImpl) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ClubSignup{}).
		Where("external_id = ?", externalID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *clubRepoImpl) CreateBatch(ctx context.Context, signups []*model.ClubSignup) error {
	if len(signups) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&signups).Error
}

func (s *clubRepoImpl) GetDailySignupCounts(ctx context.Context, start, end time.Time) ([]*AssociateDailySignups, error) {
	rows := make([]*AssociateDailySignups, 0)
	err := s.db.WithContext(ctx).
		Model(&model.ClubSignup{}).
		Select("DATE(signup_date) AS signup_date, sales_associate, COUNT(*) AS total_signups").
		Where("signup_date BETWEEN ? AND ?", start, end).
		Group("DATE(signup_date), sales_associate").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *clubRepoImpl) GetAllAssociates(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := s.db.WithContext(ctx).
		Model(&model.ClubSignup{}).
		Distinct("sales_associate").
		Order("sales_associate").
		Pluck("sales_associate", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
