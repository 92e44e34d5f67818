package repository

import (
	"SommPulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
	SeedDefaults(ctx context.Context, defaults map[string]string) error
}

type settingRepoImpl struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepo {
	return &settingRepoImpl{db: db}
}

func (s *settingRepoImpl) Get(ctx context.Context, key string) (string, bool, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

func (s *settingRepoImpl) GetAll(ctx context.Context) (map[string]string, error) {
	rows := make([]*model.Setting, 0)
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Value
	}
	return result, nil
}

func (s *settingRepoImpl) Upsert(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}

// SeedDefaults 初始化默认设置，已存在的键保持不变
func (s *settingRepoImpl) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Setting{Key: key, Value: value}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
