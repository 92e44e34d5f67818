package repository

import (
	"SommPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssociateDailyRevenue 某日某销售的营收汇总
type AssociateDailyRevenue struct {
	WorkDate       string  `gorm:"column:work_date"`
	SalesAssociate string  `gorm:"column:sales_associate"`
	TotalRevenue   float64 `gorm:"column:total_revenue"`
	OrderCount     int     `gorm:"column:order_count"`
}

// AssociateWorkDay 销售出勤过的一个日历日（当日至少有一单）
type AssociateWorkDay struct {
	SalesAssociate string `gorm:"column:sales_associate"`
	WorkDate       string `gorm:"column:work_date"`
}

// DailyTotal 某日全店营收合计
type DailyTotal struct {
	OrderDate string  `gorm:"column:order_date"`
	Total     float64 `gorm:"column:total"`
}

type OrderRepo interface {
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	CreateBatch(ctx context.Context, orders []*model.Order) error
	GetDailyRevenue(ctx context.Context, start, end time.Time) ([]*AssociateDailyRevenue, error)
	GetWorkDays(ctx context.Context, until time.Time) ([]*AssociateWorkDay, error)
	GetDailyTotals(ctx context.Context, start, end time.Time) ([]*DailyTotal, error)
	GetAllAssociates(ctx context.Context) ([]string, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepoImpl{db: db}
}

func (s *orderRepoImpl) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_number = ?", orderNumber).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateBatch 批量插入一批订单，单批一个事务；冲突（并发重复）静默跳过
func (s *orderRepoImpl) CreateBatch(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&orders).Error
}

func (s *orderRepoImpl) GetDailyRevenue(ctx context.Context, start, end time.Time) ([]*AssociateDailyRevenue, error) {
	rows := make([]*AssociateDailyRevenue, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("DATE(order_paid_date) AS work_date, sales_associate, SUM(subtotal) AS total_revenue, COUNT(*) AS order_count").
		Where("sales_associate IS NOT NULL").
		Where("order_paid_date BETWEEN ? AND ?", start, end).
		Group("DATE(order_paid_date), sales_associate").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *orderRepoImpl) GetWorkDays(ctx context.Context, until time.Time) ([]*AssociateWorkDay, error) {
	rows := make([]*AssociateWorkDay, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("DISTINCT sales_associate, DATE(order_paid_date) AS work_date").
		Where("sales_associate IS NOT NULL").
		Where("order_paid_date <= ?", until).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *orderRepoImpl) GetDailyTotals(ctx context.Context, start, end time.Time) ([]*DailyTotal, error) {
	rows := make([]*DailyTotal, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("DATE(order_paid_date) AS order_date, SUM(subtotal) AS total").
		Where("order_paid_date BETWEEN ? AND ?", start, end).
		Group("DATE(order_paid_date)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *orderRepoImpl) GetAllAssociates(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Distinct("sales_associate").
		Where("sales_associate IS NOT NULL").
		Order("sales_associate").
		Pluck("sales_associate", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
