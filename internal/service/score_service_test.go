package service_test

import (
	"SommPulse/internal/model"
	"SommPulse/internal/repository"
	"SommPulse/internal/service"
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeOrderRepo struct {
	repository.OrderRepo
	revenue  []*repository.AssociateDailyRevenue
	workDays []*repository.AssociateWorkDay
}

func (f *fakeOrderRepo) GetDailyRevenue(ctx context.Context, start, end time.Time) ([]*repository.AssociateDailyRevenue, error) {
	return f.revenue, nil
}

func (f *fakeOrderRepo) GetWorkDays(ctx context.Context, until time.Time) ([]*repository.AssociateWorkDay, error) {
	return f.workDays, nil
}

type fakeClubRepo struct {
	repository.ClubRepo
	signups []*repository.AssociateDailySignups
}

func (f *fakeClubRepo) GetDailySignupCounts(ctx context.Context, start, end time.Time) ([]*repository.AssociateDailySignups, error) {
	return f.signups, nil
}

type fakeScoreRepo struct {
	repository.ScoreRepo
	replaceCalls int
	lastDates    []time.Time
	lastRows     []*model.SommScore
}

func (f *fakeScoreRepo) ReplaceForDates(ctx context.Context, dates []time.Time, rows []*model.SommScore) error {
	f.replaceCalls++
	f.lastDates = dates
	f.lastRows = rows
	return nil
}

type fakeSettings struct {
	service.SettingsService
	active []string
}

func (f *fakeSettings) ActiveAssociates(ctx context.Context) ([]string, error) {
	return f.active, nil
}

func scoreOf(rows []*model.SommScore, associate string) (float64, bool) {
	for _, row := range rows {
		if row.SalesAssociate == associate {
			return row.DailyScore, true
		}
	}
	return 0, false
}

func TestRecompute(t *testing.T) {
	ctx := context.Background()
	// 2024-03-04 是周一，权重 1.5
	start, _ := time.Parse(time.DateOnly, "2024-03-04")
	end := start

	Convey("两人同日归一化到 0 和 100", t, func() {
		orderRepo := &fakeOrderRepo{
			revenue: []*repository.AssociateDailyRevenue{
				{WorkDate: "2024-03-04", SalesAssociate: "A", TotalRevenue: 100},
				{WorkDate: "2024-03-04", SalesAssociate: "B", TotalRevenue: 300},
			},
		}
		scoreRepo := &fakeScoreRepo{}
		svc := service.NewScoreService(orderRepo, &fakeClubRepo{}, scoreRepo, &fakeSettings{active: []string{"A", "B"}})

		err := svc.Recompute(ctx, start, end)
		So(err, ShouldBeNil)
		So(scoreRepo.replaceCalls, ShouldEqual, 1)
		So(scoreRepo.lastDates, ShouldHaveLength, 1)
		So(scoreRepo.lastRows, ShouldHaveLength, 2)

		scoreA, _ := scoreOf(scoreRepo.lastRows, "A")
		scoreB, _ := scoreOf(scoreRepo.lastRows, "B")
		So(scoreA, ShouldEqual, 0)
		So(scoreB, ShouldEqual, 100)

		Convey("相同数据上重算结果完全一致", func() {
			firstRows := scoreRepo.lastRows
			err = svc.Recompute(ctx, start, end)
			So(err, ShouldBeNil)
			So(scoreRepo.replaceCalls, ShouldEqual, 2)
			So(scoreRepo.lastRows, ShouldResemble, firstRows)
		})
	})

	Convey("单人阵容得 50 分", t, func() {
		orderRepo := &fakeOrderRepo{
			revenue: []*repository.AssociateDailyRevenue{
				{WorkDate: "2024-03-04", SalesAssociate: "A", TotalRevenue: 800},
			},
		}
		scoreRepo := &fakeScoreRepo{}
		svc := service.NewScoreService(orderRepo, &fakeClubRepo{}, scoreRepo, &fakeSettings{active: []string{"A"}})

		So(svc.Recompute(ctx, start, end), ShouldBeNil)
		So(scoreRepo.lastRows, ShouldHaveLength, 1)
		So(scoreRepo.lastRows[0].DailyScore, ShouldEqual, 50.0)
	})

	Convey("当日只有非在册销售出单则不触达任何日期", t, func() {
		orderRepo := &fakeOrderRepo{
			revenue: []*repository.AssociateDailyRevenue{
				{WorkDate: "2024-03-04", SalesAssociate: "Ghost", TotalRevenue: 500},
			},
		}
		scoreRepo := &fakeScoreRepo{}
		svc := service.NewScoreService(orderRepo, &fakeClubRepo{}, scoreRepo, &fakeSettings{active: []string{"A"}})

		So(svc.Recompute(ctx, start, end), ShouldBeNil)
		So(scoreRepo.replaceCalls, ShouldEqual, 0)
	})

	Convey("注册奖励抬升同营收的销售", t, func() {
		orderRepo := &fakeOrderRepo{
			revenue: []*repository.AssociateDailyRevenue{
				{WorkDate: "2024-03-04", SalesAssociate: "A", TotalRevenue: 200},
				{WorkDate: "2024-03-04", SalesAssociate: "B", TotalRevenue: 200},
			},
		}
		clubRepo := &fakeClubRepo{
			signups: []*repository.AssociateDailySignups{
				{SignupDate: "2024-03-04", SalesAssociate: "A", TotalSignups: 2},
			},
		}
		scoreRepo := &fakeScoreRepo{}
		svc := service.NewScoreService(orderRepo, clubRepo, scoreRepo, &fakeSettings{active: []string{"A", "B"}})

		So(svc.Recompute(ctx, start, end), ShouldBeNil)
		scoreA, _ := scoreOf(scoreRepo.lastRows, "A")
		scoreB, _ := scoreOf(scoreRepo.lastRows, "B")
		So(scoreA, ShouldEqual, 100)
		So(scoreB, ShouldEqual, 0)
	})

	Convey("起始晚于结束返回参数错误", t, func() {
		svc := service.NewScoreService(&fakeOrderRepo{}, &fakeClubRepo{}, &fakeScoreRepo{}, &fakeSettings{})
		err := svc.Recompute(ctx, end.AddDate(0, 0, 1), end)
		So(err, ShouldEqual, service.ErrInvalidDateRange)
	})
}

func TestCalculateExperienceBonus(t *testing.T) {
	Convey("资历加成线性爬坡一年封顶 20%", t, func() {
		So(service.CalculateExperienceBonus(0), ShouldEqual, 0)
		So(service.CalculateExperienceBonus(-3), ShouldEqual, 0)
		So(service.CalculateExperienceBonus(365), ShouldEqual, 0.20)
		So(service.CalculateExperienceBonus(730), ShouldEqual, 0.20)
		So(service.CalculateExperienceBonus(73), ShouldAlmostEqual, 0.04, 1e-9)
	})
}
