package service_test

import (
	"SommPulse/internal/model"
	"SommPulse/internal/pkg/util"
	"SommPulse/internal/repository"
	"SommPulse/internal/service"
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeTotalsOrderRepo struct {
	repository.OrderRepo
	totals []*repository.DailyTotal
}

func (f *fakeTotalsOrderRepo) GetDailyTotals(ctx context.Context, start, end time.Time) ([]*repository.DailyTotal, error) {
	return f.totals, nil
}

type fakeRefRepo struct {
	repository.RefRepo
	rows []*model.RefDay
}

func (f *fakeRefRepo) ReplaceWindow(ctx context.Context, start, end time.Time, rows []*model.RefDay) error {
	f.rows = rows
	return nil
}

type fakeBaselineSettings struct {
	service.SettingsService
	values map[string]string
}

func (f *fakeBaselineSettings) Get(ctx context.Context, key string) (string, error) {
	if value, ok := f.values[key]; ok {
		return value, nil
	}
	return "", service.ErrSettingNotFound
}

func refOf(rows []*model.RefDay, date string) *model.RefDay {
	for _, row := range rows {
		if util.FormatDate(row.Date) == date {
			return row
		}
	}
	return nil
}

func buildBaseline(totals []*repository.DailyTotal, start, end string) (*fakeRefRepo, error) {
	refRepo := &fakeRefRepo{}
	svc := service.NewBaselineService(
		&fakeTotalsOrderRepo{totals: totals},
		refRepo,
		&fakeBaselineSettings{},
	)
	s, _ := util.ParseDate(start)
	e, _ := util.ParseDate(end)
	return refRepo, svc.BuildBaseline(context.Background(), s, e)
}

func TestBuildBaseline(t *testing.T) {
	Convey("同单元样本足够时取自身均值", t, func() {
		// 2024-01-08 和 2024-01-15 都是周一
		refRepo, err := buildBaseline([]*repository.DailyTotal{
			{OrderDate: "2024-01-08", Total: 100},
			{OrderDate: "2024-01-15", Total: 200},
		}, "2024-01-01", "2024-01-31")

		So(err, ShouldBeNil)
		So(refRepo.rows, ShouldHaveLength, 31)

		// 一月所有周一共享同一平滑值，包括没有样本的周一
		for _, date := range []string{"2024-01-01", "2024-01-08", "2024-01-22"} {
			row := refOf(refRepo.rows, date)
			So(row, ShouldNotBeNil)
			So(row.TtlEarn, ShouldEqual, 150)
			So(row.Dow, ShouldEqual, 2)
			So(row.DayWght, ShouldEqual, 1.5)
		}

		// 没有任何正样本的星期回退为 0
		So(refOf(refRepo.rows, "2024-01-02").TtlEarn, ShouldEqual, 0)
	})

	Convey("样本不足的单元回退到相邻月份均值", t, func() {
		// 一月只有一个周一样本，二月有两个
		refRepo, err := buildBaseline([]*repository.DailyTotal{
			{OrderDate: "2024-01-29", Total: 100},
			{OrderDate: "2024-02-05", Total: 300},
			{OrderDate: "2024-02-12", Total: 500},
		}, "2024-01-29", "2024-02-12")

		So(err, ShouldBeNil)
		// (一月, 周一) 只有 1 个样本，取二月周一均值而非自身值
		So(refOf(refRepo.rows, "2024-01-29").TtlEarn, ShouldEqual, 400)
		So(refOf(refRepo.rows, "2024-02-05").TtlEarn, ShouldEqual, 400)
	})

	Convey("相邻月份也缺数据时回退到全局星期均值", t, func() {
		// 周二样本只出现在四月，一月的周二取全局周二均值
		refRepo, err := buildBaseline([]*repository.DailyTotal{
			{OrderDate: "2024-04-02", Total: 90},
			{OrderDate: "2024-04-09", Total: 110},
		}, "2024-01-01", "2024-04-30")

		So(err, ShouldBeNil)
		So(refOf(refRepo.rows, "2024-01-02").TtlEarn, ShouldEqual, 100)
		So(refOf(refRepo.rows, "2024-04-02").TtlEarn, ShouldEqual, 100)
		// 周三没有任何样本
		So(refOf(refRepo.rows, "2024-01-03").TtlEarn, ShouldEqual, 0)
	})

	Convey("没有任何订单数据时整窗为 0", t, func() {
		refRepo, err := buildBaseline(nil, "2024-03-04", "2024-03-10")

		So(err, ShouldBeNil)
		So(refRepo.rows, ShouldHaveLength, 7)
		for _, row := range refRepo.rows {
			So(row.TtlEarn, ShouldEqual, 0)
		}
	})

	Convey("起始晚于结束返回参数错误", t, func() {
		_, err := buildBaseline(nil, "2024-03-10", "2024-03-04")
		So(err, ShouldEqual, service.ErrInvalidDateRange)
	})
}
