package util_test

import (
	"SommPulse/internal/pkg/util"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("解析日历日期", t, func() {
		d, err := util.ParseDate("2024-03-04")
		So(err, ShouldBeNil)
		So(d.Year(), ShouldEqual, 2024)
		So(d.Month(), ShouldEqual, time.March)
		So(d.Day(), ShouldEqual, 4)
		So(d.Location(), ShouldEqual, time.UTC)

		Convey("非法输入返回错误", func() {
			_, err = util.ParseDate("2024/03/04")
			So(err, ShouldNotBeNil)
			_, err = util.ParseDate("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseFeedDate(t *testing.T) {
	Convey("外部时间戳截断为日历日期", t, func() {
		d, err := util.ParseFeedDate("2024-03-04T15:04:05Z")
		So(err, ShouldBeNil)
		So(util.FormatDate(d), ShouldEqual, "2024-03-04")

		d, err = util.ParseFeedDate("2024-03-04 15:04:05")
		So(err, ShouldBeNil)
		So(util.FormatDate(d), ShouldEqual, "2024-03-04")

		d, err = util.ParseFeedDate("2024-03-04")
		So(err, ShouldBeNil)
		So(util.FormatDate(d), ShouldEqual, "2024-03-04")

		_, err = util.ParseFeedDate("not-a-date")
		So(err, ShouldNotBeNil)
	})
}

func TestDowCode(t *testing.T) {
	Convey("星期编码 1=周日 7=周六", t, func() {
		sunday, _ := util.ParseDate("2024-03-03")
		monday, _ := util.ParseDate("2024-03-04")
		saturday, _ := util.ParseDate("2024-03-09")

		So(util.DowCode(sunday), ShouldEqual, 1)
		So(util.DowCode(monday), ShouldEqual, 2)
		So(util.DowCode(saturday), ShouldEqual, 7)
	})
}

func TestDayWeight(t *testing.T) {
	Convey("周五六日权重 1.0，周一到周四 1.5", t, func() {
		friday, _ := util.ParseDate("2024-03-08")
		saturday, _ := util.ParseDate("2024-03-09")
		sunday, _ := util.ParseDate("2024-03-10")
		monday, _ := util.ParseDate("2024-03-04")
		thursday, _ := util.ParseDate("2024-03-07")

		So(util.DayWeight(friday), ShouldEqual, 1.0)
		So(util.DayWeight(saturday), ShouldEqual, 1.0)
		So(util.DayWeight(sunday), ShouldEqual, 1.0)
		So(util.DayWeight(monday), ShouldEqual, 1.5)
		So(util.DayWeight(thursday), ShouldEqual, 1.5)
	})
}

func TestEachDay(t *testing.T) {
	Convey("闭区间逐日遍历", t, func() {
		start, _ := util.ParseDate("2024-02-27")
		end, _ := util.ParseDate("2024-03-02")

		var dates []string
		util.EachDay(start, end, func(d time.Time) {
			dates = append(dates, util.FormatDate(d))
		})

		So(dates, ShouldResemble, []string{
			"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02",
		})

		Convey("单日区间包含自身", func() {
			count := 0
			util.EachDay(start, start, func(time.Time) { count++ })
			So(count, ShouldEqual, 1)
		})
	})
}

func TestAdjacentMonths(t *testing.T) {
	Convey("相邻月份在年末回绕", t, func() {
		prev, next := util.AdjacentMonths(1)
		So(prev, ShouldEqual, 12)
		So(next, ShouldEqual, 2)

		prev, next = util.AdjacentMonths(12)
		So(prev, ShouldEqual, 11)
		So(next, ShouldEqual, 1)

		prev, next = util.AdjacentMonths(6)
		So(prev, ShouldEqual, 5)
		So(next, ShouldEqual, 7)
	})
}

func TestFiscalMonth(t *testing.T) {
	Convey("财年月份从起始月起算", t, func() {
		So(util.FiscalMonth(7, 7), ShouldEqual, 1)
		So(util.FiscalMonth(6, 7), ShouldEqual, 12)
		So(util.FiscalMonth(1, 7), ShouldEqual, 7)
		So(util.FiscalMonth(3, 1), ShouldEqual, 3)
	})
}
