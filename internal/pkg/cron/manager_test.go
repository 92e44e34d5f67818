package cron_test

import (
	"SommPulse/internal/pkg/cron"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type noopJob struct{}

func (noopJob) Run() {}

func TestNewCronManager(t *testing.T) {
	Convey("HH:MM 时间校验", t, func() {
		_, err := cron.NewCronManager(noopJob{}, "03:30")
		So(err, ShouldBeNil)

		for _, at := range []string{"0330", "25:00", "03:61", "a:b", ""} {
			_, err = cron.NewCronManager(noopJob{}, at)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestRebuild(t *testing.T) {
	Convey("重建不会累积重复任务", t, func() {
		mgr, err := cron.NewCronManager(noopJob{}, "04:00")
		So(err, ShouldBeNil)
		defer mgr.Stop()

		So(mgr.EntryCount(), ShouldEqual, 0)

		So(mgr.Rebuild("UTC"), ShouldBeNil)
		So(mgr.EntryCount(), ShouldEqual, 1)

		So(mgr.Rebuild("America/Los_Angeles"), ShouldBeNil)
		So(mgr.EntryCount(), ShouldEqual, 1)

		Convey("非法时区回退 UTC 而不是失败", func() {
			So(mgr.Rebuild("Not/AZone"), ShouldBeNil)
			So(mgr.EntryCount(), ShouldEqual, 1)
		})
	})
}
