package logger_test

import (
	"context"
	"testing"

	"github.com/vintry/tastingd/pkg/logger"

	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("Given an initialized global logger", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()

		convey.Convey("Get returns a usable logger", func() {
			l := logger.Get()
			convey.So(l, convey.ShouldNotBeNil)
			convey.So(func() {
				l.Info(ctx, "hello", logger.String("k", "v"), logger.Int("n", 1))
				l.Warn(ctx, "careful", logger.Float64("f", 1.5))
				l.Debug(ctx, "details", logger.Any("v", struct{}{}))
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Named returns a scoped logger", func() {
			convey.So(logger.Named("shopify"), convey.ShouldNotBeNil)
		})

		convey.Convey("SetLevelString accepts known levels", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
				convey.So(logger.SetLevelString(lvl), convey.ShouldBeNil)
			}
		})

		convey.Convey("SetLevelString rejects unknown levels", func() {
			convey.So(logger.SetLevelString("shout"), convey.ShouldNotBeNil)
		})

		convey.Convey("Sync never fails", func() {
			convey.So(logger.Sync(), convey.ShouldBeNil)
		})
	})
}
