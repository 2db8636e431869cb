package progress_test

import (
	"context"
	"testing"

	"github.com/okian/pitwall/internal/adapters/progress"
	"github.com/okian/pitwall/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestBoard(t *testing.T) {
	Convey("Given a status board", t, func() {
		board := progress.NewBoard()
		ctx := context.Background()

		Convey("When two leagues report progress", func() {
			board.Reporter("guild-1").SetStatus(ctx, "Updating: Alice")
			board.Reporter("guild-1").SetStatus(ctx, "Updating: Bob")
			board.Reporter("guild-2").SetStatus(ctx, "Updating: Carol")

			Convey("Then each key should hold its latest text", func() {
				s, ok := board.Get("guild-1")
				So(ok, ShouldBeTrue)
				So(s.Text, ShouldEqual, "Updating: Bob")
				So(s.At.IsZero(), ShouldBeFalse)

				s, ok = board.Get("guild-2")
				So(ok, ShouldBeTrue)
				So(s.Text, ShouldEqual, "Updating: Carol")
			})
		})

		Convey("Then an unknown key should report nothing", func() {
			_, ok := board.Get("missing")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMulti(t *testing.T) {
	Convey("Given a fan-out over a board, a func and a logger", t, func() {
		board := progress.NewBoard()
		var seen []string
		r := progress.Multi(
			board.Reporter("k"),
			progress.ReporterFunc(func(_ context.Context, text string) { seen = append(seen, text) }),
			progress.LogReporter{},
			nil,
		)

		Convey("When a status is set", func() {
			r.SetStatus(context.Background(), "Updating: Alice")

			Convey("Then every reporter should receive it", func() {
				So(seen, ShouldResemble, []string{"Updating: Alice"})
				s, _ := board.Get("k")
				So(s.Text, ShouldEqual, "Updating: Alice")
			})
		})
	})
}
