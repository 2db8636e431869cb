package standings_test

import (
	"testing"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOrdinal(t *testing.T) {
	Convey("Given positions across the suffix rules", t, func() {
		cases := map[int]string{
			1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 10: "10th",
			11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd",
			101: "101st", 111: "111th", 112: "112th",
		}
		Convey("Then each should render its English ordinal", func() {
			for n, want := range cases {
				So(standings.Ordinal(n), ShouldEqual, want)
			}
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given three summaries", t, func() {
		rows := standings.Rank([]model.Summary{{ID: "a"}, {ID: "b"}, {ID: "c"}})

		Convey("Then positions should follow snapshot order", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Position, ShouldEqual, 1)
			So(rows[2].Ordinal, ShouldEqual, "3rd")
			So(rows[1].Entrant.ID, ShouldEqual, "b")
		})
	})
}

func TestNewResult(t *testing.T) {
	Convey("Given an entrant with five drivers and a team", t, func() {
		e := model.Entrant{ID: "101", Picks: model.Picks{
			Team: &model.Pick{Name: "Mercedes", Score: 20, Price: 30.2, Picked: 40},
			Drivers: []model.Pick{
				{Name: "A", Score: 10, Price: 10, Picked: 10},
				{Name: "B", Score: 10.25, Price: 10, Picked: 20},
				{Name: "C", Score: 5, Price: 10, Picked: 30},
				{Name: "D", Score: 5, Price: 10, Picked: 50},
				{Name: "E", Score: 0, Price: 9.9, Picked: 5},
			},
		}}

		r := standings.NewResult(e)

		Convey("Then the team should follow the drivers", func() {
			So(len(r.Picks), ShouldEqual, 6)
			So(r.Picks[5].Name, ShouldEqual, "Mercedes")
		})

		Convey("Then totals should be rounded to one decimal", func() {
			So(r.Totals.Points, ShouldEqual, 50.3)
			So(r.Totals.Price, ShouldEqual, 80.1)
			So(r.Totals.AveragePicked, ShouldEqual, 25.8)
		})
	})

	Convey("Given an entrant with a partial team", t, func() {
		e := model.Entrant{ID: "102", Picks: model.Picks{
			Team:    &model.Pick{Name: "Williams", Score: 4, Price: 6, Picked: 30},
			Drivers: []model.Pick{{Name: "A", Score: 8, Price: 7, Picked: 30}},
		}}

		r := standings.NewResult(e)

		Convey("Then the average should still be taken over a full team", func() {
			So(len(r.Picks), ShouldEqual, 2)
			So(r.Totals.AveragePicked, ShouldEqual, 10.0)
		})
	})

	Convey("Given an entrant with no picks", t, func() {
		r := standings.NewResult(model.Entrant{ID: "x", Status: model.StatusNoPicks})

		Convey("Then totals should be zero", func() {
			So(len(r.Picks), ShouldEqual, 0)
			So(r.Totals, ShouldResemble, standings.Totals{})
		})
	})
}
