package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/types"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRow(t *testing.T) {
	Convey("Given summary rows", t, func() {
		payout := decimal.RequireFromString("100")
		paid := model.InfluencerSummary{
			InfluencerID: "1", Name: "Asha", Platform: "Instagram", Category: "Fitness",
			Orders: 5, Revenue: decimal.RequireFromString("500"), TotalPayout: &payout,
			ROAS: 5, ROASDefined: true,
		}
		unpaid := model.InfluencerSummary{InfluencerID: "2", Name: "Bilal", Revenue: decimal.RequireFromString("50")}

		Convey("When the ROAS is defined", func() {
			r := types.NewRow(paid)

			Convey("Then it is carried as a value", func() {
				So(r.ROAS, ShouldNotBeNil)
				So(*r.ROAS, ShouldEqual, 5.0)
				So(r.TotalPayout.Equal(payout), ShouldBeTrue)
			})
		})

		Convey("When the payout is missing", func() {
			b, err := json.Marshal(types.NewRow(unpaid))

			Convey("Then payout and ROAS encode as null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"total_payout":null`)
				So(string(b), ShouldContainSubstring, `"roas":null`)
			})
		})

		Convey("When converting an empty slice", func() {
			b, err := json.Marshal(types.View{Rows: types.NewRows(nil)})

			Convey("Then rows encode as an empty array", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"rows":[]`)
			})
		})

		Convey("When ranking", func() {
			entries := types.NewEntries([]model.InfluencerSummary{paid, paid})

			Convey("Then ranks start at one", func() {
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When building spread points", func() {
			points := types.NewPoints([]model.InfluencerSummary{unpaid, paid})
			So(points[0].TotalPayout, ShouldBeNil)
			So(points[1].Revenue.String(), ShouldEqual, "500")
		})
	})
}

func TestNewOptions(t *testing.T) {
	Convey("Given distinct filter choices", t, func() {
		opts := types.NewOptions(filter.Options{Platforms: []string{"Instagram"}, Categories: nil})

		Convey("Then 'All' leads both lists", func() {
			So(opts.Platforms, ShouldResemble, []string{filter.All, "Instagram"})
			So(opts.Categories, ShouldResemble, []string{filter.All})
		})
	})
}
