package model_test

import (
	"sort"
	"testing"

	model "github.com/okian/roasboard/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/smartystreets/goconvey/convey"
)

func TestInfluencerSummary(t *testing.T) {
	convey.Convey("Given an InfluencerSummary", t, func() {
		convey.Convey("When the payout record is missing", func() {
			s := model.InfluencerSummary{InfluencerID: "7", Revenue: decimal.NewFromInt(50)}

			convey.Convey("Then the payout reads as zero but is reported absent", func() {
				convey.So(s.HasPayout(), convey.ShouldBeFalse)
				convey.So(s.PayoutOrZero().IsZero(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the payout record is present", func() {
			p := decimal.RequireFromString("120.50")
			s := model.InfluencerSummary{InfluencerID: "7", TotalPayout: &p}

			convey.Convey("Then the joined amount is returned", func() {
				convey.So(s.HasPayout(), convey.ShouldBeTrue)
				convey.So(s.PayoutOrZero().String(), convey.ShouldEqual, "120.5")
			})
		})

		convey.Convey("When the payout record is present but zero", func() {
			s := model.InfluencerSummary{InfluencerID: "7", TotalPayout: &decimal.Zero}

			convey.Convey("Then it is still a joined payout", func() {
				convey.So(s.HasPayout(), convey.ShouldBeTrue)
				convey.So(s.PayoutOrZero().IsZero(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestCompareIDs(t *testing.T) {
	convey.Convey("Given influencer ids", t, func() {
		convey.Convey("When both are integers", func() {
			convey.Convey("Then they compare numerically", func() {
				convey.So(model.CompareIDs("2", "10"), convey.ShouldEqual, -1)
				convey.So(model.CompareIDs("10", "2"), convey.ShouldEqual, 1)
				convey.So(model.CompareIDs("10", "10"), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When ids are mixed", func() {
			ids := []string{"INF-b", "12", "INF-a", "3"}
			sort.Slice(ids, func(i, j int) bool { return model.CompareIDs(ids[i], ids[j]) < 0 })

			convey.Convey("Then integers come first, then text in lexical order", func() {
				convey.So(ids, convey.ShouldResemble, []string{"3", "12", "INF-a", "INF-b"})
			})
		})
	})
}
