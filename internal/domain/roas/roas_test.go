package roas_test

import (
	"testing"

	"github.com/okian/roasboard/internal/domain/roas"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestRatio(t *testing.T) {
	Convey("Given revenue and payout amounts", t, func() {
		Convey("When the payout is positive", func() {
			v, ok := roas.Ratio(dec("500"), ptr(dec("100")))

			Convey("Then the ratio is revenue over payout", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 5.0)
			})
		})

		Convey("When the ratio is fractional", func() {
			v, ok := roas.Ratio(dec("50"), ptr(dec("200")))

			Convey("Then it is returned as a float", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0.25)
			})
		})

		Convey("When the payout is missing", func() {
			v, ok := roas.Ratio(dec("50"), nil)

			Convey("Then the ratio is undefined and carries the sentinel", func() {
				So(ok, ShouldBeFalse)
				So(v, ShouldEqual, roas.Sentinel)
			})
		})

		Convey("When the payout is zero", func() {
			So(func() { roas.Ratio(dec("50"), ptr(decimal.Zero)) }, ShouldNotPanic)
			v, ok := roas.Ratio(dec("50"), ptr(decimal.Zero))

			Convey("Then the ratio is undefined instead of infinite", func() {
				So(ok, ShouldBeFalse)
				So(v, ShouldEqual, roas.Sentinel)
			})
		})

		Convey("When revenue is zero and payout positive", func() {
			v, ok := roas.Ratio(decimal.Zero, ptr(dec("10")))

			Convey("Then the ratio is a defined zero", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0.0)
			})
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given totals over a filtered set", t, func() {
		Convey("When total payout is nonzero", func() {
			So(roas.Overall(dec("1500"), dec("600")), ShouldEqual, 2.5)
		})

		Convey("When total payout is zero", func() {
			So(roas.Overall(dec("1500"), decimal.Zero), ShouldEqual, 0.0)
		})
	})
}
