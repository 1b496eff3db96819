package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/okian/roasboard/internal/adapters/export"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/pipeline"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func summary() []model.InfluencerSummary {
	return pipeline.Build(model.Dataset{
		Influencers: []model.Influencer{
			{InfluencerID: "1", Name: "Asha", Platform: "Instagram", Category: "Fitness"},
			{InfluencerID: "2", Name: "Bilal, Jr.", Platform: "YouTube", Category: "Nutrition"},
		},
		Payouts: []model.PayoutRecord{{InfluencerID: "1", TotalPayout: dec("100")}},
		Tracking: []model.TrackingEvent{
			{InfluencerID: "1", Orders: 3, Revenue: dec("300")},
			{InfluencerID: "1", Orders: 2, Revenue: dec("200")},
			{InfluencerID: "2", Orders: 1, Revenue: dec("50.5")},
		},
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given a summary view", t, func() {
		rows := summary()

		Convey("When exporting", func() {
			var buf bytes.Buffer
			err := export.WriteCSV(&buf, rows)
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

			Convey("Then the header lists the visible columns", func() {
				So(err, ShouldBeNil)
				So(lines[0], ShouldEqual, "name,platform,category,revenue,total_payout,ROAS")
			})

			Convey("And each row follows in view order", func() {
				So(len(lines), ShouldEqual, 3)
				So(lines[1], ShouldEqual, "Asha,Instagram,Fitness,500,100,5")
			})

			Convey("And missing payout and undefined ROAS are empty cells", func() {
				So(lines[2], ShouldEqual, `"Bilal, Jr.",YouTube,Nutrition,50.5,,`)
			})
		})

		Convey("When exporting the same view twice", func() {
			first, err1 := export.Bytes(rows)
			second, err2 := export.Bytes(summary())

			Convey("Then the output is byte-identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(bytes.Equal(first, second), ShouldBeTrue)
			})
		})

		Convey("When the view is empty", func() {
			out, err := export.Bytes(nil)

			Convey("Then only the header is written", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldEqual, "name,platform,category,revenue,total_payout,ROAS\n")
			})
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given a fractional ROAS", t, func() {
		p := dec("3")
		in := []model.InfluencerSummary{{Name: "X", Revenue: dec("10"), TotalPayout: &p, ROAS: 10.0 / 3, ROASDefined: true}}

		Convey("Then the shortest exact float form is used", func() {
			So(export.Rows(in)[0].ROAS, ShouldEqual, "3.3333333333333335")
		})
	})
}
