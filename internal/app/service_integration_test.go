package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/roasboard/internal/adapters/source"
	service "github.com/okian/roasboard/internal/app"
	"github.com/okian/roasboard/internal/domain/filter"
	. "github.com/smartystreets/goconvey/convey"
)

func writeDataDir(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service reading a data directory on disk", t, func() {
		dir := t.TempDir()
		writeDataDir(t, dir, map[string]string{
			source.InfluencersFile: "ID,name,category,gender,follower_count,platform\n" +
				"1,Asha,Fitness,F,12000,Instagram\n" +
				"2,Bilal,Nutrition,M,8000,YouTube\n",
			source.PayoutsFile: "influencer_id,basis,rate,orders,total_payout\n" +
				"1,post,100,0,100\n",
			source.TrackingFile: "source,campaign,influencer_id,user_id,product,date,orders,revenue\n" +
				"instagram,summer,1,u1,MuscleBlaze,2025-06-01,3,300\n" +
				"instagram,summer,1,u2,MuscleBlaze,2025-06-02,2,200\n" +
				"youtube,summer,2,u3,HKVitals,2025-06-03,1,50\n",
		})

		svc := service.New(service.WithDataDir(dir))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})

		Convey("When querying end-to-end", func() {
			So(svc.Start(ctx), ShouldBeNil)
			view, err := svc.Query(ctx, filter.Criteria{Platform: filter.All, Category: filter.All})

			Convey("Then influencer A matches the worked example", func() {
				So(err, ShouldBeNil)
				So(len(view.Rows), ShouldEqual, 1)
				a := view.Rows[0]
				So(a.Orders, ShouldEqual, 5)
				So(a.Revenue.String(), ShouldEqual, "500")
				So(a.TotalPayout.String(), ShouldEqual, "100")
				So(a.ROAS, ShouldEqual, 5.0)
			})

			Convey("And the totals cover exactly the filtered rows", func() {
				So(view.Totals.TotalRevenue.String(), ShouldEqual, "500")
				So(view.Totals.TotalPayout.String(), ShouldEqual, "100")
			})
		})

		Convey("When exporting twice from the same files", func() {
			var first, second bytes.Buffer
			So(svc.Export(ctx, filter.Criteria{}, &first), ShouldBeNil)
			_, err := svc.Reload(ctx)
			So(err, ShouldBeNil)
			So(svc.Export(ctx, filter.Criteria{}, &second), ShouldBeNil)

			Convey("Then the exports are byte-identical", func() {
				So(first.String(), ShouldEqual, second.String())
			})
		})

		Convey("When the payout file gains a row for B", func() {
			So(svc.Start(ctx), ShouldBeNil)
			writeDataDir(t, dir, map[string]string{
				source.PayoutsFile: "influencer_id,basis,rate,orders,total_payout\n" +
					"1,post,100,0,100\n" +
					"2,post,25,0,25\n",
			})
			view, err := svc.Query(ctx, filter.Criteria{MinROAS: 1})

			Convey("Then the next query sees it without a reload", func() {
				So(err, ShouldBeNil)
				So(len(view.Rows), ShouldEqual, 2)
				So(view.Rows[1].ROAS, ShouldEqual, 2.0)
			})
		})

		Convey("When a file is removed", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(os.Remove(filepath.Join(dir, source.TrackingFile)), ShouldBeNil)
			_, err := svc.Query(ctx, filter.Criteria{})

			Convey("Then queries fail with the missing source", func() {
				So(source.Kind(err), ShouldEqual, "missing_source")
			})
		})
	})

	Convey("Given tracking data with a malformed row", t, func() {
		dir := t.TempDir()
		writeDataDir(t, dir, map[string]string{
			source.InfluencersFile: "ID,name,platform,category\n1,Asha,Instagram,Fitness\n",
			source.PayoutsFile:     "influencer_id,total_payout\n1,100\n",
			source.TrackingFile:    "influencer_id,orders,revenue\n1,3,300\n1,x,1\n",
		})
		ctx := context.Background()

		Convey("When rows are strict", func() {
			err := service.New(service.WithDataDir(dir)).Start(ctx)

			Convey("Then startup fails with invalid input", func() {
				So(source.Kind(err), ShouldEqual, "invalid_input")
			})
		})

		Convey("When rows are relaxed", func() {
			svc := service.New(service.WithDataDir(dir), service.WithStrictRows(false))
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then the bad row is skipped and counted", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["rejectedRows"], ShouldEqual, 1)
				So(stats["summaryRows"], ShouldEqual, 1)
			})
		})
	})
}
