package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/roasboard/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateCommand(t *testing.T) {
	Convey("Given the gen-data command", t, func() {
		dir := filepath.Join(t.TempDir(), "out")

		Convey("When run with explicit flags", func() {
			rootCmd.SetArgs([]string{"--out", dir, "--seed", "5", "--influencers", "8", "--events", "30", "--missing_payout_every", "4"})
			err := rootCmd.ExecuteContext(context.Background())

			Convey("Then the three files are written and load cleanly", func() {
				So(err, ShouldBeNil)
				for _, name := range source.Files {
					_, statErr := os.Stat(filepath.Join(dir, name))
					So(statErr, ShouldBeNil)
				}
				res, loadErr := source.NewDirLoader(dir).Load(context.Background())
				So(loadErr, ShouldBeNil)
				So(res.Report.Rows[source.InfluencersFile], ShouldEqual, 8)
				So(res.Report.Rows[source.PayoutsFile], ShouldEqual, 6)
				So(res.Report.Rows[source.TrackingFile], ShouldEqual, 30)
			})
		})
	})
}
