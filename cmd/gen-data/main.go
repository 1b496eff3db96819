// Command gen-data writes a reproducible campaign data set
// (influencers.csv, payouts.csv, tracking_data.csv) for local runs.
package main

import (
	"context"
	"os"
	"strings"

	"github.com/okian/roasboard/internal/sampledata"
	"github.com/okian/roasboard/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultOut                = "data"
	defaultSeed               = 1
	defaultInfluencers        = 40
	defaultEvents             = 400
	defaultMissingPayoutEvery = 7
)

var rootCmd = &cobra.Command{
	Use:               "gen-data",
	Short:             "Generate sample influencer campaign CSV files",
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	RunE:              runGenerate,
}

func init() {
	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	flags.StringP("out", "o", defaultOut, "Directory to write the CSV files into")
	flags.Int64("seed", defaultSeed, "Random seed; equal seeds produce identical files")
	flags.Int("influencers", defaultInfluencers, "Number of influencer profiles")
	flags.Int("events", defaultEvents, "Number of tracking rows")
	flags.Int("missing-payout-every", defaultMissingPayoutEvery, "Leave every n-th influencer without a payout row (0 disables)")
}

func initLogger(*cobra.Command, []string) error {
	return logger.Init()
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	seed, _ := flags.GetInt64("seed")
	influencers, _ := flags.GetInt("influencers")
	events, _ := flags.GetInt("events")
	missing, _ := flags.GetInt("missing-payout-every")

	data := sampledata.New(
		sampledata.WithSeed(seed),
		sampledata.WithInfluencers(influencers),
		sampledata.WithEvents(events),
		sampledata.WithMissingPayoutEvery(missing),
	)
	if err := sampledata.WriteDir(out, data); err != nil {
		return err
	}

	logger.Get().Info(cmd.Context(), "sample data written",
		logger.String("dir", out),
		logger.Int64("seed", seed),
		logger.Int("influencers", len(data.Influencers)),
		logger.Int("payouts", len(data.Payouts)),
		logger.Int("tracking", len(data.Tracking)),
	)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
