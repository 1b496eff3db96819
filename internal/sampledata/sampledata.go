// Package sampledata generates a deterministic campaign data set in the
// three-file layout read by the source loader.
package sampledata

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default generation parameters.
const (
	defaultSeed               = 1
	defaultInfluencers        = 40
	defaultEvents             = 400
	defaultMissingPayoutEvery = 7
	maxOrdersPerEvent         = 5
	campaignDays              = 30
	filePermission            = 0o644
)

// File names mirror the loader's fixed layout.
const (
	influencersFile = "influencers.csv"
	payoutsFile     = "payouts.csv"
	trackingFile    = "tracking_data.csv"
)

var (
	platforms  = []string{"Instagram", "YouTube", "Twitter"}
	categories = []string{"Fitness", "Nutrition", "Wellness", "Bodybuilding"}
	genders    = []string{"F", "M"}
	firstNames = []string{"Asha", "Bilal", "Chen", "Divya", "Emeka", "Farah", "Gopal", "Hana", "Ishaan", "Jaya"}
	campaigns  = []string{"summer_shred", "monsoon_immunity", "protein_week"}
	// products maps a brand to its unit price in paise.
	products = []struct {
		name  string
		price int64
	}{
		{"MuscleBlaze", 249900},
		{"HKVitals", 79900},
		{"Gritzo", 59900},
	}
)

// Influencer is one roster row.
type Influencer struct {
	ID            string `csv:"ID"`
	Name          string `csv:"name"`
	Category      string `csv:"category"`
	Gender        string `csv:"gender"`
	FollowerCount int64  `csv:"follower_count"`
	Platform      string `csv:"platform"`
}

// Payout is one payout row.
type Payout struct {
	InfluencerID string `csv:"influencer_id"`
	Basis        string `csv:"basis"`
	Rate         string `csv:"rate"`
	Orders       int64  `csv:"orders"`
	TotalPayout  string `csv:"total_payout"`
}

// Tracking is one tracking row.
type Tracking struct {
	Source       string `csv:"source"`
	Campaign     string `csv:"campaign"`
	InfluencerID string `csv:"influencer_id"`
	UserID       string `csv:"user_id"`
	Product      string `csv:"product"`
	Date         string `csv:"date"`
	Orders       int64  `csv:"orders"`
	Revenue      string `csv:"revenue"`
}

// Data is a generated data set.
type Data struct {
	Influencers []Influencer
	Payouts     []Payout
	Tracking    []Tracking
}

// Config controls generation.
type Config struct {
	Seed        int64
	Influencers int
	Events      int
	// MissingPayoutEvery leaves every n-th influencer without a payout row.
	// Zero disables it.
	MissingPayoutEvery int
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithSeed sets the random seed. Equal seeds produce equal data.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithInfluencers sets the roster size.
func WithInfluencers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Influencers = n
		}
	}
}

// WithEvents sets the number of tracking rows.
func WithEvents(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.Events = n
		}
	}
}

// WithMissingPayoutEvery leaves every n-th influencer unpaid.
func WithMissingPayoutEvery(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MissingPayoutEvery = n
		}
	}
}

// New generates a data set.
func New(opts ...Option) *Data {
	cfg := Config{
		Seed:               defaultSeed,
		Influencers:        defaultInfluencers,
		Events:             defaultEvents,
		MissingPayoutEvery: defaultMissingPayoutEvery,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible fixtures, not secrets
	d := &Data{
		Influencers: make([]Influencer, cfg.Influencers),
		Tracking:    make([]Tracking, cfg.Events),
	}

	for i := range d.Influencers {
		id := strconv.Itoa(i + 1)
		d.Influencers[i] = Influencer{
			ID:            id,
			Name:          firstNames[rng.Intn(len(firstNames))] + " " + id,
			Category:      categories[rng.Intn(len(categories))],
			Gender:        genders[rng.Intn(len(genders))],
			FollowerCount: int64(1_000 + rng.Intn(500_000)),
			Platform:      platforms[rng.Intn(len(platforms))],
		}
	}

	ordersByInfluencer := make([]int64, cfg.Influencers)
	for i := range d.Tracking {
		idx := rng.Intn(cfg.Influencers)
		inf := d.Influencers[idx]
		product := products[rng.Intn(len(products))]
		orders := int64(1 + rng.Intn(maxOrdersPerEvent))
		ordersByInfluencer[idx] += orders

		user := uuid.Must(uuid.NewRandomFromReader(rng))
		d.Tracking[i] = Tracking{
			Source:       strings.ToLower(inf.Platform),
			Campaign:     campaigns[rng.Intn(len(campaigns))],
			InfluencerID: inf.ID,
			UserID:       user.String(),
			Product:      product.name,
			Date:         fmt.Sprintf("2025-06-%02d", 1+rng.Intn(campaignDays)),
			Orders:       orders,
			Revenue:      decimal.New(orders*product.price, -2).String(),
		}
	}

	for i, inf := range d.Influencers {
		if cfg.MissingPayoutEvery > 0 && (i+1)%cfg.MissingPayoutEvery == 0 {
			continue
		}
		p := Payout{InfluencerID: inf.ID, Orders: ordersByInfluencer[i]}
		if rng.Intn(2) == 0 {
			rate := decimal.New(int64(5_000+rng.Intn(45_000)), 0)
			p.Basis, p.Rate, p.TotalPayout = "post", rate.String(), rate.String()
		} else {
			rate := decimal.New(int64(5_000+rng.Intn(30_000)), -2)
			p.Basis, p.Rate = "order", rate.String()
			p.TotalPayout = rate.Mul(decimal.NewFromInt(p.Orders)).String()
		}
		d.Payouts = append(d.Payouts, p)
	}
	return d
}

// WriteDir writes the three CSV files into dir, creating it if needed.
func WriteDir(dir string, d *Data) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sampledata: %w", err)
	}
	if err := writeFile(filepath.Join(dir, influencersFile), &d.Influencers); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, payoutsFile), &d.Payouts); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, trackingFile), &d.Tracking)
}

func writeFile(path string, rows any) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("sampledata: %w", err)
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("sampledata: %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sampledata: %w", err)
	}
	return nil
}
