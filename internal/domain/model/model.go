// Package model contains the campaign domain models passed between layers.
package model

import (
	"github.com/shopspring/decimal"
)

// Influencer is one roster entry, keyed uniquely by InfluencerID.
type Influencer struct {
	InfluencerID  string
	Name          string
	Platform      string // e.g. Instagram, YouTube
	Category      string // niche, e.g. Fitness
	Gender        string
	FollowerCount int64
}

// PayoutRecord is the amount paid to an influencer. At most one per influencer.
type PayoutRecord struct {
	InfluencerID string
	Basis        string // "post" or "order"
	Rate         decimal.Decimal
	Orders       int64
	TotalPayout  decimal.Decimal
}

// TrackingEvent is one attributed transaction or period of activity.
type TrackingEvent struct {
	InfluencerID string
	Source       string
	Campaign     string
	UserID       string
	Product      string
	Date         string
	Orders       int64
	Revenue      decimal.Decimal
}

// Dataset groups the three source tables of a single load.
type Dataset struct {
	Influencers []Influencer
	Payouts     []PayoutRecord
	Tracking    []TrackingEvent
}

// InfluencerSummary is the per-influencer aggregate with joined payout,
// joined metadata and derived ROAS.
type InfluencerSummary struct {
	InfluencerID string

	// Joined from Influencer; empty with HasProfile=false when absent.
	Name       string
	Platform   string
	Category   string
	HasProfile bool

	// Summed over all tracking events of the influencer.
	Orders  int64
	Revenue decimal.Decimal

	// TotalPayout is nil when the influencer has no payout record.
	TotalPayout *decimal.Decimal

	// ROAS is Revenue/TotalPayout when ROASDefined, otherwise the sentinel 0.
	ROAS        float64
	ROASDefined bool
}

// PayoutOrZero returns the payout, treating a missing record as zero.
func (s InfluencerSummary) PayoutOrZero() decimal.Decimal {
	if s.TotalPayout == nil {
		return decimal.Zero
	}
	return *s.TotalPayout
}

// HasPayout reports whether a payout record was joined.
func (s InfluencerSummary) HasPayout() bool {
	return s.TotalPayout != nil
}
