// Package types contains the read shapes shared by the service and the HTTP API.
package types

import (
	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Row is the JSON view of one InfluencerSummary. Missing payouts and
// undefined ROAS are null.
type Row struct {
	InfluencerID string           `json:"influencer_id"`
	Name         string           `json:"name"`
	Platform     string           `json:"platform"`
	Category     string           `json:"category"`
	Orders       int64            `json:"orders"`
	Revenue      decimal.Decimal  `json:"revenue"`
	TotalPayout  *decimal.Decimal `json:"total_payout"`
	ROAS         *float64         `json:"roas"`
}

// Entry is one position of the ROAS ranking.
type Entry struct {
	Rank         int     `json:"rank"`
	InfluencerID string  `json:"influencer_id"`
	Name         string  `json:"name"`
	Platform     string  `json:"platform"`
	ROAS         float64 `json:"roas"`
}

// Point is one sample of the revenue-vs-payout series.
type Point struct {
	InfluencerID string           `json:"influencer_id"`
	Name         string           `json:"name"`
	TotalPayout  *decimal.Decimal `json:"total_payout"`
	Revenue      decimal.Decimal  `json:"revenue"`
}

// Totals is the JSON view of filter.Totals.
type Totals struct {
	Rows         int             `json:"rows"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalPayout  decimal.Decimal `json:"total_payout"`
	AvgROAS      float64         `json:"avg_roas"`
}

// View is a filtered table plus its totals.
type View struct {
	Fingerprint string `json:"fingerprint"`
	Rows        []Row  `json:"rows"`
	Totals      Totals `json:"totals"`
}

// Options lists the filter choices; "All" leads both lists.
type Options struct {
	Platforms  []string `json:"platforms"`
	Categories []string `json:"categories"`
}

// NewRow converts a summary row.
func NewRow(s model.InfluencerSummary) Row {
	r := Row{
		InfluencerID: s.InfluencerID,
		Name:         s.Name,
		Platform:     s.Platform,
		Category:     s.Category,
		Orders:       s.Orders,
		Revenue:      s.Revenue,
		TotalPayout:  s.TotalPayout,
	}
	if s.ROASDefined {
		v := s.ROAS
		r.ROAS = &v
	}
	return r
}

// NewRows converts a slice of summary rows. The result is never nil.
func NewRows(rows []model.InfluencerSummary) []Row {
	out := make([]Row, len(rows))
	for i, s := range rows {
		out[i] = NewRow(s)
	}
	return out
}

// NewEntries ranks rows already ordered by filter.TopByROAS, starting at 1.
func NewEntries(ranked []model.InfluencerSummary) []Entry {
	out := make([]Entry, len(ranked))
	for i, s := range ranked {
		out[i] = Entry{
			Rank:         i + 1,
			InfluencerID: s.InfluencerID,
			Name:         s.Name,
			Platform:     s.Platform,
			ROAS:         s.ROAS,
		}
	}
	return out
}

// NewPoints converts rows ordered by filter.Spread.
func NewPoints(rows []model.InfluencerSummary) []Point {
	out := make([]Point, len(rows))
	for i, s := range rows {
		out[i] = Point{InfluencerID: s.InfluencerID, Name: s.Name, TotalPayout: s.TotalPayout, Revenue: s.Revenue}
	}
	return out
}

// NewTotals converts filter totals.
func NewTotals(t filter.Totals) Totals {
	return Totals{Rows: t.Rows, TotalRevenue: t.TotalRevenue, TotalPayout: t.TotalPayout, AvgROAS: t.AvgROAS}
}

// NewOptions prepends filter.All to both choice lists.
func NewOptions(o filter.Options) Options {
	return Options{
		Platforms:  append([]string{filter.All}, o.Platforms...),
		Categories: append([]string{filter.All}, o.Categories...),
	}
}
