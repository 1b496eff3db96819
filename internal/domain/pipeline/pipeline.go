// Package pipeline turns the three campaign source tables into the
// InfluencerSummary table.
//
// Steps run in a fixed order: tracking events are aggregated per influencer
// first, then payouts and metadata are left-joined onto the aggregates, and
// finally ROAS is derived. Joining before aggregating would repeat a payout
// once per tracking row.
package pipeline

import (
	"sort"

	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/roas"
	"github.com/shopspring/decimal"
)

// Aggregate holds the summed tracking metrics of one influencer.
type Aggregate struct {
	InfluencerID string
	Orders       int64
	Revenue      decimal.Decimal
	Events       int
}

// AggregateTracking groups events by influencer and sums orders and revenue.
// The result is ordered by model.CompareIDs.
func AggregateTracking(events []model.TrackingEvent) []Aggregate {
	byID := make(map[string]*Aggregate, len(events))
	for _, ev := range events {
		agg, ok := byID[ev.InfluencerID]
		if !ok {
			agg = &Aggregate{InfluencerID: ev.InfluencerID, Revenue: decimal.Zero}
			byID[ev.InfluencerID] = agg
		}
		agg.Orders += ev.Orders
		agg.Revenue = agg.Revenue.Add(ev.Revenue)
		agg.Events++
	}

	out := make([]Aggregate, 0, len(byID))
	for _, agg := range byID {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return model.CompareIDs(out[i].InfluencerID, out[j].InfluencerID) < 0
	})
	return out
}

// Join left-joins payouts and influencer metadata onto aggregates. Each
// aggregate yields exactly one row. If a key repeats in payouts or
// influencers the first occurrence wins; the loader rejects such input
// before it gets here.
func Join(aggs []Aggregate, payouts []model.PayoutRecord, influencers []model.Influencer) []model.InfluencerSummary {
	payoutByID := make(map[string]decimal.Decimal, len(payouts))
	for _, p := range payouts {
		if _, dup := payoutByID[p.InfluencerID]; !dup {
			payoutByID[p.InfluencerID] = p.TotalPayout
		}
	}
	profileByID := make(map[string]model.Influencer, len(influencers))
	for _, inf := range influencers {
		if _, dup := profileByID[inf.InfluencerID]; !dup {
			profileByID[inf.InfluencerID] = inf
		}
	}

	rows := make([]model.InfluencerSummary, len(aggs))
	for i, agg := range aggs {
		row := model.InfluencerSummary{
			InfluencerID: agg.InfluencerID,
			Orders:       agg.Orders,
			Revenue:      agg.Revenue,
		}
		if p, ok := payoutByID[agg.InfluencerID]; ok {
			row.TotalPayout = &p
		}
		if inf, ok := profileByID[agg.InfluencerID]; ok {
			row.Name = inf.Name
			row.Platform = inf.Platform
			row.Category = inf.Category
			row.HasProfile = true
		}
		rows[i] = row
	}
	return rows
}

// Derive sets ROAS on every row in place using the roas sentinel policy.
func Derive(rows []model.InfluencerSummary) {
	for i := range rows {
		rows[i].ROAS, rows[i].ROASDefined = roas.Ratio(rows[i].Revenue, rows[i].TotalPayout)
	}
}

// Build runs the whole pipeline over a dataset. It is pure: identical input
// yields an identical table.
func Build(ds model.Dataset) []model.InfluencerSummary {
	rows := Join(AggregateTracking(ds.Tracking), ds.Payouts, ds.Influencers)
	Derive(rows)
	return rows
}
