// Package filter applies dashboard criteria to the InfluencerSummary table
// and computes the scalar summaries, rankings and chart series over the
// resulting view. Every function returns a new slice; the base table is
// never mutated.
package filter

import (
	"sort"
	"strings"

	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/roas"
	"github.com/shopspring/decimal"
)

// All disables a platform or category restriction.
const All = "All"

// Criteria selects rows of the summary table.
type Criteria struct {
	// Platform and Category match exactly; "" or All matches every row.
	Platform string
	Category string
	// MinROAS is an inclusive lower bound. Rows with undefined ROAS never
	// satisfy it.
	MinROAS float64
}

func unrestricted(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// Match reports whether row satisfies all three predicates.
func (c Criteria) Match(row model.InfluencerSummary) bool {
	if !unrestricted(c.Platform) && row.Platform != c.Platform {
		return false
	}
	if !unrestricted(c.Category) && row.Category != c.Category {
		return false
	}
	return row.ROASDefined && row.ROAS >= c.MinROAS
}

// Apply returns the rows matching c in table order. The result is never nil.
func Apply(rows []model.InfluencerSummary, c Criteria) []model.InfluencerSummary {
	out := make([]model.InfluencerSummary, 0, len(rows))
	for _, r := range rows {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Totals are the scalar summaries of a filtered view.
type Totals struct {
	Rows         int
	TotalRevenue decimal.Decimal
	// TotalPayout treats missing payouts as zero.
	TotalPayout decimal.Decimal
	// AvgROAS is TotalRevenue/TotalPayout, or 0 when TotalPayout is zero.
	AvgROAS float64
}

// Summarize sums revenue and payout over rows.
func Summarize(rows []model.InfluencerSummary) Totals {
	t := Totals{Rows: len(rows), TotalRevenue: decimal.Zero, TotalPayout: decimal.Zero}
	for _, r := range rows {
		t.TotalRevenue = t.TotalRevenue.Add(r.Revenue)
		t.TotalPayout = t.TotalPayout.Add(r.PayoutOrZero())
	}
	t.AvgROAS = roas.Overall(t.TotalRevenue, t.TotalPayout)
	return t
}

// View is a filtered table with its totals, tagged with the fingerprint of
// the data it was computed from.
type View struct {
	Fingerprint string
	Rows        []model.InfluencerSummary
	Totals      Totals
}

// NewView filters rows by c and summarizes the result.
func NewView(fingerprint string, rows []model.InfluencerSummary, c Criteria) *View {
	matched := Apply(rows, c)
	return &View{Fingerprint: fingerprint, Rows: matched, Totals: Summarize(matched)}
}

// TopByROAS returns up to n rows with defined ROAS, highest first, ties
// broken by influencer id. An empty input or n <= 0 yields an empty slice.
func TopByROAS(rows []model.InfluencerSummary, n int) []model.InfluencerSummary {
	if n <= 0 {
		return []model.InfluencerSummary{}
	}
	ranked := make([]model.InfluencerSummary, 0, len(rows))
	for _, r := range rows {
		if r.ROASDefined {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ROAS != ranked[j].ROAS {
			return ranked[i].ROAS > ranked[j].ROAS
		}
		return model.CompareIDs(ranked[i].InfluencerID, ranked[j].InfluencerID) < 0
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Spread orders rows by payout ascending for the revenue-vs-payout series.
// Rows without a payout sort last; ties keep table order.
func Spread(rows []model.InfluencerSummary) []model.InfluencerSummary {
	out := make([]model.InfluencerSummary, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].TotalPayout, out[j].TotalPayout
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		}
		return pi.LessThan(*pj)
	})
	return out
}

// Options lists the distinct platform and category values of a table.
type Options struct {
	Platforms  []string
	Categories []string
}

// Choices returns the sorted distinct non-empty platforms and categories.
func Choices(rows []model.InfluencerSummary) Options {
	platforms := map[string]struct{}{}
	categories := map[string]struct{}{}
	for _, r := range rows {
		if r.Platform != "" {
			platforms[r.Platform] = struct{}{}
		}
		if r.Category != "" {
			categories[r.Category] = struct{}{}
		}
	}
	return Options{Platforms: sortedKeys(platforms), Categories: sortedKeys(categories)}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
