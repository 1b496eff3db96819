package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/roasboard/internal/domain/model"
	"github.com/shopspring/decimal"
)

var (
	influencerColumns = []string{"influencer_id", "name", "platform", "category"}
	payoutColumns     = []string{"influencer_id", "total_payout"}
	trackingColumns   = []string{"influencer_id", "orders", "revenue"}
)

type influencerRow struct {
	InfluencerID  string `csv:"influencer_id"`
	Name          string `csv:"name"`
	Platform      string `csv:"platform"`
	Category      string `csv:"category"`
	Gender        string `csv:"gender"`
	FollowerCount string `csv:"follower_count"`
}

type payoutRow struct {
	InfluencerID string `csv:"influencer_id"`
	Basis        string `csv:"basis"`
	Rate         string `csv:"rate"`
	Orders       string `csv:"orders"`
	TotalPayout  string `csv:"total_payout"`
}

type trackingRow struct {
	Source       string `csv:"source"`
	Campaign     string `csv:"campaign"`
	InfluencerID string `csv:"influencer_id"`
	UserID       string `csv:"user_id"`
	Product      string `csv:"product"`
	Date         string `csv:"date"`
	Orders       string `csv:"orders"`
	Revenue      string `csv:"revenue"`
}

var (
	errEmptyID     = errors.New("empty influencer_id")
	errDuplicateID = errors.New("duplicate influencer_id")
	errNegative    = errors.New("negative value")
)

func (l *Loader) loadInfluencers(ctx context.Context, rep *Report) ([]model.Influencer, error) {
	t, err := l.readTable(ctx, rep, InfluencersFile, influencerColumns)
	if err != nil {
		return nil, err
	}
	var raw []influencerRow
	if err := t.decode(&raw); err != nil {
		return nil, err
	}

	out := make([]model.Influencer, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		inf, err := r.parse()
		if err == nil && seen[inf.InfluencerID] {
			err = fmt.Errorf("%w %q", errDuplicateID, inf.InfluencerID)
		}
		if err != nil {
			if rerr := l.reject(rep, InfluencersFile, t.lines[i], err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		seen[inf.InfluencerID] = true
		out = append(out, inf)
	}
	rep.Rows[InfluencersFile] = len(out)
	return out, nil
}

func (l *Loader) loadPayouts(ctx context.Context, rep *Report) ([]model.PayoutRecord, error) {
	t, err := l.readTable(ctx, rep, PayoutsFile, payoutColumns)
	if err != nil {
		return nil, err
	}
	var raw []payoutRow
	if err := t.decode(&raw); err != nil {
		return nil, err
	}

	out := make([]model.PayoutRecord, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		p, err := r.parse()
		if err == nil && seen[p.InfluencerID] {
			err = fmt.Errorf("%w %q", errDuplicateID, p.InfluencerID)
		}
		if err != nil {
			if rerr := l.reject(rep, PayoutsFile, t.lines[i], err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		seen[p.InfluencerID] = true
		out = append(out, p)
	}
	rep.Rows[PayoutsFile] = len(out)
	return out, nil
}

func (l *Loader) loadTracking(ctx context.Context, rep *Report) ([]model.TrackingEvent, error) {
	t, err := l.readTable(ctx, rep, TrackingFile, trackingColumns)
	if err != nil {
		return nil, err
	}
	var raw []trackingRow
	if err := t.decode(&raw); err != nil {
		return nil, err
	}

	out := make([]model.TrackingEvent, 0, len(raw))
	for i, r := range raw {
		ev, err := r.parse()
		if err != nil {
			if rerr := l.reject(rep, TrackingFile, t.lines[i], err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		out = append(out, ev)
	}
	rep.Rows[TrackingFile] = len(out)
	return out, nil
}

func (r influencerRow) parse() (model.Influencer, error) {
	id := strings.TrimSpace(r.InfluencerID)
	if id == "" {
		return model.Influencer{}, errEmptyID
	}
	inf := model.Influencer{
		InfluencerID: id,
		Name:         strings.TrimSpace(r.Name),
		Platform:     strings.TrimSpace(r.Platform),
		Category:     strings.TrimSpace(r.Category),
		Gender:       strings.TrimSpace(r.Gender),
	}
	// follower_count is informational; unparsable values are left at zero.
	if n, err := parseCount(r.FollowerCount); err == nil {
		inf.FollowerCount = n
	}
	return inf, nil
}

func (r payoutRow) parse() (model.PayoutRecord, error) {
	id := strings.TrimSpace(r.InfluencerID)
	if id == "" {
		return model.PayoutRecord{}, errEmptyID
	}
	total, err := parseAmount("total_payout", r.TotalPayout)
	if err != nil {
		return model.PayoutRecord{}, err
	}
	p := model.PayoutRecord{
		InfluencerID: id,
		Basis:        strings.TrimSpace(r.Basis),
		TotalPayout:  total,
	}
	if rate, err := decimal.NewFromString(strings.TrimSpace(r.Rate)); err == nil {
		p.Rate = rate
	}
	if n, err := parseCount(r.Orders); err == nil {
		p.Orders = n
	}
	return p, nil
}

func (r trackingRow) parse() (model.TrackingEvent, error) {
	id := strings.TrimSpace(r.InfluencerID)
	if id == "" {
		return model.TrackingEvent{}, errEmptyID
	}
	orders, err := parseCount(r.Orders)
	if err != nil {
		return model.TrackingEvent{}, fmt.Errorf("orders: %w", err)
	}
	revenue, err := parseAmount("revenue", r.Revenue)
	if err != nil {
		return model.TrackingEvent{}, err
	}
	return model.TrackingEvent{
		InfluencerID: id,
		Source:       strings.TrimSpace(r.Source),
		Campaign:     strings.TrimSpace(r.Campaign),
		UserID:       strings.TrimSpace(r.UserID),
		Product:      strings.TrimSpace(r.Product),
		Date:         strings.TrimSpace(r.Date),
		Orders:       orders,
		Revenue:      revenue,
	}, nil
}

// parseAmount parses a non-negative decimal money amount.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: %w: %s", field, errNegative, s)
	}
	return d, nil
}

// parseCount parses a non-negative count. Integral decimals such as "3.0"
// are accepted.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return 0, fmt.Errorf("not a whole number: %q", s)
		}
		n = d.IntPart()
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s", errNegative, s)
	}
	return n, nil
}
