// Package billing turns a stay's timestamps into the amount owed. It applies
// the membership waiver, the free grace period, the hourly rate and at most
// one promotion. The engine has no side effects.
package billing

import (
	"errors"
	"sort"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/membership"
	"github.com/ipqbbqgyy/parking-system/internal/promotion"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

var (
	ErrNonPositiveRate  = errors.New("hourly rate must be positive")
	ErrNegativeFreeTime = errors.New("free duration cannot be negative")
)

var (
	sixty       = decimal.NewFromInt(60)
	hundred     = decimal.NewFromInt(100)
	nsPerMinute = decimal.NewFromInt(int64(time.Minute))
)

type Config struct {
	HourlyRate          decimal.Decimal
	FreeDurationMinutes int
}

// Request is everything the engine looks at. Membership is nil when the
// account has none. Promotions may be in any order.
type Request struct {
	Entry      null.Time
	Exit       null.Time
	Now        time.Time
	Membership *membership.Membership
	Promotions []promotion.Promotion
}

type Quote struct {
	Fee              decimal.Decimal      `json:"fee"`
	OriginalFee      decimal.Decimal      `json:"original_fee"`
	DurationMinutes  decimal.Decimal      `json:"duration_minutes"`
	Promotion        *promotion.Promotion `json:"promotion,omitempty"`
	HadPromotion     bool                 `json:"has_promotion"`
	MembershipWaived bool                 `json:"membership_waived"`
}

type Engine struct {
	rate decimal.Decimal
	free decimal.Decimal
}

func NewEngine(cfg Config) (*Engine, error) {
	if !cfg.HourlyRate.IsPositive() {
		return nil, ErrNonPositiveRate
	}
	if cfg.FreeDurationMinutes < 0 {
		return nil, ErrNegativeFreeTime
	}

	return &Engine{
		rate: cfg.HourlyRate,
		free: decimal.NewFromInt(int64(cfg.FreeDurationMinutes)),
	}, nil
}

func (e *Engine) HourlyRate() decimal.Decimal {
	return e.rate
}

// Compute prices a stay. An active membership at Now short-circuits
// everything else, including the timestamp checks, and yields a zero fee.
func (e *Engine) Compute(req Request) (Quote, error) {
	entry := req.Entry.Time.UTC()
	end := req.Now.UTC()
	if req.Exit.Valid {
		end = req.Exit.Time.UTC()
	}

	if req.Membership.IsActive(req.Now.UTC()) {
		q := Quote{
			Fee:              decimal.Zero,
			OriginalFee:      decimal.Zero,
			DurationMinutes:  decimal.Zero,
			MembershipWaived: true,
		}
		if req.Entry.Valid && !end.Before(entry) {
			q.DurationMinutes = minutesBetween(entry, end).Round(2)
		}
		return q, nil
	}

	if !req.Entry.Valid {
		return Quote{}, apperr.InvalidState("stay has no entry time")
	}
	if end.Before(entry) {
		return Quote{}, apperr.InvalidState("stay ends at %s before it starts at %s", end.Format(time.RFC3339), entry.Format(time.RFC3339))
	}

	minutes := minutesBetween(entry, end)
	q := Quote{
		Fee:             decimal.Zero,
		OriginalFee:     decimal.Zero,
		DurationMinutes: minutes.Round(2),
	}

	if minutes.LessThanOrEqual(e.free) {
		return q, nil
	}

	raw := minutes.Mul(e.rate).Div(sixty)
	q.OriginalFee = raw.Round(2)

	fee := raw
	if p := selectPromotion(req.Promotions, entry, end); p != nil {
		fee = applyDiscount(raw, p)
		q.Promotion = p
		q.HadPromotion = true
	}

	if fee.IsNegative() {
		fee = decimal.Zero
	}
	q.Fee = fee.Round(2)

	return q, nil
}

// selectPromotion picks the eligible promotion with the earliest start,
// breaking ties by lowest id.
func selectPromotion(catalog []promotion.Promotion, entry, end time.Time) *promotion.Promotion {
	eligible := make([]promotion.Promotion, 0, len(catalog))
	for _, p := range catalog {
		if p.Kind.Valid() && p.Overlaps(entry, end) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.Slice(eligible, func(i, j int) bool {
		if !eligible[i].StartsAt.Equal(eligible[j].StartsAt) {
			return eligible[i].StartsAt.Before(eligible[j].StartsAt)
		}
		return eligible[i].ID < eligible[j].ID
	})

	return &eligible[0]
}

func applyDiscount(raw decimal.Decimal, p *promotion.Promotion) decimal.Decimal {
	switch p.Kind {
	case promotion.KindPercent:
		return raw.Sub(raw.Mul(p.Magnitude).Div(hundred))
	case promotion.KindFixed:
		return raw.Sub(p.Magnitude)
	default:
		return raw
	}
}

func minutesBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(to.Sub(from).Nanoseconds()).Div(nsPerMinute)
}
