package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindPercent Kind = "percent"
	KindFixed   Kind = "fixed"
)

func (k Kind) Valid() bool {
	return k == KindPercent || k == KindFixed
}

type Promotion struct {
	ID        int             `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Kind      Kind            `db:"kind" json:"kind"`
	Magnitude decimal.Decimal `db:"magnitude" json:"magnitude"`
	StartsAt  time.Time       `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time       `db:"ends_at" json:"ends_at"`
	Active    bool            `db:"active" json:"active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// EffectiveAt reports whether the promotion is switched on and t lies within
// [StartsAt, EndsAt].
func (p Promotion) EffectiveAt(t time.Time) bool {
	return p.Active && !t.Before(p.StartsAt) && !t.After(p.EndsAt)
}

// Overlaps reports whether the promotion is switched on and its window
// intersects [from, to].
func (p Promotion) Overlaps(from, to time.Time) bool {
	return p.Active && !p.StartsAt.After(to) && !p.EndsAt.Before(from)
}

// Label is the short text shown next to prices, e.g. "20% off".
func (p Promotion) Label() string {
	if p.Kind == KindPercent {
		return p.Magnitude.String() + "% off"
	}
	return p.Magnitude.StringFixed(2) + " off"
}

type CreatePromotionRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Kind      string `json:"kind" binding:"required,oneof=percent fixed"`
	Magnitude string `json:"magnitude" binding:"required" example:"20"`
	StartsAt  string `json:"starts_at" binding:"required" example:"2026-10-01T00:00:00Z"`
	EndsAt    string `json:"ends_at" binding:"required" example:"2026-10-31T23:59:59Z"`
}

type CurrentPromotionResponse struct {
	Promotion *Promotion `json:"promotion"`
	Label     string     `json:"label,omitempty"`
}
