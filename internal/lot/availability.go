package lot

import (
	"context"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/metrics"
	"github.com/ipqbbqgyy/parking-system/internal/promotion"
	"github.com/ipqbbqgyy/parking-system/internal/stay"
)

type SpotState string

const (
	SpotAvailable SpotState = "available"
	SpotOccupied  SpotState = "occupied"
	SpotReserved  SpotState = "reserved"
)

type StayReader interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	ListOpen(ctx context.Context) ([]stay.Stay, error)
}

type PromotionReader interface {
	Current(ctx context.Context, now time.Time) (*promotion.Promotion, error)
}

type SpotStatus struct {
	ID    string    `json:"id"`
	State SpotState `json:"state"`
}

// Snapshot is the availability map shown to drivers.
type Snapshot struct {
	Spots          []SpotStatus         `json:"spots"`
	Occupied       int                  `json:"occupied"`
	Reserved       int                  `json:"reserved"`
	Available      int                  `json:"available"`
	Promotion      *promotion.Promotion `json:"promotion,omitempty"`
	PromotionLabel string               `json:"promotion_label,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

type Availability struct {
	catalog    *Catalog
	stays      StayReader
	promotions PromotionReader
	now        func() time.Time
}

func NewAvailability(catalog *Catalog, stays StayReader, promotions PromotionReader) *Availability {
	return &Availability{
		catalog:    catalog,
		stays:      stays,
		promotions: promotions,
		now:        time.Now,
	}
}

// Snapshot sweeps expired reservations and then maps every catalog spot to
// its state. A failed sweep is logged; expired rows still count as free.
func (a *Availability) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := a.now().UTC()

	if _, err := a.stays.SweepExpired(ctx, now); err != nil {
		logger.Warn("sweep before availability failed", "error", err)
	}

	open, err := a.stays.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]SpotState, len(open))
	for i := range open {
		st := &open[i]
		if !st.Spot.Valid {
			continue
		}

		switch st.State(now) {
		case stay.StateOccupied:
			taken[st.Spot.String] = SpotOccupied
		case stay.StateReservedPending:
			if taken[st.Spot.String] != SpotOccupied {
				taken[st.Spot.String] = SpotReserved
			}
		}
	}

	snap := &Snapshot{GeneratedAt: now}
	for _, id := range a.catalog.Spots() {
		state, ok := taken[id]
		if !ok {
			state = SpotAvailable
		}

		switch state {
		case SpotOccupied:
			snap.Occupied++
		case SpotReserved:
			snap.Reserved++
		default:
			snap.Available++
		}
		snap.Spots = append(snap.Spots, SpotStatus{ID: id, State: state})
	}

	metrics.SetSpotCounts(snap.Occupied, snap.Reserved, snap.Available)

	p, err := a.promotions.Current(ctx, now)
	if err != nil {
		logger.Warn("current promotion lookup failed", "error", err)
	} else if p != nil {
		snap.Promotion = p
		snap.PromotionLabel = p.Label()
	}

	return snap, nil
}
