package stay

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/billing"
	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/membership"
	"github.com/ipqbbqgyy/parking-system/internal/metrics"
	"github.com/ipqbbqgyy/parking-system/internal/plate"
	"github.com/ipqbbqgyy/parking-system/internal/promotion"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

const orderNumberAttempts = 3

type MembershipLookup interface {
	GetByAccount(ctx context.Context, accountID int) (*membership.Membership, error)
}

type PromotionCatalog interface {
	Catalog(ctx context.Context, from, to time.Time) ([]promotion.Promotion, error)
}

type Notifier interface {
	ReservationConfirmed(ctx context.Context, to, orderNumber, plate, spot string, useTime, expiresAt time.Time) error
	PaymentReceipt(ctx context.Context, to, orderNumber, plate string, fee, minutes decimal.Decimal, exitTime time.Time) error
}

// Observer is told after any change that can alter spot availability.
type Observer interface {
	StaysChanged(ctx context.Context)
}

type Service interface {
	Enter(ctx context.Context, req EnterRequest) (*Stay, error)
	Reserve(ctx context.Context, req ReserveRequest) (*Stay, error)
	Activate(ctx context.Context, id int, now time.Time) (*Stay, error)
	Cancel(ctx context.Context, id int) error
	QuoteExit(ctx context.Context, id int, now time.Time) (*ExitQuote, error)
	ConfirmPayment(ctx context.Context, id int, now time.Time) (*Receipt, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	Get(ctx context.Context, id int) (*Stay, error)
	ListByAccount(ctx context.Context, accountID int) ([]Stay, error)
	ListOpen(ctx context.Context) ([]Stay, error)
}

type Config struct {
	ReservationWindow time.Duration
}

type service struct {
	repo        Repository
	engine      *billing.Engine
	promotions  PromotionCatalog
	memberships MembershipLookup
	notifier    Notifier
	observer    Observer
	window      time.Duration
	clock       func() time.Time
}

type Option func(*service)

func WithNotifier(n Notifier) Option {
	return func(s *service) { s.notifier = n }
}

func WithObserver(o Observer) Option {
	return func(s *service) { s.observer = o }
}

func WithClock(clock func() time.Time) Option {
	return func(s *service) { s.clock = clock }
}

func NewService(
	repo Repository,
	engine *billing.Engine,
	promotions PromotionCatalog,
	memberships MembershipLookup,
	cfg Config,
	opts ...Option,
) Service {
	s := &service{
		repo:        repo,
		engine:      engine,
		promotions:  promotions,
		memberships: memberships,
		window:      cfg.ReservationWindow,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeVehicle(rawPlate string, class VehicleClass) (string, VehicleClass, error) {
	p := plate.Normalize(rawPlate)
	if !plate.Valid(p) {
		return "", "", apperr.ErrInvalidPlate
	}

	if class == "" {
		class = ClassStandard
	}
	if !class.Valid() {
		return "", "", apperr.InvalidInput("unknown vehicle class %q", class)
	}

	return p, class, nil
}

func optional(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}

// insert assigns an order number and stores s, drawing a new number if the
// first one collides.
func (s *service) insert(ctx context.Context, st *Stay) (*Stay, error) {
	var err error
	for i := 0; i < orderNumberAttempts; i++ {
		st.OrderNumber = NewOrderNumber()

		var created *Stay
		created, err = s.repo.Insert(ctx, st)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrDuplicateOrderNumber) {
			return nil, err
		}
	}
	return nil, err
}

func (s *service) Enter(ctx context.Context, req EnterRequest) (*Stay, error) {
	p, class, err := normalizeVehicle(req.Plate, req.Class)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	created, err := s.insert(ctx, &Stay{
		Plate:        p,
		VehicleClass: class,
		Spot:         optional(strings.ToUpper(req.Spot)),
		EntryTime:    null.TimeFrom(now),
		AccountID:    req.AccountID,
		ContactEmail: optional(req.Email),
	})
	if err != nil {
		s.recordConflict(err)
		return nil, err
	}

	logger.Info("vehicle entered",
		"stay_id", created.ID,
		"order_number", created.OrderNumber,
		"plate", created.Plate,
		"spot", created.Spot.String,
	)
	metrics.RecordStayEvent("entered")
	s.changed(ctx)

	return created, nil
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*Stay, error) {
	p, class, err := normalizeVehicle(req.Plate, req.Class)
	if err != nil {
		return nil, err
	}
	if req.UseTime.IsZero() {
		return nil, apperr.InvalidInput("reservation use time is required")
	}

	now := s.clock().UTC()
	useTime := req.UseTime.UTC()
	expiresAt := useTime.Add(s.window)
	if expiresAt.Before(now) {
		return nil, apperr.InvalidInput("reservation would already have expired")
	}

	created, err := s.insert(ctx, &Stay{
		Plate:        p,
		VehicleClass: class,
		Spot:         optional(strings.ToUpper(req.Spot)),
		Reserved:     true,
		ReservedAt:   null.TimeFrom(now),
		UseTime:      null.TimeFrom(useTime),
		ExpiresAt:    null.TimeFrom(expiresAt),
		AccountID:    req.AccountID,
		ContactEmail: optional(req.Email),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation created",
		"stay_id", created.ID,
		"order_number", created.OrderNumber,
		"plate", created.Plate,
		"spot", created.Spot.String,
		"use_time", useTime,
		"expires_at", expiresAt,
	)
	metrics.RecordStayEvent("reserved")

	if s.notifier != nil && created.ContactEmail.Valid {
		if err := s.notifier.ReservationConfirmed(ctx, created.ContactEmail.String, created.OrderNumber,
			created.Plate, created.Spot.String, useTime, expiresAt); err != nil {
			logger.Warn("reservation mail not queued", "stay_id", created.ID, "error", err)
		}
	}
	s.changed(ctx)

	return created, nil
}

func (s *service) Activate(ctx context.Context, id int, now time.Time) (*Stay, error) {
	now = now.UTC()

	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.State(now) != StateReservedPending {
		return nil, apperr.NotFound("no pending reservation %d", id)
	}
	if now.Before(st.UseTime.Time) {
		return nil, apperr.TooEarly("reservation %d can be used from %s", id, st.UseTime.Time.Format(time.RFC3339))
	}

	if err := s.repo.Activate(ctx, id, now); err != nil {
		if errors.Is(err, ErrStayNotFound) {
			return nil, apperr.NotFound("no pending reservation %d", id)
		}
		s.recordConflict(err)
		return nil, err
	}

	st.Reserved = false
	st.EntryTime = null.TimeFrom(now)
	st.UseTime = null.Time{}
	st.ExpiresAt = null.Time{}

	logger.Info("reservation activated", "stay_id", id, "plate", st.Plate, "spot", st.Spot.String)
	metrics.RecordStayEvent("activated")
	s.changed(ctx)

	return st, nil
}

func (s *service) Cancel(ctx context.Context, id int) error {
	st, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if st.State(s.clock().UTC()) != StateReservedPending {
		return apperr.InvalidState("stay %d is not a pending reservation", id)
	}

	if err := s.repo.DeletePending(ctx, id); err != nil {
		if errors.Is(err, ErrStayNotFound) {
			return apperr.NotFound("no pending reservation %d", id)
		}
		return err
	}

	logger.Info("reservation cancelled", "stay_id", id, "plate", st.Plate)
	metrics.RecordStayEvent("cancelled")
	s.changed(ctx)

	return nil
}

func (s *service) QuoteExit(ctx context.Context, id int, now time.Time) (*ExitQuote, error) {
	now = now.UTC()

	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.State(now) != StateOccupied {
		return nil, apperr.InvalidState("stay %d is not an open occupancy", id)
	}

	q, err := s.quote(ctx, st, now)
	if err != nil {
		return nil, err
	}

	return &ExitQuote{
		StayID:      st.ID,
		OrderNumber: st.OrderNumber,
		Plate:       st.Plate,
		Spot:        st.Spot,
		EntryTime:   st.EntryTime.Time,
		QuotedAt:    now,
		Quote:       q,
	}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, id int, now time.Time) (*Receipt, error) {
	now = now.UTC()

	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.State(now) != StateOccupied {
		return nil, apperr.InvalidState("stay %d is not an open occupancy", id)
	}

	q, err := s.quote(ctx, st, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ConfirmPayment(ctx, id, now, q.Fee); err != nil {
		if errors.Is(err, ErrStayNotFound) {
			return nil, apperr.InvalidState("stay %d is already settled", id)
		}
		return nil, err
	}

	st.ExitTime = null.TimeFrom(now)
	st.Paid = true
	st.Fee = decimal.NewNullDecimal(q.Fee)

	promotionKind := ""
	if q.Promotion != nil {
		promotionKind = string(q.Promotion.Kind)
	}
	logger.Info("payment confirmed",
		"stay_id", id,
		"order_number", st.OrderNumber,
		"fee", q.Fee.StringFixed(2),
		"duration_minutes", q.DurationMinutes.String(),
		"promotion", promotionKind,
		"membership", q.MembershipWaived,
	)
	metrics.RecordStayEvent("paid")
	metrics.RecordPayment(q.Fee.InexactFloat64(), promotionKind)

	if s.notifier != nil && st.ContactEmail.Valid {
		if err := s.notifier.PaymentReceipt(ctx, st.ContactEmail.String, st.OrderNumber, st.Plate,
			q.Fee, q.DurationMinutes, now); err != nil {
			logger.Warn("receipt mail not queued", "stay_id", id, "error", err)
		}
	}
	s.changed(ctx)

	return &Receipt{Stay: st, Quote: q}, nil
}

// SweepExpired deletes reservations whose expiry is before now. Running it
// again with the same now deletes nothing.
func (s *service) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, now.UTC())
	if err != nil {
		return 0, err
	}

	if n > 0 {
		logger.Info("expired reservations removed", "count", n)
		metrics.RecordExpiredReservations(n)
		s.changed(ctx)
	}

	return n, nil
}

func (s *service) Get(ctx context.Context, id int) (*Stay, error) {
	return s.get(ctx, id)
}

func (s *service) ListByAccount(ctx context.Context, accountID int) ([]Stay, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *service) ListOpen(ctx context.Context) ([]Stay, error) {
	return s.repo.ListOpen(ctx)
}

func (s *service) get(ctx context.Context, id int) (*Stay, error) {
	st, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrStayNotFound) {
		return nil, apperr.NotFound("stay %d", id)
	}
	return st, err
}

func (s *service) quote(ctx context.Context, st *Stay, now time.Time) (billing.Quote, error) {
	req := billing.Request{
		Entry: st.EntryTime,
		Exit:  st.ExitTime,
		Now:   now,
	}

	if st.AccountID != 0 && s.memberships != nil {
		m, err := s.memberships.GetByAccount(ctx, st.AccountID)
		if err != nil {
			return billing.Quote{}, err
		}
		req.Membership = m
	}

	if s.promotions != nil && st.EntryTime.Valid {
		end := now
		if st.ExitTime.Valid {
			end = st.ExitTime.Time
		}
		if !end.Before(st.EntryTime.Time) {
			catalog, err := s.promotions.Catalog(ctx, st.EntryTime.Time, end)
			if err != nil {
				return billing.Quote{}, err
			}
			req.Promotions = catalog
		}
	}

	return s.engine.Compute(req)
}

func (s *service) recordConflict(err error) {
	switch {
	case errors.Is(err, apperr.ErrPlateInside):
		metrics.RecordConflict("plate_inside")
	case errors.Is(err, apperr.ErrSpotTaken):
		metrics.RecordConflict("spot_taken")
	}
}

func (s *service) changed(ctx context.Context) {
	if s.observer != nil {
		s.observer.StaysChanged(ctx)
	}
}
