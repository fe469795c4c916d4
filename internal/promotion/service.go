package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/logger"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Service interface {
	Create(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	Catalog(ctx context.Context, from, to time.Time) ([]Promotion, error)
	Current(ctx context.Context, now time.Time) (*Promotion, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePromotionRequest) (*Promotion, error) {
	kind := Kind(req.Kind)
	if !kind.Valid() {
		return nil, apperr.InvalidInput("unknown discount kind %q", req.Kind)
	}

	magnitude, err := decimal.NewFromString(strings.TrimSpace(req.Magnitude))
	if err != nil {
		return nil, apperr.InvalidInput("magnitude must be a decimal number")
	}
	if !magnitude.IsPositive() {
		return nil, apperr.InvalidInput("magnitude must be positive")
	}
	if kind == KindPercent && magnitude.GreaterThan(hundred) {
		return nil, apperr.InvalidInput("percentage discount cannot exceed 100")
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperr.InvalidInput("starts_at must be RFC3339")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, apperr.InvalidInput("ends_at must be RFC3339")
	}
	if !startsAt.Before(endsAt) {
		return nil, apperr.InvalidInput("promotion must start before it ends")
	}

	p, err := s.repo.Create(ctx, &Promotion{
		Name:      strings.TrimSpace(req.Name),
		Kind:      kind,
		Magnitude: magnitude,
		StartsAt:  startsAt.UTC(),
		EndsAt:    endsAt.UTC(),
		Active:    true,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("promotion created", "promotion_id", p.ID, "kind", p.Kind, "magnitude", p.Magnitude.String())
	return p, nil
}

func (s *service) List(ctx context.Context) ([]Promotion, error) {
	return s.repo.List(ctx)
}

// Catalog is the snapshot handed to the billing engine for a stay spanning
// [from, to].
func (s *service) Catalog(ctx context.Context, from, to time.Time) ([]Promotion, error) {
	return s.repo.ListOverlapping(ctx, from.UTC(), to.UTC())
}

func (s *service) Current(ctx context.Context, now time.Time) (*Promotion, error) {
	return s.repo.Current(ctx, now.UTC())
}

func (s *service) Deactivate(ctx context.Context, id int) error {
	err := s.repo.Deactivate(ctx, id)
	if errors.Is(err, ErrPromotionNotFound) {
		return apperr.NotFound("promotion %d", id)
	}
	if err != nil {
		return err
	}

	logger.Info("promotion deactivated", "promotion_id", id)
	return nil
}
