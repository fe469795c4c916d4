package membership

import (
	"context"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/metrics"
)

type Service interface {
	Purchase(ctx context.Context, accountID int, plan Plan, now time.Time) (*Membership, error)
	GetByAccount(ctx context.Context, accountID int) (*Membership, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Purchase starts a fresh window at now for the chosen plan, replacing any
// existing membership of the account.
func (s *service) Purchase(ctx context.Context, accountID int, plan Plan, now time.Time) (*Membership, error) {
	if !plan.Valid() {
		return nil, apperr.InvalidInput("unknown membership plan %q", plan)
	}

	start := now.UTC()
	end := start.AddDate(0, 0, plan.Days())

	m, err := s.repo.Upsert(ctx, accountID, plan, start, end)
	if err != nil {
		return nil, err
	}

	logger.Info("membership purchased", "account_id", accountID, "plan", plan, "ends_at", end)
	metrics.RecordMembership(string(plan))
	return m, nil
}

func (s *service) GetByAccount(ctx context.Context, accountID int) (*Membership, error) {
	return s.repo.GetByAccount(ctx, accountID)
}
