package membership

import (
	"context"
	"time"
)

type Repository interface {
	Upsert(ctx context.Context, accountID int, plan Plan, startsAt, endsAt time.Time) (*Membership, error)
	// GetByAccount returns nil, nil when the account has never bought a
	// membership.
	GetByAccount(ctx context.Context, accountID int) (*Membership, error)
}
