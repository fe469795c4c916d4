package stay

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository persists stays. Every mutating call is a single statement whose
// WHERE clause re-checks the state it expects, so concurrent callers cannot
// both succeed.
type Repository interface {
	Insert(ctx context.Context, s *Stay) (*Stay, error)
	GetByID(ctx context.Context, id int) (*Stay, error)
	Activate(ctx context.Context, id int, now time.Time) error
	DeletePending(ctx context.Context, id int) error
	ConfirmPayment(ctx context.Context, id int, exitTime time.Time, fee decimal.Decimal) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListByAccount(ctx context.Context, accountID int) ([]Stay, error)
	ListOpen(ctx context.Context) ([]Stay, error)
}
