package promotion

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Promotion) (*Promotion, error)
	GetByID(ctx context.Context, id int) (*Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]Promotion, error)
	Current(ctx context.Context, now time.Time) (*Promotion, error)
	Deactivate(ctx context.Context, id int) error
}
