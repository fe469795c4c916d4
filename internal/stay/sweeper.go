package stay

import (
	"context"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/logger"
)

type expirySweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically removes reservations whose window has passed.
type Sweeper struct {
	service  expirySweeper
	interval time.Duration
	clock    func() time.Time
}

func NewSweeper(service expirySweeper, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		clock:    time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("reservation sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("reservation sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if _, err := s.service.SweepExpired(ctx, s.clock()); err != nil {
		logger.Error("failed to sweep expired reservations", "error", err)
	}
}
