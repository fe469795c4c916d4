package stay

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

// memoryRepository enforces the same uniqueness rules as the stays table's
// partial indexes, under one mutex.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int
	stays  map[int]*Stay
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{stays: map[int]*Stay{}}
}

func (r *memoryRepository) conflicts(candidate *Stay, skipID int) error {
	for id, s := range r.stays {
		if id == skipID || s.Reserved || s.ExitTime.Valid {
			continue
		}
		if s.Plate == candidate.Plate {
			return apperr.ErrPlateInside
		}
		if candidate.Spot.Valid && s.Spot.Valid && s.Spot.String == candidate.Spot.String {
			return apperr.ErrSpotTaken
		}
	}
	return nil
}

func (r *memoryRepository) Insert(ctx context.Context, s *Stay) (*Stay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.stays {
		if existing.OrderNumber == s.OrderNumber {
			return nil, ErrDuplicateOrderNumber
		}
	}
	if !s.Reserved {
		if err := r.conflicts(s, 0); err != nil {
			return nil, err
		}
	}

	r.nextID++
	created := *s
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.stays[created.ID] = &created

	out := created
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int) (*Stay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stays[id]
	if !ok {
		return nil, ErrStayNotFound
	}
	out := *s
	return &out, nil
}

func (r *memoryRepository) Activate(ctx context.Context, id int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stays[id]
	if !ok || !s.Reserved || now.Before(s.UseTime.Time) || now.After(s.ExpiresAt.Time) {
		return ErrStayNotFound
	}

	activated := *s
	activated.Reserved = false
	if err := r.conflicts(&activated, id); err != nil {
		return err
	}

	s.Reserved = false
	s.EntryTime = null.TimeFrom(now)
	s.UseTime = null.Time{}
	s.ExpiresAt = null.Time{}
	return nil
}

func (r *memoryRepository) DeletePending(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stays[id]
	if !ok || !s.Reserved {
		return ErrStayNotFound
	}
	delete(r.stays, id)
	return nil
}

func (r *memoryRepository) ConfirmPayment(ctx context.Context, id int, exitTime time.Time, fee decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stays[id]
	if !ok || s.Reserved || !s.EntryTime.Valid || s.ExitTime.Valid {
		return ErrStayNotFound
	}
	s.ExitTime = null.TimeFrom(exitTime)
	s.Paid = true
	s.Fee = decimal.NewNullDecimal(fee)
	return nil
}

func (r *memoryRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, s := range r.stays {
		if s.Reserved && s.ExpiresAt.Time.Before(now) {
			delete(r.stays, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) ListByAccount(ctx context.Context, accountID int) ([]Stay, error) {
	return r.list(func(s *Stay) bool { return s.AccountID == accountID }), nil
}

func (r *memoryRepository) ListOpen(ctx context.Context) ([]Stay, error) {
	return r.list(func(s *Stay) bool { return !s.ExitTime.Valid }), nil
}

func (r *memoryRepository) list(keep func(*Stay) bool) []Stay {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Stay{}
	for _, s := range r.stays {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
