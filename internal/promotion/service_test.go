package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Promotion) (*Promotion, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Promotion), args.Error(1)
}

func (m *MockRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]Promotion, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Promotion), args.Error(1)
}

func (m *MockRepository) Current(ctx context.Context, now time.Time) (*Promotion, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func validRequest() CreatePromotionRequest {
	return CreatePromotionRequest{
		Name:      " Autumn ",
		Kind:      "percent",
		Magnitude: "20",
		StartsAt:  "2026-10-01T08:00:00+08:00",
		EndsAt:    "2026-10-31T23:59:59Z",
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Promotion) bool {
		return p.Name == "Autumn" &&
			p.Kind == KindPercent &&
			p.Magnitude.Equal(decimal.NewFromInt(20)) &&
			p.StartsAt.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) &&
			p.StartsAt.Location() == time.UTC &&
			p.Active
	})).Return(&Promotion{ID: 1, Name: "Autumn", Kind: KindPercent, Magnitude: decimal.NewFromInt(20)}, nil)

	p, err := svc.Create(ctx, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreatePromotionRequest)
	}{
		{"unknown kind", func(r *CreatePromotionRequest) { r.Kind = "bogo" }},
		{"magnitude not a number", func(r *CreatePromotionRequest) { r.Magnitude = "ten" }},
		{"zero magnitude", func(r *CreatePromotionRequest) { r.Magnitude = "0" }},
		{"negative magnitude", func(r *CreatePromotionRequest) { r.Magnitude = "-5" }},
		{"percent over 100", func(r *CreatePromotionRequest) { r.Magnitude = "100.01" }},
		{"bad start", func(r *CreatePromotionRequest) { r.StartsAt = "yesterday" }},
		{"bad end", func(r *CreatePromotionRequest) { r.EndsAt = "2026-13-01" }},
		{"end before start", func(r *CreatePromotionRequest) { r.EndsAt = "2026-09-30T00:00:00Z" }},
		{"end equals start", func(r *CreatePromotionRequest) { r.EndsAt = "2026-10-01T00:00:00Z" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo)

			req := validRequest()
			tt.modify(&req)

			p, err := svc.Create(context.Background(), req)

			assert.Nil(t, p)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_FixedAboveHundredAllowed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	req := validRequest()
	req.Kind = "fixed"
	req.Magnitude = "150"

	mockRepo.On("Create", ctx, mock.AnythingOfType("*promotion.Promotion")).Return(&Promotion{ID: 2, Kind: KindFixed}, nil)

	p, err := svc.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, KindFixed, p.Kind)
}

func TestCatalog_NormalizesToUTC(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	shanghai := time.FixedZone("CST", 8*60*60)
	from := time.Date(2026, 10, 1, 18, 0, 0, 0, shanghai)
	to := from.Add(time.Hour)

	mockRepo.On("ListOverlapping", ctx, from.UTC(), to.UTC()).Return([]Promotion{{ID: 4}}, nil)

	list, err := svc.Catalog(ctx, from, to)

	assert.NoError(t, err)
	assert.Len(t, list, 1)
	mockRepo.AssertExpectations(t)
}

func TestDeactivate_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("Deactivate", ctx, 9).Return(ErrPromotionNotFound)

	err := svc.Deactivate(ctx, 9)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeactivate_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	dbErr := errors.New("connection reset")
	mockRepo.On("Deactivate", ctx, 9).Return(dbErr)

	err := svc.Deactivate(ctx, 9)

	assert.Equal(t, dbErr, err)
}
