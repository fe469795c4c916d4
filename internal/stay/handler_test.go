package stay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/auth"
	"github.com/ipqbbqgyy/parking-system/internal/billing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Enter(ctx context.Context, req EnterRequest) (*Stay, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stay), args.Error(1)
}

func (m *MockService) Reserve(ctx context.Context, req ReserveRequest) (*Stay, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stay), args.Error(1)
}

func (m *MockService) Activate(ctx context.Context, id int, now time.Time) (*Stay, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stay), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) QuoteExit(ctx context.Context, id int, now time.Time) (*ExitQuote, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExitQuote), args.Error(1)
}

func (m *MockService) ConfirmPayment(ctx context.Context, id int, now time.Time) (*Receipt, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Receipt), args.Error(1)
}

func (m *MockService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id int) (*Stay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stay), args.Error(1)
}

func (m *MockService) ListByAccount(ctx context.Context, accountID int) ([]Stay, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stay), args.Error(1)
}

func (m *MockService) ListOpen(ctx context.Context) ([]Stay, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stay), args.Error(1)
}

type spotSet map[string]bool

func (s spotSet) Has(spot string) bool {
	return s[strings.ToUpper(spot)]
}

var handlerNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func setupRouter(svc Service, userID int, role string) *gin.Engine {
	h := NewHandler(svc, spotSet{"A1": true, "B7": true})
	h.now = func() time.Time { return handlerNow }

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.ContextAccountID, userID)
		c.Set(auth.ContextEmail, "driver@example.com")
		c.Set(auth.ContextRole, role)
		c.Next()
	})

	r.POST("/plates/validate", h.ValidatePlate)
	r.POST("/stays/entry", h.Enter)
	r.POST("/stays/reservations", h.Reserve)
	r.POST("/stays/reservations/:stayID/activate", h.Activate)
	r.DELETE("/stays/reservations/:stayID", h.Cancel)
	r.GET("/stays/:stayID/quote", h.Quote)
	r.POST("/stays/:stayID/pay", h.Pay)
	r.GET("/stays", h.ListMine)
	r.GET("/admin/stays/open", h.ListOpen)
	r.POST("/admin/reservations/sweep", h.Sweep)

	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidatePlateHandler(t *testing.T) {
	r := setupRouter(new(MockService), 7, auth.RoleDriver)

	w := doJSON(r, http.MethodPost, "/plates/validate", gin.H{"plate": " 京a12345 "})
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlateCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "京A12345", resp.Plate)

	w = doJSON(r, http.MethodPost, "/plates/validate", gin.H{"plate": "ABC"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
}

func TestEnterHandler(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Enter", mock.Anything, EnterRequest{
		Plate:     "京A12345",
		Spot:      "A1",
		Class:     ClassElectric,
		AccountID: 7,
		Email:     "driver@example.com",
	}).Return(&Stay{ID: 1, Plate: "京A12345", Spot: null.StringFrom("A1"), EntryTime: null.TimeFrom(handlerNow)}, nil)

	w := doJSON(r, http.MethodPost, "/stays/entry", gin.H{"plate": "京A12345", "spot": "A1", "vehicle_class": "electric"})
	require.Equal(t, http.StatusCreated, w.Code)

	var s Stay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 1, s.ID)
	svc.AssertExpectations(t)
}

func TestEnterHandler_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{"missing plate", gin.H{"spot": "A1"}},
		{"bad plate", gin.H{"plate": "ABC123", "spot": "A1"}},
		{"unknown spot", gin.H{"plate": "京A12345", "spot": "Z99"}},
		{"bad class", gin.H{"plate": "京A12345", "vehicle_class": "bus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := setupRouter(svc, 7, auth.RoleDriver)

			w := doJSON(r, http.MethodPost, "/stays/entry", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Enter", mock.Anything, mock.Anything)
		})
	}
}

func TestEnterHandler_Conflict(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Enter", mock.Anything, mock.Anything).Return(nil, apperr.ErrPlateInside)

	w := doJSON(r, http.MethodPost, "/stays/entry", gin.H{"plate": "京A12345", "spot": "A1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "vehicle is already inside the lot")
}

func TestReserveHandler(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	use := handlerNow.Add(time.Hour)
	svc.On("Reserve", mock.Anything, mock.MatchedBy(func(req ReserveRequest) bool {
		return req.Plate == "京A12345" && req.Spot == "B7" && req.AccountID == 7 && req.UseTime.Equal(use)
	})).Return(&Stay{ID: 4, Reserved: true}, nil)

	w := doJSON(r, http.MethodPost, "/stays/reservations", gin.H{
		"plate":    "京A12345",
		"spot":     "B7",
		"use_time": use.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestReserveHandler_BadUseTime(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	w := doJSON(r, http.MethodPost, "/stays/reservations", gin.H{
		"plate":    "京A12345",
		"spot":     "B7",
		"use_time": "tomorrow morning",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/stays/reservations", gin.H{
		"plate":    "京A12345",
		"use_time": handlerNow.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestActivateHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, http.StatusOK},
		{"too early", apperr.TooEarly("reservation starts at %s", handlerNow), http.StatusTooEarly},
		{"spot occupied", apperr.ErrSpotTaken, http.StatusConflict},
		{"gone", apperr.NotFound("reservation %d not found", 4), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := setupRouter(svc, 7, auth.RoleDriver)

			svc.On("Get", mock.Anything, 4).Return(&Stay{ID: 4, AccountID: 7, Reserved: true}, nil)
			if tt.err != nil {
				svc.On("Activate", mock.Anything, 4, handlerNow).Return(nil, tt.err)
			} else {
				svc.On("Activate", mock.Anything, 4, handlerNow).Return(&Stay{ID: 4, AccountID: 7}, nil)
			}

			w := doJSON(r, http.MethodPost, "/stays/reservations/4/activate", nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOwnership(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Get", mock.Anything, 9).Return(&Stay{ID: 9, AccountID: 8}, nil)

	w := doJSON(r, http.MethodGet, "/stays/9/quote", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "QuoteExit", mock.Anything, mock.Anything, mock.Anything)

	w = doJSON(r, http.MethodDelete, "/stays/reservations/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestOwnership_AdminBypass(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 1, auth.RoleAdmin)

	svc.On("Cancel", mock.Anything, 9).Return(nil)

	w := doJSON(r, http.MethodDelete, "/stays/reservations/9", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestInvalidStayID(t *testing.T) {
	r := setupRouter(new(MockService), 7, auth.RoleDriver)

	w := doJSON(r, http.MethodGet, "/stays/abc/quote", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Get", mock.Anything, 1).Return(&Stay{ID: 1, AccountID: 7}, nil)
	svc.On("QuoteExit", mock.Anything, 1, handlerNow).Return(&ExitQuote{
		StayID:   1,
		QuotedAt: handlerNow,
		Quote: billing.Quote{
			Fee:             decimal.RequireFromString("1.33"),
			OriginalFee:     decimal.RequireFromString("1.67"),
			DurationMinutes: decimal.NewFromInt(20),
			HadPromotion:    true,
		},
	}, nil)

	w := doJSON(r, http.MethodGet, "/stays/1/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1.33", body["fee"])
	assert.Equal(t, "1.67", body["original_fee"])
	assert.Equal(t, true, body["has_promotion"])
}

func TestQuoteHandler_NotOccupied(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Get", mock.Anything, 1).Return(&Stay{ID: 1, AccountID: 7}, nil)
	svc.On("QuoteExit", mock.Anything, 1, handlerNow).Return(nil, apperr.InvalidState("stay %d is completed", 1))

	w := doJSON(r, http.MethodGet, "/stays/1/quote", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPayHandler(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("Get", mock.Anything, 1).Return(&Stay{ID: 1, AccountID: 7}, nil)
	svc.On("ConfirmPayment", mock.Anything, 1, handlerNow).Return(&Receipt{
		Stay:  &Stay{ID: 1, Paid: true, ExitTime: null.TimeFrom(handlerNow)},
		Quote: billing.Quote{Fee: decimal.RequireFromString("3.75")},
	}, nil)

	w := doJSON(r, http.MethodPost, "/stays/1/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paid":true`)
}

func TestPayHandler_InternalErrorHidden(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 1, auth.RoleAdmin)

	svc.On("ConfirmPayment", mock.Anything, 1, handlerNow).Return(nil, assert.AnError)

	w := doJSON(r, http.MethodPost, "/stays/1/pay", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestListMineHandler(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 7, auth.RoleDriver)

	svc.On("ListByAccount", mock.Anything, 7).Return([]Stay{{ID: 1}, {ID: 2}}, nil)

	w := doJSON(r, http.MethodGet, "/stays", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stays []Stay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stays))
	assert.Len(t, stays, 2)
}

func TestAdminHandlers(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 1, auth.RoleAdmin)

	svc.On("SweepExpired", mock.Anything, handlerNow).Return(int64(2), nil)
	svc.On("ListOpen", mock.Anything).Return([]Stay{{ID: 3}}, nil)

	w := doJSON(r, http.MethodPost, "/admin/reservations/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/admin/stays/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
