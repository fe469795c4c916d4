package stay

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/billing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

type VehicleClass string

const (
	ClassStandard VehicleClass = "standard"
	ClassHeavy    VehicleClass = "heavy"
	ClassElectric VehicleClass = "electric"
)

func (c VehicleClass) Valid() bool {
	switch c {
	case ClassStandard, ClassHeavy, ClassElectric:
		return true
	}
	return false
}

type State string

const (
	StateOccupied        State = "occupied"
	StateReservedPending State = "reserved_pending"
	StateReservedExpired State = "reserved_expired"
	StateCompleted       State = "completed"
)

// Stay is one vehicle's use of the lot: an occupancy from entry to paid exit,
// or a reservation that has not been activated yet.
type Stay struct {
	ID           int                 `db:"id" json:"id"`
	OrderNumber  string              `db:"order_number" json:"order_number"`
	Plate        string              `db:"plate" json:"plate"`
	VehicleClass VehicleClass        `db:"vehicle_class" json:"vehicle_class"`
	Spot         null.String         `db:"spot" json:"spot" swaggertype:"string"`
	EntryTime    null.Time           `db:"entry_time" json:"entry_time" swaggertype:"string"`
	ExitTime     null.Time           `db:"exit_time" json:"exit_time" swaggertype:"string"`
	Paid         bool                `db:"paid" json:"paid"`
	Fee          decimal.NullDecimal `db:"fee" json:"fee" swaggertype:"string"`
	Reserved     bool                `db:"reserved" json:"reserved"`
	ReservedAt   null.Time           `db:"reserved_at" json:"reserved_at" swaggertype:"string"`
	UseTime      null.Time           `db:"reservation_use_time" json:"reservation_use_time" swaggertype:"string"`
	ExpiresAt    null.Time           `db:"reservation_expires_at" json:"reservation_expires_at" swaggertype:"string"`
	AccountID    int                 `db:"account_id" json:"account_id"`
	ContactEmail null.String         `db:"contact_email" json:"-"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

func (s *Stay) State(now time.Time) State {
	switch {
	case s.Reserved && s.ExpiresAt.Valid && s.ExpiresAt.Time.Before(now):
		return StateReservedExpired
	case s.Reserved:
		return StateReservedPending
	case s.ExitTime.Valid:
		return StateCompleted
	default:
		return StateOccupied
	}
}

// NewOrderNumber returns "PARK-" followed by eight upper-case hex characters.
func NewOrderNumber() string {
	id := uuid.New()
	return "PARK-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

type EnterRequest struct {
	Plate     string
	Spot      string
	Class     VehicleClass
	AccountID int
	Email     string
}

type ReserveRequest struct {
	Plate     string
	Spot      string
	Class     VehicleClass
	AccountID int
	Email     string
	UseTime   time.Time
}

// ExitQuote is what the driver is shown before paying.
type ExitQuote struct {
	StayID      int         `json:"stay_id"`
	OrderNumber string      `json:"order_number"`
	Plate       string      `json:"plate"`
	Spot        null.String `json:"spot" swaggertype:"string"`
	EntryTime   time.Time   `json:"entry_time"`
	QuotedAt    time.Time   `json:"quoted_at"`
	billing.Quote
}

type Receipt struct {
	Stay  *Stay         `json:"stay"`
	Quote billing.Quote `json:"quote"`
}

type EntryRequestBody struct {
	Plate        string `json:"plate" binding:"required,plate" example:"京A12345"`
	Spot         string `json:"spot" example:"A1"`
	VehicleClass string `json:"vehicle_class" binding:"omitempty,oneof=standard heavy electric" example:"standard"`
}

type ReservationRequestBody struct {
	Plate        string `json:"plate" binding:"required,plate" example:"京A12345"`
	Spot         string `json:"spot" binding:"required" example:"B7"`
	VehicleClass string `json:"vehicle_class" binding:"omitempty,oneof=standard heavy electric" example:"standard"`
	UseTime      string `json:"use_time" binding:"required" example:"2026-10-18T09:00:00Z"`
}

type SweepResponse struct {
	Deleted int64 `json:"deleted"`
}
