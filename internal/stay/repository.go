package stay

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrStayNotFound         = errors.New("stay not found")
	ErrDuplicateOrderNumber = errors.New("order number already used")
)

const stayColumns = `id, order_number, plate, vehicle_class, spot, entry_time, exit_time, paid, fee,
		reserved, reserved_at, reservation_use_time, reservation_expires_at, account_id, contact_email,
		created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// translate maps unique index violations to the lifecycle errors callers
// match on.
func translate(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case "stays_open_plate_idx":
		return apperr.ErrPlateInside
	case "stays_open_spot_idx":
		return apperr.ErrSpotTaken
	case "stays_order_number_key":
		return ErrDuplicateOrderNumber
	default:
		return err
	}
}

func (r *repository) Insert(ctx context.Context, s *Stay) (*Stay, error) {
	query := `
		INSERT INTO stays (order_number, plate, vehicle_class, spot, entry_time, reserved, reserved_at,
			reservation_use_time, reservation_expires_at, account_id, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + stayColumns

	created := &Stay{}
	err := r.db.QueryRowxContext(ctx, query,
		s.OrderNumber, s.Plate, s.VehicleClass, s.Spot, s.EntryTime, s.Reserved, s.ReservedAt,
		s.UseTime, s.ExpiresAt, s.AccountID, s.ContactEmail,
	).StructScan(created)
	if err != nil {
		return nil, translate(err)
	}

	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Stay, error) {
	query := `SELECT ` + stayColumns + ` FROM stays WHERE id = $1`

	s := &Stay{}
	err := r.db.GetContext(ctx, s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStayNotFound
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Activate turns a pending reservation into an occupancy entered at now. It
// fails with ErrStayNotFound when the row is no longer a pending reservation
// usable at now.
func (r *repository) Activate(ctx context.Context, id int, now time.Time) error {
	query := `
		UPDATE stays
		SET reserved = FALSE,
		    entry_time = $2,
		    reservation_use_time = NULL,
		    reservation_expires_at = NULL,
		    updated_at = NOW()
		WHERE id = $1
		  AND reserved = TRUE
		  AND reservation_use_time <= $2
		  AND reservation_expires_at >= $2
	`

	result, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return translate(err)
	}

	return expectOne(result)
}

func (r *repository) DeletePending(ctx context.Context, id int) error {
	query := `DELETE FROM stays WHERE id = $1 AND reserved = TRUE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectOne(result)
}

func (r *repository) ConfirmPayment(ctx context.Context, id int, exitTime time.Time, fee decimal.Decimal) error {
	query := `
		UPDATE stays
		SET exit_time = $2,
		    paid = TRUE,
		    fee = $3,
		    updated_at = NOW()
		WHERE id = $1
		  AND reserved = FALSE
		  AND entry_time IS NOT NULL
		  AND exit_time IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, exitTime, fee)
	if err != nil {
		return err
	}

	return expectOne(result)
}

func (r *repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM stays WHERE reserved = TRUE AND reservation_expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *repository) ListByAccount(ctx context.Context, accountID int) ([]Stay, error) {
	query := `SELECT ` + stayColumns + ` FROM stays WHERE account_id = $1 ORDER BY created_at DESC, id DESC`

	stays := []Stay{}
	if err := r.db.SelectContext(ctx, &stays, query, accountID); err != nil {
		return nil, err
	}

	return stays, nil
}

// ListOpen returns every stay without an exit time: vehicles inside and
// reservations not yet activated.
func (r *repository) ListOpen(ctx context.Context) ([]Stay, error) {
	query := `SELECT ` + stayColumns + ` FROM stays WHERE exit_time IS NULL ORDER BY id`

	stays := []Stay{}
	if err := r.db.SelectContext(ctx, &stays, query); err != nil {
		return nil, err
	}

	return stays, nil
}

func expectOne(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrStayNotFound
	}

	return nil
}
