package promotion

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Promotion) (*Promotion, error) {
	query := `
		INSERT INTO promotions (name, kind, magnitude, starts_at, ends_at, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, kind, magnitude, starts_at, ends_at, active, created_at
	`

	var created Promotion
	err := r.db.GetContext(ctx, &created, query, p.Name, p.Kind, p.Magnitude, p.StartsAt, p.EndsAt, p.Active)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Promotion, error) {
	query := `
		SELECT id, name, kind, magnitude, starts_at, ends_at, active, created_at
		FROM promotions
		WHERE id = $1
	`

	var p Promotion
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Promotion, error) {
	query := `
		SELECT id, name, kind, magnitude, starts_at, ends_at, active, created_at
		FROM promotions
		ORDER BY starts_at DESC, id DESC
	`

	promotions := []Promotion{}
	if err := r.db.SelectContext(ctx, &promotions, query); err != nil {
		return nil, err
	}

	return promotions, nil
}

// ListOverlapping returns active promotions whose window intersects
// [from, to], earliest start first and lowest id on ties.
func (r *repository) ListOverlapping(ctx context.Context, from, to time.Time) ([]Promotion, error) {
	query := `
		SELECT id, name, kind, magnitude, starts_at, ends_at, active, created_at
		FROM promotions
		WHERE active = TRUE
		  AND starts_at <= $2
		  AND ends_at >= $1
		ORDER BY starts_at ASC, id ASC
	`

	promotions := []Promotion{}
	if err := r.db.SelectContext(ctx, &promotions, query, from, to); err != nil {
		return nil, err
	}

	return promotions, nil
}

// Current returns the promotion effective at now, or nil when there is none.
func (r *repository) Current(ctx context.Context, now time.Time) (*Promotion, error) {
	query := `
		SELECT id, name, kind, magnitude, starts_at, ends_at, active, created_at
		FROM promotions
		WHERE active = TRUE
		  AND starts_at <= $1
		  AND ends_at >= $1
		ORDER BY starts_at ASC, id ASC
		LIMIT 1
	`

	var p Promotion
	err := r.db.GetContext(ctx, &p, query, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE promotions
		SET active = FALSE
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPromotionNotFound
	}

	return nil
}
