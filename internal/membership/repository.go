package membership

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, accountID int, plan Plan, startsAt, endsAt time.Time) (*Membership, error) {
	m := &Membership{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO memberships (account_id, plan, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET plan = EXCLUDED.plan,
		    starts_at = EXCLUDED.starts_at,
		    ends_at = EXCLUDED.ends_at,
		    updated_at = NOW()
		RETURNING id, account_id, plan, starts_at, ends_at, created_at, updated_at
	`, accountID, plan, startsAt, endsAt).StructScan(m)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *repository) GetByAccount(ctx context.Context, accountID int) (*Membership, error) {
	m := &Membership{}
	err := r.db.GetContext(ctx, m, `
		SELECT id, account_id, plan, starts_at, ends_at, created_at, updated_at
		FROM memberships
		WHERE account_id = $1
	`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}
