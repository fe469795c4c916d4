package integration_test

import (
	"os"
	"testing"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/billing"
	"github.com/ipqbbqgyy/parking-system/internal/db"
	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/membership"
	"github.com/ipqbbqgyy/parking-system/internal/promotion"
	"github.com/ipqbbqgyy/parking-system/internal/stay"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// setupTestDB connects to TEST_DSN, migrates it and empties every table.
func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration tests: TEST_DSN is not set")
	}

	database, err := db.Connect(dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: cannot connect to test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, "../migrations"))

	_, err = database.Exec(`TRUNCATE stays, promotions, memberships RESTART IDENTITY`)
	require.NoError(t, err)

	return database
}

type services struct {
	stays       stay.Service
	promotions  promotion.Service
	memberships membership.Service
}

func newServices(t *testing.T, database *sqlx.DB, clock func() time.Time) services {
	engine, err := billing.NewEngine(billing.Config{
		HourlyRate:          decimal.NewFromInt(5),
		FreeDurationMinutes: 15,
	})
	require.NoError(t, err)

	promotions := promotion.NewService(promotion.NewRepository(database))
	memberships := membership.NewService(membership.NewRepository(database))

	return services{
		stays: stay.NewService(
			stay.NewRepository(database),
			engine,
			promotions,
			memberships,
			stay.Config{ReservationWindow: 30 * time.Minute},
			stay.WithClock(clock),
		),
		promotions:  promotions,
		memberships: memberships,
	}
}
