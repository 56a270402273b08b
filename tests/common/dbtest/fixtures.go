//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, display_name, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, "Test "+role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestReservation(t *testing.T, db DBLike, guestName, ownerEmail, category, targetDate string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO reservations (id, guest_name, owner_email, contact_email, category, target_date, status) VALUES ($1, $2, $3, $3, $4, $5::date, 'active')",
		id, guestName, ownerEmail, category, targetDate)
	require.NoError(t, err)

	return id
}

func CancelTestReservation(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE reservations SET status = 'cancelled' WHERE id = $1", id)
	require.NoError(t, err)
}

// truncates both tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE users, reservations RESTART IDENTITY CASCADE")
	return err
}
