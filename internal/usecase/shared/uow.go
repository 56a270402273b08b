package shared

import (
	"context"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/user"
	"lodging-reservations/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-committed transaction for ordinary write operations
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: the admission path re-checks eligibility against
	// live occupancy inside this transaction; serializable isolation plus
	// retry closes the check-then-insert race between concurrent bookings.
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Users() UserRepository
	DB() db.DBTX
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// ListAll returns every reservation as a domain entity; the eligibility
	// evaluator filters by window, status and identity itself.
	ListAll(ctx context.Context, tx db.DBTX) ([]*reservation.Reservation, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, tx db.DBTX, email string) (*UserSnapshot, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
