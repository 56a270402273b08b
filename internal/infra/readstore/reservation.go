package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/schedule"
	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/infra/db"
	"lodging-reservations/internal/pkg/pgconv"
	"lodging-reservations/internal/usecase/queries"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewColumns = `id, guest_name, owner_email, contact_email, category, target_date, status, created_at, updated_at`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query := `SELECT ` + reservationViewColumns + ` FROM reservations WHERE id = $1`

	view, err := scanReservationView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

// FindFiltered assembles the WHERE clause from whichever filters are set and
// returns rows newest first.
func (r *ReservationReadStore) FindFiltered(ctx context.Context, filter queries.ListFilter) ([]*queries.ReservationView, error) {
	query := `SELECT ` + reservationViewColumns + ` FROM reservations`

	var conds []string
	var args []any
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("target_date = $%d::date", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("guest_name ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return r.queryViews(ctx, query, args...)
}

// FindByIdentity lists a guest's own rows, matching the same owner-or-contact
// fallback the occupancy counter uses.
func (r *ReservationReadStore) FindByIdentity(ctx context.Context, identity string) ([]*queries.ReservationView, error) {
	query := `SELECT ` + reservationViewColumns + `
		FROM reservations
		WHERE lower(COALESCE(NULLIF(owner_email, ''), contact_email)) = lower($1)
		ORDER BY target_date DESC, created_at DESC`

	return r.queryViews(ctx, query, identity)
}

// ListAll hydrates the full reservation set as domain entities for the
// occupancy queries.
func (r *ReservationReadStore) ListAll(ctx context.Context) ([]*reservation.Reservation, error) {
	query := `SELECT ` + reservationViewColumns + ` FROM reservations`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		var (
			id                       uuid.UUID
			guestName                string
			ownerEmail, contactEmail string
			category, status         string
			targetDate               time.Time
			createdAt, updatedAt     time.Time
		)
		if err := rows.Scan(&id, &guestName, &ownerEmail, &contactEmail, &category, &targetDate, &status, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, reservation.ReconstructReservation(
			id, guestName, ownerEmail, contactEmail,
			reservation.Category(category), targetDate,
			reservation.Status(status), createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

func (r *ReservationReadStore) queryViews(ctx context.Context, query string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, scanErr := scanReservationView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation views", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var (
		view       queries.ReservationView
		targetDate time.Time
	)
	err := row.Scan(
		&view.ID,
		&view.GuestName,
		&view.OwnerEmail,
		&view.ContactEmail,
		&view.Category,
		&targetDate,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CategoryLabel = reservation.Category(view.Category).DisplayLabel()
	view.Date = schedule.FormatDate(targetDate)
	view.DateDisplay = schedule.DisplayDate(targetDate)
	return &view, nil
}
