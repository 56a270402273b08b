package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/infra/db"
	"lodging-reservations/internal/pkg/pgconv"
	"lodging-reservations/internal/usecase/shared"
)

type ReservationRepository struct{}

func NewReservationRepository() shared.ReservationRepository {
	return &ReservationRepository{}
}

const reservationColumns = `id, guest_name, owner_email, contact_email, category, target_date, status, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	const query = `
		INSERT INTO reservations (id, guest_name, owner_email, contact_email, category, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		res.ID(),
		res.GuestName(),
		res.OwnerEmail(),
		res.ContactEmail(),
		res.Category().String(),
		res.TargetDate(),
		res.Status().String(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	const query = `
		UPDATE reservations
		SET guest_name = $2, category = $3, target_date = $4, status = $5, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		res.ID(),
		res.GuestName(),
		res.Category().String(),
		res.TargetDate(),
		res.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	row := tx.QueryRow(ctx, query, id)
	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListAll(ctx context.Context, tx db.DBTX) ([]*reservation.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", scanErr)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id                       uuid.UUID
		guestName                string
		ownerEmail, contactEmail string
		category, status         string
		targetDate               time.Time
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &guestName, &ownerEmail, &contactEmail, &category, &targetDate, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id, guestName, ownerEmail, contactEmail,
		reservation.Category(category), targetDate,
		reservation.Status(status), createdAt, updatedAt,
	), nil
}
