package queries

import (
	"context"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidFilter = errs.New("invalid list filter")

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// List returns every reservation matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*ReservationView, error)
	// ListByGuest returns the guest's own rows, newest target date first.
	ListByGuest(ctx context.Context, identity string) ([]*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindFiltered(ctx context.Context, filter ListFilter) ([]*ReservationView, error)
	FindByIdentity(ctx context.Context, identity string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ListFilter) ([]*ReservationView, error) {
	if filter.Category != "" {
		cat, err := reservation.NewCategory(filter.Category)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidFilter)
		}
		filter.Category = cat.String()
	}
	return q.repo.FindFiltered(ctx, filter)
}

func (q *reservationQueriesImpl) ListByGuest(ctx context.Context, identity string) ([]*ReservationView, error) {
	return q.repo.FindByIdentity(ctx, identity)
}
