package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/user"
	reqdto "lodging-reservations/internal/handler/dto/request"
	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/pkg/clock"
	"lodging-reservations/internal/pkg/errs"
	"lodging-reservations/internal/usecase/shared"
)

var (
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrNotReservationOwner  = errs.New("not the reservation owner")
	ErrSystemClosed         = errs.New("reservations are closed until Friday 12:00")
	ErrDateInPast           = errs.New("reservation date is in the past")
	ErrOutsideWindow        = errs.New("reservation date is outside the current window")
	ErrCategoryFull         = errs.New("no vacancies left in this category")
	ErrTotalFull            = errs.New("no vacancies left this week")
	ErrDuplicateReservation = errs.New("guest already has a reservation for this date")
	ErrReservationCancelled = errs.New("reservation is cancelled")
	ErrDomainValidation     = errs.New("domain validation error")
)

// Actor is the authenticated account performing a command.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

type ReservationCommands interface {
	Create(ctx context.Context, req reqdto.CreateReservationRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest, actor Actor) error
	Cancel(ctx context.Context, id uuid.UUID, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		clock: clk,
		loc:   loc,
	}
}

// Create admits a new booking. The eligibility check runs against the live
// reservation set inside a serializable transaction, so two guests racing
// for the last slot cannot both get in.
func (c *reservationCommandsImpl) Create(ctx context.Context, req reqdto.CreateReservationRequest, actor Actor) (uuid.UUID, error) {
	category, err := req.ParseCategory()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	targetDate, err := req.ParseDate(c.loc)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	now := c.clock.Now().In(c.loc)

	var id uuid.UUID
	err = c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, listErr := tx.Reservations().ListAll(ctx, tx.DB())
		if listErr != nil {
			return listErr
		}

		decision := reservation.Evaluate(targetDate, category, actor.Email, uuid.Nil, existing, now)
		if !decision.Admitted {
			return decisionError(decision)
		}

		res, newErr := reservation.NewReservation(req.GuestName, actor.Email, req.ContactEmail, category, targetDate)
		if newErr != nil {
			return errs.Mark(newErr, ErrDomainValidation)
		}

		createdID, createErr := tx.Reservations().Create(ctx, tx.DB(), res)
		if createErr != nil {
			return createErr
		}
		id = createdID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update re-runs the full admission check for the new values, skipping the
// row being edited so a guest can keep their own date.
func (c *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest, actor Actor) error {
	category, err := req.ParseCategory()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	targetDate, err := req.ParseDate(c.loc)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	now := c.clock.Now().In(c.loc)

	return c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, findErr := c.findOwned(ctx, tx, id, actor)
		if findErr != nil {
			return findErr
		}

		existing, listErr := tx.Reservations().ListAll(ctx, tx.DB())
		if listErr != nil {
			return listErr
		}

		decision := reservation.Evaluate(targetDate, category, current.Identity(), id, existing, now)
		if !decision.Admitted {
			return decisionError(decision)
		}

		if reviseErr := current.Revise(req.GuestName, category, targetDate); reviseErr != nil {
			return mapEntityErr(reviseErr)
		}
		return tx.Reservations().Update(ctx, tx.DB(), current)
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor Actor) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, findErr := c.findOwned(ctx, tx, id, actor)
		if findErr != nil {
			return findErr
		}
		if cancelErr := current.Cancel(); cancelErr != nil {
			return mapEntityErr(cancelErr)
		}
		return tx.Reservations().Update(ctx, tx.DB(), current)
	})
}

// Delete removes the row entirely. Administrators only; guests cancel.
func (c *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if !actor.IsAdmin() {
		return ErrNotReservationOwner
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, findErr := tx.Reservations().FindByID(ctx, tx.DB(), id); findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return findErr
		}
		return tx.Reservations().Delete(ctx, tx.DB(), id)
	})
}

func (c *reservationCommandsImpl) findOwned(ctx context.Context, tx shared.Tx, id uuid.UUID, actor Actor) (*reservation.Reservation, error) {
	current, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && !current.IsOwnedBy(actor.Email) {
		return nil, ErrNotReservationOwner
	}
	return current, nil
}

func decisionError(d reservation.Decision) error {
	switch d.Reason {
	case reservation.ReasonSystemClosed:
		return ErrSystemClosed
	case reservation.ReasonInThePast:
		return ErrDateInPast
	case reservation.ReasonOutsideWindow:
		return ErrOutsideWindow
	case reservation.ReasonCategoryFull:
		return ErrCategoryFull
	case reservation.ReasonTotalFull:
		return ErrTotalFull
	case reservation.ReasonDuplicate:
		return ErrDuplicateReservation
	default:
		return ErrDomainValidation
	}
}

func mapEntityErr(err error) error {
	if errors.Is(err, reservation.ErrAlreadyCancelled) {
		return ErrReservationCancelled
	}
	return errs.Mark(err, ErrDomainValidation)
}
