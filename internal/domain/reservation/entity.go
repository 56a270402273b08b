package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyGuestName   = errors.New("guest name cannot be empty")
	ErrMissingDate      = errors.New("reservation date is required")
	ErrMissingIdentity  = errors.New("reservation requires an owner or contact email")
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrInvalidStatus    = errors.New("invalid reservation status")
)

type Reservation struct {
	id           uuid.UUID
	guestName    string
	ownerEmail   string // account that created the row; empty on imported legacy rows
	contactEmail string
	category     Category
	targetDate   time.Time // calendar date at local midnight
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewReservation(guestName, ownerEmail, contactEmail string, category Category, targetDate time.Time) (*Reservation, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return nil, ErrEmptyGuestName
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if targetDate.IsZero() {
		return nil, ErrMissingDate
	}
	if ownerEmail == "" && contactEmail == "" {
		return nil, ErrMissingIdentity
	}
	return &Reservation{
		id:           uuid.New(),
		guestName:    guestName,
		ownerEmail:   strings.ToLower(ownerEmail),
		contactEmail: strings.ToLower(contactEmail),
		category:     category,
		targetDate:   targetDate,
		status:       StatusActive,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	guestName, ownerEmail, contactEmail string,
	category Category,
	targetDate time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		guestName:    guestName,
		ownerEmail:   strings.ToLower(ownerEmail),
		contactEmail: strings.ToLower(contactEmail),
		category:     category,
		targetDate:   targetDate,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) GuestName() string    { return r.guestName }
func (r *Reservation) OwnerEmail() string   { return r.ownerEmail }
func (r *Reservation) ContactEmail() string { return r.contactEmail }
func (r *Reservation) Category() Category   { return r.category }
func (r *Reservation) TargetDate() time.Time { return r.targetDate }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// Identity is the email that counts toward occupancy and duplicate checks.
// Legacy rows imported without an owner fall back to the contact email.
func (r *Reservation) Identity() string {
	if r.ownerEmail != "" {
		return r.ownerEmail
	}
	return r.contactEmail
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

// IsOwnedBy reports whether the given account email controls this row.
func (r *Reservation) IsOwnedBy(email string) bool {
	return r.Identity() == strings.ToLower(email)
}

// Revise replaces the mutable booking fields. Cancelled rows are frozen.
func (r *Reservation) Revise(guestName string, category Category, targetDate time.Time) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return ErrEmptyGuestName
	}
	if !category.IsValid() {
		return ErrInvalidCategory
	}
	if targetDate.IsZero() {
		return ErrMissingDate
	}
	r.guestName = guestName
	r.category = category
	r.targetDate = targetDate
	return nil
}

// Cancel releases the slot. Cancelled rows stay in history but never count
// toward occupancy or duplicates.
func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	return nil
}
