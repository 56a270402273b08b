package request

import (
	"strings"
	"time"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/schedule"
)

type CreateReservationRequest struct {
	GuestName    string `json:"guest_name" binding:"required,max=120"`
	ContactEmail string `json:"contact_email,omitempty" binding:"omitempty,email"`
	Category     string `json:"category" binding:"required"`
	Date         string `json:"date" binding:"required"`
}

// ParseCategory folds the legacy synonyms into the canonical value.
func (r CreateReservationRequest) ParseCategory() (reservation.Category, error) {
	return reservation.NewCategory(r.Category)
}

// ParseDate resolves the plain YYYY-MM-DD date to midnight in the booking
// timezone.
func (r CreateReservationRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return schedule.ParseDate(strings.TrimSpace(r.Date), loc)
}

type UpdateReservationRequest struct {
	GuestName string `json:"guest_name" binding:"required,max=120"`
	Category  string `json:"category" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

func (r UpdateReservationRequest) ParseCategory() (reservation.Category, error) {
	return reservation.NewCategory(r.Category)
}

func (r UpdateReservationRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return schedule.ParseDate(strings.TrimSpace(r.Date), loc)
}
