//go:build unit || e2e

package builder

import (
	"time"

	domres "lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/schedule"
	reqdto "lodging-reservations/internal/handler/dto/request"
	"lodging-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	GuestName    string
	OwnerEmail   string
	ContactEmail string
	Category     string
	Date         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		GuestName:    "Maria Souza",
		OwnerEmail:   "guest@example.com",
		ContactEmail: "guest@example.com",
		Category:     "feminino",
		Date:         "2026-08-29",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain(loc *time.Location) (*domres.Reservation, error) {
	category, err := domres.NewCategory(r.Category)
	if err != nil {
		return nil, err
	}

	date, err := schedule.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return domres.NewReservation(r.GuestName, r.OwnerEmail, r.ContactEmail, category, date)
}

func (r *ReservationBuilder) BuildEntity(loc *time.Location) *domres.Reservation {
	category, _ := domres.NewCategory(r.Category)
	date, _ := schedule.ParseDate(r.Date, loc)
	return domres.ReconstructReservation(
		uuid.New(),
		r.GuestName, r.OwnerEmail, r.ContactEmail,
		category,
		date,
		domres.Status(r.Status),
		r.CreatedAt, r.UpdatedAt,
	)
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		GuestName:    r.GuestName,
		ContactEmail: r.ContactEmail,
		Category:     r.Category,
		Date:         r.Date,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{
		GuestName: r.GuestName,
		Category:  r.Category,
		Date:      r.Date,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	category, _ := domres.NewCategory(r.Category)
	return &queries.ReservationView{
		ID:            uuid.New(),
		GuestName:     r.GuestName,
		OwnerEmail:    r.OwnerEmail,
		ContactEmail:  r.ContactEmail,
		Category:      string(category),
		CategoryLabel: category.DisplayLabel(),
		Date:          r.Date,
		DateDisplay:   displayDate(r.Date),
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func displayDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

// Fluent builder methods
func (r *ReservationBuilder) WithGuestName(name string) *ReservationBuilder {
	r.GuestName = name
	return r
}

func (r *ReservationBuilder) WithOwnerEmail(email string) *ReservationBuilder {
	r.OwnerEmail = email
	return r
}

func (r *ReservationBuilder) WithContactEmail(email string) *ReservationBuilder {
	r.ContactEmail = email
	return r
}

func (r *ReservationBuilder) WithCategory(category string) *ReservationBuilder {
	r.Category = category
	return r
}

func (r *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	r.Date = date
	return r
}

func (r *ReservationBuilder) AsCancelled() *ReservationBuilder {
	r.Status = "cancelled"
	return r
}
