package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	GuestName     string    `json:"guest_name"`
	OwnerEmail    string    `json:"owner_email,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	Date          string    `json:"date"`
	DateDisplay   string    `json:"date_display"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListFilter narrows the admin listing. Zero values mean "no filter".
type ListFilter struct {
	Date     string // YYYY-MM-DD
	Category string // canonical or legacy form
	Name     string // case-insensitive substring
}

// CategoryVacancy is one side of the vacancy panel.
type CategoryVacancy struct {
	Category  string `json:"category"`
	Label     string `json:"label"`
	Occupied  int    `json:"occupied"`
	Capacity  int    `json:"capacity"`
	Vacancies int    `json:"vacancies"`
}

// VacancyView is the live occupancy panel for the current window.
type VacancyView struct {
	WindowKey      string            `json:"window_key"`
	WindowStart    time.Time         `json:"window_start"`
	WindowEnd      time.Time         `json:"window_end"`
	Open           bool              `json:"open"`
	StatusMessage  string            `json:"status_message"`
	DefaultDate    string            `json:"default_date"`
	Categories     []CategoryVacancy `json:"categories"`
	TotalOccupied  int               `json:"total_occupied"`
	TotalCapacity  int               `json:"total_capacity"`
	TotalVacancies int               `json:"total_vacancies"`
}

// ReportRow is one line of the admin export, dates already in display form.
type ReportRow struct {
	GuestName string
	Category  string
	Date      string
	Status    string
	Email     string
}
