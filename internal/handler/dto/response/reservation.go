package response

import (
	"time"

	"lodging-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	GuestName     string    `json:"guestName"`
	OwnerEmail    string    `json:"ownerEmail,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	Date          string    `json:"date"`
	DateDisplay   string    `json:"dateDisplay"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	result := make([]*ReservationResponse, len(views))
	for i, v := range views {
		result[i] = FromReservationView(v)
	}
	return result
}
