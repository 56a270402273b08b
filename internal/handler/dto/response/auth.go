package response

import "lodging-reservations/internal/usecase/queries"

type LoginResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}
