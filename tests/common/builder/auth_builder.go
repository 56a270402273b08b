//go:build unit || e2e

package builder

import (
	reqdto "lodging-reservations/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email       string
	Password    string
	DisplayName string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:       "guest@example.com",
		Password:    "password123",
		DisplayName: "Test Guest",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:       a.Email,
		Password:    a.Password,
		DisplayName: a.DisplayName,
	}
}
