package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/user"
	reqdto "lodging-reservations/internal/handler/dto/request"
	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/pkg/config"
	"lodging-reservations/internal/pkg/errs"
	"lodging-reservations/internal/pkg/jwt"
	"lodging-reservations/internal/pkg/password"
	"lodging-reservations/internal/usecase/queries"
	"lodging-reservations/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrEmailAlreadyTaken    = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Email     string
	Role      user.Role
	TokenPair *TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	booking    config.BookingConfig
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service, booking config.BookingConfig) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		booking:    booking,
	}
}

// Register creates an account. The role comes from the administrator
// allow-list, never from the request body.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	if _, err := user.NewPassword(req.Password); err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	role := user.RoleGuest
	if a.booking.IsAdmin(email.Value()) {
		role = user.RoleAdmin
	}

	newUser := user.NewUser(email, hash, role, req.DisplayName)

	var id uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		createdID, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			return createErr
		}
		id = createdID
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailAlreadyTaken
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userView, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokenPair, err := a.issueTokens(userView.ID, userView.Email, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), userView.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", userView.ID, "error", updateErr.Error())
			// Continue without failing - this is not critical
		}
		return nil
	})
	if err != nil {
		slog.Warn("transaction failed during login", "user_id", userView.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:    userView.ID,
		Email:     userView.Email,
		Role:      role,
		TokenPair: tokenPair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	userView, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || userView == nil {
		return nil, ErrUserNotFound
	}
	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	return a.issueTokens(claims.UserID, userView.Email, role)
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, email string, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}
	if userView == nil {
		return nil, ErrUserNotFound
	}
	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userView, nil
}
