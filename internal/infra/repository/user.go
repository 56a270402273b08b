package repository

import (
	"context"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/user"
	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/infra/db"
	"lodging-reservations/internal/pkg/pgconv"
	"lodging-reservations/internal/usecase/shared"
)

type UserRepository struct{}

func NewUserRepository() shared.UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (id, email, password_hash, role, display_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.DisplayName(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email string) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, password_hash, role, display_name, is_active, created_at
		FROM users
		WHERE email = lower($1)`

	var snap shared.UserSnapshot
	err := tx.QueryRow(ctx, query, email).Scan(
		&snap.ID,
		&snap.Email,
		&snap.PasswordHash,
		&snap.Role,
		&snap.DisplayName,
		&snap.IsActive,
		&snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
