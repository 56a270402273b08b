package readstore

import (
	"context"

	"github.com/google/uuid"

	"lodging-reservations/internal/infra"
	"lodging-reservations/internal/infra/db"
	"lodging-reservations/internal/pkg/pgconv"
	"lodging-reservations/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, role, display_name, is_active
		FROM users
		WHERE id = $1`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
		&view.DisplayName,
		&view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `
		SELECT id, email, role, display_name, is_active, password_hash
		FROM users
		WHERE email = lower($1)`

	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
		&view.DisplayName,
		&view.IsActive,
		&hash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}
