package shared

import (
	"time"

	"github.com/google/uuid"
)

// UserSnapshot is the minimal read model the command side needs for
// authentication and ownership checks.
type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	IsActive     bool
	CreatedAt    time.Time
}
