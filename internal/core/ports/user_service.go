package ports

import (
	"context"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetMe(ctx context.Context, userID int64) (*domain.User, error)
	// EditMe applies a partial profile update. An empty update fails with
	// domain.ErrNoChanges before any store access.
	EditMe(ctx context.Context, userID int64, upd UserUpdate) (*domain.User, error)
}
