package ports

import (
	"context"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

// UserUpdate carries a partial user update. A nil field means "leave as is";
// absence is always explicit, never inferred from a zero value.
type UserUpdate struct {
	Email     *string
	Firstname *string
	Lastname  *string
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Firstname == nil && u.Lastname == nil
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned id.
	// A duplicate email surfaces as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Update applies the set fields of upd and returns the updated user.
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
}
