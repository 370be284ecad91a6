package ports

import (
	"context"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

// AccountUpdate carries a partial account update. Name is the only mutable
// field; nil means "leave as is".
type AccountUpdate struct {
	Name *string
}

// Empty reports whether the update would change nothing.
func (u AccountUpdate) Empty() bool {
	return u.Name == nil
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a new account and returns it with its assigned id.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// ListByOwner returns every account owned by userID, in store order.
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Account, error)
	// FindByIDAndOwner retrieves an account by id scoped to its owner. The
	// filter combines both conditions, so a record owned by someone else is
	// indistinguishable from a missing one (domain.ErrAccountNotFound).
	FindByIDAndOwner(ctx context.Context, id, userID int64) (*domain.Account, error)
	// FindByID retrieves an account by id alone, regardless of owner.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// Update applies the set fields of upd and returns the updated account.
	Update(ctx context.Context, id int64, upd AccountUpdate) (*domain.Account, error)
	// Delete removes the account scoped to its owner and returns the record
	// as it was before deletion.
	Delete(ctx context.Context, id, userID int64) (*domain.Account, error)
}
