package ports

import (
	"context"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

// AccountService exposes ownership-scoped CRUD over accounts. Every
// operation takes the authenticated requester id as an explicit parameter;
// nothing is read from ambient state.
type AccountService interface {
	List(ctx context.Context, requesterID int64) ([]*domain.Account, error)
	Get(ctx context.Context, requesterID, accountID int64) (*domain.Account, error)
	Create(ctx context.Context, requesterID int64, name string) (*domain.Account, error)
	Edit(ctx context.Context, requesterID, accountID int64, upd AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, requesterID, accountID int64) (*domain.Account, error)
}
