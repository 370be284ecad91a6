package ports

import (
	"context"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

// AuditRepository persists append-only audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
