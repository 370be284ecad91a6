package ports

import "github.com/Skryensya/Finances-API/internal/core/domain"

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// never blocks the request path beyond enqueueing.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// NopAuditRecorder discards every entry. Used in tests and as a safe default.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(domain.AuditEntry) {}
