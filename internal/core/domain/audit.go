package domain

import "time"

// Audit actions recorded by the async audit trail.
const (
	AuditSignup        = "auth.signup"
	AuditSignin        = "auth.signin"
	AuditUserEdited    = "user.edited"
	AuditAccountCreate = "account.created"
	AuditAccountEdit   = "account.edited"
	AuditAccountDelete = "account.deleted"
)

// AuditEntry is a single append-only record of a user-initiated action.
// Subject identifies the affected resource (account id, user id) where one exists.
type AuditEntry struct {
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
