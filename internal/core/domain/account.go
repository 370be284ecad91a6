package domain

import (
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountForbidden = errors.New("access forbidden")
var ErrNoChanges = errors.New("no changes were submitted")

// Account is a named financial container owned by exactly one user.
// UserID is set at creation and never changes afterwards.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
