package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

// UserService implements profile operations for the authenticated user.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = ports.NopAuditRecorder{}
	}
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) GetMe(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// EditMe applies a partial profile update. The empty-update check runs
// before any store access. An email change that collides with another user
// surfaces as domain.ErrEmailTaken from the repository.
func (s *UserService) EditMe(ctx context.Context, userID int64, upd ports.UserUpdate) (*domain.User, error) {
	if upd.Empty() {
		return nil, domain.ErrNoChanges
	}

	user, err := s.users.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    userID,
		Action:    domain.AuditUserEdited,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Int64("user_id", userID).Msg("user profile edited")

	return user, nil
}

var _ ports.UserService = (*UserService)(nil)
