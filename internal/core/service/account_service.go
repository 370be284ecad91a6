package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

// AccountService implements ownership-scoped CRUD over accounts.
//
// Get and Delete fold the owner into the lookup filter, so another user's
// account is reported as not found. Edit checks existence first and
// ownership second, so a non-owner gets an explicit forbidden. The split
// mirrors the upstream behaviour and is covered by tests; callers must not
// rely on Edit for non-leaking semantics.
type AccountService struct {
	accounts ports.AccountRepository
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, audit ports.AuditRecorder, log zerolog.Logger) *AccountService {
	if audit == nil {
		audit = ports.NopAuditRecorder{}
	}
	return &AccountService{accounts: accounts, audit: audit, log: log}
}

func (s *AccountService) List(ctx context.Context, requesterID int64) ([]*domain.Account, error) {
	return s.accounts.ListByOwner(ctx, requesterID)
}

func (s *AccountService) Get(ctx context.Context, requesterID, accountID int64) (*domain.Account, error) {
	return s.accounts.FindByIDAndOwner(ctx, accountID, requesterID)
}

func (s *AccountService) Create(ctx context.Context, requesterID int64, name string) (*domain.Account, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		Name:      name,
		UserID:    requesterID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    requesterID,
		Action:    domain.AuditAccountCreate,
		Subject:   strconv.FormatInt(created.ID, 10),
		Timestamp: now,
	})
	s.log.Info().Int64("account_id", created.ID).Int64("user_id", requesterID).Msg("account created")

	return created, nil
}

// Edit validates the update, then looks the account up by id alone before
// checking ownership. No transaction spans the lookup and the update; the
// record can disappear in between, in which case the update itself reports
// not found.
func (s *AccountService) Edit(ctx context.Context, requesterID, accountID int64, upd ports.AccountUpdate) (*domain.Account, error) {
	if upd.Empty() {
		return nil, domain.ErrNoChanges
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != requesterID {
		return nil, domain.ErrAccountForbidden
	}

	updated, err := s.accounts.Update(ctx, accountID, upd)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    requesterID,
		Action:    domain.AuditAccountEdit,
		Subject:   strconv.FormatInt(accountID, 10),
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}

// Delete removes the account and returns its pre-deletion representation.
// The owner is part of the delete filter, same as Get.
func (s *AccountService) Delete(ctx context.Context, requesterID, accountID int64) (*domain.Account, error) {
	deleted, err := s.accounts.Delete(ctx, accountID, requesterID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    requesterID,
		Action:    domain.AuditAccountDelete,
		Subject:   strconv.FormatInt(accountID, 10),
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Int64("account_id", accountID).Int64("user_id", requesterID).Msg("account deleted")

	return deleted, nil
}

var _ ports.AccountService = (*AccountService)(nil)
