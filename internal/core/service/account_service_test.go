package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts map[int64]*domain.Account
	nextID   int64
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.nextID++
	clone := cloneAccount(account)
	clone.ID = r.nextID
	r.accounts[clone.ID] = cloneAccount(clone)
	return clone, nil
}

func (r *stubAccountRepo) ListByOwner(_ context.Context, userID int64) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0)
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

// FindByIDAndOwner mirrors the Mongo filter: owner mismatch reads as not found.
func (r *stubAccountRepo) FindByIDAndOwner(_ context.Context, id, userID int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Update(_ context.Context, id int64, upd ports.AccountUpdate) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	a.UpdatedAt = time.Now().UTC()
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id, userID int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return cloneAccount(a), nil
}

func newAccountService(repo ports.AccountRepository) *AccountService {
	return NewAccountService(repo, nil, zerolog.Nop())
}

func strptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Ownership semantics
// ---------------------------------------------------------------------------

const (
	ownerID    = int64(1)
	strangerID = int64(2)
)

func TestAccountService_Get_OwnershipFoldedIntoLookup(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	created, err := svc.Create(context.Background(), ownerID, "Checking")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if got.Name != "Checking" || got.UserID != ownerID {
		t.Fatalf("unexpected account: %+v", got)
	}

	// Another user's lookup is indistinguishable from a missing record.
	if _, err := svc.Get(context.Background(), strangerID, created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for non-owner, got %v", err)
	}
}

func TestAccountService_List_ScopedToOwner(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	_, _ = svc.Create(context.Background(), ownerID, "Checking")
	_, _ = svc.Create(context.Background(), ownerID, "Savings")
	_, _ = svc.Create(context.Background(), strangerID, "Other")

	mine, err := svc.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(mine))
	}
	for _, a := range mine {
		if a.UserID != ownerID {
			t.Fatalf("foreign account leaked into list: %+v", a)
		}
	}

	empty, err := svc.List(context.Background(), int64(99))
	if err != nil {
		t.Fatalf("empty list must not be an error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}

func TestAccountService_Edit_NoChanges(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	created, _ := svc.Create(context.Background(), ownerID, "Checking")

	// The empty-update check precedes both existence and ownership checks.
	if _, err := svc.Edit(context.Background(), ownerID, created.ID, ports.AccountUpdate{}); !errors.Is(err, domain.ErrNoChanges) {
		t.Fatalf("owner: expected ErrNoChanges, got %v", err)
	}
	if _, err := svc.Edit(context.Background(), strangerID, created.ID, ports.AccountUpdate{}); !errors.Is(err, domain.ErrNoChanges) {
		t.Fatalf("non-owner: expected ErrNoChanges, got %v", err)
	}
	if _, err := svc.Edit(context.Background(), ownerID, 9999, ports.AccountUpdate{}); !errors.Is(err, domain.ErrNoChanges) {
		t.Fatalf("missing record: expected ErrNoChanges, got %v", err)
	}
}

// Edit reports forbidden for a non-owner while Get and Delete report not
// found for the same input. The asymmetry is intentional and covered here so
// a refactor cannot erase it silently.
func TestAccountService_Edit_ForbiddenVsNotFound(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	created, _ := svc.Create(context.Background(), ownerID, "Checking")
	upd := ports.AccountUpdate{Name: strptr("Hijacked")}

	if _, err := svc.Edit(context.Background(), strangerID, created.ID, upd); !errors.Is(err, domain.ErrAccountForbidden) {
		t.Fatalf("edit by non-owner: expected ErrAccountForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), strangerID, created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("get by non-owner: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), strangerID, created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("delete by non-owner: expected ErrAccountNotFound, got %v", err)
	}

	// The failed attempts must not have mutated anything.
	got, err := svc.Get(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if got.Name != "Checking" {
		t.Fatalf("account mutated by rejected operations: %+v", got)
	}
}

func TestAccountService_Edit_MissingRecord(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	upd := ports.AccountUpdate{Name: strptr("Anything")}
	if _, err := svc.Edit(context.Background(), ownerID, 404, upd); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Edit_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	created, _ := svc.Create(context.Background(), ownerID, "Checking")

	updated, err := svc.Edit(context.Background(), ownerID, created.ID, ports.AccountUpdate{Name: strptr("Savings")})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Name != "Savings" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.UserID != ownerID {
		t.Fatalf("owner must not change on edit: %+v", updated)
	}
}

func TestAccountService_CreateGetDeleteRoundTrip(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	created, err := svc.Create(context.Background(), ownerID, "Checking")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.Get(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("get after create failed: %v", err)
	}
	if got.Name != created.Name || got.UserID != ownerID {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	deleted, err := svc.Delete(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != created.ID || deleted.Name != "Checking" {
		t.Fatalf("delete must return the pre-deletion record, got %+v", deleted)
	}

	if _, err := svc.Get(context.Background(), ownerID, created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("get after delete: expected ErrAccountNotFound, got %v", err)
	}
}
