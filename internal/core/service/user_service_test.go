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

func seedUser(repo *stubUserRepo, email string) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	return u
}

func TestUserService_GetMe(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	u := seedUser(repo, "alice@example.com")

	got, err := svc.GetMe(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetMe failed: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.GetMe(context.Background(), 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_EditMe_NoChanges(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	u := seedUser(repo, "bob@example.com")

	if _, err := svc.EditMe(context.Background(), u.ID, ports.UserUpdate{}); !errors.Is(err, domain.ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
}

func TestUserService_EditMe_PartialUpdate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	u := seedUser(repo, "carol@example.com")

	first := "Carol"
	updated, err := svc.EditMe(context.Background(), u.ID, ports.UserUpdate{Firstname: &first})
	if err != nil {
		t.Fatalf("EditMe failed: %v", err)
	}
	if updated.Firstname != "Carol" {
		t.Fatalf("firstname not applied: %+v", updated)
	}
	if updated.Email != "carol@example.com" {
		t.Fatalf("unset field must stay untouched: %+v", updated)
	}
}

func TestUserService_EditMe_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	seedUser(repo, "taken@example.com")
	u := seedUser(repo, "dave@example.com")

	taken := "taken@example.com"
	if _, err := svc.EditMe(context.Background(), u.ID, ports.UserUpdate{Email: &taken}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
