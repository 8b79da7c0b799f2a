package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/voxlate/go-translate-backend/internal/domain"
)

func TestCreateUser_SuccessAndDuplicate(t *testing.T) {
	db := newRequestRepoDB(t, &domain.User{})

	u, err := CreateUser(context.Background(), db, "Ada", "Lovelace", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" || u.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = CreateUser(context.Background(), db, "Ada", "Again", "ada@example.com", "hash2")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused email, got %v", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newRequestRepoDB(t, &domain.User{})

	_, err := GetUserByEmail(context.Background(), db, "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUser_RoundTrip(t *testing.T) {
	db := newRequestRepoDB(t, &domain.User{})

	created, err := CreateUser(context.Background(), db, "Grace", "Hopper", "grace@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := GetUser(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.FirstName != "Grace" || got.LastName != "Hopper" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}
