package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voxlate/go-translate-backend/internal/domain"
)

func TestIdempotency_CreateGetAndExpiry(t *testing.T) {
	db := newRequestRepoDB(t, &domain.Idempotency{})
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "u1", "key-1", "req-1", 200, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.RequestID != "req-1" || rec.Status != 200 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "u1", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.RequestID != "req-1" {
		t.Fatalf("lookup mismatch: %+v", got)
	}

	// Expired records are invisible.
	_, err = GetIdempotency(ctx, db, "u1", "key-1", time.Now().UTC().Add(2*time.Hour))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}

	// Other users do not see the key.
	_, err = GetIdempotency(ctx, db, "u2", "key-1", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestIdempotency_DuplicateKey(t *testing.T) {
	db := newRequestRepoDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u1", "key-1", "req-1", 200, time.Hour); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := CreateIdempotency(ctx, db, "u1", "key-1", "req-2", 200, time.Hour)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same key under another user is a distinct record.
	if _, err := CreateIdempotency(ctx, db, "u2", "key-1", "req-3", 200, time.Hour); err != nil {
		t.Fatalf("other user create: %v", err)
	}
}
