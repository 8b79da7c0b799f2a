package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voxlate/go-translate-backend/internal/auth"
	"github.com/voxlate/go-translate-backend/internal/domain"
)

func newServiceDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(migrate...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthSvc(t *testing.T) *AuthService {
	t.Helper()
	db := newServiceDB(t, &domain.User{})
	svc := NewAuthService(db, "test-secret", time.Hour)
	svc.BcryptCost = bcrypt.MinCost // keep tests fast
	return svc
}

func validParams() RegisterParams {
	return RegisterParams{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Example.com",
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
	}
}

func TestRegister_Success_NormalizesEmailAndHashes(t *testing.T) {
	svc := newAuthSvc(t)

	u, err := svc.Register(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "s3cret!" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc := newAuthSvc(t)

	cases := []struct {
		name   string
		mutate func(*RegisterParams)
		want   error
	}{
		{"missing first name", func(p *RegisterParams) { p.FirstName = " " }, ErrValidation},
		{"missing email", func(p *RegisterParams) { p.Email = "" }, ErrValidation},
		{"short password", func(p *RegisterParams) { p.Password = "abc"; p.ConfirmPassword = "abc" }, ErrValidation},
		{"mismatch", func(p *RegisterParams) { p.ConfirmPassword = "other1" }, ErrPasswordMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			if _, err := svc.Register(context.Background(), p); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthSvc(t)

	if _, err := svc.Register(context.Background(), validParams()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), validParams())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_SuccessIssuesVerifiableToken(t *testing.T) {
	svc := newAuthSvc(t)
	registered, err := svc.Register(context.Background(), validParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, u, err := svc.Login(context.Background(), "ADA@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("login returned wrong user: %+v", u)
	}

	uid, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != registered.ID {
		t.Fatalf("token resolves to %q, want %q", uid, registered.ID)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuthSvc(t)
	if _, err := svc.Register(context.Background(), validParams()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerify_RejectsForeignToken(t *testing.T) {
	svc := newAuthSvc(t)

	other, err := auth.GenerateToken("u1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.Verify(other); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
