package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/weeklist/internal/domain"
	"github.com/msomdec/weeklist/internal/repository/sqlite"
	"github.com/msomdec/weeklist/internal/service"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *service.TokenService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	tokens := service.NewTokenService(testJWTSecret)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), tokens, 4), tokens, db
}

func signupInput(email string) service.SignupInput {
	return service.SignupInput{
		FullName: "Test User",
		Email:    email,
		Password: "password123",
		Age:      29,
		Gender:   "other",
		Mobile:   "555-0199",
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	auth, tokens, _ := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := auth.Signup(ctx, signupInput("new@example.com"))
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify signup token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected token for %s, got %s", user.ID, userID)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Signup(ctx, signupInput("dup@example.com")); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, _, err := auth.Signup(ctx, signupInput("dup@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Signup_InvalidInput(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.SignupInput)
	}{
		{"empty email", func(in *service.SignupInput) { in.Email = "" }},
		{"empty password", func(in *service.SignupInput) { in.Password = "" }},
		{"malformed email", func(in *service.SignupInput) { in.Email = "not-an-email" }},
		{"short password", func(in *service.SignupInput) { in.Password = "short" }},
		{"negative age", func(in *service.SignupInput) { in.Age = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := signupInput("valid@example.com")
			tc.mutate(&in)
			_, _, err := auth.Signup(ctx, in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Signup(ctx, signupInput("login@example.com"))
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	token, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %s, got %s", user.ID, userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := auth.Signup(ctx, signupInput("wrongpw@example.com")); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, err := auth.Login(ctx, "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Authenticate("invalid.jwt.token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
