package usecase

import (
	"errors"
	"testing"

	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service := NewAuthService(memory.NewUserRepository(nil), discardLogger())

	first, err := service.Register(t.Context(), RegisterInput{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !first.IsAdmin {
		t.Fatal("first registered user should be admin")
	}
	if first.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plain text")
	}

	second, err := service.Register(t.Context(), RegisterInput{
		Username: "bob",
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if second.IsAdmin {
		t.Fatal("second registered user should not be admin")
	}

	got, err := service.Login(t.Context(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != "alice" {
		t.Fatalf("login user = %s, want alice", got.ID)
	}

	if _, err := service.Login(t.Context(), "alice", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password error = %v, want %v", err, ErrUnauthorized)
	}
	if _, err := service.Login(t.Context(), "nobody", "whatever"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown user error = %v, want %v", err, ErrUnauthorized)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service := NewAuthService(memory.NewUserRepository(nil), discardLogger())

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing username",
			input:   RegisterInput{Name: "A", Email: "a@example.com", Password: "longenough"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad email",
			input:   RegisterInput{Username: "a", Name: "A", Email: "not-an-email", Password: "longenough"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "short password",
			input:   RegisterInput{Username: "a", Name: "A", Email: "a@example.com", Password: "short"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Register(t.Context(), tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	service := NewAuthService(memory.NewUserRepository(nil), discardLogger())

	input := RegisterInput{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	}
	if _, err := service.Register(t.Context(), input); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Register(t.Context(), input); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate username error = %v, want %v", err, ErrConflict)
	}

	input.Username = "alice2"
	if _, err := service.Register(t.Context(), input); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate email error = %v, want %v", err, ErrConflict)
	}
}

func TestAuthService_Resolve(t *testing.T) {
	service := NewAuthService(memory.NewUserRepository(nil), discardLogger())

	if _, err := service.Register(t.Context(), RegisterInput{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	principal, err := service.Resolve(t.Context(), "alice")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if principal.UserID != "alice" || !principal.IsAdmin {
		t.Fatalf("Resolve() = %+v, want admin alice", principal)
	}

	if _, err := service.Resolve(t.Context(), "ghost"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Resolve() unknown user error = %v, want %v", err, ErrUnauthorized)
	}
}
