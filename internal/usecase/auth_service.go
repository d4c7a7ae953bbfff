package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/omarwf/fantasy-rounds/internal/domain/user"
)

// RegisterInput is the incoming payload for registration. Username doubles
// as the user ID everywhere else in the system.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

type AuthService struct {
	userRepo user.Repository
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt password hash. The very first
// registered user becomes the admin.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Register")
	defer span.End()

	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if err := user.ValidateName(name); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := user.ValidateEmail(email); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := user.ValidatePassword(input.Password); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, username); err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	}
	if _, exists, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: %v", ErrConflict, user.ErrEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("count users: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		ID:           username,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      count == 0,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID),
		slog.Bool("is_admin", created.IsAdmin),
	)
	return created, nil
}

// Login authenticates by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return user.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, user.ErrBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, user.ErrBadCredentials)
	}

	return item, nil
}

// Verify confirms a stored session still maps to a real user.
func (s *AuthService) Verify(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Verify")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return item, nil
}

// Resolve turns a request's user id header into a Principal.
func (s *AuthService) Resolve(ctx context.Context, userID string) (user.Principal, error) {
	item, err := s.Verify(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return user.Principal{}, fmt.Errorf("%w: unknown user %s", ErrUnauthorized, userID)
		}
		return user.Principal{}, err
	}
	return user.Principal{UserID: item.ID, IsAdmin: item.IsAdmin}, nil
}
