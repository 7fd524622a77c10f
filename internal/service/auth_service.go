package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/Suyash1602/airBNB-clone/internal/platform/auth"
	"github.com/Suyash1602/airBNB-clone/internal/repo/postgres"
	"github.com/Suyash1602/airBNB-clone/pkg/events"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type authService struct {
	userRepo  postgres.UserRepository
	hasher    *auth.Hasher
	codec     *auth.Codec
	denyList  auth.DenyList
	eventBus  events.Publisher
	dummyHash string
}

func NewAuthService(
	userRepo postgres.UserRepository,
	hasher *auth.Hasher,
	codec *auth.Codec,
	denyList auth.DenyList,
	eventBus events.Publisher,
) (AuthService, error) {
	// Digest compared against when the email is unknown, so that path costs
	// the same as a real wrong-password check.
	dummyHash, err := hasher.Hash(context.Background(), uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		codec:     codec,
		denyList:  denyList,
		eventBus:  eventBus,
		dummyHash: dummyHash,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	passwordHash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, err
	}

	event := events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password take the same path and return the same error.
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		s.hasher.Verify(ctx, req.Password, s.dummyHash)
		return nil, "", domain.ErrInvalidCredentials
	}

	valid, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return user, token, nil
}

// Logout revokes the session's jti until the token would have expired
// naturally. The cookie is cleared by the handler; this makes the token
// itself unusable even if a copy survives.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denyList.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
