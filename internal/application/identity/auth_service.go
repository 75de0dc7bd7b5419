// Package identity provides signup and login for shop accounts.
package identity

import (
	"context"
	"time"

	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/auth"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID int64, role identity.Role) (*auth.IssuedToken, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger

	eventPublisher shared.EventPublisher
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Signup registers a new account. Role defaults to USER.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*UserResponse, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	gender, err := identity.ParseGender(input.Gender)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.Email, input.Password, gender, role)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError(shared.CodeEmailAlreadyInUse, "Email is already registered")
	}

	// Save maps a concurrent duplicate to EMAIL_ALREADY_IN_USE as well
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("User signed up",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role.String()),
	)
	s.publish(ctx, identity.NewUserSignedUpEvent(user))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	invalid := shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid email or password")

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			logger.L(ctx).Warn("Login attempt for unknown email")
			return nil, invalid
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		logger.L(ctx).Warn("Invalid password attempt", zap.Int64("user_id", user.ID))
		return nil, invalid
	}

	issued, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	logger.L(ctx).Info("User logged in", zap.Int64("user_id", user.ID))
	s.publish(ctx, identity.NewUserLoggedInEvent(user))

	return &LoginResult{
		Token:     issued.Token,
		ExpiresIn: expiresInSeconds(issued),
		UserID:    user.ID,
	}, nil
}

// GetUser returns a user by id
func (s *AuthService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, event)
}

func expiresInSeconds(issued *auth.IssuedToken) int64 {
	secs := int64(time.Until(issued.ExpiresAt).Round(time.Second) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
