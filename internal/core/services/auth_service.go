package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/jwt"
	"hrm-location/internal/pkg/metrics"
	"hrm-location/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles registration, login and the single-session
// refresh token lifecycle
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin employee"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         *models.UserResponse `json:"user"`
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	email := normalizeEmail(input.Email)

	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	// 2. Hash password
	hashedPassword, err := password.HashWithCost(input.Password, s.cfg.Security.SaltRounds)
	if err != nil {
		return nil, err
	}

	// 3. Create user; the unique index settles concurrent registrations
	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     string(role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Role)
	return user.ToResponse(), nil
}

// Login verifies credentials and starts a new session, replacing any
// previous refresh token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ObserveAuth("login", "invalid")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		metrics.ObserveAuth("login", "invalid")
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Generate tokens
	tokens, tokenHash, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 4. Store refresh token (overwrites the previous session)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return nil, err
	}

	metrics.ObserveAuth("login", "success")
	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user.ToResponse(),
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The stored hash is
// swapped atomically, so a token can be redeemed at most once. Presenting a
// signed token that no longer matches the stored one ends the session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		metrics.ObserveAuth("refresh", "invalid")
		return nil, domain.ErrInvalidRefreshToken
	}

	// 2. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ObserveAuth("refresh", "invalid")
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	// 3. Compare with the stored session
	presented := password.HashToken(refreshToken)
	if user.RefreshTokenHash == nil {
		metrics.ObserveAuth("refresh", "invalid")
		return nil, domain.ErrInvalidRefreshToken
	}
	if *user.RefreshTokenHash != presented {
		s.revoke(ctx, user.ID, "refresh token reuse")
		metrics.ObserveAuth("refresh", "reused")
		return nil, domain.ErrInvalidRefreshToken
	}

	// 4. Generate new tokens
	tokens, newHash, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 5. Rotate (compare-and-swap on the presented hash)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)
	rotated, err := s.userRepo.RotateRefreshToken(ctx, user.ID, presented, newHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if !rotated {
		s.revoke(ctx, user.ID, "concurrent refresh")
		metrics.ObserveAuth("refresh", "reused")
		return nil, domain.ErrInvalidRefreshToken
	}

	metrics.ObserveAuth("refresh", "success")
	return tokens, nil
}

// Logout clears the session of the user a verified refreshToken names,
// even if that token was already rotated out. It never fails on bad
// input: an unknown, expired or malformed token is simply ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}

	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return
	}

	s.revoke(ctx, user.ID, "logout")
	metrics.ObserveAuth("logout", "success")
	log.Printf("✅ User logged out: %s", user.Email)
}

// Authenticate resolves an access token to the current user
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ClearExpiredSessions drops refresh tokens whose expiry has passed
func (s *AuthService) ClearExpiredSessions(ctx context.Context) (int64, error) {
	return s.userRepo.ClearExpiredRefreshTokens(ctx, time.Now())
}

// generateTokens generates access and refresh tokens, returning the hash of
// the refresh token for storage
func (s *AuthService) generateTokens(user *models.User) (*domain.TokenPair, string, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, "", err
	}

	// Unique token ID keeps two refresh tokens issued in the same second distinct
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		user.Role,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, "", err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, password.HashToken(refreshToken), nil
}

func (s *AuthService) revoke(ctx context.Context, userID, reason string) {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to clear session for %s (%s): %v", userID, reason, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
